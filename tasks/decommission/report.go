package decommission

import (
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

const (
	ActionRemoved = "removed"
	ActionDryRun  = "dry-run"
	ActionFailed  = "failed"
)

// ReportRow is one expired server of a run
type ReportRow struct {
	RunID       string `csv:"run_id"`
	Application string `csv:"application"`
	Server      string `csv:"server"`
	LastSync    string `csv:"last_sync"`
	Cutoff      string `csv:"cutoff"`
	Action      string `csv:"action"`
}

func ReportRows(summary Summary) []*ReportRow {
	rows := []*ReportRow{}
	for _, res := range summary.Results {
		action := ActionRemoved
		switch {
		case res.State == StateFailed:
			action = ActionFailed
		case res.DryRun:
			action = ActionDryRun
		}
		for _, server := range res.Expired {
			rows = append(rows, &ReportRow{
				RunID:       summary.RunID,
				Application: res.Application,
				Server:      server.Server,
				LastSync:    server.LastSync,
				Cutoff:      res.Cutoff.Format(time.RFC3339),
				Action:      action,
			})
		}
	}
	return rows
}

// WriteReport writes expired servers of the run as CSV, an existing file is replaced
func WriteReport(path string, summary Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Create report file")
	}
	defer f.Close()

	rows := ReportRows(summary)
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return errors.Wrap(err, "Write report")
	}
	return nil
}
