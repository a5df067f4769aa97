package decommission

import (
	"context"
	"decommission/base"
	"decommission/base/tideways"
	"decommission/base/utils"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

type State string

const (
	StateFetching      State = "fetching"
	StateFiltering     State = "filtering"
	StateDeleting      State = "deleting"
	StateVerifying     State = "verifying"
	StateDone          State = "done"
	StateDoneNoExpired State = "done-no-expired"
	StateFailed        State = "failed"
)

// ServerAPI is the part of the Tideways API the job needs
type ServerAPI interface {
	ListApplications(ctx context.Context, organization string) ([]tideways.Application, error)
	ListServers(ctx context.Context, organization, application string) ([]tideways.Server, error)
	DeleteServers(ctx context.Context, organization, application string, serverIDs []string) (int, error)
}

type AppResult struct {
	Application string
	State       State
	// state in which the application failed
	FailedIn State
	Cutoff   time.Time
	Expired  []tideways.Server
	Removed  int
	DryRun   bool
	Err      error
}

func (r AppResult) Failed() bool {
	return r.State == StateFailed
}

func (r AppResult) resultLabel() string {
	if r.Failed() {
		return base.ErrorKind(r.Err)
	}
	return string(r.State)
}

type Summary struct {
	RunID   string
	Results []AppResult
	// error which prevented processing of any application
	Err error
}

func (s Summary) Failed() bool {
	if s.Err != nil {
		return true
	}
	for _, res := range s.Results {
		if res.Failed() {
			return true
		}
	}
	return false
}

func (s Summary) ExitCode() int {
	if s.Failed() {
		return 1
	}
	return 0
}

type Decommissioner struct {
	cfg   Config
	api   ServerAPI
	clock clockwork.Clock
}

func NewDecommissioner(cfg Config, api ServerAPI, clock clockwork.Clock) *Decommissioner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Decommissioner{cfg: cfg, api: api, clock: clock}
}

// Run processes all applications one by one, a failing application never stops the others.
func (d *Decommissioner) Run(ctx context.Context) Summary {
	summary := Summary{RunID: uuid.NewString()}
	utils.LogInfo("run_id", summary.RunID, "organization", d.cfg.Organization, "timeout_days", d.cfg.TimeoutDays,
		"dry_run", d.cfg.DryRun, "Decommission run started")

	apps, err := d.applications(ctx)
	if err != nil {
		summary.Err = err
		utils.LogError("run_id", summary.RunID, "kind", base.ErrorKind(err), "err", err.Error(),
			"Unable to determine applications")
		return summary
	}

	for _, app := range apps {
		res := d.processApplication(ctx, app)
		logResult(summary.RunID, res)
		observeResult(res)
		summary.Results = append(summary.Results, res)
	}

	utils.LogInfo("run_id", summary.RunID, "applications", len(summary.Results), "failed", summary.Failed(),
		"Decommission run finished")
	return summary
}

func (d *Decommissioner) applications(ctx context.Context) ([]string, error) {
	if !d.cfg.DiscoverApplications {
		return d.cfg.Applications, nil
	}

	discovered, err := d.api.ListApplications(ctx, d.cfg.Organization)
	if err != nil {
		return nil, errors.Wrap(err, "Discover applications")
	}
	names := make([]string, 0, len(discovered))
	for _, app := range discovered {
		names = append(names, app.Name)
	}
	utils.LogInfo("organization", d.cfg.Organization, "applications", names, "Applications discovered")
	return names, nil
}

func (d *Decommissioner) processApplication(ctx context.Context, app string) (res AppResult) {
	res = AppResult{Application: app, State: StateFetching, DryRun: d.cfg.DryRun}
	fail := func(err error) AppResult {
		res.FailedIn = res.State
		res.State = StateFailed
		res.Err = err
		return res
	}
	defer func() {
		if obj := recover(); obj != nil {
			res = fail(errors.Errorf("panicked: %v", obj))
		}
	}()

	servers, err := d.api.ListServers(ctx, d.cfg.Organization, app)
	if err != nil {
		return fail(err)
	}
	if len(servers) == 0 {
		utils.LogInfo("application", app, "No servers registered")
		res.State = StateDoneNoExpired
		return res
	}

	res.State = StateFiltering
	res.Cutoff = Cutoff(d.clock.Now(), d.cfg.TimeoutDays)
	expired, err := FilterExpired(servers, res.Cutoff)
	if err != nil {
		return fail(err)
	}
	res.Expired = expired
	if len(expired) == 0 {
		utils.LogInfo("application", app, "servers", len(servers), "cutoff", res.Cutoff, "No expired servers")
		res.State = StateDoneNoExpired
		return res
	}

	ids := serverIDs(expired)
	if d.cfg.DryRun {
		utils.LogInfo("application", app, "expired", ids, "cutoff", res.Cutoff, "Dry run, servers not deleted")
		res.State = StateDone
		return res
	}

	res.State = StateDeleting
	utils.LogDebug("application", app, "expired", ids, "Deleting expired servers")
	removed, err := d.api.DeleteServers(ctx, d.cfg.Organization, app, ids)
	if err != nil {
		return fail(err)
	}
	res.Removed = removed

	res.State = StateVerifying
	if removed != len(ids) {
		return fail(base.NewVerificationError(len(ids), removed))
	}
	res.State = StateDone
	return res
}

func logResult(runID string, res AppResult) {
	if res.Failed() {
		utils.LogError("run_id", runID, "application", res.Application, "state", res.FailedIn,
			"kind", base.ErrorKind(res.Err), "err", res.Err.Error(), "Application processing failed")
		return
	}
	utils.LogInfo("run_id", runID, "application", res.Application, "state", res.State,
		"expired", len(res.Expired), "removed", res.Removed, "Application processed successfully")
}
