package base

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

const TidewaysURL = "https://app.tideways.io"
const TidewaysAPIPrefix = "/apps/api"

// Go datetime parser does not like slightly incorrect RFC 3339 which we are using (missing Z )
const Rfc3339NoTz = "2006-01-02T15:04:05-07:00"

// timestamp format used by the Tideways UI and older API responses
const TidewaysDateTime = "2006-01-02 15:04:05"

var Context, CancelContext = context.WithCancel(context.Background())

// ParseTime parses timestamps as returned by the API. Values without zone are UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, Rfc3339NoTz, TidewaysDateTime} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unable to parse time %q", value)
	}
	return t.UTC(), nil
}
