package decommission

import (
	"decommission/base"
	"decommission/base/tideways"
	"time"
)

// Cutoff returns the instant timeoutDays calendar days before now, in UTC.
func Cutoff(now time.Time, timeoutDays int) time.Time {
	return now.UTC().AddDate(0, 0, -timeoutDays)
}

// FilterExpired returns servers whose last_sync is strictly before cutoff, keeping input order.
// A last_sync which can not be parsed fails the whole application.
func FilterExpired(servers []tideways.Server, cutoff time.Time) ([]tideways.Server, error) {
	expired := []tideways.Server{}
	for _, server := range servers {
		lastSync, err := base.ParseTime(server.LastSync)
		if err != nil {
			return nil, base.WrapMalformedError(err, "server "+server.Server)
		}
		if lastSync.Before(cutoff) {
			expired = append(expired, server)
		}
	}
	return expired, nil
}

// ExpiredServers returns identifiers of servers whose last_sync is strictly before cutoff.
func ExpiredServers(servers []tideways.Server, cutoff time.Time) ([]string, error) {
	expired, err := FilterExpired(servers, cutoff)
	if err != nil {
		return nil, err
	}
	return serverIDs(expired), nil
}

func serverIDs(servers []tideways.Server) []string {
	ids := make([]string, 0, len(servers))
	for _, s := range servers {
		ids = append(ids, s.Server)
	}
	return ids
}
