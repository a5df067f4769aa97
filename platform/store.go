package platform

import (
	"sort"
	"sync"
	"time"
)

// time format of last_sync values served by the mock
const lastSyncFormat = "2006-01-02 15:04:05"

type ServerRecord struct {
	Server   string `json:"server"`
	LastSync string `json:"last_sync"`
}

type application struct {
	servers []ServerRecord
	// served instead of servers listing when set
	rawServers []byte
}

// Store keeps registered servers of organizations in memory
type Store struct {
	mu    sync.Mutex
	token string
	orgs  map[string]map[string]*application
}

func NewStore(token string) *Store {
	return &Store{token: token, orgs: map[string]map[string]*application{}}
}

func (s *Store) app(org, app string, create bool) *application {
	apps, ok := s.orgs[org]
	if !ok {
		if !create {
			return nil
		}
		apps = map[string]*application{}
		s.orgs[org] = apps
	}
	a, ok := apps[app]
	if !ok && create {
		a = &application{servers: []ServerRecord{}}
		apps[app] = a
	}
	return a
}

// AddApplication registers application without servers
func (s *Store) AddApplication(org, app string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app(org, app, true)
}

func (s *Store) AddServer(org, app, server string, lastSync time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.app(org, app, true)
	a.servers = append(a.servers, ServerRecord{Server: server, LastSync: lastSync.UTC().Format(lastSyncFormat)})
}

// SetRawServers makes servers listing of app return body as is
func (s *Store) SetRawServers(org, app string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app(org, app, true).rawServers = body
}

// Applications returns sorted application names of org
func (s *Store) Applications(org string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := []string{}
	for name := range s.orgs[org] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Servers returns copy of app servers and raw override, ok is false for unknown app
func (s *Store) Servers(org, app string) (servers []ServerRecord, raw []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.app(org, app, false)
	if a == nil {
		return nil, nil, false
	}
	return append([]ServerRecord{}, a.servers...), a.rawServers, true
}

// Remove deletes known servers and returns how many were removed
func (s *Store) Remove(org, app string, ids []string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.app(org, app, false)
	if a == nil {
		return 0, false
	}
	toRemove := map[string]bool{}
	for _, id := range ids {
		toRemove[id] = true
	}
	kept := []ServerRecord{}
	for _, srv := range a.servers {
		if !toRemove[srv.Server] {
			kept = append(kept, srv)
		}
	}
	removed := len(a.servers) - len(kept)
	a.servers = kept
	return removed, true
}

// SeedStore fills org with demo applications relative to now
func SeedStore(s *Store, org string, now time.Time) {
	day := 24 * time.Hour
	s.AddServer(org, "checkout", "web-1", now.Add(-time.Hour))
	s.AddServer(org, "checkout", "web-2", now.Add(-30*day))
	s.AddServer(org, "checkout", "worker-1", now.Add(-60*day))
	s.AddServer(org, "shop", "shop-1", now.Add(-2*day))
	s.AddApplication(org, "search")
}
