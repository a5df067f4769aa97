package tideways

import (
	"bytes"
	"decommission/base"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

type Application struct {
	Name string
}

type Server struct {
	Server   string
	LastSync string
}

type applicationJSON struct {
	Name *string `json:"name"`
}

type serverJSON struct {
	Server   *string `json:"server"`
	LastSync *string `json:"last_sync"`
}

type deleteResponseJSON struct {
	RemovedServers *int `json:"removed_servers"`
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func decodeArray(raw json.RawMessage, what string) ([]json.RawMessage, error) {
	if firstByte(raw) != '[' {
		return nil, base.NewMalformedError("%s: expected JSON array", what)
	}
	var items []json.RawMessage
	if err := sonic.ConfigStd.Unmarshal(raw, &items); err != nil {
		return nil, base.WrapMalformedError(err, what)
	}
	return items, nil
}

func decodeObject(raw json.RawMessage, out interface{}, what string) error {
	if firstByte(raw) != '{' {
		return base.NewMalformedError("%s: expected JSON object", what)
	}
	if err := sonic.ConfigStd.Unmarshal(raw, out); err != nil {
		return base.WrapMalformedError(err, what)
	}
	return nil
}

// ParseServers decodes servers listing. Any invalid element fails the whole listing.
func ParseServers(raw json.RawMessage) ([]Server, error) {
	items, err := decodeArray(raw, "servers")
	if err != nil {
		return nil, err
	}
	servers := make([]Server, 0, len(items))
	for i, item := range items {
		var s serverJSON
		if err := decodeObject(item, &s, "servers"); err != nil {
			return nil, base.WrapMalformedError(err, fmt.Sprintf("element %d", i))
		}
		if s.Server == nil || *s.Server == "" {
			return nil, base.NewMalformedError("servers: element %d has no server", i)
		}
		if s.LastSync == nil {
			return nil, base.NewMalformedError("servers: element %d (%s) has no last_sync", i, *s.Server)
		}
		servers = append(servers, Server{Server: *s.Server, LastSync: *s.LastSync})
	}
	return servers, nil
}

// ParseApplications decodes applications listing, every entry needs a name.
func ParseApplications(raw json.RawMessage) ([]Application, error) {
	items, err := decodeArray(raw, "applications")
	if err != nil {
		return nil, err
	}
	apps := make([]Application, 0, len(items))
	for i, item := range items {
		var a applicationJSON
		if err := decodeObject(item, &a, "applications"); err != nil {
			return nil, base.WrapMalformedError(err, fmt.Sprintf("element %d", i))
		}
		if a.Name == nil || *a.Name == "" {
			return nil, base.NewMalformedError("applications: element %d has no name", i)
		}
		apps = append(apps, Application{Name: *a.Name})
	}
	return apps, nil
}

// ParseDeleteResponse returns removed_servers count of delete response.
func ParseDeleteResponse(raw json.RawMessage) (int, error) {
	var resp deleteResponseJSON
	if err := decodeObject(raw, &resp, "delete response"); err != nil {
		return 0, err
	}
	if resp.RemovedServers == nil {
		return 0, base.NewMalformedError("delete response: missing removed_servers")
	}
	return *resp.RemovedServers, nil
}
