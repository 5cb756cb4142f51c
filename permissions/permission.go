package permissions

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission describes one route pattern. Skip lets requests through without a caller id.
type Permission struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Skip   bool   `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

// FindPermissions returns the entry for a chi route pattern and method, or the zero
// Permission when the route is not listed. Trailing slashes are ignored.
func (r *PermissionData) FindPermissions(pattern, method string) Permission {
	index := r.index
	if index == nil {
		index = buildIndex(r.Endpoints)
	}

	return index[key(pattern, method)]
}

func buildIndex(endpoints []Permission) map[string]Permission {
	index := make(map[string]Permission, len(endpoints))
	for _, endpoint := range endpoints {
		index[key(endpoint.Path, endpoint.Method)] = endpoint
	}

	return index
}

func key(pattern, method string) string {
	if len(pattern) > 1 {
		pattern = strings.TrimSuffix(pattern, "/")
	}

	return strings.ToUpper(method) + " " + pattern
}

// Get decodes the embedded permissions.json. A broken file yields nil, which makes
// every route require the caller header.
func Get() *PermissionData {
	var data PermissionData
	if err := json.Unmarshal(permissionsData, &data); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	data.index = buildIndex(data.Endpoints)
	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return &data
}
