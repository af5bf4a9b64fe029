// Package kpi accumulates KPI declarations discovered during FMU
// introspection and writes the JSON manifest consumed downstream.
package kpi

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

const manifestPerm = 0o644

// ManifestName is the fixed file name of the KPI manifest.
const ManifestName = "kpis.json"

// Map maps a KPI name to the ordered output variable names contributing
// to it. The first occurrence of a KPI creates its list; later
// occurrences append in discovery order.
type Map map[string][]string

// Add records an output variable as contributing to the named KPI.
func (m Map) Add(name, variable string) {
	m[name] = append(m[name], variable)
}

// Names returns all KPI names in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// WriteManifest serializes the map as a JSON object to path. An empty or
// nil map serializes as "{}".
func WriteManifest(m Map, path string) error {
	if m == nil {
		m = Map{}
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling KPI manifest: %w", err)
	}

	if err := os.WriteFile(path, data, manifestPerm); err != nil {
		return fmt.Errorf("writing KPI manifest %s: %w", path, err)
	}

	return nil
}
