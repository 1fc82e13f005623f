package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"SalesIngest/internal/sales"
)

type companyEntry struct {
	ID        int64  `yaml:"id"`
	Name      string `yaml:"name"`
	Submodule string `yaml:"submodule"`
	Layout    string `yaml:"layout"`
}

// Companies reads the "companies" list of a service config block as decoded
// from services.yaml:
//
//	companies:
//	  - id: 1
//	    name: Ventas Nacionales
//	    submodule: nacional
//	    layout: LAYOUT_A
func Companies(cfg map[string]interface{}) ([]sales.Company, error) {
	raw, ok := cfg["companies"]
	if !ok || raw == nil {
		return nil, nil
	}
	// round-trip through yaml so the typed struct does the coercion
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("companies: %w", err)
	}
	var entries []companyEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("companies: %w", err)
	}
	out := make([]sales.Company, 0, len(entries))
	seen := map[int64]bool{}
	for i, e := range entries {
		l := sales.ParseLayout(e.Layout)
		switch {
		case e.ID == 0:
			return nil, fmt.Errorf("companies[%d]: id is required", i)
		case seen[e.ID]:
			return nil, fmt.Errorf("companies[%d]: duplicate id %d", i, e.ID)
		case l == sales.LayoutUnknown:
			return nil, fmt.Errorf("companies[%d]: unknown layout %q", i, e.Layout)
		}
		seen[e.ID] = true
		sub := e.Submodule
		if sub == "" {
			sub = l.String()
		}
		out = append(out, sales.Company{ID: e.ID, Name: e.Name, Submodule: sub, Layout: l})
	}
	return out, nil
}

// Int reads an integer setting that yaml may have decoded as int or float64,
// or that was written as a string.
func Int(cfg map[string]interface{}, key string, def int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return def
}

func String(cfg map[string]interface{}, key, def string) string {
	if s, ok := cfg[key].(string); ok && s != "" {
		return s
	}
	return def
}
