// Package encounter builds wild creatures from route spawn tables.
package encounter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpawnEntry is one row of a route's spawn table.
type SpawnEntry struct {
	Name string  `yaml:"name"`
	Rate float64 `yaml:"rate"`
}

// Route is a named area with a spawn table and a wild level range.
type Route struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	Spawns     []SpawnEntry `yaml:"wild"`
	LevelRange [2]int       `yaml:"level_range"`
}

// Validate checks route invariants and defaults an omitted level range to [1, 1].
//
// Precondition: r must not be nil.
// Postcondition: Returns nil iff ID is set, 1 <= LevelRange[0] <= LevelRange[1],
// and every spawn entry has a name and a non-negative rate.
func (r *Route) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("route: id must not be empty")
	}
	if r.Name == "" {
		r.Name = r.ID
	}
	if r.LevelRange == [2]int{} {
		r.LevelRange = [2]int{1, 1}
	}
	if r.LevelRange[0] < 1 || r.LevelRange[0] > r.LevelRange[1] {
		return fmt.Errorf("route %q: level_range %v must satisfy 1 <= min <= max", r.ID, r.LevelRange)
	}
	for i, s := range r.Spawns {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("route %q: spawn %d has no name", r.ID, i)
		}
		if s.Rate < 0 {
			return fmt.Errorf("route %q: spawn %q rate must be >= 0", r.ID, s.Name)
		}
	}
	return nil
}

// LoadRoutesFromBytes parses a `routes:` list and validates each route.
func LoadRoutesFromBytes(data []byte) ([]*Route, error) {
	var f struct {
		Routes []*Route `yaml:"routes"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing routes YAML: %w", err)
	}
	for _, r := range f.Routes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Routes, nil
}

// LoadRoutes reads all *.yaml files in dir and returns the routes they define.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all routes or the first parse, validate or duplicate-ID
// error; on error the partial result is discarded.
func LoadRoutes(dir string) ([]*Route, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading route dir %q: %w", dir, err)
	}

	seen := make(map[string]bool)
	var routes []*Route
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		rs, err := LoadRoutesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		for _, r := range rs {
			if seen[r.ID] {
				return nil, fmt.Errorf("loading %q: duplicate route %q", path, r.ID)
			}
			seen[r.ID] = true
		}
		routes = append(routes, rs...)
	}
	return routes, nil
}

// SelectSpawn picks a spawn entry for a uniform draw in [0, 1) by walking the
// table and subtracting each rate from the draw until it falls below an
// entry's rate. When the rates are exhausted the first entry is returned.
//
// Postcondition: ok is false only when entries is empty.
func SelectSpawn(entries []SpawnEntry, draw float64) (SpawnEntry, bool) {
	if len(entries) == 0 {
		return SpawnEntry{}, false
	}
	for _, e := range entries {
		if draw < e.Rate {
			return e, true
		}
		draw -= e.Rate
	}
	return entries[0], true
}
