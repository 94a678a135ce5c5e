package species

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry is the read-only lookup of species and moves.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	species map[string]*Species
	byID    map[int]*Species
	moves   map[string]*Move
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewRegistry validates and indexes the given species and moves.
//
// Precondition: names are unique case-insensitively within each list.
// Postcondition: Every move referenced by a species resolves, or an error is returned.
func NewRegistry(species []*Species, moves []*Move) (*Registry, error) {
	r := &Registry{
		species: make(map[string]*Species, len(species)),
		byID:    make(map[int]*Species, len(species)),
		moves:   make(map[string]*Move, len(moves)),
	}
	for _, m := range moves {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		k := key(m.Name)
		if _, dup := r.moves[k]; dup {
			return nil, fmt.Errorf("duplicate move %q", m.Name)
		}
		r.moves[k] = m
	}
	for _, s := range species {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		k := key(s.Name)
		if _, dup := r.species[k]; dup {
			return nil, fmt.Errorf("duplicate species %q", s.Name)
		}
		for _, name := range s.FastMoves {
			m, ok := r.moves[key(name)]
			if !ok {
				return nil, fmt.Errorf("species %q: unknown fast move %q", s.Name, name)
			}
			if m.Category != Fast {
				return nil, fmt.Errorf("species %q: %q is not a fast move", s.Name, name)
			}
		}
		for _, name := range s.ChargedMoves {
			m, ok := r.moves[key(name)]
			if !ok {
				return nil, fmt.Errorf("species %q: unknown charged move %q", s.Name, name)
			}
			if m.Category != Charge {
				return nil, fmt.Errorf("species %q: %q is not a charge move", s.Name, name)
			}
		}
		r.species[k] = s
		if s.ID != 0 {
			r.byID[s.ID] = s
		}
	}
	return r, nil
}

// Species looks up a species by name, ignoring case and surrounding space.
func (r *Registry) Species(name string) (*Species, bool) {
	s, ok := r.species[key(name)]
	return s, ok
}

// SpeciesByID looks up a species by its numeric id.
func (r *Registry) SpeciesByID(id int) (*Species, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Move looks up a move by name, ignoring case and surrounding space.
func (r *Registry) Move(name string) (*Move, bool) {
	m, ok := r.moves[key(name)]
	return m, ok
}

// MovesOf resolves every move the species knows, fast moves first.
func (r *Registry) MovesOf(s *Species) []*Move {
	out := make([]*Move, 0, len(s.FastMoves)+len(s.ChargedMoves))
	for _, name := range s.AllMoves() {
		if m, ok := r.Move(name); ok {
			out = append(out, m)
		}
	}
	return out
}

// Names returns all species names sorted alphabetically.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.species))
	for _, s := range r.species {
		out = append(out, s.Name)
	}
	sort.Strings(out)
	return out
}

type speciesFile struct {
	Species []*Species `yaml:"species"`
}

type movesFile struct {
	Moves []*Move `yaml:"moves"`
}

// LoadSpeciesFromBytes parses a `species:` list from YAML.
func LoadSpeciesFromBytes(data []byte) ([]*Species, error) {
	var f speciesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	return f.Species, nil
}

// LoadMovesFromBytes parses a `moves:` list from YAML.
func LoadMovesFromBytes(data []byte) ([]*Move, error) {
	var f movesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing moves YAML: %w", err)
	}
	return f.Moves, nil
}

// LoadDir reads every *.yaml file in dir/species and dir/moves and builds a Registry.
//
// Precondition: dir contains readable species/ and moves/ subdirectories.
// Postcondition: Returns a validated Registry or the first error encountered.
func LoadDir(dir string) (*Registry, error) {
	var allSpecies []*Species
	err := eachYAML(filepath.Join(dir, "species"), func(path string, data []byte) error {
		s, err := LoadSpeciesFromBytes(data)
		if err != nil {
			return fmt.Errorf("loading %q: %w", path, err)
		}
		allSpecies = append(allSpecies, s...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var allMoves []*Move
	err = eachYAML(filepath.Join(dir, "moves"), func(path string, data []byte) error {
		m, err := LoadMovesFromBytes(data)
		if err != nil {
			return fmt.Errorf("loading %q: %w", path, err)
		}
		allMoves = append(allMoves, m...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewRegistry(allSpecies, allMoves)
}

func eachYAML(dir string, fn func(path string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading dir %q: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		if err := fn(path, data); err != nil {
			return err
		}
	}
	return nil
}
