// Package content loads the species, move, route and talent tables a battle
// engine runs on.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/pocketbattle/internal/game/encounter"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

// TalentsFile is the optional talent catalog override under a content dir.
const TalentsFile = "talents.yaml"

// Bundle is the loaded, cross-checked content.
type Bundle struct {
	Registry *species.Registry
	Catalog  *talent.Catalog
	Routes   []*encounter.Route

	routes map[string]*encounter.Route
}

// Route returns the route with the given ID.
func (b *Bundle) Route(id string) (*encounter.Route, bool) {
	r, ok := b.routes[id]
	return r, ok
}

// RouteIDs returns every route ID sorted.
func (b *Bundle) RouteIDs() []string {
	ids := make([]string, 0, len(b.routes))
	for id := range b.routes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load reads dir/species, dir/moves, dir/routes and the optional
// dir/talents.yaml in parallel, then checks that every route spawn names a
// known species.
//
// Precondition: dir contains species/, moves/ and routes/ subdirectories.
// Postcondition: Returns a complete Bundle or the first error encountered.
func Load(ctx context.Context, dir string) (*Bundle, error) {
	var b Bundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reg, err := species.LoadDir(dir)
		if err != nil {
			return fmt.Errorf("loading species: %w", err)
		}
		b.Registry = reg
		return ctx.Err()
	})
	g.Go(func() error {
		routes, err := encounter.LoadRoutes(filepath.Join(dir, "routes"))
		if err != nil {
			return fmt.Errorf("loading routes: %w", err)
		}
		b.Routes = routes
		return ctx.Err()
	})
	g.Go(func() error {
		cat, err := loadCatalog(filepath.Join(dir, TalentsFile))
		if err != nil {
			return fmt.Errorf("loading talents: %w", err)
		}
		b.Catalog = cat
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.routes = make(map[string]*encounter.Route, len(b.Routes))
	for _, r := range b.Routes {
		for _, sp := range r.Spawns {
			if _, ok := b.Registry.Species(sp.Name); !ok {
				return nil, fmt.Errorf("route %q: %w: %q", r.ID, encounter.ErrUnknownSpecies, sp.Name)
			}
		}
		b.routes[r.ID] = r
	}
	return &b, nil
}

func loadCatalog(path string) (*talent.Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return talent.DefaultCatalog(), nil
	}
	if err != nil {
		return nil, err
	}
	return talent.LoadCatalogFromBytes(data)
}
