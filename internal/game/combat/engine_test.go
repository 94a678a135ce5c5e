package combat_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pocketbattle/internal/game/combat"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
	"github.com/cory-johannsen/pocketbattle/internal/testutil/fixture"
)

func newEngine(newPacer func() combat.Pacer) *combat.Engine {
	return combat.NewEngine(combat.Deps{
		Registry: fixture.Registry(),
		Catalog:  talent.DefaultCatalog(),
		Source:   dice.NewSeededSource(7),
		NewPacer: newPacer,
	}, combat.DefaultConfig())
}

func TestEngine_StartGetEnd(t *testing.T) {
	e := newEngine(nil)
	tr := trainer.New("Ash", 0)

	s, err := e.Start(tr)
	require.NoError(t, err)
	assert.Same(t, tr, s.Trainer())
	assert.Equal(t, 1, e.Count())

	got, ok := e.Get(tr.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, err = e.Start(tr)
	assert.ErrorIs(t, err, combat.ErrSessionExists)

	e.End(tr.ID)
	_, ok = e.Get(tr.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, e.Count())
	e.End(tr.ID)
}

func TestEngine_EndStopsOnlyThatSessionsPacer(t *testing.T) {
	var mu sync.Mutex
	var pacers []*combat.RealPacer
	e := newEngine(func() combat.Pacer {
		p := combat.NewRealPacer()
		mu.Lock()
		pacers = append(pacers, p)
		mu.Unlock()
		return p
	})
	a, b := trainer.New("A", 0), trainer.New("B", 0)
	_, err := e.Start(a)
	require.NoError(t, err)
	_, err = e.Start(b)
	require.NoError(t, err)
	require.Len(t, pacers, 2)

	e.End(a.ID)

	released := make(chan struct{})
	go func() {
		pacers[0].Wait(time.Hour)
		close(released)
	}()
	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("ended session's pacer still blocks")
	}

	start := time.Now()
	pacers[1].Wait(20 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestEngine_ConcurrentStart(t *testing.T) {
	e := newEngine(nil)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Start(trainer.New("T", 0))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, e.Count())
}
