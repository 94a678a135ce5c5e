package combat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/pocketbattle/internal/game/combat"
)

func TestNoDelay_ReturnsImmediately(t *testing.T) {
	start := time.Now()
	combat.NoDelay{}.Wait(time.Hour)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRealPacer_WaitsFullDuration(t *testing.T) {
	p := combat.NewRealPacer()
	start := time.Now()
	p.Wait(30 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	p.Wait(0)
	p.Wait(-time.Second)
}

func TestRealPacer_StopReleasesWaiters(t *testing.T) {
	p := combat.NewRealPacer()
	done := make(chan struct{})
	go func() {
		p.Wait(time.Hour)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	p.Stop()
	p.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait not released by Stop")
	}

	start := time.Now()
	p.Wait(time.Hour)
	assert.Less(t, time.Since(start), time.Second)
}
