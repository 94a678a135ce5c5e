package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/pocketbattle/internal/game/combat"
)

func TestTee_FansOutToRecorderAndZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := combat.NewRecorder()
	sink := combat.Tee{combat.NewZapSink(zap.New(core)), rec}
	c := newCreature(t, "Pidgey", 5)

	sink.Append(combat.Entry{Speaker: combat.SpeakerWild, Message: "Pidgey used Tackle!"})
	sink.Refresh(combat.SideWild, c)
	sink.Clear(combat.SideWild)

	assert.Equal(t, []string{"Pidgey used Tackle!"}, rec.Messages())
	assert.Equal(t, 1, rec.Refreshes(combat.SideWild))
	assert.Equal(t, 1, rec.Clears(combat.SideWild))
	assert.Equal(t, 0, rec.Refreshes(combat.SidePlayer))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Pidgey used Tackle!", entries[0].Message)
	assert.Equal(t, "wild", entries[0].ContextMap()["speaker"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "wild", entries[2].ContextMap()["side"])

	rec.Reset()
	assert.Empty(t, rec.Entries())
	assert.Equal(t, 0, rec.Clears(combat.SideWild))
}
