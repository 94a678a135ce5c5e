package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pocketbattle/internal/config"
	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
	"github.com/cory-johannsen/pocketbattle/internal/storage/postgres"
	"github.com/cory-johannsen/pocketbattle/internal/testutil"
	"github.com/cory-johannsen/pocketbattle/internal/testutil/fixture"
)

func TestNewPool_Disabled(t *testing.T) {
	_, err := postgres.NewPool(context.Background(), config.DatabaseConfig{}, nil)
	assert.ErrorIs(t, err, postgres.ErrPersistenceDisabled)
}

func sampleTrainer(t *testing.T) *trainer.Trainer {
	t.Helper()
	reg := fixture.Registry()
	tr := trainer.New("Misty", 6)
	src := dice.NewSeededSource(11)
	for _, name := range []string{"Squirtle", "Gastly", "Pidgey"} {
		sp, ok := reg.Species(name)
		require.True(t, ok)
		c := creature.New(sp, 12.5, creature.RollIVs(src))
		c.AssignTalents(talent.DefaultCatalog(), src)
		require.NoError(t, tr.AddToParty(c))
	}
	tr.Party[1].Shiny = true
	tr.Party[0].Damage(7)
	tr.Party[0].GainEnergy(30)
	require.NoError(t, tr.SetActive(2))
	tr.Coins = 321
	tr.Exp = 40
	tr.LastUsedBerry = trainer.Pinap
	require.NoError(t, tr.Items.Add(trainer.Balls, "masterball", 2))
	return tr
}

func TestTrainerRepository(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	ctx := context.Background()
	repo := postgres.NewTrainerRepository(pc.Pool.DB(), fixture.Registry(), talent.DefaultCatalog(), 6)

	t.Run("round trip", func(t *testing.T) {
		pc.Truncate(t)
		tr := sampleTrainer(t)
		require.NoError(t, repo.Save(ctx, tr))

		got, err := repo.Load(ctx, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, tr.Record(), got.Record())
		require.Len(t, got.Party, 3)
		for i, c := range tr.Party {
			assert.Equal(t, c.Snapshot(), got.Party[i].Snapshot())
			assert.Equal(t, c.Totals(), got.Party[i].Totals(), "totals are recomputed on load")
		}
		assert.Equal(t, "Pidgey", got.Active().DisplayName())
	})

	t.Run("save replaces party", func(t *testing.T) {
		pc.Truncate(t)
		tr := sampleTrainer(t)
		require.NoError(t, repo.Save(ctx, tr))

		tr.Party = tr.Party[:1]
		require.NoError(t, tr.SetActive(0))
		tr.Coins = 5
		require.NoError(t, repo.Save(ctx, tr))

		got, err := repo.Load(ctx, tr.ID)
		require.NoError(t, err)
		assert.Len(t, got.Party, 1)
		assert.Equal(t, 5, got.Coins)
	})

	t.Run("empty party", func(t *testing.T) {
		pc.Truncate(t)
		tr := trainer.New("Brock", 6)
		require.NoError(t, repo.Save(ctx, tr))
		got, err := repo.Load(ctx, tr.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Party)
		assert.Nil(t, got.Active())
	})

	t.Run("list and delete", func(t *testing.T) {
		pc.Truncate(t)
		a := sampleTrainer(t)
		b := trainer.New("Brock", 6)
		require.NoError(t, repo.Save(ctx, a))
		require.NoError(t, repo.Save(ctx, b))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Brock", list[0].Name)
		assert.Equal(t, 0, list[0].PartySize)
		assert.Equal(t, 3, list[1].PartySize)

		require.NoError(t, repo.Delete(ctx, a.ID))
		_, err = repo.Load(ctx, a.ID)
		assert.ErrorIs(t, err, postgres.ErrTrainerNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, a.ID), postgres.ErrTrainerNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Load(ctx, uuid.NewString())
		assert.ErrorIs(t, err, postgres.ErrTrainerNotFound)
	})
}
