package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
)

// ErrTrainerNotFound is returned when a trainer lookup yields no results.
var ErrTrainerNotFound = errors.New("trainer not found")

// TrainerSummary is one row of List.
type TrainerSummary struct {
	ID        string
	Name      string
	Level     int
	PartySize int
}

// TrainerRepository stores a trainer, its bag and its party. Creatures are
// stored as source data only; their stats are recomputed on Load.
type TrainerRepository struct {
	db         *pgxpool.Pool
	lookup     creature.SpeciesLookup
	catalog    *talent.Catalog
	partyLimit int
}

// NewTrainerRepository creates a TrainerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool; lookup and catalog
// must resolve every species and talent a saved party uses.
func NewTrainerRepository(db *pgxpool.Pool, lookup creature.SpeciesLookup, catalog *talent.Catalog, partyLimit int) *TrainerRepository {
	return &TrainerRepository{db: db, lookup: lookup, catalog: catalog, partyLimit: partyLimit}
}

// Save upserts the trainer and replaces its stored party in one transaction.
//
// Precondition: t.ID must be a UUID.
// Postcondition: on error nothing is changed.
func (r *TrainerRepository) Save(ctx context.Context, t *trainer.Trainer) error {
	rec := t.Record()
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO trainers
				(id, name, level, exp, coins, stardust, active_index, items, last_used_berry)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, level = EXCLUDED.level, exp = EXCLUDED.exp,
				coins = EXCLUDED.coins, stardust = EXCLUDED.stardust,
				active_index = EXCLUDED.active_index, items = EXCLUDED.items,
				last_used_berry = EXCLUDED.last_used_berry, updated_at = NOW()`,
			rec.ID, rec.Name, rec.Level, rec.Exp, rec.Coins, rec.Stardust,
			rec.ActiveIndex, items, rec.LastUsedBerry,
		)
		if err != nil {
			return fmt.Errorf("upserting trainer: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM creatures WHERE trainer_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("clearing party: %w", err)
		}

		batch := &pgx.Batch{}
		for slot, c := range t.Party {
			s := c.Snapshot()
			batch.Queue(`
				INSERT INTO creatures
					(id, trainer_id, slot, species, level, iv_attack, iv_defense, iv_stamina,
					 nature, shiny, talents, exp, exp_to_next, hp, energy, max_energy, catch_rate)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
				s.ID, rec.ID, slot, s.Species, s.Level, s.IVs.Attack, s.IVs.Defense, s.IVs.Stamina,
				string(s.Nature), s.Shiny, s.Talents, s.Exp, s.ExpToNext, s.HP, s.Energy, s.MaxEnergy, s.CatchRate,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting party: %w", err)
		}
		return nil
	})
}

// Load retrieves a trainer and rebuilds its party in slot order.
//
// Postcondition: Returns the Trainer or ErrTrainerNotFound.
func (r *TrainerRepository) Load(ctx context.Context, id string) (*trainer.Trainer, error) {
	var (
		rec   trainer.Record
		items []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, level, exp, coins, stardust, active_index, items, last_used_berry
		FROM trainers WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Level, &rec.Exp, &rec.Coins, &rec.Stardust,
		&rec.ActiveIndex, &items, &rec.LastUsedBerry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("querying trainer: %w", err)
	}
	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return nil, fmt.Errorf("decoding items of trainer %s: %w", id, err)
	}

	party, err := r.loadParty(ctx, id)
	if err != nil {
		return nil, err
	}
	return trainer.FromRecord(rec, party, r.partyLimit), nil
}

func (r *TrainerRepository) loadParty(ctx context.Context, trainerID string) ([]*creature.Creature, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, species, level, iv_attack, iv_defense, iv_stamina, nature, shiny,
		       talents, exp, exp_to_next, hp, energy, max_energy, catch_rate
		FROM creatures WHERE trainer_id = $1 ORDER BY slot ASC`,
		trainerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing party: %w", err)
	}
	defer rows.Close()

	party := make([]*creature.Creature, 0)
	for rows.Next() {
		var (
			s      creature.Snapshot
			nature string
		)
		if err := rows.Scan(
			&s.ID, &s.Species, &s.Level, &s.IVs.Attack, &s.IVs.Defense, &s.IVs.Stamina,
			&nature, &s.Shiny, &s.Talents, &s.Exp, &s.ExpToNext, &s.HP, &s.Energy,
			&s.MaxEnergy, &s.CatchRate,
		); err != nil {
			return nil, fmt.Errorf("scanning creature row: %w", err)
		}
		s.Nature = creature.Nature(nature)
		c, err := creature.Restore(s, r.lookup, r.catalog)
		if err != nil {
			return nil, err
		}
		party = append(party, c)
	}
	return party, rows.Err()
}

// List returns every stored trainer ordered by name.
func (r *TrainerRepository) List(ctx context.Context) ([]TrainerSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, t.level, COUNT(c.id)
		FROM trainers t LEFT JOIN creatures c ON c.trainer_id = t.id
		GROUP BY t.id ORDER BY t.name ASC, t.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing trainers: %w", err)
	}
	defer rows.Close()

	out := make([]TrainerSummary, 0)
	for rows.Next() {
		var s TrainerSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Level, &s.PartySize); err != nil {
			return nil, fmt.Errorf("scanning trainer row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a trainer and its party.
//
// Postcondition: Returns ErrTrainerNotFound if no row was deleted.
func (r *TrainerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting trainer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainerNotFound
	}
	return nil
}
