// Package sim runs headless battles for many trainers at once. It drives
// combat sessions with a fixed policy: throw a ball at a weakened wild, eat a
// razz berry when low, otherwise use the strongest affordable move.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/pocketbattle/internal/game/capture"
	"github.com/cory-johannsen/pocketbattle/internal/game/combat"
	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/encounter"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
)

const (
	// CatchBelow is the wild HP fraction under which the policy throws a ball.
	CatchBelow = 0.3
	// HealBelow is the active HP fraction under which the policy eats a razz berry.
	HealBelow = 0.25
)

// Saver persists a trainer after its battles. TrainerRepository implements it.
type Saver interface {
	Save(ctx context.Context, t *trainer.Trainer) error
}

// Options controls a simulation run.
type Options struct {
	Trainers     int
	Battles      int
	MaxTurns     int
	StarterLevel float64
	PartyLimit   int
	// Concurrency caps the trainers battling at once; 0 means no limit.
	Concurrency int
}

// Outcome counts how a trainer's battles ended.
type Outcome struct {
	TrainerID string
	Name      string
	Wins      int
	Losses    int
	Fled      int
	Caught    int
	Coins     int
	PartySize int
	Level     int
}

// Total is the number of battles the outcome accounts for.
func (o Outcome) Total() int { return o.Wins + o.Losses + o.Fled + o.Caught }

// Runner owns the engine and content a simulation runs against.
type Runner struct {
	Engine *combat.Engine
	Deps   combat.Deps
	Routes []*encounter.Route
	// Saver is optional.
	Saver  Saver
	Logger *zap.Logger
}

// Run plays opts.Battles battles for each of opts.Trainers new trainers in
// parallel and returns their outcomes in trainer order.
//
// Precondition: r.Routes is non-empty; r.Deps carries the registry, catalog
// and source the engine was built with.
// Postcondition: on success every Outcome.Total() equals opts.Battles.
func (r *Runner) Run(ctx context.Context, opts Options) ([]Outcome, error) {
	if len(r.Routes) == 0 {
		return nil, errors.New("sim: no routes")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make([]Outcome, opts.Trainers)
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i := 0; i < opts.Trainers; i++ {
		g.Go(func() error {
			o, err := r.runTrainer(ctx, i, opts, logger)
			if err != nil {
				return fmt.Errorf("trainer %d: %w", i, err)
			}
			mu.Lock()
			out[i] = o
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Runner) runTrainer(ctx context.Context, i int, opts Options, logger *zap.Logger) (Outcome, error) {
	tr := trainer.New(fmt.Sprintf("Trainer-%03d", i+1), opts.PartyLimit)
	starter, err := encounter.Starter(r.Deps.Registry, r.Deps.Catalog, r.Deps.Source, opts.StarterLevel)
	if err != nil {
		return Outcome{}, err
	}
	if err := tr.AddToParty(starter); err != nil {
		return Outcome{}, err
	}

	s, err := r.Engine.Start(tr)
	if err != nil {
		return Outcome{}, err
	}
	defer r.Engine.End(tr.ID)

	o := Outcome{TrainerID: tr.ID, Name: tr.Name}
	for b := 0; b < opts.Battles; b++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		route := r.Routes[(i+b)%len(r.Routes)]
		if err := battle(s, r.Deps.Registry, route, opts.MaxTurns, &o); err != nil {
			return Outcome{}, err
		}
	}

	o.Coins = tr.Coins
	o.PartySize = len(tr.Party)
	o.Level = tr.Level
	logger.Info("trainer finished",
		zap.String("trainer", tr.Name),
		zap.Int("wins", o.Wins),
		zap.Int("losses", o.Losses),
		zap.Int("caught", o.Caught),
		zap.Int("fled", o.Fled),
	)
	if r.Saver != nil {
		if err := r.Saver.Save(ctx, tr); err != nil {
			return Outcome{}, fmt.Errorf("saving: %w", err)
		}
	}
	return o, nil
}

// battle plays one encounter on route to its end and records the result.
func battle(s *combat.Session, reg *species.Registry, route *encounter.Route, maxTurns int, o *Outcome) error {
	tr := s.Trainer()
	if tr.NextHealthy() == trainer.NoActive {
		s.HealAll()
	}
	wild, err := s.Encounter(route)
	if err != nil {
		return err
	}

	for turn := 0; turn < maxTurns; turn++ {
		active := tr.Active()
		if active == nil {
			o.Losses++
			return retreat(s)
		}

		if ratio(wild) < CatchBelow && !tr.PartyFull() && tr.Items.Count(trainer.Balls, string(capture.Pokeball)) > 0 {
			res, err := s.AttemptCapture(capture.Pokeball)
			if err != nil {
				return err
			}
			if res.Caught {
				o.Caught++
				return nil
			}
			continue
		}

		if ratio(active) < HealBelow && tr.Items.Count(trainer.Berries, trainer.Razz) > 0 {
			if _, err := s.UseItem(trainer.Berries, trainer.Razz); err != nil {
				return err
			}
			continue
		}

		rep, err := s.PlayerTurn(combat.Action{Kind: combat.ActionAttack, MoveIndex: bestMove(active, reg)})
		if errors.Is(err, combat.ErrInsufficientEnergy) {
			o.Fled++
			return flee(s)
		}
		if err != nil {
			return err
		}
		if rep.WildFainted {
			o.Wins++
			return nil
		}
		if rep.PlayerFainted && tr.Active() == nil {
			o.Losses++
			return retreat(s)
		}
	}
	o.Fled++
	return flee(s)
}

func flee(s *combat.Session) error {
	if s.Wild() == nil {
		return nil
	}
	_, err := s.PlayerTurn(combat.Action{Kind: combat.ActionFlee})
	return err
}

// retreat ends a lost battle: the party is healed, which puts a creature
// back out, and the trainer flees the wild it could not beat.
func retreat(s *combat.Session) error {
	s.HealAll()
	return flee(s)
}

func ratio(c *creature.Creature) float64 {
	if c.MaxHP() == 0 {
		return 0
	}
	return float64(c.HP()) / float64(c.MaxHP())
}

// bestMove returns the index of the highest-power move c can afford.
// Fast moves are always affordable, so a creature with any fast move always
// has a choice.
func bestMove(c *creature.Creature, reg *species.Registry) int {
	best, bestPower := 0, -1
	for i, name := range c.Species().AllMoves() {
		m, ok := reg.Move(name)
		if !ok || !c.CanUse(m) {
			continue
		}
		if m.Power > bestPower {
			best, bestPower = i, m.Power
		}
	}
	return best
}
