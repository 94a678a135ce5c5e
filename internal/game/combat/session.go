package combat

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pocketbattle/internal/game/capture"
	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/encounter"
	"github.com/cory-johannsen/pocketbattle/internal/game/progression"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
)

var (
	// ErrNoActiveCreature is returned when the trainer has no healthy creature out.
	ErrNoActiveCreature = errors.New("no active creature")
	// ErrNoWildTarget is returned when there is no living wild creature.
	ErrNoWildTarget = errors.New("no wild creature")
	// ErrInsufficientEnergy is returned for a Charge move the attacker cannot afford.
	ErrInsufficientEnergy = errors.New("not enough energy")
	// ErrUnknownMove is returned for a move index the active creature does not have.
	ErrUnknownMove = errors.New("unknown move")
	// ErrAttackInProgress is returned while another turn is resolving.
	ErrAttackInProgress = errors.New("attack in progress")
	// ErrCaptureInProgress is returned while another ball is in flight.
	ErrCaptureInProgress = errors.New("capture in progress")
	// ErrSwitchInProgress is returned while another switch is resolving.
	ErrSwitchInProgress = errors.New("switch in progress")
	// ErrUnknownAction is returned for an Action with an unrecognized Kind.
	ErrUnknownAction = errors.New("unknown action")
)

// Phase is the battle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEncounter
	PhasePlayerTurn
	PhaseWildTurn
	PhaseFaint
	PhaseCapture
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEncounter:
		return "encounter"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseWildTurn:
		return "wild_turn"
	case PhaseFaint:
		return "faint"
	case PhaseCapture:
		return "capture"
	default:
		return "idle"
	}
}

// ActionKind selects what a player turn does.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionFlee
)

// Action is one player command. MoveIndex indexes fast moves followed by
// charged moves of the active creature's species.
type Action struct {
	Kind      ActionKind
	MoveIndex int
}

// Reward is what a victory paid out.
type Reward struct {
	CreatureExp int
	PlayerExp   int
	Coins       int
	// Loot is nil when nothing dropped.
	Loot           *progression.LootDrop
	CreatureLevels []float64
	PlayerLevels   []int
	// Revealed is true when the fainted wild creature dropped a disguise.
	Revealed bool
}

// TurnReport summarizes a resolved turn.
type TurnReport struct {
	// Player is the player's strike, nil for a flee.
	Player *DamageResult
	// Wild is the wild reply, nil when the wild fainted or could not act.
	Wild          *DamageResult
	WildFainted   bool
	PlayerFainted bool
	Fled          bool
	Reward        *Reward
}

// Config holds session pacing and reward tuning.
type Config struct {
	WildTurnDelay   time.Duration
	FaintClearDelay time.Duration
	FleeDelay       time.Duration
	LootChance      float64
	Encounter       encounter.Config
}

// DefaultConfig returns the standard delays and chances.
func DefaultConfig() Config {
	return Config{
		WildTurnDelay:   500 * time.Millisecond,
		FaintClearDelay: 900 * time.Millisecond,
		FleeDelay:       300 * time.Millisecond,
		LootChance:      progression.DefaultLootChance,
		Encounter:       encounter.DefaultConfig(),
	}
}

// Deps are the collaborators a session reads from and writes to.
type Deps struct {
	Registry *species.Registry
	Catalog  *talent.Catalog
	Source   dice.Source
	// Sink receives battle output in addition to the logger. Optional.
	Sink Sink
	// Pacer defaults to NoDelay.
	Pacer Pacer
	// NewPacer, when set, gives each Engine session its own Pacer.
	NewPacer func() Pacer
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Session is one trainer's battle context. Actions are serialized by three
// independent flags (attack, switch, capture); a second action of a kind
// already in flight is rejected without any state change or log. Trainer and
// wild state is guarded by a mutex that is released across pacing delays.
type Session struct {
	ID string

	trainer *trainer.Trainer
	reg     *species.Registry
	gen     *encounter.Generator
	capt    *capture.Resolver
	src     dice.Source
	sink    Sink
	pacer   Pacer
	logger  *zap.Logger
	cfg     Config

	mu    sync.Mutex
	wild  *creature.Creature
	phase Phase

	attacking atomic.Bool
	switching atomic.Bool
	catching  atomic.Bool
}

// NewSession creates an idle session for t.
//
// Precondition: t, deps.Registry, deps.Catalog and deps.Source must be non-nil.
// Postcondition: Phase() == PhaseIdle and Wild() == nil.
func NewSession(t *trainer.Trainer, deps Deps, cfg Config) *Session {
	id := uuid.New().String()
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session", id), zap.String("trainer", t.ID))

	sinks := Tee{NewZapSink(logger)}
	if deps.Sink != nil {
		sinks = append(sinks, deps.Sink)
	}
	pacer := deps.Pacer
	if pacer == nil {
		pacer = NoDelay{}
	}
	return &Session{
		ID:      id,
		trainer: t,
		reg:     deps.Registry,
		gen:     encounter.NewGenerator(deps.Registry, deps.Catalog, deps.Source, cfg.Encounter),
		capt:    capture.NewResolver(deps.Registry, deps.Catalog, deps.Source),
		src:     deps.Source,
		sink:    sinks,
		pacer:   pacer,
		logger:  logger,
		cfg:     cfg,
	}
}

// Trainer returns the session's trainer. Callers must not mutate it while an
// action is in flight.
func (s *Session) Trainer() *trainer.Trainer { return s.trainer }

// Wild returns the current wild creature, nil when none is out.
func (s *Session) Wild() *creature.Creature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wild
}

// Phase returns the current battle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Close releases any pacing wait in progress.
func (s *Session) Close() {
	if st, ok := s.pacer.(interface{ Stop() }); ok {
		st.Stop()
	}
}

func (s *Session) say(sp Speaker, format string, args ...any) {
	s.sink.Append(Entry{Speaker: sp, Message: fmt.Sprintf(format, args...)})
}

// recoverAction converts a panic in an action into an error so that the
// action's flag is still released by the caller's deferred reset.
func (s *Session) recoverAction(op string, err *error) {
	if r := recover(); r != nil {
		s.logger.Error("battle action panicked", zap.String("op", op), zap.Any("panic", r))
		*err = fmt.Errorf("%s: recovered from panic: %v", op, r)
	}
}

// Encounter generates a wild creature on route.
//
// Postcondition: on success Wild() is the new creature and Phase() is
// PhaseEncounter; on error a system message is logged and state is unchanged.
func (s *Session) Encounter(route *encounter.Route) (wild *creature.Creature, err error) {
	defer s.recoverAction("encounter", &err)
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.gen.Generate(route, s.wild)
	switch {
	case errors.Is(err, encounter.ErrWildActive):
		s.say(SpeakerSystem, "Cannot search for a new wild creature! %s is still active.", s.wild.DisplayName())
		return nil, err
	case errors.Is(err, encounter.ErrNoSpawnTable):
		s.say(SpeakerSystem, "No wild creatures found on this route.")
		return nil, err
	case err != nil:
		s.logger.Warn("encounter failed", zap.Error(err))
		return nil, err
	}

	s.wild = w
	s.phase = PhaseEncounter
	s.sink.Refresh(SideWild, w)
	if a := s.trainer.Active(); a != nil {
		s.sink.Refresh(SidePlayer, a)
	}
	s.say(SpeakerSystem, "A wild %s%s appeared! (Lv %g)", shinyPrefix(w), w.DisplayName(), w.Level())
	switch {
	case len(s.trainer.Party) == 0:
		s.say(SpeakerSystem, "You have no creatures! Visit your party and summon one.")
	case s.trainer.Active() == nil:
		s.say(SpeakerSystem, "Select a creature to send out!")
	}
	return w, nil
}

func shinyPrefix(c *creature.Creature) string {
	if c.Shiny {
		return "shiny "
	}
	return ""
}

// PlayerTurn resolves one player action. An attack is followed, after
// WildTurnDelay, by the wild reply; a knockout instead pays rewards and
// clears the wild after FaintClearDelay. Flee succeeds whenever a healthy
// creature is out and a wild creature is present.
//
// Precondition: none; invalid actions are rejected.
// Postcondition: ErrAttackInProgress, ErrInsufficientEnergy and ErrUnknownMove
// leave state unchanged and log nothing; ErrNoActiveCreature and
// ErrNoWildTarget log a system message and leave state unchanged. Both
// actions check the active creature before the wild one.
func (s *Session) PlayerTurn(a Action) (rep TurnReport, err error) {
	if !s.attacking.CompareAndSwap(false, true) {
		return rep, ErrAttackInProgress
	}
	defer s.attacking.Store(false)
	defer s.recoverAction("player turn", &err)

	switch a.Kind {
	case ActionFlee:
		return s.flee()
	case ActionAttack:
		return s.attack(a.MoveIndex)
	default:
		return rep, fmt.Errorf("%w: %d", ErrUnknownAction, a.Kind)
	}
}

func (s *Session) flee() (TurnReport, error) {
	wild, err := s.fleeLocked()
	if err != nil {
		return TurnReport{}, err
	}
	s.pacer.Wait(s.cfg.FleeDelay)
	s.clearWild(wild)
	return TurnReport{Fled: true}, nil
}

func (s *Session) fleeLocked() (*creature.Creature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active := s.trainer.Active(); active == nil || active.Fainted() {
		s.say(SpeakerSystem, "No active creature! Select one from your party first.")
		return nil, ErrNoActiveCreature
	}
	if s.wild == nil {
		s.say(SpeakerSystem, "No wild creature to flee from!")
		return nil, ErrNoWildTarget
	}
	s.say(SpeakerPlayer, "You fled from the wild %s!", s.wild.DisplayName())
	return s.wild, nil
}

// clearWild removes w from the field if it is still the current wild creature.
func (s *Session) clearWild(w *creature.Creature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wild != w {
		return
	}
	s.wild = nil
	s.phase = PhaseIdle
	s.sink.Clear(SideWild)
}

func (s *Session) attack(moveIndex int) (TurnReport, error) {
	rep, wild, err := s.strike(moveIndex)
	if err != nil {
		return rep, err
	}
	if rep.WildFainted {
		s.pacer.Wait(s.cfg.FaintClearDelay)
		s.clearWild(wild)
		return rep, nil
	}

	s.pacer.Wait(s.cfg.WildTurnDelay)
	s.mu.Lock()
	defer s.mu.Unlock()
	wr, _ := s.wildTurnLocked()
	rep.Wild = wr.Wild
	rep.PlayerFainted = wr.PlayerFainted
	return rep, nil
}

// strike validates and applies the player's attack, paying rewards on a
// knockout. It returns the wild creature it struck.
func (s *Session) strike(moveIndex int) (TurnReport, *creature.Creature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.trainer.Active()
	if active == nil || active.Fainted() {
		s.say(SpeakerSystem, "No active creature! Select one from your party first.")
		return TurnReport{}, nil, ErrNoActiveCreature
	}
	wild := s.wild
	if wild == nil || wild.Fainted() {
		s.say(SpeakerSystem, "No wild creature to fight!")
		return TurnReport{}, nil, ErrNoWildTarget
	}

	moves := active.Species().AllMoves()
	if moveIndex < 0 || moveIndex >= len(moves) {
		return TurnReport{}, nil, fmt.Errorf("%w: index %d", ErrUnknownMove, moveIndex)
	}
	name := moves[moveIndex]
	move, ok := s.reg.Move(name)
	if !ok {
		return TurnReport{}, nil, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	if !active.CanUse(move) {
		return TurnReport{}, nil, fmt.Errorf("%w: %s needs %d, has %d", ErrInsufficientEnergy, move.Name, move.Energy, active.Energy())
	}

	s.phase = PhasePlayerTurn
	res := ResolveDamage(active, wild, name, s.reg, s.src)
	wild.Damage(res.Damage)
	active.ApplyMoveEnergy(move)
	s.sink.Refresh(SidePlayer, active)
	s.sink.Refresh(SideWild, wild)
	s.say(SpeakerPlayer, "%s used %s! %s", active.DisplayName(), name, res.Log)

	rep := TurnReport{Player: &res}
	if !wild.Fainted() {
		return rep, wild, nil
	}

	s.phase = PhaseFaint
	rep.WildFainted = true
	rep.Reward = s.payVictoryLocked(active, wild)
	return rep, wild, nil
}

// payVictoryLocked reveals a disguise, drains the wild's energy and awards
// exp, coins and loot.
func (s *Session) payVictoryLocked(active, wild *creature.Creature) *Reward {
	r := &Reward{}
	shown := wild.DisplayName()
	if wild.Reveal(s.reg) {
		r.Revealed = true
		s.say(SpeakerSystem, "Surprise! The %s was actually %s!", shown, wild.DisplayName())
		s.sink.Refresh(SideWild, wild)
	}
	s.say(SpeakerPlayer, "%s fainted!", wild.DisplayName())
	wild.DrainEnergy()

	v := progression.Victory{
		WildLevel:     wild.Level(),
		AttackerLevel: active.Level(),
		Shiny:         wild.Shiny,
		Pinap:         s.trainer.LastUsedBerry == trainer.Pinap,
	}
	if v.Pinap {
		s.trainer.LastUsedBerry = ""
	}
	r.CreatureExp = progression.RewardExp(v)
	r.PlayerExp = progression.PlayerRewardExp(v)

	s.say(SpeakerPlayer, "You gained %d EXP!", r.PlayerExp)
	r.PlayerLevels = progression.GainPlayerExp(s.trainer, r.PlayerExp)
	for _, lvl := range r.PlayerLevels {
		s.say(SpeakerPlayer, "Player leveled up! Now Lv %d", lvl)
	}

	s.say(SpeakerPlayer, "%s gained %d EXP!", active.DisplayName(), r.CreatureExp)
	r.CreatureLevels = progression.GainCreatureExp(active, r.CreatureExp)
	for _, lvl := range r.CreatureLevels {
		s.say(SpeakerPlayer, "%s leveled up! Now Lv %g", active.DisplayName(), lvl)
	}
	if len(r.CreatureLevels) > 0 {
		s.sink.Refresh(SidePlayer, active)
	}

	r.Coins = progression.CoinReward(wild.Level(), s.src)
	s.trainer.Coins += r.Coins
	s.say(SpeakerPlayer, "You got %d coins!", r.Coins)

	if drop, ok := progression.RollLoot(s.trainer.Items, s.cfg.LootChance, s.src); ok {
		if err := s.trainer.Items.Add(drop.Category, drop.Name, 1); err == nil {
			r.Loot = &drop
			s.say(SpeakerPlayer, "You found a %s!", drop.Name)
		}
	}
	s.logger.Info("victory",
		zap.String("wild", wild.DisplayName()),
		zap.Int("creature_exp", r.CreatureExp),
		zap.Int("player_exp", r.PlayerExp),
		zap.Int("coins", r.Coins),
	)
	return r
}

// WildTurn lets the wild creature act once.
//
// Postcondition: ErrAttackInProgress while a player turn is resolving;
// ErrNoActiveCreature or ErrNoWildTarget, without a log, when either side is
// missing.
func (s *Session) WildTurn() (rep TurnReport, err error) {
	if !s.attacking.CompareAndSwap(false, true) {
		return rep, ErrAttackInProgress
	}
	defer s.attacking.Store(false)
	defer s.recoverAction("wild turn", &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wildTurnLocked()
}

// wildTurnLocked picks a move uniformly from the wild's fast and charged
// moves, falling back to a random fast move when a charged pick is
// unaffordable, then strikes the active creature.
func (s *Session) wildTurnLocked() (TurnReport, error) {
	active := s.trainer.Active()
	wild := s.wild
	if active == nil || active.Fainted() {
		return TurnReport{}, ErrNoActiveCreature
	}
	if wild == nil || wild.Fainted() {
		return TurnReport{}, ErrNoWildTarget
	}

	moves := wild.Species().AllMoves()
	if len(moves) == 0 {
		s.say(SpeakerSystem, "%s has no moves and skips its turn.", wild.DisplayName())
		return TurnReport{}, nil
	}
	name := moves[s.src.Intn(len(moves))]
	move, ok := s.reg.Move(name)
	if ok && !wild.CanUse(move) {
		fast := wild.Species().FastMoves
		if len(fast) == 0 {
			s.say(SpeakerSystem, "%s is gathering energy and skips its turn.", wild.DisplayName())
			return TurnReport{}, nil
		}
		name = fast[s.src.Intn(len(fast))]
		move, ok = s.reg.Move(name)
	}
	if !ok {
		s.logger.Warn("wild move missing from registry", zap.String("move", name))
		return TurnReport{}, nil
	}

	s.phase = PhaseWildTurn
	res := ResolveDamage(wild, active, name, s.reg, s.src)
	active.Damage(res.Damage)
	wild.ApplyMoveEnergy(move)
	s.sink.Refresh(SidePlayer, active)
	s.sink.Refresh(SideWild, wild)
	s.say(SpeakerWild, "%s used %s! %s", wild.DisplayName(), name, res.Log)

	rep := TurnReport{Wild: &res}
	if active.Fainted() {
		rep.PlayerFainted = true
		s.say(SpeakerWild, "%s fainted!", active.DisplayName())
		active.DrainEnergy()
		s.sink.Clear(SidePlayer)
		if next := s.trainer.NextHealthy(); next != trainer.NoActive {
			_ = s.trainer.SetActive(next)
			s.sink.Refresh(SidePlayer, s.trainer.Active())
			s.say(SpeakerPlayer, "%s is now your active creature!", s.trainer.Active().DisplayName())
		} else {
			s.trainer.ClearActive()
			s.say(SpeakerSystem, "You have no creatures left that can battle!")
		}
	}
	s.phase = PhaseEncounter
	return rep, nil
}

// AttemptCapture throws one ball at the wild creature. The ball is consumed
// whether or not the catch succeeds; a miss leaves the wild in battle.
//
// Postcondition: ErrCaptureInProgress while another throw is resolving, with
// no state change and no log. ErrNoWildTarget, trainer.ErrPartyFull and
// trainer.ErrNoItem log a system message and consume nothing.
func (s *Session) AttemptCapture(ball capture.Ball) (res capture.Result, err error) {
	if !s.catching.CompareAndSwap(false, true) {
		return res, ErrCaptureInProgress
	}
	defer s.catching.Store(false)
	defer s.recoverAction("capture", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	wild := s.wild
	if wild == nil || wild.Fainted() {
		s.say(SpeakerSystem, "No wild creature to catch!")
		return res, ErrNoWildTarget
	}
	if s.trainer.PartyFull() {
		s.say(SpeakerSystem, "Your party is full!")
		return res, trainer.ErrPartyFull
	}
	if err := s.trainer.Items.Consume(trainer.Balls, string(ball)); err != nil {
		s.say(SpeakerSystem, "You have no %s left!", ball)
		return res, err
	}

	prev := s.phase
	s.phase = PhaseCapture
	shown := wild.DisplayName()
	res, err = s.capt.Attempt(wild, ball)
	if err != nil {
		s.phase = prev
		return res, err
	}
	if !res.Caught {
		s.phase = prev
		s.say(SpeakerPlayer, "%s broke free!", shown)
		return res, nil
	}

	if res.Revealed {
		s.say(SpeakerSystem, "Surprise! The %s was actually %s!", shown, res.Creature.DisplayName())
	}
	if err := s.trainer.AddToParty(res.Creature); err != nil {
		return res, err
	}
	s.wild = nil
	s.phase = PhaseIdle
	s.sink.Clear(SideWild)
	s.say(SpeakerPlayer, "You caught %s%s!", shinyPrefix(res.Creature), res.Creature.DisplayName())
	if a := s.trainer.Active(); a != nil {
		s.sink.Refresh(SidePlayer, a)
	}
	return res, nil
}

// Switch makes Party[index] the active creature.
//
// Postcondition: ErrSwitchInProgress while another switch is resolving;
// switching to a fainted or missing creature logs a system message and
// leaves the active creature unchanged.
func (s *Session) Switch(index int) (err error) {
	if !s.switching.CompareAndSwap(false, true) {
		return ErrSwitchInProgress
	}
	defer s.switching.Store(false)
	defer s.recoverAction("switch", &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.trainer.SetActive(index); err != nil {
		switch {
		case errors.Is(err, trainer.ErrFainted):
			s.say(SpeakerSystem, "%s has fainted and cannot battle!", s.trainer.Party[index].DisplayName())
		default:
			s.say(SpeakerSystem, "There is no creature in slot %d.", index+1)
		}
		return err
	}
	a := s.trainer.Active()
	s.sink.Refresh(SidePlayer, a)
	s.say(SpeakerPlayer, "Go, %s!", a.DisplayName())
	return nil
}

// UseItem uses one bag item. Balls are thrown at the wild creature; every
// other item targets the active creature.
//
// Postcondition: on error the bag is unchanged and a system message is logged.
func (s *Session) UseItem(cat trainer.Category, name string) (msg string, err error) {
	if cat == trainer.Balls {
		ball, err := capture.ParseBall(name)
		if err != nil {
			s.say(SpeakerSystem, "%s is not a ball.", name)
			return "", err
		}
		res, err := s.AttemptCapture(ball)
		if err != nil {
			return "", err
		}
		if res.Caught {
			return fmt.Sprintf("caught %s", res.Creature.DisplayName()), nil
		}
		return "it broke free", nil
	}

	defer s.recoverAction("use item", &err)
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.trainer.Active()
	if target == nil {
		s.say(SpeakerSystem, "No creature to use %s on.", name)
		return "", trainer.ErrNoTarget
	}
	msg, err = s.trainer.UseItem(cat, name, target)
	if err != nil {
		s.say(SpeakerSystem, "Cannot use %s: %v", name, err)
		return "", err
	}
	s.sink.Refresh(SidePlayer, target)
	s.say(SpeakerPlayer, "%s", msg)
	return msg, nil
}

// HealAll fully restores HP and energy of the whole party and returns the
// number of creatures healed.
func (s *Session) HealAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.trainer.Party) == 0 {
		return 0
	}
	n := s.trainer.HealAll()
	if a := s.trainer.Active(); a != nil {
		s.sink.Refresh(SidePlayer, a)
	}
	s.say(SpeakerPlayer, "All creatures have been fully healed and revived!")
	return n
}
