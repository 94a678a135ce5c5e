package combat

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
)

// Speaker tags a battle log line with who it is about.
type Speaker string

const (
	SpeakerPlayer Speaker = "player"
	SpeakerWild   Speaker = "wild"
	SpeakerSystem Speaker = "system"
)

// Side names one half of the battle field.
type Side int

const (
	SidePlayer Side = iota
	SideWild
)

// String returns "player" or "wild".
func (s Side) String() string {
	if s == SideWild {
		return "wild"
	}
	return "player"
}

// Entry is one battle log line.
type Entry struct {
	Speaker Speaker
	Message string
}

// Sink receives battle output. Implementations must be safe for concurrent use.
type Sink interface {
	// Append records a log line.
	Append(e Entry)
	// Refresh reports that c, shown on side, changed HP, energy or identity.
	Refresh(side Side, c *creature.Creature)
	// Clear reports that side no longer shows a creature.
	Clear(side Side)
}

// Recorder is an in-memory Sink.
type Recorder struct {
	mu        sync.Mutex
	entries   []Entry
	refreshes map[Side]int
	clears    map[Side]int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{refreshes: make(map[Side]int), clears: make(map[Side]int)}
}

// Append implements Sink.
func (r *Recorder) Append(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Refresh implements Sink.
func (r *Recorder) Refresh(side Side, _ *creature.Creature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes[side]++
}

// Clear implements Sink.
func (r *Recorder) Clear(side Side) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears[side]++
}

// Entries returns a copy of every recorded line.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the recorded message texts in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Message
	}
	return out
}

// Refreshes returns how many refreshes side received.
func (r *Recorder) Refreshes(side Side) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes[side]
}

// Clears returns how many clears side received.
func (r *Recorder) Clears(side Side) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears[side]
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.refreshes = make(map[Side]int)
	r.clears = make(map[Side]int)
}

// ZapSink writes battle output to a zap logger: log lines at info, refreshes
// and clears at debug.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a ZapSink.
//
// Precondition: logger must be non-nil.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Append implements Sink.
func (z *ZapSink) Append(e Entry) {
	z.logger.Info(e.Message, zap.String("speaker", string(e.Speaker)))
}

// Refresh implements Sink.
func (z *ZapSink) Refresh(side Side, c *creature.Creature) {
	z.logger.Debug("refresh",
		zap.Stringer("side", side),
		zap.String("creature", c.DisplayName()),
		zap.Int("hp", c.HP()),
		zap.Int("max_hp", c.MaxHP()),
		zap.Int("energy", c.Energy()),
		zap.Int("cp", c.CP()),
	)
}

// Clear implements Sink.
func (z *ZapSink) Clear(side Side) {
	z.logger.Debug("clear", zap.Stringer("side", side))
}

// Tee fans out to every contained Sink in order.
type Tee []Sink

// Append implements Sink.
func (t Tee) Append(e Entry) {
	for _, s := range t {
		s.Append(e)
	}
}

// Refresh implements Sink.
func (t Tee) Refresh(side Side, c *creature.Creature) {
	for _, s := range t {
		s.Refresh(side, c)
	}
}

// Clear implements Sink.
func (t Tee) Clear(side Side) {
	for _, s := range t {
		s.Clear(side)
	}
}
