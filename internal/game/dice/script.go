package dice

import "sync"

// Script is a Source that replays fixed values in order. Floats and ints are
// consumed from independent queues; once a queue is exhausted its last value
// repeats (zero when the queue was empty). Intn results are reduced modulo n.
//
// Script exists so callers can pin every probabilistic branch in tests and
// replays.
type Script struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
}

// NewScript returns a Script replaying floats for Float64 and ints for Intn.
func NewScript(floats []float64, ints []int) *Script {
	return &Script{floats: floats, ints: ints}
}

// Float64 returns the next scripted float.
func (s *Script) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	if s.fi >= len(s.floats) {
		return s.floats[len(s.floats)-1]
	}
	v := s.floats[s.fi]
	s.fi++
	return v
}

// Intn returns the next scripted int modulo n.
//
// Precondition: n > 0.
func (s *Script) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	var v int
	if s.ii >= len(s.ints) {
		v = s.ints[len(s.ints)-1]
	} else {
		v = s.ints[s.ii]
		s.ii++
	}
	if v < 0 {
		v = -v
	}
	return v % n
}

// Remaining reports how many scripted floats and ints have not been consumed.
func (s *Script) Remaining() (floats, ints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.floats) - s.fi, len(s.ints) - s.ii
}
