package failover

import (
	"math"
	"math/rand"

	"github.com/go-stomp/corestomp/stomperr"
)

// Sequence is the lazy, restartable (endpoint, delay) generator spec
// §4.4 describes. It performs no I/O or sleeping — it only computes
// which endpoint to try next and how long the caller should wait first.
// Grounded on no specific STOMP-repo file (see DESIGN.md); the
// injectable math/rand.Rand source follows the pattern of passing an
// explicit randomness source rather than relying on a package-level
// generator, matching this module's "no shared mutable state" design
// note (spec §9).
type Sequence struct {
	base  []Endpoint
	opts  Options
	rng   *rand.Rand
	order []Endpoint

	attempt       int
	everConnected bool
}

// NewSequence builds a Sequence over u's endpoints and options. A nil
// rng disables shuffling even when Options.Randomize is true, since
// there is then no source of randomness to draw from.
func NewSequence(u *URI, rng *rand.Rand) *Sequence {
	s := &Sequence{base: u.Endpoints, opts: u.Options, rng: rng}
	s.reorder()
	return s
}

func (s *Sequence) reorder() {
	s.order = make([]Endpoint, len(s.base))
	copy(s.order, s.base)
	if s.opts.Randomize && s.rng != nil {
		s.rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}
}

// effectiveCap returns the attempt cap governing the current connect
// cycle: startupMaxReconnectAttempts overrides maxReconnectAttempts
// until the first successful connect, per spec §4.4.
func (s *Sequence) effectiveCap() int {
	if !s.everConnected && s.opts.StartupMaxReconnectAttempts > 0 {
		return s.opts.StartupMaxReconnectAttempts
	}
	return s.opts.MaxReconnectAttempts
}

// Next returns the next (endpoint, delay) pair, or a FAILOVER_EXHAUSTED
// error once the attempt cap is exceeded, per spec §4.4 and §7.
func (s *Sequence) Next() (Endpoint, int, error) {
	attemptCap := s.effectiveCap()
	if attemptCap >= 0 && s.attempt > attemptCap {
		return Endpoint{}, 0, stomperr.New(stomperr.KindFailoverExhausted, "reconnect attempts exhausted")
	}

	n := len(s.order)
	pos := s.attempt % n
	if pos == 0 && s.attempt > 0 {
		s.reorder()
	}
	endpoint := s.order[pos]

	delay := 0
	if s.attempt > 0 {
		delay = s.opts.InitialReconnectDelay
		if s.opts.UseExponentialBackOff {
			delay = int(float64(s.opts.InitialReconnectDelay) * math.Pow(s.opts.BackOffMultiplier, float64(s.attempt-1)))
		}
		if delay > s.opts.MaxReconnectDelay {
			delay = s.opts.MaxReconnectDelay
		}
	}

	s.attempt++
	return endpoint, delay, nil
}

// Connected tells the sequence a connect attempt succeeded. Per spec
// §4.4, "the sequence is restartable by the caller after any successful
// connect (attempt counter resets)", and subsequent cycles are no
// longer governed by startupMaxReconnectAttempts.
func (s *Sequence) Connected() {
	s.everConnected = true
	s.attempt = 0
}
