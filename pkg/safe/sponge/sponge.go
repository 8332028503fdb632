// Package sponge implements the generic SAFE sponge state machine: a duplex
// construction over field elements of type T, parameterized by a caller
// supplied permutation and a declared IO-pattern. Capacity is fixed to one
// element; rate is Width()-1 elements.
//
// The state machine itself never chooses a concrete field or permutation —
// that is the job of the PermutationCap the caller plugs in, keeping one
// Sponge[T] implementation usable over field.Element, xfield.XFieldElement,
// or any other caller-supplied algebraic type.
package sponge

import (
	"time"

	"github.com/vybium/safe/pkg/safe/core"
	"github.com/vybium/safe/pkg/safe/safelog"
	"github.com/vybium/safe/pkg/safe/safemetrics"
)

// PermutationCap is the capability a concrete field/permutation backend
// supplies to the sponge: applying the permutation to the state, hashing
// tag-input bytes down to a single element, and adding two elements.
//
// Add is its own method (rather than relying on T having a built-in +)
// because T is an opaque type parameter here: Go generics give us no
// operator overloading, and keeping addition behind the capability also
// means a circuit-backed T could route it through constraint-building
// logic instead of native field arithmetic.
type PermutationCap[T any] interface {
	// Width returns the total state size W. Capacity is fixed at 1, so the
	// sponge's rate is Width()-1.
	Width() int

	// Permute applies one permutation call to state in place. len(state)
	// must equal Width().
	Permute(state []T)

	// Tag hashes the tag-input bytes down to a single element of type T,
	// used to initialize the sponge's capacity slot.
	Tag(input []byte) T

	// Add returns a+b in T.
	Add(a, b T) T
}

// Sponge is the SAFE sponge state machine over elements of type T.
//
// A Sponge commits to its IO-pattern and domain separator at Start and must
// replay that pattern call-for-call through Absorb/Squeeze; any deviation
// zeroizes the sponge's state and returns an error. The capacity element
// (state[0]) is never exposed to the caller.
type Sponge[T any] struct {
	cap         PermutationCap[T]
	state       []T
	posAbsorb   int
	posSqueeze  int
	ioCount     int
	iopattern   core.IOPattern
	domainSep   uint64
	output      []T
	started     bool
	rate        int

	logger   safelog.Logger
	recorder safemetrics.Recorder
	backend  string
}

// Option configures optional, non-load-bearing diagnostics on a Sponge:
// removing every Option never changes Absorb/Squeeze/Finish's behavior,
// only what gets logged or counted.
type Option[T any] func(*Sponge[T])

// WithLogger attaches a logger that receives Debug-level notices when a
// permutation is scheduled and Warn-level notices when an
// IOPatternViolation or TooFewInputElements error is about to be returned.
func WithLogger[T any](logger safelog.Logger) Option[T] {
	return func(s *Sponge[T]) { s.logger = logger }
}

// WithMetrics attaches a Recorder that counts absorbed/squeezed elements
// and permutation invocations under the given backend label.
func WithMetrics[T any](recorder safemetrics.Recorder, backend string) Option[T] {
	return func(s *Sponge[T]) {
		s.recorder = recorder
		s.backend = backend
	}
}

// Start initializes a sponge: it computes the initialization tag from the
// IO-pattern and domain separator, and sets state[0] to that tag with every
// other state element at its capability's zero value (the Go zero value of
// T, which for field.Element and xfield.XFieldElement is already the
// additive identity).
func Start[T any](c PermutationCap[T], pattern core.IOPattern, domainSep uint64, opts ...Option[T]) (*Sponge[T], error) {
	input, err := core.TagInput(pattern, domainSep)
	if err != nil {
		return nil, err
	}

	width := c.Width()
	state := make([]T, width)
	state[0] = c.Tag(input)

	s := &Sponge[T]{
		cap:        c,
		state:      state,
		posAbsorb:  0,
		posSqueeze: 0,
		ioCount:    0,
		iopattern:  pattern,
		domainSep:  domainSep,
		output:     nil,
		started:    true,
		rate:       width - 1,
		logger:     nil,
		recorder:   safemetrics.NoopRecorder{},
		backend:    "unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Sponge[T]) warn(keyvals ...interface{}) {
	reason := "unknown"
	for i := 0; i+1 < len(keyvals); i += 2 {
		if key, ok := keyvals[i].(string); ok && key == "reason" {
			if r, ok := keyvals[i+1].(string); ok {
				reason = r
			}
		}
	}
	s.recorder.PatternViolations(s.backend, reason)
	if s.logger != nil {
		s.logger.Warnw("sponge io-pattern violation", keyvals...)
	}
}

func (s *Sponge[T]) permute() {
	start := time.Now()
	s.cap.Permute(s.state)
	s.recorder.ObservePermutationDuration(s.backend, time.Since(start).Seconds())
	s.recorder.PermutationInvocations(s.backend)
	if s.logger != nil {
		s.logger.Debugw("permutation scheduled", "backend", s.backend)
	}
}

// zeroize overwrites all sensitive sponge state: the permutation state, the
// accumulated output (then dropped, so Output reads empty), and the rate
// counters. Called on every error path and
// from Finish, so no partial state outlives a failed or completed sponge.
func (s *Sponge[T]) zeroize() {
	var zero T
	for i := range s.state {
		s.state[i] = zero
	}
	for i := range s.output {
		s.output[i] = zero
	}
	s.output = nil
	s.posAbsorb = 0
	s.posSqueeze = 0
}

// Absorb feeds len elements of input into the sponge, calling the
// permutation whenever the absorb position reaches the rate. The call must
// match the next Absorb(len) step of the declared IO-pattern.
func (s *Sponge[T]) Absorb(length int, input []T) error {
	if len(input) < length {
		s.zeroize()
		s.warn("reason", "too-few-input-elements", "declared", length, "got", len(input))
		return core.NewError(core.ErrorTooFewInputElements,
			"fewer input elements provided than the absorb call declares")
	}

	if s.ioCount >= len(s.iopattern) {
		s.zeroize()
		s.warn("reason", "pattern-exhausted", "call", "absorb")
		return core.NewError(core.ErrorIOPatternViolation, "no further calls expected by the io-pattern")
	}
	call := s.iopattern[s.ioCount]
	if call.Kind != core.CallAbsorb || call.Len != length {
		s.zeroize()
		s.warn("reason", "absorb-mismatch", "expectedKind", call.Kind, "expectedLen", call.Len, "gotLen", length)
		return core.NewError(core.ErrorIOPatternViolation, "absorb call does not match the declared io-pattern")
	}

	for i := 0; i < length; i++ {
		if s.posAbsorb == s.rate {
			s.permute()
			s.posAbsorb = 0
		}
		pos := s.posAbsorb + 1 // capacity occupies state[0]
		s.state[pos] = s.cap.Add(s.state[pos], input[i])
		s.posAbsorb++
	}
	s.recorder.AbsorbCalls(s.backend, length)

	// Force a permutation on the next squeeze.
	s.posSqueeze = s.rate

	s.ioCount++
	return nil
}

// Squeeze extracts len elements from the sponge, calling the permutation
// whenever the squeeze position reaches the rate. The call must match the
// next Squeeze(len) step of the declared IO-pattern.
func (s *Sponge[T]) Squeeze(length int) error {
	if s.ioCount >= len(s.iopattern) {
		s.zeroize()
		s.warn("reason", "pattern-exhausted", "call", "squeeze")
		return core.NewError(core.ErrorIOPatternViolation, "no further calls expected by the io-pattern")
	}
	call := s.iopattern[s.ioCount]
	if call.Kind != core.CallSqueeze || call.Len != length {
		s.zeroize()
		s.warn("reason", "squeeze-mismatch", "expectedKind", call.Kind, "expectedLen", call.Len, "gotLen", length)
		return core.NewError(core.ErrorIOPatternViolation, "squeeze call does not match the declared io-pattern")
	}

	for i := 0; i < length; i++ {
		if s.posSqueeze == s.rate {
			s.permute()
			s.posSqueeze = 0
			s.posAbsorb = 0
		}
		s.output = append(s.output, s.state[s.posSqueeze+1])
		s.posSqueeze++
	}
	s.recorder.SqueezeCalls(s.backend, length)

	s.ioCount++
	return nil
}

// Output returns the elements squeezed so far, in order.
func (s *Sponge[T]) Output() []T {
	return s.output
}

// Recorder returns the metrics recorder attached via WithMetrics, or a
// NoopRecorder if none was attached. Lets a caller layered on top of Sponge
// (such as package encryption) report its own outcomes under the same
// backend label without duplicating the option-handling logic.
func (s *Sponge[T]) Recorder() safemetrics.Recorder {
	return s.recorder
}

// Backend returns the backend label attached via WithMetrics, or "unknown"
// if none was attached.
func (s *Sponge[T]) Backend() string {
	return s.backend
}

// Finish ends the sponge's life, returning the squeezed output if the full
// declared IO-pattern was replayed, or an IOPatternViolation if it wasn't.
// Either way, the sponge's internal state is erased before returning.
func (s *Sponge[T]) Finish() ([]T, error) {
	var ret []T
	var err error
	if s.ioCount == len(s.iopattern) {
		ret = make([]T, len(s.output))
		copy(ret, s.output)
	} else {
		err = core.NewError(core.ErrorIOPatternViolation, "sponge finished before its io-pattern completed")
		s.warn("reason", "finished-early", "completedCalls", s.ioCount, "declaredCalls", len(s.iopattern))
	}
	s.zeroize()
	return ret, err
}
