package capability

import (
	"encoding/binary"

	"github.com/vybium/safe/pkg/safe/traits"
)

// TraitCapability is a PermutationCap/EncryptionCap over any
// traits.FiniteField implementation (field.Element's BFieldElementAdapter,
// xfield.XFieldElement's XFieldElementAdapter, or any future adapter). It
// applies a simple cube-sbox, round-constant, rotate-and-add permutation
// built entirely out of traits.FiniteField's own Add/Mul/Pow — the same
// operations traits.Square and traits.Pow use — so it requires no knowledge
// of the concrete field beneath F.
//
// It is not tuned for any particular security level; it exists to let the
// sponge/encryption engine run generically over any FiniteField adapter,
// exercising the genericity the trait layer is built for.
type TraitCapability[F traits.FiniteField] struct {
	width  int
	sample F // template instance, used only to reach FromUint64/FromBigInt
	rounds int
}

// NewTraitCapability builds a TraitCapability of the given width, using
// sample only as a template to synthesize new elements via FromUint64.
func NewTraitCapability[F traits.FiniteField](width int, sample F, rounds int) *TraitCapability[F] {
	return &TraitCapability[F]{width: width, sample: sample, rounds: rounds}
}

// Width returns the configured state width.
func (c *TraitCapability[F]) Width() int {
	return c.width
}

// Permute applies Rounds iterations of a cube sbox, round-constant
// addition, and a left-rotate-and-add mixing layer.
func (c *TraitCapability[F]) Permute(state []F) {
	for round := 0; round < c.rounds; round++ {
		for i := range state {
			state[i] = squareThenMul(state[i]).(F)
		}

		for i := range state {
			rc := roundConstant(round, i)
			state[i] = state[i].Add(c.sample.FromUint64(rc)).(F)
		}

		rotated := make([]F, len(state))
		for i := range state {
			rotated[i] = state[(i+1)%len(state)]
		}
		for i := range state {
			state[i] = state[i].Add(rotated[i]).(F)
		}
	}
}

// squareThenMul computes x^3 = x^2 * x, the cube sbox.
func squareThenMul(x traits.FiniteField) traits.FiniteField {
	return traits.Square(x).Mul(x)
}

// roundConstant derives a deterministic per-round, per-slot constant from a
// fixed counter, avoiding any dependency on math/rand (disallowed by the
// capability's determinism requirement) or time-based sources.
func roundConstant(round, slot int) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[:4], uint32(round))
	binary.BigEndian.PutUint32(buf[4:], uint32(slot))
	mixed := binary.BigEndian.Uint64(buf[:])
	// splitmix64 finalizer, used only as a deterministic constant spreader
	mixed ^= mixed >> 30
	mixed *= 0xbf58476d1ce4e5b9
	mixed ^= mixed >> 27
	mixed *= 0x94d049bb133111eb
	mixed ^= mixed >> 31
	return mixed
}

// Tag splits the tag-input bytes into big-endian 8-byte words (the last
// zero-padded), adds each word into the first state slot and applies the
// same permutation after each, returning the first state slot.
func (c *TraitCapability[F]) Tag(input []byte) F {
	state := make([]F, c.width)
	for i := range state {
		state[i] = c.sample.FromUint64(0).(F)
	}

	chunks := bytesToUint64s(input)
	for _, chunk := range chunks {
		state[0] = state[0].Add(c.sample.FromUint64(chunk)).(F)
		c.Permute(state)
	}

	return state[0]
}

// Add returns a+b.
func (c *TraitCapability[F]) Add(a, b F) F {
	return a.Add(b).(F)
}

// Subtract returns minuend-subtrahend.
func (c *TraitCapability[F]) Subtract(minuend, subtrahend F) F {
	return minuend.Sub(subtrahend).(F)
}

// IsEqual reports whether a and b are the same element.
func (c *TraitCapability[F]) IsEqual(a, b F) bool {
	return a.Equal(b)
}

func bytesToUint64s(input []byte) []uint64 {
	n := (len(input) + 7) / 8
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		var buf [8]byte
		start := i * 8
		end := start + 8
		if end > len(input) {
			end = len(input)
		}
		copy(buf[:end-start], input[start:end])
		out[i] = binary.BigEndian.Uint64(buf[:])
	}
	return out
}
