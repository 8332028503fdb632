package core

import "encoding/binary"

// CallKind distinguishes a call to absorb input into the sponge from a call
// to squeeze output out of it.
type CallKind int

const (
	// CallAbsorb absorbs elements into the sponge state.
	CallAbsorb CallKind = iota
	// CallSqueeze extracts elements from the sponge state.
	CallSqueeze
)

// Call is one step of a declared IO-pattern: either "absorb Len elements" or
// "squeeze Len elements". A sponge's lifetime is required to replay its
// declared IO-pattern call for call, in order, with matching lengths.
type Call struct {
	Kind CallKind
	Len  int
}

// Absorb builds an absorb call of the given length.
func Absorb(n int) Call { return Call{Kind: CallAbsorb, Len: n} }

// Squeeze builds a squeeze call of the given length.
func Squeeze(n int) Call { return Call{Kind: CallSqueeze, Len: n} }

// IOPattern is the ordered sequence of absorb/squeeze calls a sponge commits
// to at construction time. It is hashed into the sponge's initialization tag
// so that two sponges started with different patterns (or different domain
// separators) never produce colliding state.
type IOPattern []Call

// ValidateIOPattern checks that a pattern is sensible:
//   - it starts with a call to absorb,
//   - it ends with a call to squeeze,
//   - every call has a strictly positive length.
func ValidateIOPattern(pattern IOPattern) error {
	if len(pattern) == 0 {
		return NewError(ErrorInvalidIOPattern, "io-pattern is empty")
	}
	if pattern[0].Kind != CallAbsorb {
		return NewError(ErrorInvalidIOPattern, "io-pattern must start with absorb")
	}
	if pattern[len(pattern)-1].Kind != CallSqueeze {
		return NewError(ErrorInvalidIOPattern, "io-pattern must end with squeeze")
	}
	for _, call := range pattern {
		if call.Len <= 0 {
			return NewError(ErrorInvalidIOPattern, "io-pattern calls must have a positive length")
		}
	}
	return nil
}

// absorbMask flags a word of the aggregated tag input as belonging to an
// absorb call rather than a squeeze call.
const absorbMask uint32 = 0x8000_0000

// TagInput encodes the IO-pattern and domain separator into the byte string
// that is hashed to produce a sponge's initialization tag.
//
// Consecutive calls of the same kind are aggregated into a single big-endian
// u32 word (the high bit set for absorb, clear for squeeze), so that two
// IO-patterns with the same total absorbed/squeezed lengths in the same
// order produce byte-identical tag inputs regardless of how the calls were
// split up. The domain separator is appended as 8 big-endian bytes.
func TagInput(pattern IOPattern, domainSep uint64) ([]byte, error) {
	if err := ValidateIOPattern(pattern); err != nil {
		return nil, err
	}

	words := make([]uint32, 0, len(pattern))
	words = append(words, absorbMask)

	for _, call := range pattern {
		last := len(words) - 1
		switch {
		case call.Kind == CallAbsorb && words[last]&absorbMask != 0:
			words[last] += uint32(call.Len)
		case call.Kind == CallAbsorb:
			words = append(words, absorbMask+uint32(call.Len))
		case call.Kind == CallSqueeze && words[last]&absorbMask == 0:
			words[last] += uint32(call.Len)
		default: // CallSqueeze, previous word was an absorb word
			words = append(words, uint32(call.Len))
		}
	}

	input := make([]byte, 0, len(words)*4+8)
	for _, w := range words {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], w)
		input = append(input, buf[:]...)
	}

	var sepBuf [8]byte
	binary.BigEndian.PutUint64(sepBuf[:], domainSep)
	input = append(input, sepBuf[:]...)

	return input, nil
}
