package capability

import (
	"encoding/binary"

	"github.com/vybium/safe/pkg/safe/field"
	"github.com/vybium/safe/pkg/safe/hash"
)

// PoseidonCap adapts a *hash.Poseidon permutation into a sponge
// PermutationCap[field.Element] / encryption.EncryptionCap[field.Element].
type PoseidonCap struct {
	poseidon *hash.Poseidon
}

// NewPoseidonCap builds a PoseidonCap from the given Poseidon parameters.
func NewPoseidonCap(params *hash.PoseidonParameters) (*PoseidonCap, error) {
	p, err := hash.NewPoseidon(params)
	if err != nil {
		return nil, err
	}
	return &PoseidonCap{poseidon: p}, nil
}

// Width returns the Poseidon permutation's state width.
func (c *PoseidonCap) Width() int {
	return c.poseidon.Width()
}

// Permute applies the Poseidon permutation to state in place.
func (c *PoseidonCap) Permute(state []field.Element) {
	c.poseidon.Permute(state)
}

// Tag hashes the tag-input bytes to a single field element by chunking them
// into big-endian 8-byte words (the last word zero-padded) and running them
// through Poseidon's variable-length sponge hash.
func (c *PoseidonCap) Tag(input []byte) field.Element {
	return c.poseidon.Hash(bytesToElements(input))
}

// Add returns a+b.
func (c *PoseidonCap) Add(a, b field.Element) field.Element {
	return a.Add(b)
}

// Subtract returns minuend-subtrahend.
func (c *PoseidonCap) Subtract(minuend, subtrahend field.Element) field.Element {
	return minuend.Sub(subtrahend)
}

// IsEqual reports whether a and b are the same field element.
func (c *PoseidonCap) IsEqual(a, b field.Element) bool {
	return a.Equal(b)
}

// bytesToElements chunks input into big-endian 8-byte words, zero-padding
// the final word, and converts each word to a field element. field.New
// reduces any uint64 modulo the field's prime, so no chunk can overflow.
func bytesToElements(input []byte) []field.Element {
	n := (len(input) + 7) / 8
	elements := make([]field.Element, n)
	for i := 0; i < n; i++ {
		var buf [8]byte
		start := i * 8
		end := start + 8
		if end > len(input) {
			end = len(input)
		}
		copy(buf[:end-start], input[start:end])
		elements[i] = field.New(binary.BigEndian.Uint64(buf[:]))
	}
	return elements
}
