package capability

import (
	"github.com/vybium/safe/pkg/safe/field"
	"github.com/vybium/safe/pkg/safe/hash"
)

// ArionCap adapts a fixed-width *hash.Arion permutation into a sponge
// PermutationCap[field.Element] / encryption.EncryptionCap[field.Element].
// Its state width is fixed at hash.ArionStateSize (3).
type ArionCap struct {
	arion *hash.Arion
}

// NewArionCap builds an ArionCap over a fresh Arion permutation instance.
func NewArionCap() *ArionCap {
	return &ArionCap{arion: hash.NewArion(hash.VariableLength)}
}

// Width returns Arion's fixed state size.
func (c *ArionCap) Width() int {
	return c.arion.Width()
}

// Permute applies the Arion permutation to state in place.
func (c *ArionCap) Permute(state []field.Element) {
	c.arion.Permute(state)
}

// Tag hashes the tag-input bytes to a single field element using Arion's
// variable-length hash, returning the first digest element.
func (c *ArionCap) Tag(input []byte) field.Element {
	elements := bytesToElements(input)
	digest := hash.NewArion(hash.VariableLength).HashVarLen(elements)
	return digest[0]
}

// Add returns a+b.
func (c *ArionCap) Add(a, b field.Element) field.Element {
	return a.Add(b)
}

// Subtract returns minuend-subtrahend.
func (c *ArionCap) Subtract(minuend, subtrahend field.Element) field.Element {
	return minuend.Sub(subtrahend)
}

// IsEqual reports whether a and b are the same field element.
func (c *ArionCap) IsEqual(a, b field.Element) bool {
	return a.Equal(b)
}
