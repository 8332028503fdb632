package capability

import (
	"github.com/vybium/safe/pkg/safe/field"
	"github.com/vybium/safe/pkg/safe/hash"
)

// Tip5Cap adapts a fixed-width *hash.Tip5 permutation into a sponge
// PermutationCap[field.Element] / encryption.EncryptionCap[field.Element].
// Its state width is fixed at hash.StateSize (16).
type Tip5Cap struct {
	tip5 *hash.Tip5
}

// NewTip5Cap builds a Tip5Cap over a fresh Tip5 permutation instance.
func NewTip5Cap() *Tip5Cap {
	return &Tip5Cap{tip5: hash.New(hash.VariableLength)}
}

// Width returns Tip5's fixed state size.
func (c *Tip5Cap) Width() int {
	return c.tip5.Width()
}

// Permute applies the Tip5 permutation to state in place.
func (c *Tip5Cap) Permute(state []field.Element) {
	c.tip5.Permute(state)
}

// Tag hashes the tag-input bytes to a single field element using Tip5's
// pad-and-absorb-all variable-length hashing, returning the first digest
// element.
func (c *Tip5Cap) Tag(input []byte) field.Element {
	elements := bytesToElements(input)
	t := hash.New(hash.VariableLength)
	t.PadAndAbsorbAll(elements)
	digest := t.Squeeze()
	return digest[0]
}

// Add returns a+b.
func (c *Tip5Cap) Add(a, b field.Element) field.Element {
	return a.Add(b)
}

// Subtract returns minuend-subtrahend.
func (c *Tip5Cap) Subtract(minuend, subtrahend field.Element) field.Element {
	return minuend.Sub(subtrahend)
}

// IsEqual reports whether a and b are the same field element.
func (c *Tip5Cap) IsEqual(a, b field.Element) bool {
	return a.Equal(b)
}
