// Package capability collects concrete PermutationCap/EncryptionCap
// implementations: production backends over field.Element and
// xfield.XFieldElement built on the Poseidon, Tip5, and Arion permutations,
// a generic wrapper over any traits.FiniteField, and a minimal integer
// rotation capability used to exercise the sponge engine in isolation from
// any real cryptographic permutation.
package capability

// RotateCapability is a minimal, non-cryptographic PermutationCap[int] used
// to test the sponge state machine's bookkeeping (position tracking,
// permutation timing, output ordering) without depending on a real hash.
//
// Permute rotates the state left by one slot; Tag always returns zero; Add
// is ordinary integer addition.
type RotateCapability struct {
	width int
}

// NewRotateCapability returns a RotateCapability with the given state width.
func NewRotateCapability(width int) *RotateCapability {
	return &RotateCapability{width: width}
}

// Width returns the capability's configured state width.
func (r *RotateCapability) Width() int {
	return r.width
}

// Permute rotates state left by one position in place:
// [a,b,c,...,z] -> [b,c,...,z,a].
func (r *RotateCapability) Permute(state []int) {
	if len(state) == 0 {
		return
	}
	first := state[0]
	copy(state, state[1:])
	state[len(state)-1] = first
}

// Tag always returns zero: RotateCapability is a bookkeeping fixture, not a
// hash, so it has nothing meaningful to derive from the tag input.
func (r *RotateCapability) Tag(input []byte) int {
	return 0
}

// Add returns a+b.
func (r *RotateCapability) Add(a, b int) int {
	return a + b
}

// Subtract returns minuend-subtrahend, letting RotateCapability also serve
// encryption-engine tests.
func (r *RotateCapability) Subtract(minuend, subtrahend int) int {
	return minuend - subtrahend
}

// IsEqual reports whether a and b are the same integer.
func (r *RotateCapability) IsEqual(a, b int) bool {
	return a == b
}
