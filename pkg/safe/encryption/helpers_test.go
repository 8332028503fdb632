package encryption_test

import (
	"testing"

	"github.com/vybium/safe/pkg/safe/capability"
	"github.com/vybium/safe/pkg/safe/field"
	"github.com/vybium/safe/pkg/safe/hash"
)

func mustPoseidonCap(t *testing.T) *capability.PoseidonCap {
	t.Helper()
	cap, err := capability.NewPoseidonCap(hash.GetDefaultPoseidonParameters(128))
	if err != nil {
		t.Fatalf("NewPoseidonCap: %v", err)
	}
	return cap
}

func fieldElement(v uint64) field.Element {
	return field.New(v)
}

func fieldPair(a, b uint64) [2]field.Element {
	return [2]field.Element{field.New(a), field.New(b)}
}

func fieldElements(n int, seed uint64) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = field.New(seed + uint64(i)*1_000_003)
	}
	return out
}

func elementsEqual(a, b []field.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func cloneCipher(cipher []field.Element) []field.Element {
	out := make([]field.Element, len(cipher))
	copy(out, cipher)
	return out
}
