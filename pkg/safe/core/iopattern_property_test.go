package core

import (
	"testing"

	"pgregory.net/rapid"
)

// splitCall breaks a Call of length n into a random number of smaller calls
// of the same kind that sum to n.
func splitCall(t *rapid.T, call Call) IOPattern {
	n := call.Len
	var parts []int
	for n > 0 {
		take := n
		if n > 1 {
			take = rapid.IntRange(1, n).Draw(t, "take")
		}
		parts = append(parts, take)
		n -= take
	}

	out := make(IOPattern, 0, len(parts))
	for _, p := range parts {
		out = append(out, Call{Kind: call.Kind, Len: p})
	}
	return out
}

// TestTagInputAggregationInvariant checks, for randomly generated
// absorb/squeeze patterns, that splitting any call into several smaller
// calls of the same kind and the same total length never changes the
// resulting tag input.
func TestTagInputAggregationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numCalls := rapid.IntRange(2, 6).Draw(t, "numCalls")

		base := make(IOPattern, numCalls)
		base[0] = Absorb(rapid.IntRange(1, 8).Draw(t, "firstLen"))
		base[numCalls-1] = Squeeze(rapid.IntRange(1, 8).Draw(t, "lastLen"))
		for i := 1; i < numCalls-1; i++ {
			if rapid.Bool().Draw(t, "kind") {
				base[i] = Absorb(rapid.IntRange(1, 8).Draw(t, "len"))
			} else {
				base[i] = Squeeze(rapid.IntRange(1, 8).Draw(t, "len"))
			}
		}

		domainSep := rapid.Uint64().Draw(t, "domainSep")

		expanded := make(IOPattern, 0, numCalls*2)
		for _, call := range base {
			expanded = append(expanded, splitCall(t, call)...)
		}

		want, err := TagInput(base, domainSep)
		if err != nil {
			t.Fatalf("TagInput(base): %v", err)
		}
		got, err := TagInput(expanded, domainSep)
		if err != nil {
			t.Fatalf("TagInput(expanded): %v", err)
		}

		if string(want) != string(got) {
			t.Fatalf("aggregation mismatch: base=%x expanded=%x", want, got)
		}
	})
}
