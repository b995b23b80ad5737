package sets

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sorted(s []string) []string {
	s = slices.Clone(s)
	slices.Sort(s)
	return s
}

func TestSymmetricDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{"both empty", nil, nil, []string{}},
		{"identical", []string{"x", "y"}, []string{"x", "y"}, []string{}},
		{"overlap", []string{"x", "y"}, []string{"y", "z"}, []string{"x", "z"}},
		{"disjoint", []string{"a"}, []string{"b"}, []string{"a", "b"}},
		{"a empty", nil, []string{"react", "svelte"}, []string{"react", "svelte"}},
		{"duplicates collapse", []string{"x", "x", "y"}, []string{"y", "z", "z"}, []string{"x", "z"}},
		{"duplicate shared value", []string{"y", "y"}, []string{"y"}, []string{}},
		{"hidden vs all", []string{"svelte"}, []string{"react", "svelte", "angular", "vue3"}, []string{"react", "angular", "vue3"}},
		{"stale hidden value", []string{"ember"}, []string{"react"}, []string{"ember", "react"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SymmetricDiff(tt.a, tt.b)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSymmetricDiffProperties(t *testing.T) {
	inputs := [][]string{
		nil,
		{"react"},
		{"react", "svelte"},
		{"svelte", "vue3", "svelte"},
		{"angular", "vue3", "react", "svelte"},
	}
	for _, a := range inputs {
		assert.Empty(t, SymmetricDiff(a, a), "diff(A, A) must be empty for %v", a)
		for _, b := range inputs {
			assert.Equal(t, sorted(SymmetricDiff(a, b)), sorted(SymmetricDiff(b, a)),
				"diff must be symmetric for %v, %v", a, b)
		}
	}
}

func TestSymmetricDiffDeterministic(t *testing.T) {
	a := []string{"q", "w", "e", "r", "t", "y"}
	b := []string{"y", "u", "i", "o", "p", "q"}
	first := SymmetricDiff(a, b)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, SymmetricDiff(a, b))
	}
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []string{"react", "angular"},
		Difference([]string{"react", "svelte", "angular", "react"}, []string{"svelte", "vue3"}))
	assert.Empty(t, Difference(nil, []string{"a"}))
}
