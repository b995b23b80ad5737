// Package sets holds small set operations over string slices.
package sets

// SymmetricDiff returns the elements that appear in exactly one of a and b.
// Inputs are treated as sets, so duplicates collapse. The result lists the
// elements only in a, in first-seen order, followed by those only in b.
func SymmetricDiff(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, v := range a {
		inA[v] = true
	}
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}

	out := make([]string, 0)
	seen := make(map[string]bool, len(a)+len(b))
	for _, v := range a {
		if !inB[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !inA[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Difference returns the elements of a that are not in b, in a's order,
// without duplicates.
func Difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	out := make([]string, 0, len(a))
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		if !inB[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
