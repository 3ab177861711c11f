package table

import (
	"fmt"
	"strings"
)

// DedupeColumnNames makes column names unique while preserving order.
// The first occurrence of a name is kept as-is; the k-th repeat (zero-based)
// becomes "name_k". When "name_k" is already taken by another column, k is
// advanced until the name is free.
//
//	[A, B, A, A] -> [A, B, A_1, A_2]
func DedupeColumnNames(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}

	out := make([]string, len(names))
	emitted := make(map[string]bool, len(names))
	seen := make(map[string]int, len(names))

	for i, name := range names {
		occurrence := seen[name]
		seen[name] = occurrence + 1

		if occurrence == 0 {
			out[i] = name
			emitted[name] = true
			continue
		}

		k := occurrence
		candidate := fmt.Sprintf("%s_%d", name, k)
		for emitted[candidate] || taken[candidate] {
			k++
			candidate = fmt.Sprintf("%s_%d", name, k)
		}
		out[i] = candidate
		emitted[candidate] = true
	}

	return out
}

// NameBlankHeaders replaces blank header cells with "Unnamed: i"
func NameBlankHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		out[i] = h
	}
	return out
}
