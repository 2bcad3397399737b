// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"slices"
	"strings"
)

// MergeEnv returns base with every entry of overrides applied. An override
// replaces the base entry with the same key in place; new keys are appended
// in override order. Malformed entries without '=' are dropped.
func MergeEnv(base, overrides []string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	index := make(map[string]int, len(base)+len(overrides))

	for _, entry := range slices.Concat(base, overrides) {
		key, _, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		if i, exists := index[key]; exists {
			merged[i] = entry
			continue
		}
		index[key] = len(merged)
		merged = append(merged, entry)
	}
	return merged
}

// lookupEnv returns a lookup function over "KEY=value" entries. Later entries
// win, matching exec.Cmd.
func lookupEnv(env []string) func(string) string {
	return func(name string) string {
		for _, entry := range slices.Backward(env) {
			if key, value, ok := strings.Cut(entry, "="); ok && key == name {
				return value
			}
		}
		return ""
	}
}
