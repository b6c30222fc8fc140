package pipeline

import "rollcall/internal/roster"

// NormalizeNames maps every raw name through the roster's aliases.
// Order and duplicates are kept.
func NormalizeNames(r *roster.Roster, raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		out = append(out, r.Normalize(name))
	}
	return out
}
