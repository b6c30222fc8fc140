package pipeline

import (
	"rollcall/internal"
	"rollcall/internal/roster"
)

// Reconcile classifies every official name as Present or Absent, sorted by
// name, and appends one unrecognized row per raw record that does not
// normalize to an official name, in source order.
func Reconcile(r *roster.Roster, raw []string) internal.Result {
	normalized := NormalizeNames(r, raw)

	attended := make(map[string]struct{}, len(normalized))
	unknown := []string{}
	for _, name := range normalized {
		attended[name] = struct{}{}
		if !r.IsOfficial(name) {
			unknown = append(unknown, name)
		}
	}

	result := internal.Result{
		Rows:       make([]internal.ResultRow, 0, len(r.Official)+len(unknown)),
		Expected:   len(r.Official),
		RawRecords: len(raw),
	}

	for _, name := range r.OfficialNames() {
		status := internal.StatusAbsent
		if _, ok := attended[name]; ok {
			status = internal.StatusPresent
			result.Present++
		} else {
			result.Absent++
		}
		result.Rows = append(result.Rows, internal.ResultRow{Name: name, Status: status})
	}

	for _, name := range unknown {
		result.Rows = append(result.Rows, internal.ResultRow{Name: name, Status: internal.StatusUnrecognized})
		result.Unrecognized++
	}

	for i := range result.Rows {
		result.Rows[i].Rank = i + 1
		result.Rows[i].StatusCode = result.Rows[i].Status.Code()
	}

	return result
}
