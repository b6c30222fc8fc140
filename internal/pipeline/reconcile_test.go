package pipeline

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal"
	"rollcall/internal/roster"
)

func rosterOf(aliases map[string]string, official ...string) *roster.Roster {
	entries := []roster.Entry{}
	for _, name := range official {
		entries = append(entries, roster.Entry{OriginalName: name, OfficialName: name})
	}
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entries = append(entries, roster.Entry{OriginalName: k, OfficialName: aliases[k]})
	}
	return roster.Build(entries)
}

func TestReconcileScenario(t *testing.T) {
	r := rosterOf(map[string]string{"a.smith": "Alice Smith"}, "Alice Smith", "Bob Lee")

	result := Reconcile(r, []string{"a.smith", "Charlie"})

	assert.Equal(t, []internal.ResultRow{
		{Rank: 1, Name: "Alice Smith", Status: internal.StatusPresent, StatusCode: 1},
		{Rank: 2, Name: "Bob Lee", Status: internal.StatusAbsent, StatusCode: 0},
		{Rank: 3, Name: "Charlie", Status: internal.StatusUnrecognized, StatusCode: 0},
	}, result.Rows)
	assert.Equal(t, 1, result.Present)
	assert.Equal(t, 1, result.Absent)
	assert.Equal(t, 1, result.Unrecognized)
	assert.Equal(t, 2, result.Expected)
	assert.Equal(t, 2, result.RawRecords)
}

func TestReconcileEmptyExport(t *testing.T) {
	result := Reconcile(rosterOf(nil, "Bob Lee"), []string{})

	assert.Equal(t, []internal.ResultRow{{Rank: 1, Name: "Bob Lee", Status: internal.StatusAbsent}}, result.Rows)
}

func TestReconcileDuplicates(t *testing.T) {
	r := rosterOf(map[string]string{"bobby": "Bob Lee"}, "Bob Lee")

	result := Reconcile(r, []string{"Zed", "bobby", "Bob Lee", "Zed", "Amy"})

	assert.Equal(t, []internal.ResultRow{
		{Rank: 1, Name: "Bob Lee", Status: internal.StatusPresent, StatusCode: 1},
		{Rank: 2, Name: "Zed", Status: internal.StatusUnrecognized},
		{Rank: 3, Name: "Zed", Status: internal.StatusUnrecognized},
		{Rank: 4, Name: "Amy", Status: internal.StatusUnrecognized},
	}, result.Rows)
}

func TestReconcileProperties(t *testing.T) {
	r := rosterOf(
		map[string]string{"kim": "Kim Park", "J. Doe": "Jane Doe", "Dr Renner": "Zoe Renner"},
		"Kim Park", "Jane Doe", "Zoe Renner", "Adam Ng", "Mia Lopez",
	)
	raw := []string{"Zoe Renner", "guest-1", "kim", "J. Doe", "guest-1", "Mia", "Adam Ng", "kim"}

	result := Reconcile(r, raw)

	// Present and Absent partition the official names exactly.
	seen := map[string]int{}
	sortedBlock := []string{}
	unrecognized := []string{}
	for _, row := range result.Rows {
		switch row.Status {
		case internal.StatusPresent, internal.StatusAbsent:
			require.Empty(t, unrecognized, "sorted block interleaved with unrecognized rows")
			seen[row.Name]++
			sortedBlock = append(sortedBlock, row.Name)
		case internal.StatusUnrecognized:
			unrecognized = append(unrecognized, row.Name)
		}
	}
	assert.ElementsMatch(t, r.OfficialNames(), sortedBlock)
	for name, count := range seen {
		assert.Equal(t, 1, count, name)
	}
	assert.True(t, sort.StringsAreSorted(sortedBlock))

	// One unrecognized row per normalized entry outside the roster, in order.
	expectedUnknown := []string{}
	for _, name := range NormalizeNames(r, raw) {
		if !r.IsOfficial(name) {
			expectedUnknown = append(expectedUnknown, name)
		}
	}
	assert.Equal(t, expectedUnknown, unrecognized)
	assert.Equal(t, []string{"guest-1", "guest-1", "Mia"}, unrecognized)

	for i, row := range result.Rows {
		assert.Equal(t, i+1, row.Rank)
		assert.Equal(t, row.Status.Code(), row.StatusCode)
	}
}

func TestNormalizeNames(t *testing.T) {
	r := rosterOf(map[string]string{"a.smith": "Alice Smith"}, "Alice Smith")

	got := NormalizeNames(r, []string{"a.smith", "Charlie", "a.smith"})
	assert.Equal(t, []string{"Alice Smith", "Charlie", "Alice Smith"}, got)
}
