package pipeline

import (
	"strings"

	"rollcall/internal"
	"rollcall/internal/util"
)

const (
	ParticipantsMarker = "2. Participants"
	ActivitiesMarker   = "3. In-Meeting Activities"
	NameColumn         = "Name (Original Name)"
)

// Extractor pulls raw attendee names out of a decoded export, in source order.
type Extractor interface {
	ExtractNames(t internal.Table) ([]string, error)
}

// TaggedSection reads the names listed between two marker rows of a
// single-column export. The row right after the start marker is the
// section's own header and is skipped.
type TaggedSection struct {
	StartMarker string
	EndMarker   string
	// Skip is the distance from the start marker to the first name row.
	Skip   int
	Column int
}

func NewTaggedSection() TaggedSection {
	return TaggedSection{StartMarker: ParticipantsMarker, EndMarker: ActivitiesMarker, Skip: 2}
}

func (s TaggedSection) ExtractNames(t internal.Table) ([]string, error) {
	start := findRow(t, s.Column, s.StartMarker)
	if start < 0 {
		return nil, &internal.SectionNotFoundError{Marker: s.StartMarker}
	}
	end := findRow(t, s.Column, s.EndMarker)
	if end < 0 {
		return nil, &internal.SectionNotFoundError{Marker: s.EndMarker}
	}

	first := start + s.Skip
	if end <= first {
		return nil, &internal.EmptySectionError{Marker: s.StartMarker, Start: first, End: end}
	}
	return columnValues(t, s.Column, first, end), nil
}

func findRow(t internal.Table, col int, marker string) int {
	for i := range t {
		if strings.Contains(t.Cell(i, col), marker) {
			return i
		}
	}
	return -1
}

// AnchorCell treats the first cell equal to Value as the header of a single
// name column and reads every row below it. Cells are compared verbatim.
type AnchorCell struct {
	Value string
}

func NewAnchorCell() AnchorCell {
	return AnchorCell{Value: NameColumn}
}

func (a AnchorCell) ExtractNames(t internal.Table) ([]string, error) {
	for i, row := range t {
		for j, cell := range row {
			if cell == a.Value {
				return columnValues(t, j, i+1, len(t)), nil
			}
		}
	}
	return nil, &internal.AnchorNotFoundError{Value: a.Value}
}

// FixedOffset expects the header at a known row, after boilerplate rows.
type FixedOffset struct {
	HeaderRow int
	Column    string
}

func NewFixedOffset() FixedOffset {
	return FixedOffset{HeaderRow: 2, Column: NameColumn}
}

func (f FixedOffset) ExtractNames(t internal.Table) ([]string, error) {
	if f.HeaderRow >= len(t) {
		return nil, &internal.ColumnNotFoundError{Column: f.Column, Row: f.HeaderRow + 1}
	}
	col := util.ColumnIndex(t[f.HeaderRow], f.Column)
	if col < 0 {
		return nil, &internal.ColumnNotFoundError{Column: f.Column, Row: f.HeaderRow + 1}
	}
	return columnValues(t, col, f.HeaderRow+1, len(t)), nil
}

// columnValues collects non-blank cells of col for rows [from, to).
func columnValues(t internal.Table, col, from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		value := t.Cell(i, col)
		if strings.TrimSpace(value) == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
