package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal"
)

func TestDecodeUTF16TSV(t *testing.T) {
	in := internal.Input{Name: "Microsoft Teams Meeting.csv", Content: utf16Bytes(t, teamsExport)}

	tbl, err := DecodeUTF16TSV(in)
	require.NoError(t, err)
	assert.Equal(t, "1. Summary", tbl.Cell(0, 0))
	assert.Equal(t, "Weekly Lab Meeting", tbl.Cell(1, 1))
	// blank lines are dropped
	assert.Equal(t, "2. Participants", tbl.Cell(3, 0))
	assert.Equal(t, "Organizer", tbl.Cell(5, 5))
}

func TestDecodeCSVStripsBOM(t *testing.T) {
	in := internal.Input{Name: "participants.csv", Content: []byte("\ufeffName (Original Name),Email\nBob,\n")}

	tbl, err := DecodeCSV(in)
	require.NoError(t, err)
	assert.Equal(t, internal.Table{{"Name (Original Name)", "Email"}, {"Bob", ""}}, tbl)
}

func TestDecodeCSVRaggedRows(t *testing.T) {
	tbl, err := DecodeCSV(fixture(t, "participants_812.csv"))
	require.NoError(t, err)
	assert.Len(t, tbl[0], 7)
	assert.Len(t, tbl[2], 6)
	assert.Equal(t, "Doe, Jane", tbl.Cell(6, 0))
}

func TestDecodeHTML(t *testing.T) {
	tbl, err := DecodeHTML(fixture(t, "participants_web.html"))
	require.NoError(t, err)
	require.Len(t, tbl, 4)
	assert.Equal(t, []string{"Meeting ID", "812 3456 7890"}, tbl[0])
	assert.Equal(t, "Name (Original Name)", tbl.Cell(1, 0))
	assert.Equal(t, "Charlie Brown", tbl.Cell(3, 0))
}

func TestDecodeXLSX(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"Topic", "Weekly Lab Meeting"},
		{"Name (Original Name)", "Duration (Minutes)"},
		{"a.smith", 64},
	})

	tbl, err := DecodeXLSX(internal.Input{Name: "participants.xlsx", Content: blob})
	require.NoError(t, err)
	assert.Equal(t, "a.smith", tbl.Cell(2, 0))
	assert.Equal(t, "64", tbl.Cell(2, 1))
}

func TestDecodeXLSXRejectsGarbage(t *testing.T) {
	_, err := DecodeXLSX(internal.Input{Name: "participants.xlsx", Content: []byte("not a workbook")})

	var decodeErr *internal.DecodeError
	require.True(t, errors.As(err, &decodeErr), "got %v", err)
	assert.Equal(t, "participants.xlsx", decodeErr.Input)
	assert.Contains(t, decodeErr.Error(), "xlsx workbook")
}
