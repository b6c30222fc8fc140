package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"

	"rollcall/internal"
)

const teamsExport = `1. Summary
Meeting title	Weekly Lab Meeting
Attended participants	3

2. Participants
Name	First Join	Last Leave	In-Meeting Duration	Email	Role
Alice Smith	10/1/24, 9:58:12 AM	10/1/24, 11:02:45 AM	1h 4m	alice@example.com	Organizer
bob	10/1/24, 10:01:40 AM	10/1/24, 11:02:45 AM	1h 1m	bob@example.com	Attendee
Charlie	10/1/24, 10:05:00 AM	10/1/24, 10:45:00 AM	40m		Attendee

3. In-Meeting Activities
Name	Join Time	Leave Time	Duration	Email	Role
Alice Smith	10/1/24, 9:58:12 AM	10/1/24, 11:02:45 AM	1h 4m	alice@example.com	Organizer
`

func utf16Bytes(t *testing.T, text string) []byte {
	t.Helper()
	blob, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	return blob
}

func fixture(t *testing.T, name string) internal.Input {
	t.Helper()
	blob, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return internal.Input{Name: name, Path: filepath.Join("testdata", name), Content: blob}
}

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf := bytes.NewBuffer(nil)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func tableOf(lines ...string) internal.Table {
	out := internal.Table{}
	for _, line := range lines {
		out = append(out, strings.Split(line, "|"))
	}
	return out
}
