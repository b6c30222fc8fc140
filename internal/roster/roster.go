package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"rollcall/internal"
	"rollcall/internal/util"
)

const (
	ColumnOriginalName = "Name (Original Name)"
	ColumnOfficialName = "Official Name"
)

type Entry struct {
	OriginalName string
	OfficialName string
}

// Override records an alias whose official name was replaced by a later row.
type Override struct {
	OriginalName string
	Previous     string
	Current      string
}

type Roster struct {
	Entries   []Entry
	Official  map[string]struct{}
	Aliases   map[string]string
	Overrides []Override
}

// Build indexes entries. A repeated original name keeps the last official name seen.
func Build(entries []Entry) *Roster {
	r := &Roster{
		Entries:  entries,
		Official: map[string]struct{}{},
		Aliases:  map[string]string{},
	}

	for _, e := range entries {
		if e.OfficialName == "" {
			continue
		}
		r.Official[e.OfficialName] = struct{}{}
		if e.OriginalName == "" {
			continue
		}
		if prev, ok := r.Aliases[e.OriginalName]; ok && prev != e.OfficialName {
			r.Overrides = append(r.Overrides, Override{OriginalName: e.OriginalName, Previous: prev, Current: e.OfficialName})
		}
		r.Aliases[e.OriginalName] = e.OfficialName
	}

	return r
}

// Normalize maps a raw attendee name to its official name, or returns it unchanged.
func (r *Roster) Normalize(raw string) string {
	if official, ok := r.Aliases[raw]; ok {
		return official
	}
	return raw
}

func (r *Roster) IsOfficial(name string) bool {
	_, ok := r.Official[name]
	return ok
}

func (r *Roster) OfficialNames() []string {
	out := make([]string, 0, len(r.Official))
	for name := range r.Official {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadFile reads a roster from disk. Workbooks are read from their first sheet.
func LoadFile(path string) (*Roster, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	name := filepath.Base(path)
	if util.HasExt(path, ".xlsx") {
		return LoadXLSX(name, bytes.NewReader(blob))
	}
	return Load(name, bytes.NewReader(blob))
}

// Load reads a comma-delimited roster with a header row.
func Load(name string, r io.Reader) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &internal.DecodeError{Input: name, Encoding: "comma-separated text", Err: err}
	}
	return FromTable(name, records)
}

func LoadXLSX(name string, r io.Reader) (*Roster, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &internal.DecodeError{Input: name, Encoding: "xlsx workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return FromTable(name, nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &internal.DecodeError{Input: name, Encoding: "xlsx workbook", Err: err}
	}
	return FromTable(name, rows)
}

// FromTable treats the first row of t as the header.
func FromTable(name string, t internal.Table) (*Roster, error) {
	var headers []string
	if len(t) > 0 {
		headers = t[0]
	}
	originalIdx := util.ColumnIndex(headers, ColumnOriginalName)
	if originalIdx < 0 {
		return nil, &internal.SchemaError{Input: name, Column: ColumnOriginalName}
	}
	officialIdx := util.ColumnIndex(headers, ColumnOfficialName)
	if officialIdx < 0 {
		return nil, &internal.SchemaError{Input: name, Column: ColumnOfficialName}
	}

	entries := make([]Entry, 0, len(t))
	for i := 1; i < len(t); i++ {
		official := t.Cell(i, officialIdx)
		if strings.TrimSpace(official) == "" {
			continue
		}
		entries = append(entries, Entry{OriginalName: t.Cell(i, originalIdx), OfficialName: official})
	}

	return Build(entries), nil
}
