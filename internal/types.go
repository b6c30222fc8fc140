package internal

type ExportFormat string

const (
	FormatAuto      ExportFormat = "auto"
	FormatTeams     ExportFormat = "teams"
	FormatZoom      ExportFormat = "zoom"
	FormatZoomFixed ExportFormat = "zoom-fixed"
	FormatZoomHTML  ExportFormat = "zoom-html"
	FormatXLSX      ExportFormat = "xlsx"
)

// Formats lists every concrete export format in the order used by usage text.
var Formats = []ExportFormat{FormatTeams, FormatZoom, FormatZoomFixed, FormatZoomHTML, FormatXLSX}

type Status string

const (
	StatusPresent      Status = "Present"
	StatusAbsent       Status = "Absent"
	StatusUnrecognized Status = "Present (Unrecognized Name)"
)

// Code is 1 for Present and 0 for everything else, unrecognized rows included.
func (s Status) Code() int {
	if s == StatusPresent {
		return 1
	}
	return 0
}

// Table is a decoded export: rows of cells, rows may differ in length.
type Table [][]string

// Cell returns the cell at (row, col) or "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t) {
		return ""
	}
	if col < 0 || col >= len(t[row]) {
		return ""
	}
	return t[row][col]
}

type ResultRow struct {
	Rank       int
	Name       string
	Status     Status
	StatusCode int
}

type Result struct {
	Rows         []ResultRow
	Expected     int
	RawRecords   int
	Present      int
	Absent       int
	Unrecognized int
}

// Input is one resolved input file, already unwrapped from any envelope.
type Input struct {
	Name    string
	Path    string
	Content []byte
}
