package pipeline

import (
	"bytes"
	"strings"

	"rollcall/internal"
	"rollcall/internal/util"
)

type DetectResult struct {
	Format internal.ExportFormat
	Reason string
}

var (
	utf16LE  = []byte{0xFF, 0xFE}
	utf16BE  = []byte{0xFE, 0xFF}
	zipMagic = []byte("PK\x03\x04")
)

// DetectFormat guesses the export format from content first and file name second.
// Comma-separated text defaults to the anchor-cell reading, which also covers
// exports with a fixed header offset.
func DetectFormat(in internal.Input) DetectResult {
	head := in.Content
	if len(head) > 4096 {
		head = head[:4096]
	}

	if bytes.HasPrefix(head, utf16LE) || bytes.HasPrefix(head, utf16BE) {
		return DetectResult{Format: internal.FormatTeams, Reason: "utf16_bom"}
	}
	if bytes.HasPrefix(head, zipMagic) || util.HasExt(in.Name, ".xlsx") {
		return DetectResult{Format: internal.FormatXLSX, Reason: "zip_container"}
	}

	lower := strings.ToLower(string(head))
	if strings.Contains(lower, "<table") || strings.Contains(lower, "<html") || util.HasExt(in.Name, ".html", ".htm") {
		return DetectResult{Format: internal.FormatZoomHTML, Reason: "html_markup"}
	}
	if looksLikeUTF16(head) {
		return DetectResult{Format: internal.FormatTeams, Reason: "utf16_nul_bytes"}
	}
	if strings.HasPrefix(in.Name, TeamsPrefix) {
		return DetectResult{Format: internal.FormatTeams, Reason: "teams_filename"}
	}
	return DetectResult{Format: internal.FormatZoom, Reason: "csv_default"}
}

// looksLikeUTF16 reports BOM-less UTF-16 text, where every other byte of ASCII is NUL.
func looksLikeUTF16(head []byte) bool {
	if len(head) < 8 {
		return false
	}
	nul := bytes.Count(head, []byte{0})
	return nul*3 >= len(head)
}
