package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

const bom = "\ufeff"

var reSpaces = regexp.MustCompile(`\s+`)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// StripBOM drops a leading byte order mark left behind by spreadsheet exports.
func StripBOM(input string) string {
	return strings.TrimPrefix(input, bom)
}

// CleanHeader is the form header cells are compared in.
func CleanHeader(input string) string {
	return NormalizeSpaces(StripBOM(input))
}

// ColumnIndex returns the index of the header cell equal to name after cleaning, or -1.
func ColumnIndex(headers []string, name string) int {
	want := CleanHeader(name)
	for i, h := range headers {
		if CleanHeader(h) == want {
			return i
		}
	}
	return -1
}

func HasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
