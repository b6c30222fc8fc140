package internal

import (
	"fmt"
	"strings"
)

// InputResolutionError reports a filename prefix that did not resolve to exactly one file.
type InputResolutionError struct {
	Dir     string
	Pattern string
	Matches []string
}

func (e *InputResolutionError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no file matching %q in %s", e.Pattern, e.Dir)
	}
	return fmt.Sprintf("%d files match %q in %s (%s); expected exactly one", len(e.Matches), e.Pattern, e.Dir, strings.Join(e.Matches, ", "))
}

type SchemaError struct {
	Input  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q is missing", e.Input, e.Column)
}

type SectionNotFoundError struct {
	Input  string
	Marker string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("%s: section marker %q not found", e.Input, e.Marker)
}

type EmptySectionError struct {
	Input  string
	Marker string
	Start  int
	End    int
}

func (e *EmptySectionError) Error() string {
	return fmt.Sprintf("%s: section %q has no participant rows (rows %d..%d)", e.Input, e.Marker, e.Start, e.End)
}

type AnchorNotFoundError struct {
	Input string
	Value string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("%s: no cell contains %q", e.Input, e.Value)
}

type ColumnNotFoundError struct {
	Input  string
	Column string
	// Row is the 1-based header row that was inspected.
	Row int
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s: column %q not found in header row %d", e.Input, e.Column, e.Row)
}

// DecodeError hides low-level reader failures behind the input name and expected encoding.
type DecodeError struct {
	Input    string
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot read as %s: %v", e.Input, e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	names := make([]string, 0, len(Formats)+1)
	names = append(names, string(FormatAuto))
	for _, f := range Formats {
		names = append(names, string(f))
	}
	return fmt.Sprintf("unsupported export format %q (want one of %s)", e.Format, strings.Join(names, ", "))
}
