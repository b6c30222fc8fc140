package pipeline

import (
	"errors"

	"rollcall/internal"
)

const (
	TeamsPrefix = "Microsoft Teams Meeting"
	ZoomPrefix  = "participant"
)

// FormatSpec ties an export format to how it is found, decoded and parsed.
type FormatSpec struct {
	Format internal.ExportFormat
	Prefix string
	Exts   []string
	// StatusCode is whether the report carries the numeric column by default.
	StatusCode bool
	Decode     func(internal.Input) (internal.Table, error)
	Extractor  Extractor
}

var formatSpecs = map[internal.ExportFormat]FormatSpec{
	internal.FormatTeams: {
		Format: internal.FormatTeams, Prefix: TeamsPrefix, Exts: []string{".csv"},
		Decode: DecodeUTF16TSV, Extractor: NewTaggedSection(),
	},
	internal.FormatZoom: {
		Format: internal.FormatZoom, Prefix: ZoomPrefix, Exts: []string{".csv"}, StatusCode: true,
		Decode: DecodeCSV, Extractor: NewAnchorCell(),
	},
	internal.FormatZoomFixed: {
		Format: internal.FormatZoomFixed, Prefix: ZoomPrefix, Exts: []string{".csv"},
		Decode: DecodeCSV, Extractor: NewFixedOffset(),
	},
	internal.FormatZoomHTML: {
		Format: internal.FormatZoomHTML, Prefix: ZoomPrefix, Exts: []string{".html", ".htm"}, StatusCode: true,
		Decode: DecodeHTML, Extractor: NewAnchorCell(),
	},
	internal.FormatXLSX: {
		Format: internal.FormatXLSX, Prefix: ZoomPrefix, Exts: []string{".xlsx"}, StatusCode: true,
		Decode: DecodeXLSX, Extractor: NewAnchorCell(),
	},
}

func LookupFormat(format internal.ExportFormat) (FormatSpec, error) {
	spec, ok := formatSpecs[format]
	if !ok {
		return FormatSpec{}, &internal.UnsupportedFormatError{Format: string(format)}
	}
	return spec, nil
}

// AllExts is every file extension a concrete format reads, without duplicates.
func AllExts() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, f := range internal.Formats {
		for _, ext := range formatSpecs[f].Exts {
			if _, ok := seen[ext]; ok {
				continue
			}
			seen[ext] = struct{}{}
			out = append(out, ext)
		}
	}
	return out
}

// ExtractNamesFromInput decodes in as format and returns its raw attendee names.
// Structural errors are labelled with the input's name.
func ExtractNamesFromInput(format internal.ExportFormat, in internal.Input) ([]string, error) {
	spec, err := LookupFormat(format)
	if err != nil {
		return nil, err
	}
	table, err := spec.Decode(in)
	if err != nil {
		return nil, err
	}
	names, err := spec.Extractor.ExtractNames(table)
	if err != nil {
		return nil, labelInput(err, in.Name)
	}
	return names, nil
}

func labelInput(err error, name string) error {
	var (
		sectionErr *internal.SectionNotFoundError
		emptyErr   *internal.EmptySectionError
		anchorErr  *internal.AnchorNotFoundError
		columnErr  *internal.ColumnNotFoundError
	)
	switch {
	case errors.As(err, &sectionErr):
		sectionErr.Input = name
	case errors.As(err, &emptyErr):
		emptyErr.Input = name
	case errors.As(err, &anchorErr):
		anchorErr.Input = name
	case errors.As(err, &columnErr):
		columnErr.Input = name
	}
	return err
}
