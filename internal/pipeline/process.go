package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"rollcall/internal"
	"rollcall/internal/config"
	"rollcall/internal/roster"
	"rollcall/internal/source"
)

type Runner struct {
	cfg config.Config
	log *zap.Logger
}

func NewRunner(cfg config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}
}

type Summary struct {
	RosterPath string
	ExportPath string
	ExportName string
	Format     internal.ExportFormat
	OutputPath string
	StatusCode bool
	Result     internal.Result
}

// Run resolves both inputs, reconciles them and writes the report.
// Nothing is written unless every earlier stage succeeded.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if err := r.cfg.Validate(); err != nil {
		return Summary{}, err
	}

	rosterPath, err := r.resolveRoster()
	if err != nil {
		return Summary{}, err
	}
	rost, err := roster.LoadFile(rosterPath)
	if err != nil {
		return Summary{}, err
	}
	for _, o := range rost.Overrides {
		r.log.Warn("alias listed twice, keeping the later official name",
			zap.String("alias", o.OriginalName),
			zap.String("dropped", o.Previous),
			zap.String("kept", o.Current))
	}
	r.log.Debug("roster loaded",
		zap.String("path", rosterPath),
		zap.Int("entries", len(rost.Entries)),
		zap.Int("official", len(rost.Official)),
		zap.Int("aliases", len(rost.Aliases)))

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	exportPath, spec, err := r.resolveExport()
	if err != nil {
		return Summary{}, err
	}
	exts := spec.Exts
	if r.cfg.Format == internal.FormatAuto {
		exts = AllExts()
	}
	in, err := source.Open(exportPath, exts...)
	if err != nil {
		return Summary{}, err
	}

	format := r.cfg.Format
	if format == internal.FormatAuto {
		detected := DetectFormat(in)
		r.log.Debug("export format detected", zap.String("input", in.Name), zap.String("format", string(detected.Format)), zap.String("reason", detected.Reason))
		format = detected.Format
	}
	if spec, err = LookupFormat(format); err != nil {
		return Summary{}, err
	}

	raw, err := ExtractNamesFromInput(format, in)
	if err != nil {
		return Summary{}, err
	}
	r.log.Debug("export parsed", zap.String("input", in.Name), zap.String("format", string(format)), zap.Int("records", len(raw)))

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	result := Reconcile(rost, raw)
	withCode := spec.StatusCode
	if r.cfg.StatusCode != nil {
		withCode = *r.cfg.StatusCode
	}

	outputPath := r.abs(r.cfg.OutputPath)
	if err := WriteReport(outputPath, result.Rows, withCode); err != nil {
		return Summary{}, err
	}
	r.log.Info("report written",
		zap.String("output", outputPath),
		zap.Int("present", result.Present),
		zap.Int("absent", result.Absent),
		zap.Int("unrecognized", result.Unrecognized))

	return Summary{
		RosterPath: rosterPath,
		ExportPath: exportPath,
		ExportName: in.Name,
		Format:     format,
		OutputPath: outputPath,
		StatusCode: withCode,
		Result:     result,
	}, nil
}

func (r *Runner) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.cfg.Dir, path)
}

func (r *Runner) resolveRoster() (string, error) {
	if strings.TrimSpace(r.cfg.RosterPath) != "" {
		return r.abs(r.cfg.RosterPath), nil
	}
	return source.Resolve(r.cfg.Dir, r.cfg.RosterPrefix, ".csv", ".xlsx")
}

// resolveExport returns the export path and, for a concrete format, its spec.
// With auto, every known prefix is tried and exactly one file must match overall.
func (r *Runner) resolveExport() (string, FormatSpec, error) {
	if r.cfg.Format != internal.FormatAuto {
		spec, err := LookupFormat(r.cfg.Format)
		if err != nil {
			return "", FormatSpec{}, err
		}
		if strings.TrimSpace(r.cfg.ExportPath) != "" {
			return r.abs(r.cfg.ExportPath), spec, nil
		}
		path, err := source.Resolve(r.cfg.Dir, spec.Prefix, withEnvelope(spec.Exts)...)
		return path, spec, err
	}

	if strings.TrimSpace(r.cfg.ExportPath) != "" {
		return r.abs(r.cfg.ExportPath), FormatSpec{}, nil
	}

	exts := withEnvelope(AllExts())
	found := []string{}
	for _, prefix := range []string{TeamsPrefix, ZoomPrefix} {
		path, err := source.Resolve(r.cfg.Dir, prefix, exts...)
		if err == nil {
			found = append(found, filepath.Base(path))
			continue
		}
		var resErr *internal.InputResolutionError
		if !errors.As(err, &resErr) {
			return "", FormatSpec{}, err
		}
		found = append(found, resErr.Matches...)
	}
	if len(found) == 1 {
		return filepath.Join(r.cfg.Dir, found[0]), FormatSpec{}, nil
	}
	return "", FormatSpec{}, &internal.InputResolutionError{
		Dir:     r.cfg.Dir,
		Pattern: TeamsPrefix + "* or " + ZoomPrefix + "*",
		Matches: found,
	}
}

// withEnvelope adds .eml so mailed reports are found alongside plain exports.
func withEnvelope(exts []string) []string {
	out := make([]string, 0, len(exts)+1)
	out = append(out, exts...)
	return append(out, ".eml")
}
