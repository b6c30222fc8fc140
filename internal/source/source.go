// Package source resolves input files in a working directory and unwraps
// exports that arrive as saved e-mail messages.
package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhillyerd/enmime"

	"rollcall/internal"
	"rollcall/internal/util"
)

// Resolve finds the single regular file in dir whose name starts with prefix
// and has one of exts. Zero or several matches is an InputResolutionError.
func Resolve(dir, prefix string, exts ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", dir, err)
	}

	matches := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if len(exts) > 0 && !util.HasExt(name, exts...) {
			continue
		}
		matches = append(matches, name)
	}
	sort.Strings(matches)

	if len(matches) != 1 {
		return "", &internal.InputResolutionError{Dir: dir, Pattern: pattern(prefix, exts), Matches: matches}
	}
	return filepath.Join(dir, matches[0]), nil
}

// Open reads path. A .eml message is replaced by its first attachment with one of exts.
func Open(path string, exts ...string) (internal.Input, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	if !util.HasExt(path, ".eml") {
		return internal.Input{Name: filepath.Base(path), Path: path, Content: blob}, nil
	}
	return FromMessage(path, blob, exts...)
}

// FromMessage extracts the first attachment of a raw RFC 5322 message whose
// file name has one of exts.
func FromMessage(path string, raw []byte, exts ...string) (internal.Input, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return internal.Input{}, &internal.DecodeError{Input: filepath.Base(path), Encoding: "e-mail message", Err: err}
	}

	parts := append([]*enmime.Part{}, env.Attachments...)
	parts = append(parts, env.Inlines...)
	for _, part := range parts {
		filename := strings.TrimSpace(part.FileName)
		if filename == "" {
			continue
		}
		if len(exts) > 0 && !util.HasExt(filename, exts...) {
			continue
		}
		return internal.Input{
			Name:    filepath.Base(path) + ":" + filename,
			Path:    path,
			Content: part.Content,
		}, nil
	}

	return internal.Input{}, &internal.InputResolutionError{
		Dir:     filepath.Base(path),
		Pattern: "attachment " + pattern("", exts),
	}
}

func pattern(prefix string, exts []string) string {
	if len(exts) == 0 {
		return prefix + "*"
	}
	alts := make([]string, 0, len(exts))
	for _, ext := range exts {
		alts = append(alts, prefix+"*"+ext)
	}
	return strings.Join(alts, "|")
}
