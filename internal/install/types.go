// Package install copies command templates into per-assistant directories.
//
// An Installer discovers the markdown command files of a flat source
// directory, validates their frontmatter and writes them, raw or converted
// to TOML, under <root>/.ai/<assistant>/tasks. Failures that concern a single
// file are recorded in the Result and never abort the batch; only
// directory-level and configuration-level failures are returned as errors.
package install

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/ariel-frischer/taskmanager/internal/frontmatter"
)

// Format selects how command files are written.
type Format string

const (
	// FormatMarkdown copies the source bytes unchanged. It is the zero value.
	FormatMarkdown Format = "md"
	// FormatTOML converts every file to the TOML prompt format.
	FormatTOML Format = "toml"
	// FormatNative uses each assistant's native command format.
	FormatNative Format = "native"
)

// ParseFormat validates a user-supplied format name. An empty string
// yields FormatMarkdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "toml":
		return FormatTOML, nil
	case "native":
		return FormatNative, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of md, toml, native", s)
	}
}

// Resolve returns the concrete file format used for assistant id.
func (f Format) Resolve(id assistant.ID) assistant.Format {
	switch f {
	case FormatTOML:
		return assistant.FormatTOML
	case FormatNative:
		if info, ok := assistant.Lookup(id); ok {
			return info.NativeFormat
		}
	}
	return assistant.FormatMarkdown
}

// Options controls install behavior.
type Options struct {
	// Overwrite replaces existing destination files instead of skipping them.
	Overwrite bool
	// Validate records files without a description as errors instead of
	// installing them.
	Validate bool
	// Format selects raw copy or conversion.
	Format Format
}

// CommandFile is one discovered template.
type CommandFile struct {
	// Filename is the base name, unique within the source directory.
	Filename string
	// FilePath is the full source path.
	FilePath string
	// Raw holds the file bytes as read.
	Raw []byte
	// Err is set when the file could not be read; the other fields are
	// then empty apart from the names.
	Err error

	frontmatter.Document
}

// Valid reports whether the file has a usable description.
func (c CommandFile) Valid() bool {
	return c.Err == nil && c.Has("description")
}

// Result holds the per-file outcomes of one assistant's install.
type Result struct {
	Installed []string
	Skipped   []string
	Errors    []string
}

func newResult() *Result {
	return &Result{Installed: []string{}, Skipped: []string{}, Errors: []string{}}
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// AssistantResult pairs an assistant with its install outcome.
type AssistantResult struct {
	Assistant assistant.ID
	Result    *Result
}

// MultiResult aggregates the install across all configured assistants.
// Results keeps the configured assistant order.
type MultiResult struct {
	Success bool
	Results []AssistantResult
	Errors  []string
}

// Get returns the result recorded for id.
func (m *MultiResult) Get(id assistant.ID) (*Result, bool) {
	for _, r := range m.Results {
		if r.Assistant == id {
			return r.Result, true
		}
	}
	return nil, false
}

// Totals sums installed, skipped and error counts over all assistants.
func (m *MultiResult) Totals() (installed, skipped, errs int) {
	for _, r := range m.Results {
		installed += len(r.Result.Installed)
		skipped += len(r.Result.Skipped)
		errs += len(r.Result.Errors)
	}
	return installed, skipped, errs
}
