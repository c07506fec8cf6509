// Package assistant defines the closed set of AI coding assistants that
// command templates can be installed for.
package assistant

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAssistant is returned for identifiers outside the registry.
var ErrInvalidAssistant = errors.New("invalid assistant")

// ID identifies an assistant (e.g., "claude").
type ID string

// Recognized assistants.
const (
	Claude   ID = "claude"
	Gemini   ID = "gemini"
	OpenCode ID = "opencode"
	Codex    ID = "codex"
	Cursor   ID = "cursor"
	Cline    ID = "cline"
)

// Format is the on-disk format an assistant reads commands in.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatTOML     Format = "toml"
)

// Info describes a registered assistant.
type Info struct {
	ID           ID
	Name         string
	NativeFormat Format
}

// registry holds every recognized assistant in display order.
var registry = []Info{
	{ID: Claude, Name: "Claude Code", NativeFormat: FormatMarkdown},
	{ID: Gemini, Name: "Gemini CLI", NativeFormat: FormatTOML},
	{ID: OpenCode, Name: "OpenCode", NativeFormat: FormatMarkdown},
	{ID: Codex, Name: "Codex CLI", NativeFormat: FormatMarkdown},
	{ID: Cursor, Name: "Cursor", NativeFormat: FormatMarkdown},
	{ID: Cline, Name: "Cline", NativeFormat: FormatMarkdown},
}

// List returns all recognized assistant identifiers in registry order.
func List() []ID {
	ids := make([]ID, 0, len(registry))
	for _, info := range registry {
		ids = append(ids, info.ID)
	}
	return ids
}

// Names returns List as plain strings.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, info := range registry {
		names = append(names, string(info.ID))
	}
	return names
}

// Lookup returns the registry entry for id.
func Lookup(id ID) (Info, bool) {
	for _, info := range registry {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// IsValid reports whether id is a recognized assistant.
func IsValid(id string) bool {
	_, ok := Lookup(ID(id))
	return ok
}

// Validate returns a wrapped ErrInvalidAssistant for unknown ids.
func Validate(id string) error {
	if IsValid(id) {
		return nil
	}
	return fmt.Errorf("%w %q; available: %s", ErrInvalidAssistant, id, strings.Join(Names(), ", "))
}

// Config is a validated, ordered set of assistants and the project root
// commands are installed under. It is read-only after construction.
type Config struct {
	assistants []ID
	destRoot   string
}

// NewConfig validates ids and builds a Config. Duplicate ids are collapsed
// keeping the first occurrence, so configured order is preserved.
func NewConfig(destRoot string, ids ...string) (*Config, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one assistant is required", ErrInvalidAssistant)
	}

	seen := make(map[ID]bool, len(ids))
	assistants := make([]ID, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if err := Validate(id); err != nil {
			return nil, err
		}
		if seen[ID(id)] {
			continue
		}
		seen[ID(id)] = true
		assistants = append(assistants, ID(id))
	}

	return &Config{assistants: assistants, destRoot: destRoot}, nil
}

// Assistants returns a copy of the configured ids in order.
func (c *Config) Assistants() []ID {
	return append([]ID(nil), c.assistants...)
}

// DestRoot returns the project root commands are installed under.
func (c *Config) DestRoot() string {
	return c.destRoot
}

// SplitList splits comma-separated entries ("claude,gemini") and drops blanks.
// Entries that are already separate are kept as they are.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
