// Package convert turns markdown command templates into the TOML prompt
// format used by assistants such as Gemini.
//
// Output always has exactly two sections, [metadata] followed by [prompt].
// Every frontmatter key becomes a quoted string entry under [metadata]; the
// body becomes a single escaped content entry under [prompt]. Conversion
// never fails: documents without valid frontmatter produce an empty
// [metadata] section.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/frontmatter"
)

// TOMLExtension is the file extension of converted commands.
const TOMLExtension = ".toml"

// hintKeys are frontmatter keys whose values get hint-marker substitution.
var hintKeys = map[string]bool{
	"argument-hint": true,
	"argumentHint":  true,
}

// MarkdownToTOML converts a markdown command document to TOML.
func MarkdownToTOML(content string) string {
	return DocumentToTOML(frontmatter.Parse(content))
}

// DocumentToTOML converts an already parsed document to TOML.
func DocumentToTOML(doc frontmatter.Document) string {
	var sb strings.Builder

	sb.WriteString("[metadata]\n")
	for _, key := range doc.Keys {
		value, ok := doc.String(key)
		if !ok {
			value = ""
		}
		if hintKeys[key] {
			value = SubstituteHint(value)
		}
		fmt.Fprintf(&sb, "%s = %s\n", formatKey(key), Quote(value))
	}

	sb.WriteString("\n[prompt]\n")
	body := SubstitutePlaceholders(strings.TrimSpace(doc.Body))
	fmt.Fprintf(&sb, "content = %s\n", Quote(body))

	return sb.String()
}

// TOMLFilename maps a markdown command filename to its converted name.
func TOMLFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + TOMLExtension
}

// Quote renders s as a TOML basic string. Quotes and backslashes are
// escaped, newlines and other control characters become escape sequences.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// formatKey leaves bare keys unquoted and quotes everything else.
func formatKey(key string) string {
	if key == "" {
		return `""`
	}
	for i := 0; i < len(key); i++ {
		b := key[i]
		if !isWordByte(b) && b != '-' {
			return Quote(key)
		}
	}
	return key
}
