// Package frontmatter splits markdown documents into a YAML-like metadata
// header and a free-form body.
//
// Parsing never fails. A document without an opening "---" line, or without
// a closing one, yields empty metadata and the whole input as body; the caller
// decides whether that is a validation error. Header lines without a ':' are
// skipped.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the frontmatter block.
const Delimiter = "---"

// Document is the result of parsing a markdown document.
type Document struct {
	// Frontmatter maps keys to decoded scalar (or collection) values.
	Frontmatter map[string]any
	// Keys preserves the order in which keys appeared in the header.
	Keys []string
	// Body is everything after the closing delimiter line.
	Body string
	// WellFormed reports whether both delimiters were found.
	WellFormed bool
}

// Parse extracts the frontmatter block and body from content.
func Parse(content string) Document {
	doc := Document{Frontmatter: map[string]any{}, Body: content}

	header, body, ok := split(content)
	if !ok {
		return doc
	}

	doc.WellFormed = true
	doc.Body = body
	doc.Keys = parseHeader(header, doc.Frontmatter)
	return doc
}

// String returns the value of key rendered as a string.
// Missing keys and null values report false.
func (d Document) String(key string) (string, bool) {
	v, ok := d.Frontmatter[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Has reports whether key is present with a non-blank value.
func (d Document) Has(key string) bool {
	s, ok := d.String(key)
	return ok && strings.TrimSpace(s) != ""
}

// split locates the opening and closing delimiter lines.
func split(content string) (header, body string, ok bool) {
	first, rest, more := cutLine(content)
	if !more || strings.TrimSpace(first) != Delimiter {
		return "", "", false
	}

	var lines []string
	for {
		line, remaining, more := cutLine(rest)
		if strings.TrimSpace(line) == Delimiter {
			return strings.Join(lines, "\n"), remaining, true
		}
		if !more {
			return "", "", false
		}
		lines = append(lines, line)
		rest = remaining
	}
}

// cutLine returns the first line of s (without its terminator) and the rest.
// more is false when s had no newline.
func cutLine(s string) (line, rest string, more bool) {
	line, rest, more = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, more
}

// parseHeader decodes the header into dst and returns the key order.
// The whole block is decoded as YAML first. When that fails, every line
// holding a ':' is split there and its value taken permissively, so
// unquoted values may contain ": " or " #".
func parseHeader(header string, dst map[string]any) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	lines := strings.Split(header, "\n")

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(header), &root); err == nil {
		if keys, ok := decodeMapping(&root, lines, dst); ok {
			return keys
		}
	}

	var keys []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key, raw, ok := splitPair(line)
		if !ok {
			continue
		}
		dst[key] = scalarValue(raw)
		keys = appendUnique(keys, key)
	}
	return keys
}

// decodeMapping copies the top-level mapping of a document node into dst.
// Plain scalars cut short by a " #" comment keep their full line text.
func decodeMapping(root *yaml.Node, lines []string, dst map[string]any) ([]string, bool) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, false
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, false
	}

	var keys []string
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			continue
		}
		var value any
		if err := valueNode.Decode(&value); err != nil {
			continue
		}
		if raw, ok := commentedPlain(keyNode, valueNode, lines); ok {
			value = raw
		}
		if _, seen := dst[keyNode.Value]; !seen {
			keys = append(keys, keyNode.Value)
		}
		dst[keyNode.Value] = value
	}
	return keys, true
}

// commentedPlain returns the raw line value of a plain scalar that YAML
// shortened by treating " #" as a comment.
func commentedPlain(keyNode, valueNode *yaml.Node, lines []string) (string, bool) {
	if valueNode.Kind != yaml.ScalarNode || valueNode.Style != 0 || valueNode.Line != keyNode.Line {
		return "", false
	}
	if keyNode.Line < 1 || keyNode.Line > len(lines) {
		return "", false
	}
	_, raw, ok := splitPair(lines[keyNode.Line-1])
	if !ok || raw == valueNode.Value || !strings.HasPrefix(raw, valueNode.Value) {
		return "", false
	}
	return raw, true
}

// splitPair splits a header line at its first ':'.
func splitPair(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	key = unquote(strings.TrimSpace(key))
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// scalarValue interprets a raw value from a line YAML could not decode.
// Quoted values are unquoted, plain numbers, booleans and nulls keep their
// type, and anything else is kept as written.
func scalarValue(raw string) any {
	if raw == "" {
		return nil
	}
	if raw[0] == '"' || raw[0] == '\'' {
		var s string
		if err := yaml.Unmarshal([]byte(raw), &s); err == nil {
			return s
		}
		return unquote(raw)
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	switch value.(type) {
	case nil:
		return nil
	case int, int64, uint64, float64, bool:
		return value
	}
	return raw
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
