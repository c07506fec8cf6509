package convert

import "strings"

// Replacement tokens understood by TOML-based assistants.
const (
	ArgsToken   = "{{args}}"
	PlanIDToken = "{{plan_id}}"
)

// Hint markers used in argument-hint values of markdown commands.
const (
	UserPromptHint = "[user-prompt]"
	PlanIDHint     = "[plan-ID]"
)

// SubstitutePlaceholders rewrites $ARGUMENTS, $1 and $2..$9 in s.
//
// The scan is a single left-to-right pass that takes the longest token
// starting at each position, so $11, $1x, $ARG and $ARGUMENTS2 are emitted
// unchanged and replacement output is never rescanned.
func SubstitutePlaceholders(s string) string {
	return scan(s, false)
}

// SubstituteHint rewrites an argument-hint value. In addition to the body
// placeholders it replaces the [user-prompt] and [plan-ID] markers.
func SubstituteHint(s string) string {
	return scan(s, true)
}

func scan(s string, hint bool) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if replacement, width := matchAt(s, i, hint); width > 0 {
			sb.WriteString(replacement)
			i += width
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// matchAt returns the replacement for the token starting at s[i] and the
// token width, or a zero width when no token starts there.
func matchAt(s string, i int, hint bool) (string, int) {
	switch s[i] {
	case '$':
		if i > 0 && isWordByte(s[i-1]) {
			return "", 0
		}
		return matchDollar(s, i)
	case '[':
		if !hint {
			return "", 0
		}
		switch {
		case strings.HasPrefix(s[i:], UserPromptHint):
			return ArgsToken, len(UserPromptHint)
		case strings.HasPrefix(s[i:], PlanIDHint):
			return PlanIDToken, len(PlanIDHint)
		}
	}
	return "", 0
}

// matchDollar handles tokens introduced by '$'.
func matchDollar(s string, i int) (string, int) {
	const arguments = "$ARGUMENTS"

	if strings.HasPrefix(s[i:], arguments) {
		if endsToken(s, i+len(arguments)) {
			return ArgsToken, len(arguments)
		}
		return "", 0
	}

	if i+1 < len(s) && s[i+1] >= '1' && s[i+1] <= '9' && endsToken(s, i+2) {
		if s[i+1] == '1' {
			return PlanIDToken, 2
		}
		return "{{param" + string(s[i+1]) + "}}", 2
	}
	return "", 0
}

// endsToken reports whether a token ending just before s[j] is complete,
// i.e. the next byte cannot extend it into a longer identifier.
func endsToken(s string, j int) bool {
	return j >= len(s) || !isWordByte(s[j])
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
