package progress

import (
	"os"

	"golang.org/x/term"
)

// DetectTerminalCapabilities inspects stdout and the environment
// (NO_COLOR, TASKMANAGER_ASCII) to decide between spinner and plain
// output and between Unicode and ASCII symbols.
func DetectTerminalCapabilities() TerminalCapabilities {
	return DetectFor(os.Stdout)
}

// DetectFor is DetectTerminalCapabilities for an arbitrary file.
func DetectFor(f *os.File) TerminalCapabilities {
	fd := int(f.Fd())
	isTTY := term.IsTerminal(fd)

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("TASKMANAGER_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols picks ✓/✗ with the braille spinner (set 14) for Unicode
// terminals, otherwise [OK]/[FAIL] with the |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			Warning:    "!",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		Warning:    "[WARN]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
