// Package progress renders step progress for long-running CLI operations:
// a spinner on interactive terminals and plain status lines elsewhere.
package progress

// TerminalCapabilities describes what the output terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set used for step results.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	Warning    string
	SpinnerSet int // index into spinner.CharSets
}
