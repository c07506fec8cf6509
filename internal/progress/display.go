package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Status is the outcome of a finished step.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusFailed
)

// Display reports the progress of sequential steps.
// It is not safe for concurrent use.
type Display struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	current string
}

// NewDisplay creates a Display writing to w. A spinner is only shown when
// caps reports a TTY.
func NewDisplay(w io.Writer, caps TerminalCapabilities) *Display {
	return &Display{w: w, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins a step. On a TTY a spinner runs until Finish is called.
func (d *Display) Start(message string) {
	d.current = message
	if !d.caps.IsTTY {
		return
	}
	d.spin = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(d.w))
	d.spin.Suffix = " " + message
	d.spin.Start()
}

// Active reports whether a step was started and not yet finished.
func (d *Display) Active() bool {
	return d.current != ""
}

// Finish ends the current step and prints its result line. An empty
// detail keeps the message given to Start.
func (d *Display) Finish(status Status, detail string) {
	if d.spin != nil {
		d.spin.Stop()
		d.spin = nil
	}
	message := d.current
	if detail != "" {
		message = detail
	}
	d.current = ""
	fmt.Fprintf(d.w, "%s %s\n", d.symbol(status), message)
}

func (d *Display) symbol(status Status) string {
	var sym string
	var attr color.Attribute
	switch status {
	case StatusFailed:
		sym, attr = d.symbols.Failure, color.FgRed
	case StatusWarning:
		sym, attr = d.symbols.Warning, color.FgYellow
	default:
		sym, attr = d.symbols.Checkmark, color.FgGreen
	}
	if !d.caps.SupportsColor {
		return sym
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(sym)
}
