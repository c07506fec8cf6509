package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// styles used when rendering a CLIError on a color terminal.
var (
	styleHeading  = color.New(color.FgRed, color.Bold)
	styleMessage  = color.New(color.FgRed)
	styleCategory = color.New(color.FgYellow)
	styleUsage    = color.New(color.FgCyan)
	styleFix      = color.New(color.FgGreen, color.Bold)
	styleBullet   = color.New(color.FgGreen)
)

// FormatErrorPlain renders err without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, false)
}

// FprintError writes err to w, colored unless color output is disabled.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, render(err, !color.NoColor))
}

// render lays out a CLIError as a headline, an optional usage line and
// the remediation steps as a bulleted list.
func render(err *CLIError, colored bool) string {
	paint := func(c *color.Color, s string) string {
		if !colored {
			return s
		}
		return c.Sprint(s)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		paint(styleHeading, "Error"),
		paint(styleCategory, err.Category.String()),
		paint(styleMessage, err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", paint(styleUsage, "Usage: "), paint(styleUsage, err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", paint(styleFix, "To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", paint(styleBullet, "•"), step)
		}
	}
	return sb.String()
}
