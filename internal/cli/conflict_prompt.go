package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/scaffold"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// promptResolver asks on in/out what to do with each modified file.
// End of input keeps the remaining files.
type promptResolver struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptResolver(in io.Reader, out io.Writer) *promptResolver {
	return &promptResolver{in: bufio.NewReader(in), out: out}
}

// Resolve implements scaffold.ConflictResolver.
func (p *promptResolver) Resolve(conflicts []scaffold.Conflict) (map[string]scaffold.Resolution, error) {
	resolutions := make(map[string]scaffold.Resolution, len(conflicts))
	fmt.Fprintf(p.out, "\n%d file(s) were modified since the last init:\n", len(conflicts))

	var all *scaffold.Resolution
	for _, c := range conflicts {
		if all != nil {
			resolutions[c.Path] = *all
			continue
		}
		r, applyAll, err := p.ask(c)
		if err != nil {
			return nil, err
		}
		resolutions[c.Path] = r
		if applyAll {
			all = &r
		}
	}
	return resolutions, nil
}

// ask loops until it gets a keep or overwrite answer for c.
func (p *promptResolver) ask(c scaffold.Conflict) (scaffold.Resolution, bool, error) {
	for {
		fmt.Fprintf(p.out, "\n  %s", c.Path)
		if c.Unrecorded {
			fmt.Fprint(p.out, " (kept on an earlier run)")
		}
		fmt.Fprint(p.out, "\n  [k]eep, [o]verwrite, [d]iff, keep [a]ll, overwrite a[l]l (default k): ")

		line, err := p.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return scaffold.Keep, false, fmt.Errorf("reading answer: %w", err)
		}
		answer := strings.TrimSpace(strings.ToLower(line))
		if err == io.EOF && answer == "" {
			fmt.Fprintln(p.out)
			return scaffold.Keep, true, nil
		}

		switch answer {
		case "", "k", "keep":
			return scaffold.Keep, false, nil
		case "o", "overwrite":
			return scaffold.Overwrite, false, nil
		case "a":
			return scaffold.Keep, true, nil
		case "l":
			return scaffold.Overwrite, true, nil
		case "d", "diff":
			writeDiff(p.out, string(c.Current), string(c.Incoming))
		default:
			fmt.Fprintf(p.out, "  unrecognized answer %q\n", answer)
		}
	}
}

// writeDiff prints a line diff from the user's version to the bundled one.
func writeDiff(w io.Writer, current, incoming string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(current, incoming)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)

	fmt.Fprintln(w, "  --- yours")
	fmt.Fprintln(w, "  +++ bundled")
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				del.Fprintf(w, "  -%s\n", line)
			case diffmatchpatch.DiffInsert:
				ins.Fprintf(w, "  +%s\n", line)
			default:
				fmt.Fprintf(w, "   %s\n", line)
			}
		}
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
