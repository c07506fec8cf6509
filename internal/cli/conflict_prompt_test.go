package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ariel-frischer/taskmanager/internal/scaffold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoConflicts() []scaffold.Conflict {
	return []scaffold.Conflict{
		{Path: "config/hooks/POST_PLAN.md", Current: []byte("a\nmine\nc\n"), Incoming: []byte("a\nbundled\nc\n")},
		{Path: "config/templates/PLAN_TEMPLATE.md", Current: []byte("x\n"), Incoming: []byte("y\n"), Unrecorded: true},
	}
}

func TestPromptResolver(t *testing.T) {
	t.Parallel()

	const hook, tmpl = "config/hooks/POST_PLAN.md", "config/templates/PLAN_TEMPLATE.md"

	tests := map[string]struct {
		input   string
		want    map[string]scaffold.Resolution
		wantOut []string
	}{
		"answer each": {
			input: "o\nk\n",
			want:  map[string]scaffold.Resolution{hook: scaffold.Overwrite, tmpl: scaffold.Keep},
		},
		"enter keeps": {
			input:   "\n\n",
			want:    map[string]scaffold.Resolution{hook: scaffold.Keep, tmpl: scaffold.Keep},
			wantOut: []string{tmpl + " (kept on an earlier run)"},
		},
		"keep all": {
			input: "a\n",
			want:  map[string]scaffold.Resolution{hook: scaffold.Keep, tmpl: scaffold.Keep},
		},
		"overwrite all": {
			input: "l\n",
			want:  map[string]scaffold.Resolution{hook: scaffold.Overwrite, tmpl: scaffold.Overwrite},
		},
		"end of input keeps the rest": {
			input: "o\n",
			want:  map[string]scaffold.Resolution{hook: scaffold.Overwrite, tmpl: scaffold.Keep},
		},
		"unrecognized answer asks again": {
			input:   "maybe\noverwrite\nkeep\n",
			want:    map[string]scaffold.Resolution{hook: scaffold.Overwrite, tmpl: scaffold.Keep},
			wantOut: []string{`unrecognized answer "maybe"`},
		},
		"diff then decide": {
			input:   "d\no\nk\n",
			want:    map[string]scaffold.Resolution{hook: scaffold.Overwrite, tmpl: scaffold.Keep},
			wantOut: []string{"--- yours", "+++ bundled", "-mine", "+bundled"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			r := newPromptResolver(strings.NewReader(tt.input), &out)

			got, err := r.Resolve(twoConflicts())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "2 file(s) were modified")
			for _, w := range tt.wantOut {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestWriteDiff(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	writeDiff(&out, "one\ntwo\n\nfour\n", "one\n2\n\nfour\n")

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"  --- yours",
		"  +++ bundled",
		"   one",
		"  -two",
		"  +2",
		"   ",
		"   four",
	}, lines)
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want []string
	}{
		"empty":         {in: "", want: nil},
		"blank line":    {in: "\n", want: []string{""}},
		"two lines":     {in: "a\nb\n", want: []string{"a", "b"}},
		"no final line": {in: "a\nb", want: []string{"a", "b"}},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitLines(tt.in))
		})
	}
}
