package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/taskmanager/internal/commands"
	"github.com/ariel-frischer/taskmanager/internal/metadata"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHook = "config/hooks/POST_PLAN.md"

func TestInitCmd_Flags(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"assistants", "format", "overwrite", "no-validate", "force", "yes"} {
		assert.NotNil(t, initCmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestInit_FirstRun(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()

	out, err := execute(t, "", "init", "--root", root, "--assistants", "claude,gemini")
	require.NoError(t, err, out)

	assert.FileExists(t, filepath.Join(root, ".ai", "claude", "tasks", "create-plan.md"))
	assert.FileExists(t, filepath.Join(root, ".ai", "gemini", "tasks", "create-plan.toml"), "native format converts for gemini")
	assert.FileExists(t, filepath.Join(root, ".ai", "task-manager", filepath.FromSlash(testHook)))
	assert.FileExists(t, metadata.Path(root))

	assert.Contains(t, out, "first install")
	assert.Contains(t, out, "claude")
	assert.Contains(t, out, "gemini")
}

func TestInit_FormatFlag(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()

	_, err := execute(t, "", "init", "--root", root, "--assistants", "claude", "--format", "toml")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, ".ai", "claude", "tasks", "create-plan.toml"))
	assert.NoFileExists(t, filepath.Join(root, ".ai", "claude", "tasks", "create-plan.md"))
}

func TestInit_ModifiedFilePrompt(t *testing.T) {
	bundled, err := afero.ReadFile(commands.TaskManagerFS(), testHook)
	require.NoError(t, err)

	tests := map[string]struct {
		args        []string
		stdin       string
		wantBundled bool
	}{
		"answer overwrite": {
			stdin:       "o\n",
			wantBundled: true,
		},
		"answer keep": {
			stdin:       "k\n",
			wantBundled: false,
		},
		"diff then overwrite": {
			stdin:       "d\no\n",
			wantBundled: true,
		},
		"no input keeps": {
			stdin:       "",
			wantBundled: false,
		},
		"yes flag keeps without asking": {
			args:        []string{"--yes"},
			stdin:       "o\n",
			wantBundled: false,
		},
		"force overwrites without asking": {
			args:        []string{"--force"},
			stdin:       "k\n",
			wantBundled: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			root := t.TempDir()
			hook := filepath.Join(root, ".ai", "task-manager", filepath.FromSlash(testHook))

			_, err := execute(t, "", "init", "--root", root, "--assistants", "claude")
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(hook, []byte("my own hook\n"), 0o644))

			args := append([]string{"init", "--root", root, "--assistants", "claude"}, tt.args...)
			out, err := execute(t, tt.stdin, args...)
			require.NoError(t, err, out)

			got, err := os.ReadFile(hook)
			require.NoError(t, err)
			if tt.wantBundled {
				assert.Equal(t, string(bundled), string(got))
			} else {
				assert.Equal(t, "my own hook\n", string(got))
				assert.Contains(t, out, "kept your version of "+testHook)
			}
		})
	}
}

func TestInit_ArgumentErrors(t *testing.T) {
	tests := map[string]struct {
		args    []string
		wantMsg string
	}{
		"unknown assistant": {
			args:    []string{"--assistants", "claude,vim"},
			wantMsg: "unsupported assistant",
		},
		"unknown format": {
			args:    []string{"--format", "xml"},
			wantMsg: "invalid format: xml",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			root := t.TempDir()

			_, err := execute(t, "", append([]string{"init", "--root", root}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, ExitInvalidArguments, exitCodeFor(err))
			assert.NoDirExists(t, filepath.Join(root, ".ai"), "nothing is written on invalid arguments")
		})
	}
}

func TestInit_ConfigFromEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TASKMANAGER_ASSISTANTS", "cursor")
	root := t.TempDir()

	_, err := execute(t, "", "init", "--root", root)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, ".ai", "cursor", "tasks", "create-plan.md"))
	assert.NoDirExists(t, filepath.Join(root, ".ai", "claude"))
}

func TestInit_InvalidProjectConfig(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".ai", "task-manager", "config.yml"), "format: xml\n")

	_, err := execute(t, "", "init", "--root", root)
	require.Error(t, err)
	assert.Equal(t, ExitConfig, exitCodeFor(err))
}
