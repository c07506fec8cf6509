package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestRepositoryRoot(t *testing.T) {
	t.Parallel()
	root := initRepo(t)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	tests := map[string]struct {
		path string
	}{
		"at root":       {path: root},
		"from a subdir": {path: nested},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := RepositoryRoot(tt.path)
			require.NoError(t, err)
			assert.Equal(t, root, got)
		})
	}
}

func TestResolveProjectRoot_Explicit(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	got, err := ResolveProjectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

// Not parallel: changes the working directory.
func TestResolveProjectRoot_FromSubdirectory(t *testing.T) {
	root := initRepo(t)
	nested := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := ResolveProjectRoot("")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}
