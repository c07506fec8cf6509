// Package git locates the project a command operates on. It uses go-git to
// find the enclosing repository so that running taskmanager from any
// subdirectory targets the repository root.
package git

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/taskmanager/internal/logging"
	"github.com/go-git/go-git/v5"
)

// openRepo opens the git repository containing path. It uses go-git's
// PlainOpenWithOptions with DetectDotGit enabled to traverse up the
// directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	log := logging.Component("git")
	log.Debug().Str("path", path).Msg("opening repository")

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// RepositoryRoot returns the absolute worktree root of the repository
// containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	log := logging.Component("git")
	log.Debug().Str("root", root).Msg("repository root")
	return root, nil
}

// ResolveProjectRoot returns explicit as an absolute path when it is set.
// Otherwise it returns the root of the repository containing the working
// directory, or the working directory itself outside a repository.
func ResolveProjectRoot(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", explicit, err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	if root, err := RepositoryRoot(cwd); err == nil {
		return root, nil
	}
	return cwd, nil
}
