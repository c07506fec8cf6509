// Package plans finds and reads plan documents and their tasks.
//
// Plans live in <root>/.ai/task-manager/plans/NN--slug (active) or
// <root>/.ai/task-manager/archive/NN--slug (archived). Whether a plan is
// archived is decided by the directory it was found under. All operations
// take the project root explicitly and never depend on the working
// directory.
package plans

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ErrPlanNotFound is returned by operations that require an existing plan.
var ErrPlanNotFound = errors.New("plan not found")

const (
	// ActiveDir holds plans that are in progress.
	ActiveDir = "plans"
	// ArchiveDir holds completed plans.
	ArchiveDir = "archive"
	// TasksDir is the task directory inside a plan directory.
	TasksDir = "tasks"
	// IDSeparator separates the numeric id from the slug in names.
	IDSeparator = "--"
)

// Location is where a plan directory was found.
type Location struct {
	DirectoryPath string
	IsArchived    bool
}

// Locator resolves plans under a project root.
type Locator struct {
	fs   afero.Fs
	root string
	log  zerolog.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithFs sets the filesystem plans are read from.
func WithFs(fs afero.Fs) Option {
	return func(l *Locator) { l.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Locator) { l.log = log }
}

// NewLocator creates a Locator for the project at root.
func NewLocator(root string, opts ...Option) *Locator {
	l := &Locator{
		fs:   afero.NewOsFs(),
		root: root,
		log:  logging.Component("plans"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BaseDir returns <root>/.ai/task-manager.
func (l *Locator) BaseDir() string {
	return filepath.Join(l.root, ".ai", "task-manager")
}

// ActiveRoot returns the directory of active plans.
func (l *Locator) ActiveRoot() string {
	return filepath.Join(l.BaseDir(), ActiveDir)
}

// ArchiveRoot returns the directory of archived plans.
func (l *Locator) ArchiveRoot() string {
	return filepath.Join(l.BaseDir(), ArchiveDir)
}

// FindPlanByID searches the active root, then the archive root, for a
// directory named <id>--slug. The id prefix is compared numerically so
// "01--x" and "1--x" both match id 1 while "11--x" does not. Returns nil
// when neither root has a match; an active match wins over an archived one.
func (l *Locator) FindPlanByID(id int) (*Location, error) {
	roots := []struct {
		dir      string
		archived bool
	}{
		{l.ActiveRoot(), false},
		{l.ArchiveRoot(), true},
	}

	for _, r := range roots {
		dir, err := l.findIn(r.dir, id)
		if err != nil {
			return nil, err
		}
		if dir != "" {
			return &Location{DirectoryPath: dir, IsArchived: r.archived}, nil
		}
	}
	return nil, nil
}

func (l *Locator) findIn(root string, id int) (string, error) {
	entries, err := afero.ReadDir(l.fs, root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if n, ok := ParseID(entry.Name()); ok && n == id {
			return filepath.Join(root, entry.Name()), nil
		}
	}
	return "", nil
}

// ParseID extracts the numeric id from a "NN--slug" name. Task file names
// such as "03--setup.md" parse the same way.
func ParseID(name string) (int, bool) {
	prefix, _, found := strings.Cut(name, IDSeparator)
	if !found || prefix == "" || strings.TrimLeft(prefix, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(prefix)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// FormatID zero-pads an id to two digits.
func FormatID(id int) string {
	return fmt.Sprintf("%02d", id)
}
