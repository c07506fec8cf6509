package plans

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// List loads every plan of both roots, ordered by id. On an id present in
// both roots the active plan comes first.
func (l *Locator) List() ([]*Plan, error) {
	var plans []*Plan
	for _, r := range []struct {
		dir      string
		archived bool
	}{
		{l.ActiveRoot(), false},
		{l.ArchiveRoot(), true},
	} {
		entries, err := afero.ReadDir(l.fs, r.dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("listing %s: %w", r.dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, ok := ParseID(entry.Name()); !ok {
				continue
			}
			plan, err := l.load(Location{
				DirectoryPath: filepath.Join(r.dir, entry.Name()),
				IsArchived:    r.archived,
			})
			if err != nil {
				return nil, err
			}
			plans = append(plans, plan)
		}
	}

	sort.SliceStable(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans, nil
}

// Archive moves active plan id under the archive root and returns its new
// directory.
func (l *Locator) Archive(id int) (string, error) {
	loc, err := l.FindPlanByID(id)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return "", fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}
	if loc.IsArchived {
		return "", fmt.Errorf("plan %d is already archived", id)
	}

	if err := l.fs.MkdirAll(l.ArchiveRoot(), 0o755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}
	target := filepath.Join(l.ArchiveRoot(), filepath.Base(loc.DirectoryPath))
	if exists, _ := afero.Exists(l.fs, target); exists {
		return "", fmt.Errorf("archive already contains %s", filepath.Base(target))
	}
	if err := l.fs.Rename(loc.DirectoryPath, target); err != nil {
		return "", fmt.Errorf("archiving plan %d: %w", id, err)
	}

	l.log.Info().Int("plan", id).Str("to", target).Msg("plan archived")
	return target, nil
}

// Delete removes the directory of plan id, wherever it is.
func (l *Locator) Delete(id int) error {
	loc, err := l.FindPlanByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}
	if err := l.fs.RemoveAll(loc.DirectoryPath); err != nil {
		return fmt.Errorf("deleting plan %d: %w", id, err)
	}

	l.log.Info().Int("plan", id).Bool("archived", loc.IsArchived).Msg("plan deleted")
	return nil
}

// NextPlanID returns one more than the highest plan id in either root.
func (l *Locator) NextPlanID() (int, error) {
	highest := 0
	for _, dir := range []string{l.ActiveRoot(), l.ArchiveRoot()} {
		entries, err := afero.ReadDir(l.fs, dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if n, ok := ParseID(entry.Name()); ok && n > highest {
				highest = n
			}
		}
	}
	return highest + 1, nil
}
