package metadata

import (
	"sort"

	"github.com/spf13/afero"
)

// Drift compares the tracked files on disk with a stored record.
type Drift struct {
	// Modified files exist on disk with a fingerprint different from the record.
	Modified []string
	// New files exist on disk but have no recorded fingerprint.
	New []string
	// Missing files are recorded but no longer exist on disk.
	Missing []string
	// Unchanged files match their recorded fingerprint.
	Unchanged []string
}

// IsModified reports whether rel is in the Modified set.
func (d *Drift) IsModified(rel string) bool {
	if d == nil {
		return false
	}
	i := sort.SearchStrings(d.Modified, rel)
	return i < len(d.Modified) && d.Modified[i] == rel
}

// DetectDrift fingerprints the tracked files under baseDir and classifies
// them against stored. A nil record classifies every file as New.
// All result slices are sorted.
func DetectDrift(fs afero.Fs, baseDir string, stored *Metadata) (*Drift, error) {
	current, err := Snapshot(fs, baseDir)
	if err != nil {
		return nil, err
	}

	recorded := map[string]string{}
	if stored != nil {
		recorded = stored.Files
	}

	d := &Drift{}
	for rel, hash := range current {
		storedHash, ok := recorded[rel]
		switch {
		case !ok:
			d.New = append(d.New, rel)
		case storedHash != hash:
			d.Modified = append(d.Modified, rel)
		default:
			d.Unchanged = append(d.Unchanged, rel)
		}
	}
	for rel := range recorded {
		if _, ok := current[rel]; !ok {
			d.Missing = append(d.Missing, rel)
		}
	}

	sort.Strings(d.Modified)
	sort.Strings(d.New)
	sort.Strings(d.Missing)
	sort.Strings(d.Unchanged)
	return d, nil
}
