// Package metadata records fingerprints of installed configuration files so
// that re-initialization can tell which files the user has modified.
//
// The record lives at <root>/.ai/task-manager/.init-metadata.json. Keys are
// slash-separated paths relative to <root>/.ai/task-manager and only cover
// the config/ subtree; config/scripts/ is installed on every run but never
// tracked. A missing or unparsable record is reported as nil, which callers
// treat as "no prior installation".
//
// The record is rewritten from scratch after each install pass. There is no
// locking: a second process writing the same record concurrently can lose
// an update.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

const (
	// FileName is the metadata file name inside the task manager directory.
	FileName = ".init-metadata.json"
	// TrackedDir is the subtree whose files are fingerprinted.
	TrackedDir = "config"
)

// UntrackedPatterns lists paths (relative to the task manager directory)
// that are installed but never fingerprinted.
var UntrackedPatterns = []string{
	"config/scripts/**",
}

// Metadata is the persisted install record.
type Metadata struct {
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Files     map[string]string `json:"files"`
}

// TaskManagerDir returns <root>/.ai/task-manager.
func TaskManagerDir(root string) string {
	return filepath.Join(root, ".ai", "task-manager")
}

// Path returns the metadata file path for a project root.
func Path(root string) string {
	return filepath.Join(TaskManagerDir(root), FileName)
}

// IsTracked reports whether rel (slash-separated, relative to the task
// manager directory) belongs in the metadata record.
func IsTracked(rel string) bool {
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, TrackedDir+"/") {
		return false
	}
	for _, pattern := range UntrackedPatterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return false
		}
	}
	return true
}

// Load reads the metadata record at path.
// Returns nil if the file is absent, unreadable or not valid JSON.
func Load(fs afero.Fs, path string) *Metadata {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil
	}

	var m *Metadata
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return nil
	}
	if m.Files == nil {
		m.Files = map[string]string{}
	}
	return m
}

// Save writes m to path through a temp file and rename so a crash never
// leaves a truncated record behind.
func Save(fs afero.Fs, path string, m *Metadata) error {
	if m == nil {
		return fmt.Errorf("metadata is nil")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, ".init-metadata-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp metadata file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("writing temp metadata file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("closing temp metadata file: %w", err)
	}
	if err := fs.Chmod(tmpName, 0o644); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("setting metadata file mode: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("renaming metadata file: %w", err)
	}
	return nil
}

// Snapshot fingerprints every tracked file currently under baseDir (the
// task manager directory). A missing config/ subtree yields an empty map.
func Snapshot(fs afero.Fs, baseDir string) (map[string]string, error) {
	files := map[string]string{}
	trackedRoot := filepath.Join(baseDir, TrackedDir)

	if _, err := fs.Stat(trackedRoot); err != nil {
		if os.IsNotExist(err) {
			return files, nil
		}
		return nil, fmt.Errorf("reading %s: %w", trackedRoot, err)
	}

	err := afero.Walk(fs, trackedRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !IsTracked(rel) {
			return nil
		}
		hash, err := CalculateFileHash(fs, path)
		if err != nil {
			return err
		}
		files[rel] = hash
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fingerprinting %s: %w", trackedRoot, err)
	}
	return files, nil
}

// Rewrite replaces the record under baseDir with the current on-disk
// fingerprints. The version of a prior record is kept; toolVersion is only
// used for the first write.
//
// Paths in exclude are left out of the record even though they exist on
// disk. Init passes the files the user chose to keep: recording their
// current fingerprint would make the next run treat the user's version as
// pristine and refresh it without asking. Left unrecorded, they are offered
// again whenever they still differ from the bundled template.
func Rewrite(fs afero.Fs, baseDir string, prior *Metadata, toolVersion string, now time.Time, exclude ...string) (*Metadata, error) {
	files, err := Snapshot(fs, baseDir)
	if err != nil {
		return nil, err
	}
	for _, rel := range exclude {
		delete(files, filepath.ToSlash(rel))
	}

	version := toolVersion
	if prior != nil && prior.Version != "" {
		version = prior.Version
	}

	m := &Metadata{
		Version:   version,
		Timestamp: now.UTC(),
		Files:     files,
	}
	if err := Save(fs, filepath.Join(baseDir, FileName), m); err != nil {
		return nil, err
	}
	return m, nil
}
