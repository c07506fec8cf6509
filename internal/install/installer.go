package install

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/ariel-frischer/taskmanager/internal/convert"
	"github.com/ariel-frischer/taskmanager/internal/frontmatter"
	"github.com/ariel-frischer/taskmanager/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// CommandExtension is the extension of source command files.
const CommandExtension = ".md"

// Installer installs command files from a source filesystem into a
// destination filesystem. The zero value is not usable; call New.
type Installer struct {
	src afero.Fs
	dst afero.Fs
	log zerolog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithSourceFs sets the filesystem command files are read from.
func WithSourceFs(fs afero.Fs) Option {
	return func(in *Installer) { in.src = fs }
}

// WithDestFs sets the filesystem command files are written to.
func WithDestFs(fs afero.Fs) Option {
	return func(in *Installer) { in.dst = fs }
}

// WithFs sets both source and destination filesystems.
func WithFs(fs afero.Fs) Option {
	return func(in *Installer) {
		in.src = fs
		in.dst = fs
	}
}

// WithLogger sets the logger used for per-file decisions.
func WithLogger(log zerolog.Logger) Option {
	return func(in *Installer) { in.log = log }
}

// New creates an Installer on the OS filesystem.
func New(opts ...Option) *Installer {
	in := &Installer{
		src: afero.NewOsFs(),
		dst: afero.NewOsFs(),
		log: logging.Component("install"),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// DestinationDir returns <destRoot>/.ai/<id>/tasks.
func DestinationDir(destRoot string, id assistant.ID) string {
	return filepath.Join(destRoot, ".ai", string(id), "tasks")
}

// CommandFiles lists the markdown files directly under sourceDir, sorted by
// filename, and parses each one. An empty directory yields an empty slice.
// A file that cannot be read is returned with Err set.
func (in *Installer) CommandFiles(sourceDir string) ([]CommandFile, error) {
	entries, err := afero.ReadDir(in.src, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("Failed to load commands from %s: %w", sourceDir, err)
	}

	files := make([]CommandFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), CommandExtension) {
			continue
		}

		cf := CommandFile{
			Filename: entry.Name(),
			FilePath: filepath.Join(sourceDir, entry.Name()),
		}
		raw, err := afero.ReadFile(in.src, cf.FilePath)
		if err != nil {
			cf.Err = err
			files = append(files, cf)
			continue
		}
		cf.Raw = raw
		cf.Document = frontmatter.Parse(string(raw))
		files = append(files, cf)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Filename < files[j].Filename
	})
	return files, nil
}

// InstallForAssistant installs every command file of sourceDir for one
// assistant. It returns an error only for an unrecognized assistant, which
// is checked before touching the filesystem, or when sourceDir cannot be
// listed. Everything else is recorded in the Result.
func (in *Installer) InstallForAssistant(sourceDir, destRoot string, id assistant.ID, opts Options) (*Result, error) {
	if err := assistant.Validate(string(id)); err != nil {
		return nil, err
	}

	files, err := in.CommandFiles(sourceDir)
	if err != nil {
		return nil, err
	}

	log := in.log.With().Str("assistant", string(id)).Logger()
	result := newResult()

	destDir := DestinationDir(destRoot, id)
	if err := in.dst.MkdirAll(destDir, 0o755); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("creating %s: %v", destDir, err))
		log.Error().Err(err).Str("dir", destDir).Msg("cannot create destination directory")
		return result, nil
	}

	format := opts.Format.Resolve(id)
	for _, cf := range files {
		in.installFile(cf, destDir, format, opts, result, log)
	}

	log.Debug().
		Int("installed", len(result.Installed)).
		Int("skipped", len(result.Skipped)).
		Int("errors", len(result.Errors)).
		Msg("assistant install finished")
	return result, nil
}

func (in *Installer) installFile(cf CommandFile, destDir string, format assistant.Format, opts Options, result *Result, log zerolog.Logger) {
	if cf.Err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: reading file: %v", cf.Filename, cf.Err))
		log.Warn().Err(cf.Err).Str("file", cf.Filename).Msg("unreadable command file")
		return
	}

	if opts.Validate && !cf.Valid() {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: missing required frontmatter field \"description\"", cf.Filename))
		log.Warn().Str("file", cf.Filename).Msg("invalid command file")
		return
	}

	name := cf.Filename
	content := cf.Raw
	if format == assistant.FormatTOML {
		name = convert.TOMLFilename(cf.Filename)
		content = []byte(convert.DocumentToTOML(cf.Document))
	}
	destPath := filepath.Join(destDir, name)

	exists, err := afero.Exists(in.dst, destPath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: checking destination: %v", name, err))
		return
	}
	if exists && !opts.Overwrite {
		result.Skipped = append(result.Skipped, name)
		log.Debug().Str("file", name).Msg("skipped existing file")
		return
	}

	if err := afero.WriteFile(in.dst, destPath, content, 0o644); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: writing file: %v", name, err))
		log.Warn().Err(err).Str("file", name).Msg("write failed")
		return
	}
	result.Installed = append(result.Installed, name)
	log.Debug().Str("file", name).Str("format", string(format)).Msg("installed")
}

// ValidatePaths checks that sourceDir is a readable directory and that
// destRoot can be created and written to.
func (in *Installer) ValidatePaths(sourceDir, destRoot string) error {
	info, err := in.src.Stat(sourceDir)
	if err != nil {
		return fmt.Errorf("source directory %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", sourceDir)
	}
	if _, err := afero.ReadDir(in.src, sourceDir); err != nil {
		return fmt.Errorf("source directory %s is not readable: %w", sourceDir, err)
	}

	if err := in.dst.MkdirAll(destRoot, 0o755); err != nil {
		return fmt.Errorf("destination %s: %w", destRoot, err)
	}
	probe, err := afero.TempFile(in.dst, destRoot, ".taskmanager-write-test-*")
	if err != nil {
		return fmt.Errorf("destination %s is not writable: %w", destRoot, err)
	}
	name := probe.Name()
	probe.Close()
	if err := in.dst.Remove(name); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cleaning up write probe in %s: %w", destRoot, err)
	}
	return nil
}
