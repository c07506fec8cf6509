// Package scaffold installs and re-initializes the task manager in a
// project: the configuration tree under .ai/task-manager, the command
// files of every configured assistant, and the metadata record used to
// detect user edits on the next run.
package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/ariel-frischer/taskmanager/internal/build"
	"github.com/ariel-frischer/taskmanager/internal/commands"
	"github.com/ariel-frischer/taskmanager/internal/install"
	"github.com/ariel-frischer/taskmanager/internal/logging"
	"github.com/ariel-frischer/taskmanager/internal/metadata"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Action describes what happened to one configuration file.
type Action string

const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionUnchanged   Action = "unchanged"
	ActionKept        Action = "kept"
	ActionOverwritten Action = "overwritten"
	ActionScript      Action = "script"
)

// FileOutcome records the action taken for one configuration file.
type FileOutcome struct {
	Path   string
	Action Action
}

// Options configures one Init run.
type Options struct {
	// Root is the project directory.
	Root string
	// Assistants lists the assistant ids to install commands for.
	Assistants []string
	// Install controls the command install pass.
	Install install.Options
	// Force overwrites modified configuration files without asking.
	Force bool
	// Resolver is consulted for modified files unless Force is set.
	// A nil Resolver keeps every modified file.
	Resolver ConflictResolver
	// Version is recorded on the first metadata write.
	Version string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Report summarizes an Init run.
type Report struct {
	// FirstTime is true when no usable metadata record existed.
	FirstTime bool
	// RecordedVersion is the version stored in the prior record, if any.
	RecordedVersion string
	// VersionMismatch is set when RecordedVersion and Options.Version
	// differ in their major version.
	VersionMismatch bool
	Config    []FileOutcome
	Conflicts []Conflict
	Commands  *install.MultiResult
	Metadata  *metadata.Metadata
}

// Count returns how many configuration files got action a.
func (r *Report) Count(a Action) int {
	n := 0
	for _, o := range r.Config {
		if o.Action == a {
			n++
		}
	}
	return n
}

// Scaffolder writes bundled templates into a destination filesystem.
type Scaffolder struct {
	templates afero.Fs
	commands  afero.Fs
	dst       afero.Fs
	log       zerolog.Logger
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithTemplates sets the configuration tree source; its root corresponds
// to <root>/.ai/task-manager.
func WithTemplates(fs afero.Fs) Option {
	return func(s *Scaffolder) { s.templates = fs }
}

// WithCommands sets the flat command template source.
func WithCommands(fs afero.Fs) Option {
	return func(s *Scaffolder) { s.commands = fs }
}

// WithDestFs sets the project filesystem.
func WithDestFs(fs afero.Fs) Option {
	return func(s *Scaffolder) { s.dst = fs }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scaffolder) { s.log = log }
}

// New creates a Scaffolder using the embedded templates and the OS
// filesystem.
func New(opts ...Option) *Scaffolder {
	s := &Scaffolder{
		templates: commands.TaskManagerFS(),
		commands:  commands.CommandsFS(),
		dst:       afero.NewOsFs(),
		log:       logging.Component("scaffold"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init installs or refreshes the task manager in opts.Root.
//
// Without a prior metadata record every configuration file is written.
// With one, files the user modified are handed to the resolver (or
// overwritten under Force), unmodified files are refreshed, and files the
// user added are left alone. Scripts are always rewritten. Commands are
// then installed for every assistant and the metadata record is rebuilt
// from what is on disk.
func (s *Scaffolder) Init(opts Options) (*Report, error) {
	cfg, err := assistant.NewConfig(opts.Root, opts.Assistants...)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	baseDir := metadata.TaskManagerDir(opts.Root)
	prior := metadata.Load(s.dst, metadata.Path(opts.Root))
	report := &Report{FirstTime: prior == nil}
	if prior != nil {
		report.RecordedVersion = prior.Version
		report.VersionMismatch = build.IsMajorVersionMismatch(prior.Version, opts.Version)
		if report.VersionMismatch {
			s.log.Warn().
				Str("recorded", prior.Version).
				Str("current", opts.Version).
				Msg("installed files come from a different major version")
		}
	}

	files, err := s.templateFiles()
	if err != nil {
		return nil, err
	}

	resolutions := map[string]Resolution{}
	if prior != nil {
		conflicts, err := s.conflicts(baseDir, prior, files)
		if err != nil {
			return nil, err
		}
		report.Conflicts = conflicts
		resolutions, err = s.resolve(conflicts, opts)
		if err != nil {
			return nil, fmt.Errorf("resolving conflicts: %w", err)
		}
	}

	for _, rel := range files {
		outcome, err := s.installConfigFile(baseDir, rel, prior == nil, resolutions)
		if err != nil {
			return nil, err
		}
		report.Config = append(report.Config, outcome)
	}

	installer := install.New(
		install.WithSourceFs(s.commands),
		install.WithDestFs(s.dst),
		install.WithLogger(s.log),
	)
	report.Commands = installer.InstallForAssistants(".", cfg, opts.Install)

	// Kept files stay unrecorded so the next run offers them again instead
	// of treating the user's version as pristine.
	var kept []string
	for _, o := range report.Config {
		if o.Action == ActionKept {
			kept = append(kept, o.Path)
		}
	}
	report.Metadata, err = metadata.Rewrite(s.dst, baseDir, prior, opts.Version, now(), kept...)
	if err != nil {
		return nil, fmt.Errorf("writing metadata: %w", err)
	}

	s.log.Info().
		Bool("first_time", report.FirstTime).
		Int("conflicts", len(report.Conflicts)).
		Bool("commands_ok", report.Commands.Success).
		Msg("init finished")
	return report, nil
}

// templateFiles lists the bundled tree as sorted slash paths.
func (s *Scaffolder) templateFiles() ([]string, error) {
	var files []string
	err := afero.Walk(s.templates, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing bundled configuration: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// conflicts collects bundled files the user changed: recorded files whose
// fingerprint moved, and unrecorded files that differ from the template.
func (s *Scaffolder) conflicts(baseDir string, prior *metadata.Metadata, files []string) ([]Conflict, error) {
	drift, err := metadata.DetectDrift(s.dst, baseDir, prior)
	if err != nil {
		return nil, fmt.Errorf("detecting modified files: %w", err)
	}

	bundled := make(map[string]bool, len(files))
	for _, rel := range files {
		bundled[rel] = true
	}

	candidates := append(append([]string{}, drift.Modified...), drift.New...)
	sort.Strings(candidates)

	var conflicts []Conflict
	for _, rel := range candidates {
		if !bundled[rel] {
			continue
		}
		incoming, err := afero.ReadFile(s.templates, rel)
		if err != nil {
			return nil, fmt.Errorf("reading bundled %s: %w", rel, err)
		}
		current, err := afero.ReadFile(s.dst, filepath.Join(baseDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		if bytes.Equal(current, incoming) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Path:       rel,
			Current:    current,
			Incoming:   incoming,
			Unrecorded: !drift.IsModified(rel),
		})
	}
	return conflicts, nil
}

func (s *Scaffolder) resolve(conflicts []Conflict, opts Options) (map[string]Resolution, error) {
	if len(conflicts) == 0 {
		return map[string]Resolution{}, nil
	}
	resolver := opts.Resolver
	switch {
	case opts.Force:
		resolver = ResolveAll(Overwrite)
	case resolver == nil:
		resolver = ResolveAll(Keep)
	}
	return resolver.Resolve(conflicts)
}

func (s *Scaffolder) installConfigFile(baseDir, rel string, firstTime bool, resolutions map[string]Resolution) (FileOutcome, error) {
	incoming, err := afero.ReadFile(s.templates, rel)
	if err != nil {
		return FileOutcome{}, fmt.Errorf("reading bundled %s: %w", rel, err)
	}
	dest := filepath.Join(baseDir, filepath.FromSlash(rel))
	outcome := FileOutcome{Path: rel}

	current, readErr := afero.ReadFile(s.dst, dest)
	exists := readErr == nil

	switch resolution, conflicted := resolutions[rel]; {
	case !metadata.IsTracked(rel):
		outcome.Action = ActionScript
	case conflicted && resolution == Keep:
		outcome.Action = ActionKept
		s.log.Debug().Str("file", rel).Msg("kept user version")
		return outcome, nil
	case conflicted:
		outcome.Action = ActionOverwritten
	case !exists:
		outcome.Action = ActionCreated
	case bytes.Equal(current, incoming):
		outcome.Action = ActionUnchanged
		return outcome, nil
	case firstTime:
		outcome.Action = ActionOverwritten
	default:
		outcome.Action = ActionUpdated
	}

	if err := s.dst.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return FileOutcome{}, fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := afero.WriteFile(s.dst, dest, incoming, fileMode(rel)); err != nil {
		return FileOutcome{}, fmt.Errorf("writing %s: %w", rel, err)
	}
	s.log.Debug().Str("file", rel).Str("action", string(outcome.Action)).Msg("config file written")
	return outcome, nil
}

func fileMode(rel string) fs.FileMode {
	if path.Ext(rel) == ".sh" {
		return 0o755
	}
	return 0o644
}
