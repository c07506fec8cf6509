package commands

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Assets embeds the default command templates and the task manager
// configuration tree.
//
//go:embed all:templates
var Assets embed.FS

const (
	// CommandsRoot holds the flat directory of command templates.
	CommandsRoot = "templates/commands"
	// TaskManagerRoot mirrors <root>/.ai/task-manager.
	TaskManagerRoot = "templates/task-manager"
)

// CommandsFS returns the command templates as a read-only filesystem
// rooted at the templates directory, suitable as an installer source
// with source dir ".".
func CommandsFS() afero.Fs {
	return subFS(CommandsRoot)
}

// TaskManagerFS returns the configuration tree as a read-only filesystem
// whose root corresponds to <root>/.ai/task-manager.
func TaskManagerFS() afero.Fs {
	return subFS(TaskManagerRoot)
}

func subFS(dir string) afero.Fs {
	sub, err := fs.Sub(Assets, dir)
	if err != nil {
		// dir is a compile-time constant inside the embedded tree
		panic(err)
	}
	return afero.FromIOFS{FS: sub}
}

// GetTemplateNames returns the embedded command names without extension.
func GetTemplateNames() ([]string, error) {
	entries, err := Assets.ReadDir(CommandsRoot)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".md") {
			names = append(names, strings.TrimSuffix(name, ".md"))
		}
	}
	return names, nil
}

// GetTemplate retrieves a command template by name (without extension).
func GetTemplate(name string) ([]byte, error) {
	return Assets.ReadFile(path.Join(CommandsRoot, name+".md"))
}
