// Package commands provides the embedded command templates and the
// default task manager configuration tree.
package commands

import (
	"fmt"

	"github.com/ariel-frischer/taskmanager/internal/frontmatter"
)

// CommandTemplate represents an embedded command template.
type CommandTemplate struct {
	Name         string // Filename without extension (e.g., "create-plan")
	Description  string // Description from YAML frontmatter
	ArgumentHint string // argument-hint from YAML frontmatter, if any
	Content      []byte // Raw markdown content
}

// ListTemplates returns every embedded command template with its
// frontmatter fields resolved, ordered by name.
func ListTemplates() ([]CommandTemplate, error) {
	names, err := GetTemplateNames()
	if err != nil {
		return nil, fmt.Errorf("listing embedded templates: %w", err)
	}

	templates := make([]CommandTemplate, 0, len(names))
	for _, name := range names {
		tpl, err := GetTemplateInfo(name)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// GetTemplateInfo loads one embedded template by name.
func GetTemplateInfo(name string) (CommandTemplate, error) {
	content, err := GetTemplate(name)
	if err != nil {
		return CommandTemplate{}, fmt.Errorf("template %q not found: %w", name, err)
	}

	doc := frontmatter.Parse(string(content))
	description, _ := doc.String("description")
	hint, ok := doc.String("argument-hint")
	if !ok {
		hint, _ = doc.String("argumentHint")
	}

	return CommandTemplate{
		Name:         name,
		Description:  description,
		ArgumentHint: hint,
		Content:      content,
	}, nil
}
