package plans

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// PlanFilePattern matches the plan document inside a plan directory.
const PlanFilePattern = "plan-*.md"

// executiveSummaryHeading is compared case-insensitively.
const executiveSummaryHeading = "executive summary"

// Task is the id and status of one task file.
type Task struct {
	ID     int
	Status string
	Path   string
}

// Plan is a plan document with its tasks.
type Plan struct {
	ID               int
	Summary          string
	IsArchived       bool
	ExecutiveSummary string
	Tasks            []Task
	DirectoryPath    string
	PlanFile         string
}

// LoadPlanData locates plan id and reads its document and tasks.
// Returns nil when no plan directory exists for id.
func (l *Locator) LoadPlanData(id int) (*Plan, error) {
	loc, err := l.FindPlanByID(id)
	if err != nil {
		return nil, fmt.Errorf("locating plan %d: %w", id, err)
	}
	if loc == nil {
		return nil, nil
	}
	return l.load(*loc)
}

func (l *Locator) load(loc Location) (*Plan, error) {
	plan := &Plan{
		IsArchived:    loc.IsArchived,
		DirectoryPath: loc.DirectoryPath,
		Tasks:         []Task{},
	}
	plan.ID, _ = ParseID(filepath.Base(loc.DirectoryPath))

	planFile, err := l.planFile(loc.DirectoryPath)
	if err != nil {
		return nil, err
	}
	if planFile != "" {
		data, err := afero.ReadFile(l.fs, planFile)
		if err != nil {
			return nil, fmt.Errorf("reading plan file: %w", err)
		}
		doc := frontmatter.Parse(string(data))
		if n, ok := intField(doc, "id"); ok {
			plan.ID = n
		}
		plan.Summary, _ = doc.String("summary")
		plan.ExecutiveSummary = ExtractSection(doc.Body, executiveSummaryHeading)
		plan.PlanFile = planFile
	}

	tasks, err := l.loadTasks(filepath.Join(loc.DirectoryPath, TasksDir))
	if err != nil {
		return nil, err
	}
	plan.Tasks = tasks
	return plan, nil
}

// planFile returns the plan-*.md document of dir, or "" when there is none.
func (l *Locator) planFile(dir string) (string, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return "", fmt.Errorf("reading plan directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(PlanFilePattern, entry.Name()); ok {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", nil
}

func (l *Locator) loadTasks(dir string) ([]Task, error) {
	tasks := []Task{}
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return tasks, nil
		}
		return nil, fmt.Errorf("reading tasks directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := afero.ReadFile(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("reading task file: %w", err)
		}

		doc := frontmatter.Parse(string(data))
		id, ok := intField(doc, "id")
		if !ok {
			id, ok = ParseID(entry.Name())
		}
		if !ok {
			l.log.Debug().Str("file", path).Msg("skipping task without id")
			continue
		}
		status, _ := doc.String("status")
		tasks = append(tasks, Task{ID: id, Status: status, Path: path})
	}

	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func intField(doc frontmatter.Document, key string) (int, bool) {
	s, ok := doc.String(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ExtractSection returns the text under the first markdown heading whose
// title equals heading (case-insensitive), up to the next heading of any
// level. Lines inside fenced code blocks are never treated as headings.
func ExtractSection(body, heading string) string {
	var (
		out     []string
		inside  bool
		inFence bool
	)

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(trimmed, "#") {
			if inside {
				break
			}
			title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if strings.EqualFold(title, heading) {
				inside = true
			}
			continue
		}
		if inside {
			out = append(out, line)
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
