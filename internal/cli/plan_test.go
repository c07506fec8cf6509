package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlanDoc = `---
id: 1
summary: "Add user authentication"
---

# Plan: Authentication

## Executive Summary

Introduce session based login.

## Context

Nothing yet.
`

// seedPlans creates active plan 01 with two tasks and archived plan 02.
func seedPlans(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	base := filepath.Join(root, ".ai", "task-manager")

	writeTestFile(t, filepath.Join(base, "plans", "01--auth", "plan-01--auth.md"), testPlanDoc)
	writeTestFile(t, filepath.Join(base, "plans", "01--auth", "tasks", "01--schema.md"), "---\nid: 1\nstatus: completed\n---\nSchema\n")
	writeTestFile(t, filepath.Join(base, "plans", "01--auth", "tasks", "02--login.md"), "---\nid: 2\nstatus: pending\n---\nLogin\n")
	writeTestFile(t, filepath.Join(base, "archive", "02--cleanup", "plan-02--cleanup.md"), "---\nid: 2\nsummary: \"Remove dead code\"\n---\n")
	return root
}

func TestParsePlanID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		arg     string
		want    int
		wantErr bool
	}{
		"plain":         {arg: "3", want: 3},
		"leading zeros": {arg: "03", want: 3},
		"zero":          {arg: "0", wantErr: true},
		"negative":      {arg: "-1", wantErr: true},
		"signed":        {arg: "+1", wantErr: true},
		"word":          {arg: "one", wantErr: true},
		"empty":         {arg: "", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parsePlanID(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitInvalidArguments, exitCodeFor(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanShow(t *testing.T) {
	tests := map[string]struct {
		id       string
		want     []string
		wantExit int
	}{
		"active plan with tasks": {
			id:   "1",
			want: []string{"Plan 01: Add user authentication", "Status:    active", "Introduce session based login.", "Tasks (2)", "completed", "pending"},
		},
		"archived plan": {
			id:   "02",
			want: []string{"Plan 02: Remove dead code", "Status:    archived", "No tasks generated yet."},
		},
		"unknown plan": {
			id:       "9",
			wantExit: ExitInvalidArguments,
		},
		"invalid id": {
			id:       "abc",
			wantExit: ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			root := seedPlans(t)

			out, err := execute(t, "", "plan", "show", tt.id, "--root", root)
			if tt.wantExit != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantExit, exitCodeFor(err))
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestPlanList(t *testing.T) {
	isolateEnv(t)
	root := seedPlans(t)

	out, err := execute(t, "", "plan", "list", "--root", root)
	require.NoError(t, err)
	assert.Regexp(t, `01\s+active\s+2\s+Add user authentication`, out)
	assert.Regexp(t, `02\s+archived\s+0\s+Remove dead code`, out)

	out, err = execute(t, "", "plan", "ls", "--root", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No plans found.")
}

func TestPlanArchive(t *testing.T) {
	isolateEnv(t)
	root := seedPlans(t)

	out, err := execute(t, "", "plan", "archive", "1", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Archived plan 01")
	assert.DirExists(t, filepath.Join(root, ".ai", "task-manager", "archive", "01--auth"))
	assert.NoDirExists(t, filepath.Join(root, ".ai", "task-manager", "plans", "01--auth"))

	_, err = execute(t, "", "plan", "archive", "1", "--root", root)
	require.Error(t, err, "archiving an archived plan fails")

	_, err = execute(t, "", "plan", "archive", "7", "--root", root)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, exitCodeFor(err))
}

func TestPlanDelete(t *testing.T) {
	tests := map[string]struct {
		args        []string
		stdin       string
		wantDeleted bool
	}{
		"confirmed":      {stdin: "y\n", wantDeleted: true},
		"declined":       {stdin: "n\n", wantDeleted: false},
		"no answer":      {stdin: "", wantDeleted: false},
		"yes flag skips": {args: []string{"--yes"}, wantDeleted: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			root := seedPlans(t)
			dir := filepath.Join(root, ".ai", "task-manager", "plans", "01--auth")

			args := append([]string{"plan", "delete", "1", "--root", root}, tt.args...)
			out, err := execute(t, tt.stdin, args...)
			require.NoError(t, err)

			if tt.wantDeleted {
				assert.NoDirExists(t, dir)
				assert.Contains(t, out, "Deleted plan 01")
			} else {
				assert.DirExists(t, dir)
				assert.Contains(t, out, "Aborted.")
			}
		})
	}
}

func TestPlanDelete_SkipConfirmationsEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TASKMANAGER_YES", "1")
	root := seedPlans(t)

	_, err := execute(t, "", "plan", "delete", "2", "--root", root)
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(root, ".ai", "task-manager", "archive", "02--cleanup"))
}

func TestPlanNextID(t *testing.T) {
	isolateEnv(t)
	root := seedPlans(t)

	out, err := execute(t, "", "plan", "next-id", "--root", root)
	require.NoError(t, err)
	assert.Equal(t, "03\n", out)
}
