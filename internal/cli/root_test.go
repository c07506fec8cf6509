package cli

import (
	"fmt"
	"testing"

	"github.com/ariel-frischer/taskmanager/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "taskmanager", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName string
		wantFlag bool
	}{
		"root flag exists":      {flagName: "root", wantFlag: true},
		"log-level flag exists": {flagName: "log-level", wantFlag: true},
		"no config flag":        {flagName: "config", wantFlag: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			if tt.wantFlag {
				assert.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			} else {
				assert.Nil(t, flag)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]string{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = c.GroupID
	}

	tests := map[string]struct {
		group string
	}{
		"init":     {group: GroupGettingStarted},
		"version":  {group: GroupGettingStarted},
		"commands": {group: GroupCommands},
		"convert":  {group: GroupCommands},
		"plan":     {group: GroupPlans},
	}

	for name, tt := range tests {
		name := name
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			group, ok := names[name]
			assert.True(t, ok, "missing subcommand %s", name)
			assert.Equal(t, tt.group, group)
		})
	}
}

func TestRootCmd_Groups(t *testing.T) {
	t.Parallel()

	ids := map[string]bool{}
	for _, g := range rootCmd.Groups() {
		ids[g.ID] = true
	}
	assert.True(t, ids[GroupGettingStarted])
	assert.True(t, ids[GroupCommands])
	assert.True(t, ids[GroupPlans])
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"argument error":      {err: errors.InvalidPlanID("x"), want: ExitInvalidArguments},
		"filesystem error":    {err: errors.PathValidationFailed([]string{"bad"}), want: ExitFilesystem},
		"configuration error": {err: errors.ConfigLoadFailed(fmt.Errorf("boom")), want: ExitConfig},
		"runtime error":       {err: errors.InstallIncomplete(2), want: ExitInstallErrors},
		"wrapped cli error":   {err: fmt.Errorf("outer: %w", errors.InvalidFormat("xml")), want: ExitInvalidArguments},
		"plain error":         {err: fmt.Errorf("plain"), want: ExitInstallErrors},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		constant int
		want     int
	}{
		"ExitSuccess":          {constant: ExitSuccess, want: 0},
		"ExitInstallErrors":    {constant: ExitInstallErrors, want: 1},
		"ExitInvalidArguments": {constant: ExitInvalidArguments, want: 3},
		"ExitFilesystem":       {constant: ExitFilesystem, want: 4},
		"ExitConfig":           {constant: ExitConfig, want: 5},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.constant)
		})
	}
}
