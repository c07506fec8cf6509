package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ariel-frischer/taskmanager/internal/errors"
	"github.com/ariel-frischer/taskmanager/internal/plans"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect and manage plans",
	Long: `Inspect and manage the plans under .ai/task-manager/plans/ and
.ai/task-manager/archive/.

A plan id may be given with or without leading zeros (1 and 01 are the
same plan). When an id exists in both roots the active plan is used.`,
}

var planShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a plan's summary and tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List active and archived plans",
	Args:    cobra.NoArgs,
	RunE:    runPlanList,
}

var planArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Move an active plan to the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanArchive,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a plan directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanDelete,
}

var planNextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Print the id the next plan should use",
	Args:  cobra.NoArgs,
	RunE:  runPlanNextID,
}

var planDeleteYes bool

func init() {
	planCmd.GroupID = GroupPlans
	planDeleteCmd.Flags().BoolVarP(&planDeleteYes, "yes", "y", false, "Delete without asking")
	planCmd.AddCommand(planShowCmd, planListCmd, planArchiveCmd, planDeleteCmd, planNextIDCmd)
	rootCmd.AddCommand(planCmd)
}

// parsePlanID accepts a positive decimal id such as "1" or "01".
func parsePlanID(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.TrimLeft(arg, "0123456789") != "" {
		return 0, errors.InvalidPlanID(arg)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, errors.InvalidPlanID(arg)
	}
	return id, nil
}

func planLocator(cmd *cobra.Command) (*plans.Locator, *project, error) {
	proj, err := loadProject(cmd)
	if err != nil {
		return nil, nil, err
	}
	return plans.NewLocator(proj.Root), proj, nil
}

// planError maps plans.ErrPlanNotFound to its CLI error.
func planError(err error, id int) error {
	if stderrors.Is(err, plans.ErrPlanNotFound) {
		return errors.PlanNotFound(id)
	}
	return errors.Wrap(err, errors.Runtime)
}

func planState(p *plans.Plan) string {
	if p.IsArchived {
		return "archived"
	}
	return "active"
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}
	locator, _, err := planLocator(cmd)
	if err != nil {
		return err
	}

	plan, err := locator.LoadPlanData(id)
	if err != nil {
		return planError(err, id)
	}
	if plan == nil {
		return errors.PlanNotFound(id)
	}

	printPlan(cmd.OutOrStdout(), plan)
	return nil
}

func printPlan(out io.Writer, plan *plans.Plan) {
	bold := color.New(color.Bold)

	bold.Fprintf(out, "Plan %s", plans.FormatID(plan.ID))
	if plan.Summary != "" {
		bold.Fprintf(out, ": %s", plan.Summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Status:    %s\n", planState(plan))
	fmt.Fprintf(out, "Directory: %s\n", plan.DirectoryPath)
	if plan.PlanFile != "" {
		fmt.Fprintf(out, "Document:  %s\n", plan.PlanFile)
	}

	if plan.ExecutiveSummary != "" {
		fmt.Fprintln(out)
		bold.Fprintln(out, "Executive Summary")
		fmt.Fprintln(out, plan.ExecutiveSummary)
	}

	fmt.Fprintln(out)
	if len(plan.Tasks) == 0 {
		fmt.Fprintln(out, "No tasks generated yet.")
		return
	}
	bold.Fprintf(out, "Tasks (%d)\n", len(plan.Tasks))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, t := range plan.Tasks {
		status := t.Status
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", plans.FormatID(t.ID), status)
	}
	tw.Flush()
}

func runPlanList(cmd *cobra.Command, args []string) error {
	locator, _, err := planLocator(cmd)
	if err != nil {
		return err
	}
	all, err := locator.List()
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}

	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintln(out, "No plans found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTASKS\tSUMMARY")
	for _, p := range all {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", plans.FormatID(p.ID), planState(p), len(p.Tasks), p.Summary)
	}
	return tw.Flush()
}

func runPlanArchive(cmd *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}
	locator, _, err := planLocator(cmd)
	if err != nil {
		return err
	}

	target, err := locator.Archive(id)
	if err != nil {
		return planError(err, id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archived plan %s to %s\n", plans.FormatID(id), target)
	return nil
}

func runPlanDelete(cmd *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}
	locator, proj, err := planLocator(cmd)
	if err != nil {
		return err
	}

	loc, err := locator.FindPlanByID(id)
	if err != nil {
		return planError(err, id)
	}
	if loc == nil {
		return errors.PlanNotFound(id)
	}

	if !planDeleteYes && !proj.Config.SkipConfirmations {
		if !promptYesNo(cmd, fmt.Sprintf("Delete %s?", loc.DirectoryPath)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := locator.Delete(id); err != nil {
		return planError(err, id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", plans.FormatID(id))
	return nil
}

func runPlanNextID(cmd *cobra.Command, args []string) error {
	locator, _, err := planLocator(cmd)
	if err != nil {
		return err
	}
	next, err := locator.NextPlanID()
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}
	fmt.Fprintln(cmd.OutOrStdout(), plans.FormatID(next))
	return nil
}
