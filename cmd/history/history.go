// Package history lists, shows and deletes archived runs
package history

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fjacquet/budget-sim/cmd/common"
	"fjacquet/budget-sim/cmd/root"
	"fjacquet/budget-sim/internal/history"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived runs",
	Long: `Browse runs archived by the run and batch commands. History must be enabled
with history.enabled.

Example:
  budget-sim history list -s credit_card_poc
  budget-sim history show 3 -f csv`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		repo, logger := repository()
		if err := List(cmd.Context(), cmd.OutOrStdout(), repo, root.SharedFlags.Scenario); err != nil {
			logger.Fatalf("Error listing runs: %v", err)
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the report of an archived run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, logger := repository()
		id, err := parseID(args[0])
		if err != nil {
			logger.Fatal(err.Error())
		}
		generator := root.GetContainer().GetReportGenerator()
		if err := Show(cmd.Context(), cmd.OutOrStdout(), repo, generator, id, root.ReportFormat(), root.SharedFlags.Output, logger); err != nil {
			logger.Fatalf("Error showing run: %v", err)
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete an archived run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, logger := repository()
		id, err := parseID(args[0])
		if err != nil {
			logger.Fatal(err.Error())
		}
		if err := repo.DeleteRun(contextOrBackground(cmd.Context()), id); err != nil {
			logger.Fatalf("Error deleting run: %v", err)
		}
		logger.Info("Run deleted", logging.F(logging.FieldRunID, id))
	},
}

func init() {
	Cmd.AddCommand(listCmd, showCmd, deleteCmd)
}

func repository() (*history.Repository, logging.Logger) {
	logger := root.GetLogrusAdapter()
	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
	}
	repo := appContainer.GetHistory()
	if repo == nil {
		logger.Fatal("Run history is disabled; set history.enabled to true")
	}
	return repo, logger
}

// List writes one line per archived run.
func List(ctx context.Context, w io.Writer, repo *history.Repository, scenarioID string) error {
	records, err := repo.ListRuns(contextOrBackground(ctx), scenarioID)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-20s %-17s %8s %14s\n", "ID", "SCENARIO", "STARTED", "MONTHS", "NET WORTH +/-")
	for _, r := range records {
		fmt.Fprintf(&b, "%-6d %-20s %-17s %4d/%-3d %14s\n",
			r.ID, r.ScenarioID, r.StartedAt.Local().Format(time.DateOnly+" 15:04"),
			r.MonthsRun, r.TotalMonths, models.FormatSignedAmount(r.NetWorthChange))
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// Show renders an archived run with the report generator.
func Show(ctx context.Context, w io.Writer, repo *history.Repository, generator *report.Generator, id int64, format, output string, logger logging.Logger) error {
	run, err := repo.GetRun(contextOrBackground(ctx), id)
	if err != nil {
		return err
	}
	data, err := generator.Generate(run, format)
	if err != nil {
		return err
	}
	return common.WriteOutput(w, output, data, logger)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid run id: %s", raw)
	}
	return id, nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
