// Package batch runs every scenario in the catalog concurrently
package batch

import (
	"context"
	"io"

	"fjacquet/budget-sim/cmd/common"
	"fjacquet/budget-sim/cmd/root"
	"fjacquet/budget-sim/internal/container"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/runner"
	"fjacquet/budget-sim/internal/scenario"
	"fjacquet/budget-sim/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch run every scenario to its horizon",
	Long: `Batch run every built-in and custom scenario to its horizon and print one summary
line per scenario.

Scenarios run concurrently, up to simulation.workers at a time. With --plan the same
plan schedule is used for every scenario; otherwise each scenario uses its default plan.
Every run is archived when history is enabled.

Example:
  budget-sim batch -f csv -o summary.csv`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
	}

	runs, err := All(cmd.Context(), appContainer, root.SharedFlags.Plan, root.ReportFormat(), root.SharedFlags.Output, cmd.OutOrStdout())
	if err != nil {
		logger.Fatalf("Error during batch run: %v", err)
	}

	logger.Info("Batch run completed", logging.F(logging.FieldCount, len(runs)))
}

// All runs the whole catalog and writes the summary report.
func All(ctx context.Context, c *container.Container, planFile, format, output string, w io.Writer) ([]models.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger().WithField(logging.FieldOperation, "batch")

	scheduleFor := func(cfg models.ScenarioConfig) runner.PlanSchedule {
		return runner.FixedSchedule(scenario.DefaultChoice(cfg.InitialState))
	}
	if planFile != "" {
		shared, err := store.LoadSchedule(planFile)
		if err != nil {
			return nil, err
		}
		scheduleFor = func(models.ScenarioConfig) runner.PlanSchedule { return shared }
	}

	configs := c.GetCatalog().All()
	logger.Info("Running scenarios",
		logging.F(logging.FieldCount, len(configs)),
		logging.F("workers", c.GetConfig().Simulation.Workers))

	runs, err := runner.RunAll(ctx, configs, scheduleFor, c.GetConfig().Simulation.Workers, c.SessionOptions())
	if err != nil {
		return nil, err
	}

	for i := range runs {
		if runs[i].ID, err = common.ArchiveRun(ctx, c.GetHistory(), runs[i], logger); err != nil {
			return nil, err
		}
	}

	data, err := c.GetReportGenerator().GenerateSummary(runs, format)
	if err != nil {
		return nil, err
	}
	if err := common.WriteOutput(w, output, data, logger); err != nil {
		return nil, err
	}
	return runs, nil
}
