// Package run simulates one scenario over several months
package run

import (
	"context"
	"fmt"
	"io"

	"fjacquet/budget-sim/cmd/common"
	"fjacquet/budget-sim/cmd/root"
	"fjacquet/budget-sim/internal/container"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/runner"

	"github.com/spf13/cobra"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario month by month",
	Long: `Run a scenario from its initial state until its horizon, or for --months months.

Each month uses the plan schedule given with --plan. Without a plan every debt and
investment keeps its data order with nothing planned, so only wants, needs and fixed
expenses are paid. The report is printed or written to --output, and the run is archived
when history is enabled.

Example:
  budget-sim run -s credit_card_poc -p plan.yaml -f csv -o run.csv`,
	Run: runFunc,
}

// Options selects what to simulate and how to report it.
type Options struct {
	ScenarioID string
	PlanFile   string
	Months     int
	Format     string
	Output     string
}

func runFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
	}

	opts := Options{
		ScenarioID: root.ScenarioID(),
		PlanFile:   root.SharedFlags.Plan,
		Months:     root.SharedFlags.Months,
		Format:     root.ReportFormat(),
		Output:     root.SharedFlags.Output,
	}
	if _, err := Scenario(cmd.Context(), appContainer, opts, cmd.OutOrStdout()); err != nil {
		logger.Fatalf("Error running scenario: %v", err)
	}
}

// Scenario simulates the selected scenario, archives it when history is enabled and
// writes the report.
func Scenario(ctx context.Context, c *container.Container, opts Options, w io.Writer) (models.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Months < 0 {
		return models.Run{}, fmt.Errorf("months must not be negative, got %d", opts.Months)
	}
	logger := c.GetLogger().WithField(logging.FieldOperation, "run")

	cfg, err := c.GetCatalog().Get(opts.ScenarioID)
	if err != nil {
		return models.Run{}, err
	}

	schedule, err := common.LoadSchedule(opts.PlanFile, cfg.InitialState)
	if err != nil {
		return models.Run{}, err
	}

	session := runner.NewSession(cfg, c.SessionOptions())
	if opts.Months > 0 {
		_, err = session.FastForward(opts.Months, schedule)
	} else {
		_, err = session.RunToHorizon(schedule)
	}
	if err != nil {
		return models.Run{}, err
	}

	result := session.Run()
	if opts.Months > len(result.Months) {
		logger.Warn("Stopped at the scenario horizon",
			logging.F(logging.FieldScenario, cfg.ID),
			logging.F(logging.FieldTotalMonths, cfg.TotalMonths),
			logging.F("requested_months", opts.Months))
	}
	logger.Info("Scenario simulated",
		logging.F(logging.FieldScenario, cfg.ID),
		logging.F(logging.FieldCount, len(result.Months)),
		logging.F(logging.FieldNetWorth, result.FinalState().NetWorth()))

	if result.ID, err = common.ArchiveRun(ctx, c.GetHistory(), result, logger); err != nil {
		return models.Run{}, err
	}

	data, err := c.GetReportGenerator().Generate(result, opts.Format)
	if err != nil {
		return models.Run{}, err
	}
	if err := common.WriteOutput(w, opts.Output, data, logger); err != nil {
		return models.Run{}, err
	}
	return result, nil
}
