// Package step simulates a single month from a state file
package step

import (
	"fmt"
	"io"

	"fjacquet/budget-sim/cmd/common"
	"fjacquet/budget-sim/cmd/root"
	"fjacquet/budget-sim/internal/engine"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/report"
	"fjacquet/budget-sim/internal/runner"
	"fjacquet/budget-sim/internal/store"

	"github.com/spf13/cobra"
)

var (
	stateFile  string
	choiceFile string
)

// Cmd represents the step command
var Cmd = &cobra.Command{
	Use:   "step",
	Short: "Simulate exactly one month",
	Long: `Simulate exactly one month from a state YAML file and an optional choice YAML file.

The state is not modified; the new state is part of the printed month result, so the
output of one step can seed the next. Without --choice nothing is planned for debts or
investments.

Example:
  budget-sim step --state state.yaml --choice choice.yaml -f json`,
	Run: stepFunc,
}

func init() {
	Cmd.Flags().StringVar(&stateFile, "state", "", "State YAML file (required)")
	Cmd.Flags().StringVar(&choiceFile, "choice", "", "Choice YAML file")
}

func stepFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
	}

	if err := Month(cmd.OutOrStdout(), stateFile, choiceFile, root.ReportFormat(), root.SharedFlags.Output,
		appContainer.GetReportGenerator(), logger); err != nil {
		logger.Fatalf("Error simulating month: %v", err)
	}
}

// Month loads a state and a choice, simulates one month and writes the result.
// Text output is followed by the month's notices.
func Month(w io.Writer, statePath, choicePath, format, output string, generator *report.Generator, logger logging.Logger) error {
	if statePath == "" {
		return fmt.Errorf("--state is required")
	}
	state, err := store.LoadState(statePath)
	if err != nil {
		return err
	}

	var choice models.ScenarioChoice
	if choicePath != "" {
		if choice, err = store.LoadChoice(choicePath); err != nil {
			return err
		}
	}

	result := engine.RunMonth(state, choice)
	logger.Debug("Month simulated",
		logging.F(logging.FieldFile, statePath),
		logging.F(logging.FieldMonth, result.NewState.Month),
		logging.F(logging.FieldCash, result.NewState.Cash))

	data, err := generator.GenerateMonth(result, format)
	if err != nil {
		return err
	}
	if format == "text" {
		data = append(data, plannedTotals(choice)...)
		if result.HasNotices() {
			for _, notice := range runner.Notices(result) {
				data = append(data, []byte("! "+notice+"\n")...)
			}
		}
	}

	return common.WriteOutput(w, output, data, logger)
}

// plannedTotals summarises what the choice's plans asked for, before cash caps.
func plannedTotals(choice models.ScenarioChoice) string {
	var debt, invest float64
	if choice.DebtPlan != nil {
		debt = choice.DebtPlan.TotalPlanned()
	}
	if choice.InvestPlan != nil {
		invest = choice.InvestPlan.TotalPlanned()
	}
	return fmt.Sprintf("  Total planned debt payments: %s  Total planned contributions: %s\n",
		models.FormatAmount(debt), models.FormatAmount(invest))
}
