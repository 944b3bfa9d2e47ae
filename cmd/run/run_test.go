package run

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-sim/internal/config"
	"fjacquet/budget-sim/internal/container"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/scenario"
	"fjacquet/budget-sim/internal/simerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T, history, enforce bool) *container.Container {
	t.Helper()
	return newLoggedTestContainer(t, history, enforce, nil)
}

func newLoggedTestContainer(t *testing.T, history, enforce bool, logger logging.Logger) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Scenarios.Directory = filepath.Join(t.TempDir(), "scenarios")
	cfg.History.Enabled = history
	cfg.History.DBPath = filepath.Join(t.TempDir(), "history.db")
	cfg.Report.Format = "text"
	cfg.Report.CSVDelimiter = ","
	cfg.Simulation.EnforceHorizon = enforce
	cfg.Simulation.Workers = 1

	c, err := container.NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRunCommand_Metadata(t *testing.T) {
	assert.Equal(t, "run", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Run a scenario")
	assert.Contains(t, Cmd.Long, "Example")
	assert.NotNil(t, Cmd.Run)
}

func TestScenario_RunsToHorizon(t *testing.T) {
	c := newTestContainer(t, false, true)
	var buf bytes.Buffer

	run, err := Scenario(context.Background(), c, Options{ScenarioID: scenario.CreditCardID, Format: "text"}, &buf)
	require.NoError(t, err)
	assert.Len(t, run.Months, 12)
	assert.Zero(t, run.ID)
	assert.Contains(t, buf.String(), "Months simulated: 12 of 12")
}

func TestScenario_MonthsRespectHorizon(t *testing.T) {
	tests := []struct {
		name     string
		enforce  bool
		months   int
		expected int
	}{
		{"within horizon", true, 3, 3},
		{"stops at horizon", true, 20, 12},
		{"advisory horizon", false, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContainer(t, false, tt.enforce)
			run, err := Scenario(context.Background(), c, Options{ScenarioID: scenario.CreditCardID, Months: tt.months, Format: "json"}, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Len(t, run.Months, tt.expected)
		})
	}
}

func TestScenario_WarnsWhenMonthsExceedHorizon(t *testing.T) {
	tests := []struct {
		name    string
		enforce bool
		months  int
		warned  bool
	}{
		{"beyond enforced horizon", true, 2000000000, true},
		{"within horizon", true, 12, false},
		{"advisory horizon", false, 13, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewMockLogger()
			c := newLoggedTestContainer(t, false, tt.enforce, logger)

			_, err := Scenario(context.Background(), c, Options{ScenarioID: scenario.CreditCardID, Months: tt.months, Format: "json"}, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.warned, logger.HasEntry("WARN", "Stopped at the scenario horizon"))
		})
	}
}

func TestScenario_PlanAndCSVOutput(t *testing.T) {
	c := newTestContainer(t, true, true)
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte("default:\n  debtPlan:\n    priority: [cc1]\n    amounts: {cc1: 100}\n"), 0600))
	output := filepath.Join(dir, "run.csv")

	run, err := Scenario(context.Background(), c, Options{
		ScenarioID: scenario.CreditCardID,
		PlanFile:   plan,
		Months:     1,
		Format:     "csv",
		Output:     output,
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Positive(t, run.ID)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "1,1550.00,950.00,"))

	archived, err := c.GetHistory().GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, archived.Months, 1)
}

func TestScenario_Errors(t *testing.T) {
	c := newTestContainer(t, false, true)

	_, err := Scenario(context.Background(), c, Options{ScenarioID: "unknown", Format: "text"}, &bytes.Buffer{})
	assert.True(t, simerror.IsNotFound(err))

	_, err = Scenario(context.Background(), c, Options{ScenarioID: scenario.CreditCardID, Months: -1, Format: "text"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Scenario(context.Background(), c, Options{ScenarioID: scenario.CreditCardID, Format: "pdf"}, &bytes.Buffer{})
	assert.EqualError(t, err, "unsupported report format: pdf")
}
