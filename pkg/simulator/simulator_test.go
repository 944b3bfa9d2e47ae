package simulator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-sim/internal/scenario"
	"fjacquet/budget-sim/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarios(t *testing.T, dir string, cfgs ...Scenario) {
	t.Helper()
	s := store.NewScenarioStore(dir, nil)
	for _, cfg := range cfgs {
		_, err := s.Save(cfg)
		require.NoError(t, err)
	}
}

func TestRunMonth_LeavesInputUntouched(t *testing.T) {
	state := scenario.CreditCard().InitialState
	result := RunMonth(state, Choice{})

	assert.Equal(t, 1, result.NewState.Month)
	assert.Equal(t, 0, state.Month)
	assert.Equal(t, 3500.0, state.Debts[0].Balance)
}

func TestSimulateFile(t *testing.T) {
	dir := t.TempDir()
	writeScenarios(t, dir, scenario.CreditCard())
	path := filepath.Join(dir, scenario.CreditCardID+".yaml")

	tests := []struct {
		name     string
		months   int
		expected int
	}{
		{"to horizon", 0, 12},
		{"partial", 3, 3},
		{"capped at horizon", 40, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := SimulateFile(path, "", tt.months)
			require.NoError(t, err)
			assert.Len(t, run.Months, tt.expected)
			assert.Equal(t, scenario.CreditCardID, run.Scenario.ID)
		})
	}
}

func TestSimulateFile_WithPlan(t *testing.T) {
	dir := t.TempDir()
	writeScenarios(t, dir, scenario.CreditCard())
	plan := filepath.Join(dir, "plan.yml")
	require.NoError(t, os.WriteFile(plan, []byte(`default:
  debtPlan:
    priority: [cc1]
    amounts: {cc1: 500}
`), 0644))

	run, err := SimulateFile(filepath.Join(dir, scenario.CreditCardID+".yaml"), plan, 1)
	require.NoError(t, err)
	require.Len(t, run.Months, 1)
	assert.Equal(t, 500.0, run.Months[0].DebtSummaries[0].ActualPayment)
}

func TestSimulateFile_Errors(t *testing.T) {
	_, err := SimulateFile(filepath.Join(t.TempDir(), "missing.yaml"), "", 0)
	assert.Error(t, err)

	dir := t.TempDir()
	writeScenarios(t, dir, scenario.CreditCard())
	_, err = SimulateFile(filepath.Join(dir, scenario.CreditCardID+".yaml"), filepath.Join(dir, "nope.yaml"), 0)
	assert.Error(t, err)
}

func TestBatchSimulate(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "csv")
	writeScenarios(t, in, scenario.CreditCard(), scenario.TwoCards())
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("ignored"), 0644))

	count, err := BatchSimulate(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(filepath.Join(out, scenario.CreditCardID+".csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "month,cash,"))
}

func TestBatchSimulate_InvalidInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "csv")

	_, err := BatchSimulate(filepath.Join(t.TempDir(), "missing"), out)
	assert.ErrorContains(t, err, "invalid input directory")

	file := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(file, []byte("id: x\n"), 0644))
	_, err = BatchSimulate(file, out)
	assert.ErrorContains(t, err, "is not a directory")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
