package step

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stateYAML = `month: 0
cash: 600
income: 3000
variableWants:
  - {id: fun, name: Fun, planned: 200}
variableNeeds:
  - {id: groceries, name: Groceries, planned: 350}
fixedExpenses:
  - {id: rent, name: Rent, baseMonthly: 1400, arrears: 0}
debts:
  - {id: cc1, name: Credit Card, balance: 3500, apr: 0.1999}
investments:
  - {id: starter, name: Starter Index Fund, balance: 0, apr: 0.07}
`

func writeInputs(t *testing.T, choice string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.yaml")
	require.NoError(t, os.WriteFile(statePath, []byte(stateYAML), 0600))
	choicePath := filepath.Join(dir, "choice.yaml")
	require.NoError(t, os.WriteFile(choicePath, []byte(choice), 0600))
	return statePath, choicePath
}

func TestStepCommand_Metadata(t *testing.T) {
	assert.Equal(t, "step", Cmd.Use)
	assert.Contains(t, Cmd.Short, "one month")
	assert.NotNil(t, Cmd.Flags().Lookup("state"))
	assert.NotNil(t, Cmd.Flags().Lookup("choice"))
}

func TestMonth_JSON(t *testing.T) {
	statePath, choicePath := writeInputs(t, "debtPlan:\n  priority: [cc1]\n  amounts: {cc1: 100}\n")
	var buf bytes.Buffer

	err := Month(&buf, statePath, choicePath, "json", "", report.NewGenerator(nil, ','), logging.NewMockLogger())
	require.NoError(t, err)

	var result models.MonthResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 1, result.NewState.Month)
	assert.Equal(t, 1550.0, result.NewState.Cash)
	assert.InDelta(t, 3458.3041666, result.NewState.Debts[0].Balance, 1e-6)
	assert.True(t, result.DebtSummaries[0].MetMinimum)
}

func TestMonth_TextWithNotices(t *testing.T) {
	statePath, _ := writeInputs(t, "")
	var buf bytes.Buffer

	err := Month(&buf, statePath, "", "text", "", report.NewGenerator(nil, ','), logging.NewMockLogger())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Month 1")
	assert.Contains(t, out, "Total planned debt payments: 0.00")
	assert.Contains(t, out, "! Missed suggested minimums: Credit Card")
	assert.NotContains(t, out, "Unpaid fixed expenses")
}

func TestMonth_TextWithoutNotices(t *testing.T) {
	statePath, choicePath := writeInputs(t, `debtPlan:
  priority: [cc1]
  amounts: {cc1: 100}
investPlan:
  priority: [starter]
  amounts: {starter: 50, other: -20}
`)
	var buf bytes.Buffer

	err := Month(&buf, statePath, choicePath, "text", "", report.NewGenerator(nil, ','), logging.NewMockLogger())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Total planned debt payments: 100.00  Total planned contributions: 50.00")
	assert.NotContains(t, out, "! ")
}

func TestMonth_Errors(t *testing.T) {
	generator := report.NewGenerator(nil, ',')
	logger := logging.NewMockLogger()

	err := Month(&bytes.Buffer{}, "", "", "text", "", generator, logger)
	assert.EqualError(t, err, "--state is required")

	err = Month(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.yaml"), "", "text", "", generator, logger)
	assert.Error(t, err)

	statePath, choicePath := writeInputs(t, "debtPlan: [not, a, plan]\n")
	err = Month(&bytes.Buffer{}, statePath, choicePath, "text", "", generator, logger)
	assert.Error(t, err)
}
