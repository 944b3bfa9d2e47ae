package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"fjacquet/budget-sim/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomCase builds a state and choice from a seeded generator so failures reproduce.
func randomCase(r *rand.Rand) (models.ScenarioState, models.ScenarioChoice) {
	amount := func(max float64) float64 { return float64(r.Intn(int(max*100))) / 100 }

	state := models.ScenarioState{
		Month:  r.Intn(24),
		Cash:   amount(2000),
		Income: amount(5000),
	}
	choice := models.ScenarioChoice{
		VariableWantsAdjust: map[string]float64{},
		VariableNeedsAdjust: map[string]float64{},
		DebtPlan:            &models.AllocationPlan{Amounts: map[string]float64{}},
		InvestPlan:          &models.AllocationPlan{Amounts: map[string]float64{}},
	}

	for i := 0; i < r.Intn(4); i++ {
		id := fmt.Sprintf("vw%d", i)
		state.VariableWants = append(state.VariableWants, models.VariableCategory{ID: id, Planned: amount(600)})
		choice.VariableWantsAdjust[id] = amount(400) - 200
	}
	for i := 0; i < r.Intn(4); i++ {
		id := fmt.Sprintf("vn%d", i)
		state.VariableNeeds = append(state.VariableNeeds, models.VariableCategory{ID: id, Planned: amount(600)})
		choice.VariableNeedsAdjust[id] = amount(400) - 200
	}
	for i := 0; i < r.Intn(4); i++ {
		state.FixedExpenses = append(state.FixedExpenses, models.FixedExpenseItem{
			ID:          fmt.Sprintf("fx%d", i),
			BaseMonthly: amount(1500),
			Arrears:     amount(300),
		})
	}
	for i := 0; i < r.Intn(4); i++ {
		id := fmt.Sprintf("db%d", i)
		state.Debts = append(state.Debts, models.DebtAccount{ID: id, Balance: amount(8000), APR: amount(0.3)})
		if r.Intn(3) > 0 {
			choice.DebtPlan.Priority = append(choice.DebtPlan.Priority, id)
		}
		choice.DebtPlan.Amounts[id] = amount(1000)
	}
	for i := 0; i < r.Intn(4); i++ {
		id := fmt.Sprintf("iv%d", i)
		state.Investments = append(state.Investments, models.InvestmentAccount{ID: id, Balance: amount(5000), APR: amount(0.1)})
		if r.Intn(3) > 0 {
			choice.InvestPlan.Priority = append(choice.InvestPlan.Priority, id)
		}
		choice.InvestPlan.Amounts[id] = amount(800)
	}
	r.Shuffle(len(choice.DebtPlan.Priority), func(i, j int) {
		choice.DebtPlan.Priority[i], choice.DebtPlan.Priority[j] = choice.DebtPlan.Priority[j], choice.DebtPlan.Priority[i]
	})
	return state, choice
}

func TestRunMonth_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for n := 0; n < 500; n++ {
		state, choice := randomCase(r)
		result := RunMonth(state, choice)

		t.Run(fmt.Sprintf("case-%d", n), func(t *testing.T) {
			// Non-negativity
			require.GreaterOrEqual(t, result.NewState.Cash, 0.0)
			for _, f := range result.NewState.FixedExpenses {
				require.GreaterOrEqual(t, f.Arrears, 0.0)
			}
			for _, d := range result.NewState.Debts {
				require.GreaterOrEqual(t, d.Balance, 0.0)
			}

			// Conservation: net worth moves only by income, spend, interest and growth.
			expected := state.Income - result.WantsSummary.Actual - result.NeedsSummary.Actual
			for _, f := range result.FixedSummaries {
				expected -= f.Paid
			}
			for _, d := range result.DebtSummaries {
				expected -= d.Interest
			}
			for _, i := range result.InvestmentSummaries {
				expected += i.Growth
			}
			assert.InDelta(t, expected, result.NetWorthChange, 1e-6)

			// Cash flow: every actual payment came out of income plus starting cash.
			spent := result.WantsSummary.Actual + result.NeedsSummary.Actual
			for _, f := range result.FixedSummaries {
				spent += f.Paid
			}
			for _, d := range result.DebtSummaries {
				spent += d.ActualPayment
				assert.LessOrEqual(t, d.ActualPayment, d.OwedThisCycle+1e-9)
			}
			for _, i := range result.InvestmentSummaries {
				spent += i.ActualContribution
			}
			assert.InDelta(t, state.Cash+state.Income-spent, result.NewState.Cash, 1e-6)

			assert.Equal(t, state.Month+1, result.NewState.Month)
			assert.InDelta(t, result.NetWorthEnd-result.NetWorthStart, result.NetWorthChange, 1e-9)
			assert.InDelta(t, result.NewState.Cash-state.Cash, result.CashChange, 1e-9)
		})
	}
}

func TestRunMonth_ChainedMonthsKeepInvariants(t *testing.T) {
	state := creditCardState()
	choice := models.ScenarioChoice{
		DebtPlan:   plan(map[string]float64{"cc1": 400}, "cc1"),
		InvestPlan: plan(map[string]float64{"starter": 150}, "starter"),
	}

	paidOff := -1
	for month := 0; month < 24; month++ {
		result := RunMonth(state, choice)
		require.Equal(t, month+1, result.NewState.Month)
		require.GreaterOrEqual(t, result.NewState.Cash, 0.0)
		if paidOff < 0 && result.NewState.Debts[0].Balance == 0 {
			paidOff = result.NewState.Month
		}
		state = result.NewState
	}

	assert.Positive(t, paidOff, "debt should be paid off within two years at 400/month")
	assert.Equal(t, 0.0, state.Debts[0].Balance)
	assert.Greater(t, state.Investments[0].Balance, 24*150.0)
}
