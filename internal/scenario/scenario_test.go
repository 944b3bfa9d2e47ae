package scenario

import (
	"sync"
	"testing"
	"time"

	"fjacquet/budget-sim/internal/engine"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/simerror"
	"fjacquet/budget-sim/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInsAreValid(t *testing.T) {
	for _, cfg := range BuiltIns() {
		t.Run(cfg.ID, func(t *testing.T) {
			assert.NoError(t, validation.ValidateScenario(cfg))
			assert.Equal(t, 0, cfg.InitialState.Month)
		})
	}
}

func TestCreditCard_FirstMonth(t *testing.T) {
	cfg := CreditCard()
	choice := models.ScenarioChoice{
		DebtPlan: &models.AllocationPlan{Priority: []string{"cc1"}, Amounts: map[string]float64{"cc1": 100}},
	}

	result := engine.RunMonth(cfg.InitialState, choice)
	assert.Equal(t, 1550.0, result.NewState.Cash)
	assert.Equal(t, 1, result.NewState.Month)
	assert.Equal(t, 12, cfg.TotalMonths)
}

func TestCatalog_GetReturnsCopies(t *testing.T) {
	c := NewCatalog()

	cfg, err := c.Get(CreditCardID)
	require.NoError(t, err)
	cfg.InitialState.Debts[0].Balance = 0

	again, err := c.Get(CreditCardID)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, again.InitialState.Debts[0].Balance)
}

func TestCatalog_GetMissing(t *testing.T) {
	_, err := NewCatalog().Get("nope")
	require.Error(t, err)
	assert.True(t, simerror.IsNotFound(err))
}

func TestCatalog_AddAndAll(t *testing.T) {
	c := NewCatalog()
	custom, err := NewBuilder().WithID("aaa-custom").AddFixed("Rent", 900).Build()
	require.NoError(t, err)

	require.NoError(t, c.Add(custom))
	assert.Equal(t, 4, c.Len())
	assert.False(t, c.IsBuiltIn("aaa-custom"))
	assert.True(t, c.IsBuiltIn(CreditCardID))

	all := c.All()
	require.Len(t, all, 4)
	// Built-ins come first even when a custom id sorts earlier.
	assert.Equal(t, CreditCardID, all[0].ID)
	assert.Equal(t, "aaa-custom", all[3].ID)

	err = c.Add(custom)
	var vErr *simerror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "id", vErr.Field)
}

func TestCatalog_AddRejectsInvalid(t *testing.T) {
	c := NewCatalog()
	err := c.Add(models.ScenarioConfig{ID: "x", Title: "X", TotalMonths: 0})
	assert.Error(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	c := NewCatalog()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Get(CreditCardID)
			_ = c.All()
		}()
	}
	wg.Wait()
}

func TestBuilder_AssignsIDsAndDefaults(t *testing.T) {
	clock := func() time.Time { return time.UnixMilli(1700000000000) }

	cfg, err := NewBuilder().
		WithClock(clock).
		WithCash(1000).
		WithIncome(3000).
		AddWant("Fun", 200).
		AddWant("Dining out", 100).
		AddNeed("Groceries", 350).
		AddFixed("Rent", 1400).
		AddFixed("Utilities", 150).
		AddDebt("Credit Card", 3500, 0.1999, 25).
		AddDebt("Store Card", 400, 0.25, 0).
		AddInvestment("Starter Index Fund", 0, 0.07).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "custom-1700000000000", cfg.ID)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultDescription, cfg.Description)
	assert.Equal(t, DefaultTotalMonths, cfg.TotalMonths)

	s := cfg.InitialState
	assert.Equal(t, 0, s.Month)
	assert.Equal(t, []string{"vw0", "vw1"}, []string{s.VariableWants[0].ID, s.VariableWants[1].ID})
	assert.Equal(t, "vn0", s.VariableNeeds[0].ID)
	assert.Equal(t, "fx1", s.FixedExpenses[1].ID)
	assert.Equal(t, 0.0, s.FixedExpenses[1].Arrears)
	assert.Equal(t, []string{"db0", "db1"}, s.DebtIDs())
	require.NotNil(t, s.Debts[0].MinimumRule)
	assert.Equal(t, 25.0, s.Debts[0].MinimumRule.Base)
	assert.Nil(t, s.Debts[1].MinimumRule)
	assert.Equal(t, []string{"iv0"}, s.InvestmentIDs())
}

func TestNormalizeRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected float64
	}{
		{"decimal kept", 0.1999, 0.1999},
		{"one is a decimal", 1, 1},
		{"percentage converted", 19.99, 0.1999},
		{"whole percentage", 7, 0.07},
		{"zero", 0, 0},
		{"negative kept", -0.02, -0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeRate(tt.rate), 1e-12)
		})
	}
}

func TestBuilder_PercentRates(t *testing.T) {
	cfg, err := NewBuilder().
		WithTitle("Rates").
		AddDebt("Visa", 2800, 19.99, 0).
		AddInvestment("Fund", 100, 5).
		Build()
	require.NoError(t, err)

	assert.InDelta(t, 0.1999, cfg.InitialState.Debts[0].APR, 1e-12)
	assert.InDelta(t, 0.05, cfg.InitialState.Investments[0].APR, 1e-12)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := NewBuilder().WithMonths(0).Build()
	assert.ErrorContains(t, err, "months must be at least 1")

	_, err = NewBuilder().WithTitle("  ").Build()
	assert.ErrorContains(t, err, "title is required")
}

func TestDefaultChoice(t *testing.T) {
	choice := DefaultChoice(TwoCards().InitialState)

	require.NotNil(t, choice.DebtPlan)
	assert.Equal(t, []string{"store", "visa"}, choice.DebtPlan.Priority)
	assert.Equal(t, 0.0, choice.DebtPlan.TotalPlanned())
	require.NotNil(t, choice.InvestPlan)
	assert.Equal(t, []string{"ira", "savings"}, choice.InvestPlan.Priority)
	assert.Nil(t, choice.VariableWantsAdjust)
}
