// Package engine advances a household's finances by one month.
//
// RunMonth is a pure function: it reads the caller's state, never mutates it, performs no
// I/O and keeps nothing between calls. Cash is allocated through a fixed waterfall:
//
//  1. income is credited
//  2. variable wants are paid in list order
//  3. variable needs are paid in list order
//  4. fixed expenses (base plus arrears) are paid in list order, the shortfall becomes arrears
//  5. debts accrue interest on their start balance and are paid following the debt plan
//  6. investments receive contributions following the invest plan, then grow on their start balance
//  7. the month counter advances and net worth is compared
//
// Every payment is capped by the cash still available, so cash never drops below zero.
package engine

import (
	"math"

	"fjacquet/budget-sim/internal/models"
)

const (
	// DefaultMinimumBase is the flat part of a debt's suggested minimum when the
	// debt carries no MinimumRule.
	DefaultMinimumBase = 25.0

	// MinimumPaymentEpsilon is the tolerance applied when checking a payment against the
	// suggested minimum. Changing it moves the MetMinimum boundary.
	MinimumPaymentEpsilon = 0.0001

	monthsPerYear = 12.0
)

// RunMonth simulates one month of state under choice and returns the new state with a
// full accounting of the month. It never fails: negative or NaN amounts are treated as zero.
func RunMonth(state models.ScenarioState, choice models.ScenarioChoice) models.MonthResult {
	start := normalizeState(state)
	netWorthStart := start.NetWorth()

	w := &waterfall{cash: start.Cash}

	// 1) Income
	w.cash += start.Income

	// 2) and 3) Variable wants then needs
	wantsSummary := w.payVariable(start.VariableWants, choice.VariableWantsAdjust)
	needsSummary := w.payVariable(start.VariableNeeds, choice.VariableNeedsAdjust)

	// 4) Fixed expenses
	fixed, fixedSummaries := w.payFixed(start.FixedExpenses)

	// 5) Debts
	debts, debtSummaries := w.payDebts(start.Debts, planOrEmpty(choice.DebtPlan))

	// 6) Investments
	investments, investmentSummaries := w.contribute(start.Investments, planOrEmpty(choice.InvestPlan))

	// 7) Finalize
	newState := models.ScenarioState{
		Month:         start.Month + 1,
		Cash:          w.cash,
		Income:        start.Income,
		VariableWants: start.VariableWants,
		VariableNeeds: start.VariableNeeds,
		FixedExpenses: fixed,
		Debts:         debts,
		Investments:   investments,
	}
	netWorthEnd := newState.NetWorth()

	return models.MonthResult{
		NewState:            newState,
		CashChange:          newState.Cash - start.Cash,
		WantsSummary:        wantsSummary,
		NeedsSummary:        needsSummary,
		FixedSummaries:      fixedSummaries,
		DebtSummaries:       debtSummaries,
		InvestmentSummaries: investmentSummaries,
		NetWorthStart:       netWorthStart,
		NetWorthEnd:         netWorthEnd,
		NetWorthChange:      netWorthEnd - netWorthStart,
	}
}

// waterfall tracks the cash still available while the month is allocated.
type waterfall struct {
	cash float64
}

// pay spends up to amount from the remaining cash and returns what was actually spent.
func (w *waterfall) pay(amount float64) float64 {
	paid := math.Min(amount, math.Max(0, w.cash))
	w.cash -= paid
	if w.cash <= 0 {
		w.cash = 0
	}
	return paid
}

func (w *waterfall) payVariable(categories []models.VariableCategory, adjust map[string]float64) models.ExpenseSpendSummary {
	var summary models.ExpenseSpendSummary
	for _, c := range categories {
		planned := clampNonNegative(c.Planned + adjust[c.ID])
		summary.Planned += planned
		summary.Actual += w.pay(planned)
	}
	return summary
}

func (w *waterfall) payFixed(items []models.FixedExpenseItem) ([]models.FixedExpenseItem, []models.FixedExpenseSummary) {
	updated := make([]models.FixedExpenseItem, len(items))
	summaries := make([]models.FixedExpenseSummary, 0, len(items))
	for i, f := range items {
		due := f.BaseMonthly + f.Arrears
		paid := w.pay(due)
		newArrears := due - paid

		f.Arrears = newArrears
		updated[i] = f
		summaries = append(summaries, models.FixedExpenseSummary{
			ID:         f.ID,
			Name:       f.Name,
			Due:        due,
			Paid:       paid,
			NewArrears: newArrears,
		})
	}
	return updated, summaries
}

type debtCycle struct {
	startBalance float64
	interest     float64
	owed         float64
}

func (w *waterfall) payDebts(debts []models.DebtAccount, plan models.AllocationPlan) ([]models.DebtAccount, []models.DebtSummary) {
	// Interest and amount owed come from the start-of-month snapshot, for every debt.
	cycles := make(map[string]debtCycle, len(debts))
	for _, d := range debts {
		interest := d.Balance * (d.APR / monthsPerYear)
		cycles[d.ID] = debtCycle{
			startBalance: d.Balance,
			interest:     interest,
			owed:         d.Balance + interest,
		}
	}

	paidByID := make(map[string]float64, len(plan.Priority))
	for _, id := range plan.Priority {
		cycle, ok := cycles[id]
		if !ok {
			continue
		}
		planned := clampNonNegative(plan.Amounts[id])
		remainingOwed := clampNonNegative(cycle.owed - paidByID[id])
		paidByID[id] += w.pay(math.Min(planned, remainingOwed))
	}

	updated := make([]models.DebtAccount, len(debts))
	summaries := make([]models.DebtSummary, 0, len(debts))
	for i, d := range debts {
		cycle := cycles[d.ID]
		actual := paidByID[d.ID]
		endBalance := math.Max(0, cycle.owed-actual)

		suggested := 0.0
		if endBalance > 0 {
			suggested = minimumBase(d) + cycle.interest
		}

		d.Balance = endBalance
		updated[i] = d
		summaries = append(summaries, models.DebtSummary{
			ID:               d.ID,
			Name:             d.Name,
			StartBalance:     cycle.startBalance,
			Interest:         cycle.interest,
			OwedThisCycle:    cycle.owed,
			PlannedPayment:   clampNonNegative(plan.Amounts[d.ID]),
			ActualPayment:    actual,
			SuggestedMinimum: suggested,
			MetMinimum:       suggested == 0 || actual+MinimumPaymentEpsilon >= suggested,
			EndBalance:       endBalance,
		})
	}
	return updated, summaries
}

func (w *waterfall) contribute(investments []models.InvestmentAccount, plan models.AllocationPlan) ([]models.InvestmentAccount, []models.InvestmentSummary) {
	known := make(map[string]bool, len(investments))
	for _, inv := range investments {
		known[inv.ID] = true
	}

	contributed := make(map[string]float64, len(plan.Priority))
	for _, id := range plan.Priority {
		if !known[id] {
			continue
		}
		contributed[id] += w.pay(clampNonNegative(plan.Amounts[id]))
	}

	updated := make([]models.InvestmentAccount, len(investments))
	summaries := make([]models.InvestmentSummary, 0, len(investments))
	for i, inv := range investments {
		startBalance := inv.Balance
		actual := contributed[inv.ID]
		// Growth is earned on the start balance only; this month's contribution does not grow yet.
		growth := startBalance * (inv.APR / monthsPerYear)

		inv.Balance += actual
		inv.Balance += growth
		updated[i] = inv
		summaries = append(summaries, models.InvestmentSummary{
			ID:                  inv.ID,
			Name:                inv.Name,
			StartBalance:        startBalance,
			PlannedContribution: clampNonNegative(plan.Amounts[inv.ID]),
			ActualContribution:  actual,
			Growth:              growth,
			EndBalance:          inv.Balance,
		})
	}
	return updated, summaries
}

func minimumBase(d models.DebtAccount) float64 {
	if d.MinimumRule != nil {
		return d.MinimumRule.Base
	}
	return DefaultMinimumBase
}

func planOrEmpty(plan *models.AllocationPlan) models.AllocationPlan {
	if plan == nil {
		return models.AllocationPlan{}
	}
	return *plan
}

// normalizeState deep-copies state and clamps every monetary field to be non-negative.
// APR is left untouched so negative rates propagate through the arithmetic.
func normalizeState(state models.ScenarioState) models.ScenarioState {
	s := state.Clone()
	s.Cash = clampNonNegative(s.Cash)
	s.Income = clampNonNegative(s.Income)
	for i := range s.VariableWants {
		s.VariableWants[i].Planned = clampNonNegative(s.VariableWants[i].Planned)
	}
	for i := range s.VariableNeeds {
		s.VariableNeeds[i].Planned = clampNonNegative(s.VariableNeeds[i].Planned)
	}
	for i := range s.FixedExpenses {
		s.FixedExpenses[i].BaseMonthly = clampNonNegative(s.FixedExpenses[i].BaseMonthly)
		s.FixedExpenses[i].Arrears = clampNonNegative(s.FixedExpenses[i].Arrears)
	}
	for i := range s.Debts {
		s.Debts[i].Balance = clampNonNegative(s.Debts[i].Balance)
	}
	for i := range s.Investments {
		s.Investments[i].Balance = clampNonNegative(s.Investments[i].Balance)
	}
	return s
}

func clampNonNegative(n float64) float64 {
	if n < 0 || math.IsNaN(n) {
		return 0
	}
	return n
}
