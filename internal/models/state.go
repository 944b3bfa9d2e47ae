// Package models defines the household finance state threaded through the simulation
// together with the per-month choice input and the itemized month result.
package models

// VariableCategory is a discretionary spending line. Planned spend that cash cannot
// cover is simply not spent; it never turns into debt or arrears.
type VariableCategory struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Planned float64 `json:"planned" yaml:"planned"`
}

// FixedExpenseItem is a recurring obligation. Arrears is the unpaid balance carried
// from earlier months; it grows by addition only, never by interest.
type FixedExpenseItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	BaseMonthly float64 `json:"baseMonthly" yaml:"baseMonthly"`
	Arrears     float64 `json:"arrears" yaml:"arrears"`
}

// MinimumRule parameterises the informational suggested minimum of a debt.
type MinimumRule struct {
	Base float64 `json:"base" yaml:"base"`
}

// DebtAccount is an interest-bearing balance. APR is an annual decimal rate (0.1999 = 19.99%).
type DebtAccount struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Balance     float64      `json:"balance" yaml:"balance"`
	APR         float64      `json:"apr" yaml:"apr"`
	MinimumRule *MinimumRule `json:"minimumRule,omitempty" yaml:"minimumRule,omitempty"`
}

// InvestmentAccount is a growing balance. APR is the expected annual return as a decimal.
type InvestmentAccount struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Balance float64 `json:"balance" yaml:"balance"`
	APR     float64 `json:"apr" yaml:"apr"`
}

// ScenarioState is the household's finances at the start of a month.
//
// The order of FixedExpenses is their payment priority. The order of Debts and
// Investments is data order only; funding priority comes from the month's AllocationPlan.
type ScenarioState struct {
	Month  int     `json:"month" yaml:"month"`
	Cash   float64 `json:"cash" yaml:"cash"`
	Income float64 `json:"income" yaml:"income"`

	VariableWants []VariableCategory `json:"variableWants" yaml:"variableWants"`
	VariableNeeds []VariableCategory `json:"variableNeeds" yaml:"variableNeeds"`
	FixedExpenses []FixedExpenseItem `json:"fixedExpenses" yaml:"fixedExpenses"`

	Debts       []DebtAccount       `json:"debts" yaml:"debts"`
	Investments []InvestmentAccount `json:"investments" yaml:"investments"`
}

// Clone returns a deep copy of the state. The copy shares no slices or pointers with s.
func (s ScenarioState) Clone() ScenarioState {
	out := s
	out.VariableWants = cloneSlice(s.VariableWants)
	out.VariableNeeds = cloneSlice(s.VariableNeeds)
	out.FixedExpenses = cloneSlice(s.FixedExpenses)
	out.Investments = cloneSlice(s.Investments)
	out.Debts = cloneSlice(s.Debts)
	for i := range out.Debts {
		if rule := out.Debts[i].MinimumRule; rule != nil {
			copied := *rule
			out.Debts[i].MinimumRule = &copied
		}
	}
	return out
}

// TotalDebt sums all debt balances.
func (s ScenarioState) TotalDebt() float64 {
	total := 0.0
	for _, d := range s.Debts {
		total += d.Balance
	}
	return total
}

// TotalInvestments sums all investment balances.
func (s ScenarioState) TotalInvestments() float64 {
	total := 0.0
	for _, i := range s.Investments {
		total += i.Balance
	}
	return total
}

// NetWorth is cash plus investments minus debts.
func (s ScenarioState) NetWorth() float64 {
	return s.Cash + s.TotalInvestments() - s.TotalDebt()
}

// DebtIDs returns the debt ids in data order.
func (s ScenarioState) DebtIDs() []string {
	ids := make([]string, 0, len(s.Debts))
	for _, d := range s.Debts {
		ids = append(ids, d.ID)
	}
	return ids
}

// InvestmentIDs returns the investment ids in data order.
func (s ScenarioState) InvestmentIDs() []string {
	ids := make([]string, 0, len(s.Investments))
	for _, i := range s.Investments {
		ids = append(ids, i.ID)
	}
	return ids
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
