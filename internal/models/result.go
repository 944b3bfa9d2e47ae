package models

// ExpenseSpendSummary compares total planned and actually paid spend for a category group.
type ExpenseSpendSummary struct {
	Planned float64 `json:"planned" yaml:"planned"`
	Actual  float64 `json:"actual" yaml:"actual"`
}

// FixedExpenseSummary records how a fixed expense was settled this month.
type FixedExpenseSummary struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Due        float64 `json:"due" yaml:"due"`
	Paid       float64 `json:"paid" yaml:"paid"`
	NewArrears float64 `json:"newArrears" yaml:"newArrears"`
}

// DebtSummary records interest accrual and payment for one debt.
type DebtSummary struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	StartBalance     float64 `json:"startBalance" yaml:"startBalance"`
	Interest         float64 `json:"interest" yaml:"interest"`
	OwedThisCycle    float64 `json:"owedThisCycle" yaml:"owedThisCycle"`
	PlannedPayment   float64 `json:"plannedPayment" yaml:"plannedPayment"`
	ActualPayment    float64 `json:"actualPayment" yaml:"actualPayment"`
	SuggestedMinimum float64 `json:"suggestedMinimum" yaml:"suggestedMinimum"`
	MetMinimum       bool    `json:"metMinimum" yaml:"metMinimum"`
	EndBalance       float64 `json:"endBalance" yaml:"endBalance"`
}

// InvestmentSummary records contribution and growth for one investment.
type InvestmentSummary struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	StartBalance        float64 `json:"startBalance" yaml:"startBalance"`
	PlannedContribution float64 `json:"plannedContribution" yaml:"plannedContribution"`
	ActualContribution  float64 `json:"actualContribution" yaml:"actualContribution"`
	Growth              float64 `json:"growth" yaml:"growth"`
	EndBalance          float64 `json:"endBalance" yaml:"endBalance"`
}

// MonthResult is the outcome of one simulated month.
type MonthResult struct {
	NewState ScenarioState `json:"newState" yaml:"newState"`

	CashChange float64 `json:"cashChange" yaml:"cashChange"`

	WantsSummary   ExpenseSpendSummary   `json:"wantsSummary" yaml:"wantsSummary"`
	NeedsSummary   ExpenseSpendSummary   `json:"needsSummary" yaml:"needsSummary"`
	FixedSummaries []FixedExpenseSummary `json:"fixedSummaries" yaml:"fixedSummaries"`

	DebtSummaries       []DebtSummary       `json:"debtSummaries" yaml:"debtSummaries"`
	InvestmentSummaries []InvestmentSummary `json:"investmentSummaries" yaml:"investmentSummaries"`

	NetWorthStart  float64 `json:"netWorthStart" yaml:"netWorthStart"`
	NetWorthEnd    float64 `json:"netWorthEnd" yaml:"netWorthEnd"`
	NetWorthChange float64 `json:"netWorthChange" yaml:"netWorthChange"`
}

// MissedMinimums returns the debts whose suggested minimum was not met.
func (r MonthResult) MissedMinimums() []DebtSummary {
	var missed []DebtSummary
	for _, d := range r.DebtSummaries {
		if !d.MetMinimum {
			missed = append(missed, d)
		}
	}
	return missed
}

// UnpaidFixed returns the fixed expenses that left arrears this month.
func (r MonthResult) UnpaidFixed() []FixedExpenseSummary {
	var unpaid []FixedExpenseSummary
	for _, f := range r.FixedSummaries {
		if f.NewArrears > 0 {
			unpaid = append(unpaid, f)
		}
	}
	return unpaid
}

// HasNotices reports whether the month produced anything the caller should surface.
func (r MonthResult) HasNotices() bool {
	return len(r.MissedMinimums()) > 0 || len(r.UnpaidFixed()) > 0
}

// ScenarioConfig supplies a starting state and the horizon at which callers stop stepping.
// The engine itself never looks at TotalMonths.
type ScenarioConfig struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Description  string        `json:"description" yaml:"description"`
	TotalMonths  int           `json:"totalMonths" yaml:"totalMonths"`
	InitialState ScenarioState `json:"initialState" yaml:"initialState"`
}

// Clone returns a deep copy of the result.
func (r MonthResult) Clone() MonthResult {
	out := r
	out.NewState = r.NewState.Clone()
	out.FixedSummaries = cloneSlice(r.FixedSummaries)
	out.DebtSummaries = cloneSlice(r.DebtSummaries)
	out.InvestmentSummaries = cloneSlice(r.InvestmentSummaries)
	return out
}
