package models

import "time"

// Run is a scenario together with the months simulated for it, oldest first.
type Run struct {
	ID        int64          `json:"id,omitempty" yaml:"id,omitempty"`
	Scenario  ScenarioConfig `json:"scenario" yaml:"scenario"`
	Months    []MonthResult  `json:"months" yaml:"months"`
	StartedAt time.Time      `json:"startedAt" yaml:"startedAt"`
}

// FinalState is the state after the last simulated month, or the initial state when
// nothing was simulated.
func (r Run) FinalState() ScenarioState {
	if len(r.Months) == 0 {
		return r.Scenario.InitialState
	}
	return r.Months[len(r.Months)-1].NewState
}

// NetWorthChange is the net worth moved across the whole run.
func (r Run) NetWorthChange() float64 {
	return r.FinalState().NetWorth() - r.Scenario.InitialState.NetWorth()
}

// TotalInterest sums debt interest over every month of the run.
func (r Run) TotalInterest() float64 {
	total := 0.0
	for _, m := range r.Months {
		for _, d := range m.DebtSummaries {
			total += d.Interest
		}
	}
	return total
}

// TotalGrowth sums investment growth over every month of the run.
func (r Run) TotalGrowth() float64 {
	total := 0.0
	for _, m := range r.Months {
		for _, i := range m.InvestmentSummaries {
			total += i.Growth
		}
	}
	return total
}

// MissedMinimumCount counts debt-months that missed their suggested minimum.
func (r Run) MissedMinimumCount() int {
	n := 0
	for _, m := range r.Months {
		n += len(m.MissedMinimums())
	}
	return n
}
