package runner

import "fjacquet/budget-sim/internal/models"

// PlanSchedule supplies the choice for each simulated month. Months are numbered from 1,
// the first month a scenario simulates. A month listed in Months is used instead of Default
// for that month. Its adjustments last one month; a plan it carries becomes the session's
// standing plan, and when it carries none the standing plan keeps applying.
type PlanSchedule struct {
	Default models.ScenarioChoice         `json:"default" yaml:"default"`
	Months  map[int]models.ScenarioChoice `json:"months,omitempty" yaml:"months,omitempty"`
}

// ChoiceFor returns the choice to apply when simulating the given month.
func (p PlanSchedule) ChoiceFor(month int) models.ScenarioChoice {
	if choice, ok := p.Months[month]; ok {
		return choice
	}
	return p.Default
}

// FixedSchedule applies the same choice every month.
func FixedSchedule(choice models.ScenarioChoice) PlanSchedule {
	return PlanSchedule{Default: choice}
}
