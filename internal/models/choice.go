package models

// AllocationPlan caps debt payments or investment contributions against remaining cash.
// Ids are funded in Priority order; ids absent from Priority receive nothing even when
// Amounts lists them.
type AllocationPlan struct {
	Priority []string           `json:"priority" yaml:"priority"`
	Amounts  map[string]float64 `json:"amounts" yaml:"amounts"`
}

// NewDefaultPlan funds the given ids in order with a planned amount of zero each.
func NewDefaultPlan(ids []string) AllocationPlan {
	plan := AllocationPlan{
		Priority: make([]string, len(ids)),
		Amounts:  make(map[string]float64, len(ids)),
	}
	copy(plan.Priority, ids)
	for _, id := range ids {
		plan.Amounts[id] = 0
	}
	return plan
}

// Clone returns a copy that shares no slice or map with p.
func (p AllocationPlan) Clone() AllocationPlan {
	out := AllocationPlan{Priority: cloneSlice(p.Priority)}
	if p.Amounts != nil {
		out.Amounts = make(map[string]float64, len(p.Amounts))
		for id, amount := range p.Amounts {
			out.Amounts[id] = amount
		}
	}
	return out
}

// TotalPlanned sums the planned amounts, ignoring negative entries.
func (p AllocationPlan) TotalPlanned() float64 {
	total := 0.0
	for _, amount := range p.Amounts {
		if amount > 0 {
			total += amount
		}
	}
	return total
}

// ScenarioChoice is the caller's input for a single month. Every field is optional.
type ScenarioChoice struct {
	// Deltas added to planned amounts for this month only, keyed by category id.
	VariableWantsAdjust map[string]float64 `json:"variableWantsAdjust,omitempty" yaml:"variableWantsAdjust,omitempty"`
	VariableNeedsAdjust map[string]float64 `json:"variableNeedsAdjust,omitempty" yaml:"variableNeedsAdjust,omitempty"`

	DebtPlan   *AllocationPlan `json:"debtPlan,omitempty" yaml:"debtPlan,omitempty"`
	InvestPlan *AllocationPlan `json:"investPlan,omitempty" yaml:"investPlan,omitempty"`
}
