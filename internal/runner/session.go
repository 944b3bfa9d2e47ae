// Package runner threads a scenario's state through repeated engine steps. It owns the
// horizon, the standing allocation plans and the month history; the engine owns none.
package runner

import (
	"time"

	"fjacquet/budget-sim/internal/engine"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/simerror"
)

// maxPreallocatedMonths bounds the result slice reserved up front by FastForward.
const maxPreallocatedMonths = 1200

// Options tune a Session.
type Options struct {
	// EnforceHorizon makes Step refuse to run past the scenario's TotalMonths.
	EnforceHorizon bool
	Logger         logging.Logger
	Clock          func() time.Time
}

// Adjustments are one-month deltas to wants and needs planned amounts.
type Adjustments struct {
	Wants map[string]float64
	Needs map[string]float64
}

// Session runs one scenario month by month. It is not safe for concurrent use;
// run independent sessions in parallel instead.
type Session struct {
	cfg     models.ScenarioConfig
	opts    Options
	state   models.ScenarioState
	history []models.MonthResult
	started time.Time

	debtPlan   models.AllocationPlan
	investPlan models.AllocationPlan
}

// NewSession starts cfg at its initial state with default allocation plans.
func NewSession(cfg models.ScenarioConfig, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Session{cfg: cfg, opts: opts}
	s.Reset()
	return s
}

// Reset returns the session to the scenario's initial state and clears history and plans.
func (s *Session) Reset() {
	s.state = s.cfg.InitialState.Clone()
	s.history = nil
	s.started = s.opts.Clock()
	s.debtPlan = models.NewDefaultPlan(s.state.DebtIDs())
	s.investPlan = models.NewDefaultPlan(s.state.InvestmentIDs())
}

// Scenario returns the scenario the session runs.
func (s *Session) Scenario() models.ScenarioConfig { return s.cfg }

// State returns a copy of the current state.
func (s *Session) State() models.ScenarioState { return s.state.Clone() }

// History returns copies of the month results so far, oldest first.
func (s *Session) History() []models.MonthResult {
	out := make([]models.MonthResult, len(s.history))
	for i, r := range s.history {
		out[i] = r.Clone()
	}
	return out
}

// Finished reports whether the scenario's horizon has been reached.
func (s *Session) Finished() bool {
	return s.state.Month >= s.cfg.TotalMonths
}

// DebtPlan returns the standing debt plan.
func (s *Session) DebtPlan() models.AllocationPlan { return s.debtPlan.Clone() }

// InvestPlan returns the standing investment plan.
func (s *Session) InvestPlan() models.AllocationPlan { return s.investPlan.Clone() }

// SetDebtPlan replaces the standing debt plan used for every following month.
func (s *Session) SetDebtPlan(plan models.AllocationPlan) { s.debtPlan = plan.Clone() }

// SetInvestPlan replaces the standing investment plan used for every following month.
func (s *Session) SetInvestPlan(plan models.AllocationPlan) { s.investPlan = plan.Clone() }

// Step simulates one month using the standing plans and the given one-month adjustments.
func (s *Session) Step(adjust Adjustments) (models.MonthResult, error) {
	debtPlan := s.debtPlan.Clone()
	investPlan := s.investPlan.Clone()
	return s.step(models.ScenarioChoice{
		VariableWantsAdjust: adjust.Wants,
		VariableNeedsAdjust: adjust.Needs,
		DebtPlan:            &debtPlan,
		InvestPlan:          &investPlan,
	})
}

// Apply simulates one month with choice. Plans present in choice become the standing
// plans; adjustments apply to this month only.
func (s *Session) Apply(choice models.ScenarioChoice) (models.MonthResult, error) {
	if choice.DebtPlan != nil {
		s.SetDebtPlan(*choice.DebtPlan)
	}
	if choice.InvestPlan != nil {
		s.SetInvestPlan(*choice.InvestPlan)
	}
	return s.Step(Adjustments{Wants: choice.VariableWantsAdjust, Needs: choice.VariableNeedsAdjust})
}

func (s *Session) step(choice models.ScenarioChoice) (models.MonthResult, error) {
	if s.opts.EnforceHorizon && s.Finished() {
		return models.MonthResult{}, &simerror.HorizonReachedError{Scenario: s.cfg.ID, TotalMonths: s.cfg.TotalMonths}
	}

	result := engine.RunMonth(s.state, choice)
	s.state = result.NewState.Clone()
	s.history = append(s.history, result.Clone())

	log := s.opts.Logger.WithFields(
		logging.F(logging.FieldScenario, s.cfg.ID),
		logging.F(logging.FieldMonth, result.NewState.Month),
	)
	log.Debug("Month simulated",
		logging.F(logging.FieldCash, result.NewState.Cash),
		logging.F(logging.FieldNetWorth, result.NetWorthEnd))
	for _, d := range result.MissedMinimums() {
		log.Info("Suggested minimum missed", logging.F("debt", d.ID))
	}
	for _, f := range result.UnpaidFixed() {
		log.Info("Fixed expense left in arrears", logging.F("expense", f.ID), logging.F("arrears", f.NewArrears))
	}
	return result, nil
}

// FastForward simulates up to months months using schedule, stopping early only when the
// horizon is reached and enforced. A months count of zero or less simulates nothing.
// It returns the results produced by this call.
func (s *Session) FastForward(months int, schedule PlanSchedule) ([]models.MonthResult, error) {
	capacity := min(months, maxPreallocatedMonths)
	if remaining := s.cfg.TotalMonths - s.state.Month; s.opts.EnforceHorizon && remaining < capacity {
		capacity = remaining
	}
	results := make([]models.MonthResult, 0, max(capacity, 0))
	for i := 0; i < months; i++ {
		if s.opts.EnforceHorizon && s.Finished() {
			break
		}
		result, err := s.Apply(schedule.ChoiceFor(s.state.Month + 1))
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// RunToHorizon simulates the remaining months of the scenario.
func (s *Session) RunToHorizon(schedule PlanSchedule) ([]models.MonthResult, error) {
	remaining := s.cfg.TotalMonths - s.state.Month
	if remaining <= 0 {
		return nil, nil
	}
	return s.FastForward(remaining, schedule)
}

// Run returns the session's scenario and history as a Run.
func (s *Session) Run() models.Run {
	return models.Run{
		Scenario:  s.cfg,
		Months:    s.History(),
		StartedAt: s.started,
	}
}
