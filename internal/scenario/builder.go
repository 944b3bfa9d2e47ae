package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/validation"
)

// Defaults applied by NewBuilder.
const (
	DefaultTitle       = "Custom Scenario"
	DefaultDescription = "Your personalized setup."
	DefaultTotalMonths = 12
)

// Builder assembles a custom scenario from named line items. Ids are assigned in the
// order items are added: vw0.. for wants, vn0.. for needs, fx0.. for fixed expenses,
// db0.. for debts and iv0.. for investments.
type Builder struct {
	cfg models.ScenarioConfig
	now func() time.Time
	err error
}

// NewBuilder creates a Builder with the default title, description and horizon.
func NewBuilder() *Builder {
	return &Builder{
		cfg: models.ScenarioConfig{
			Title:       DefaultTitle,
			Description: DefaultDescription,
			TotalMonths: DefaultTotalMonths,
		},
		now: time.Now,
	}
}

// WithClock replaces the clock used to derive the default id.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithID sets an explicit scenario id instead of the time-based default.
func (b *Builder) WithID(id string) *Builder {
	b.cfg.ID = strings.TrimSpace(id)
	return b
}

// WithTitle sets the title.
func (b *Builder) WithTitle(title string) *Builder {
	b.cfg.Title = title
	return b
}

// WithDescription sets the description.
func (b *Builder) WithDescription(description string) *Builder {
	b.cfg.Description = description
	return b
}

// WithMonths sets the horizon.
func (b *Builder) WithMonths(months int) *Builder {
	if b.err != nil {
		return b
	}
	if months < 1 {
		b.err = fmt.Errorf("months must be at least 1, got %d", months)
		return b
	}
	b.cfg.TotalMonths = months
	return b
}

// WithCash sets the starting cash.
func (b *Builder) WithCash(cash float64) *Builder {
	b.cfg.InitialState.Cash = cash
	return b
}

// WithIncome sets the monthly income.
func (b *Builder) WithIncome(income float64) *Builder {
	b.cfg.InitialState.Income = income
	return b
}

// AddWant appends a discretionary want category.
func (b *Builder) AddWant(name string, planned float64) *Builder {
	s := &b.cfg.InitialState
	s.VariableWants = append(s.VariableWants, models.VariableCategory{
		ID:      fmt.Sprintf("vw%d", len(s.VariableWants)),
		Name:    name,
		Planned: planned,
	})
	return b
}

// AddNeed appends a variable need category.
func (b *Builder) AddNeed(name string, planned float64) *Builder {
	s := &b.cfg.InitialState
	s.VariableNeeds = append(s.VariableNeeds, models.VariableCategory{
		ID:      fmt.Sprintf("vn%d", len(s.VariableNeeds)),
		Name:    name,
		Planned: planned,
	})
	return b
}

// AddFixed appends a fixed expense. Items added first are paid first.
func (b *Builder) AddFixed(name string, baseMonthly float64) *Builder {
	s := &b.cfg.InitialState
	s.FixedExpenses = append(s.FixedExpenses, models.FixedExpenseItem{
		ID:          fmt.Sprintf("fx%d", len(s.FixedExpenses)),
		Name:        name,
		BaseMonthly: baseMonthly,
	})
	return b
}

// AddDebt appends a debt. The APR goes through NormalizeRate. A minimumBase of zero or
// less leaves the debt on the default suggested-minimum rule.
func (b *Builder) AddDebt(name string, balance, apr, minimumBase float64) *Builder {
	s := &b.cfg.InitialState
	debt := models.DebtAccount{
		ID:      fmt.Sprintf("db%d", len(s.Debts)),
		Name:    name,
		Balance: balance,
		APR:     NormalizeRate(apr),
	}
	if minimumBase > 0 {
		debt.MinimumRule = &models.MinimumRule{Base: minimumBase}
	}
	s.Debts = append(s.Debts, debt)
	return b
}

// AddInvestment appends an investment account. The APR goes through NormalizeRate.
func (b *Builder) AddInvestment(name string, balance, apr float64) *Builder {
	s := &b.cfg.InitialState
	s.Investments = append(s.Investments, models.InvestmentAccount{
		ID:      fmt.Sprintf("iv%d", len(s.Investments)),
		Name:    name,
		Balance: balance,
		APR:     NormalizeRate(apr),
	})
	return b
}

// NormalizeRate reads a rate above 1 as a percentage, so 19.99 and 0.1999 both mean 19.99%.
func NormalizeRate(rate float64) float64 {
	if rate > 1 {
		return rate / 100
	}
	return rate
}

// Build returns the validated scenario. The starting month is always 0.
func (b *Builder) Build() (models.ScenarioConfig, error) {
	if b.err != nil {
		return models.ScenarioConfig{}, fmt.Errorf("builder error: %w", b.err)
	}
	if strings.TrimSpace(b.cfg.Title) == "" {
		return models.ScenarioConfig{}, errors.New("title is required")
	}

	cfg := cloneConfig(b.cfg)
	cfg.InitialState.Month = 0
	if cfg.ID == "" {
		cfg.ID = fmt.Sprintf("custom-%d", b.now().UnixMilli())
	}
	if err := validation.ValidateScenario(cfg); err != nil {
		return models.ScenarioConfig{}, err
	}
	return cfg, nil
}

// DefaultChoice returns a choice that keeps every debt and investment in data order
// with nothing planned, the starting point before a user fills in amounts.
func DefaultChoice(state models.ScenarioState) models.ScenarioChoice {
	debtPlan := models.NewDefaultPlan(state.DebtIDs())
	investPlan := models.NewDefaultPlan(state.InvestmentIDs())
	return models.ScenarioChoice{
		DebtPlan:   &debtPlan,
		InvestPlan: &investPlan,
	}
}
