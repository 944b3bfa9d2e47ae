// Package scenario provides the built-in scenarios, a catalog to look them up by id and a
// builder for user-defined scenarios.
package scenario

import (
	"fmt"
	"sort"
	"sync"

	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/simerror"
	"fjacquet/budget-sim/internal/validation"
)

// CreditCardID is the id of the introductory scenario.
const CreditCardID = "credit_card_poc"

// CreditCard is a first job with a single credit card balance.
func CreditCard() models.ScenarioConfig {
	return models.ScenarioConfig{
		ID:          CreditCardID,
		Title:       "First Job, First Credit Card",
		Description: "You're 24, earning a steady income, with a single credit card balance and a simple goal.",
		TotalMonths: 12,
		InitialState: models.ScenarioState{
			Month:  0,
			Cash:   600,
			Income: 3000,
			VariableWants: []models.VariableCategory{
				{ID: "fun", Name: "Fun", Planned: 200},
			},
			VariableNeeds: []models.VariableCategory{
				{ID: "groceries", Name: "Groceries", Planned: 350},
			},
			FixedExpenses: []models.FixedExpenseItem{
				{ID: "rent", Name: "Rent", BaseMonthly: 1400, Arrears: 0},
			},
			Debts: []models.DebtAccount{
				{ID: "cc1", Name: "Credit Card", Balance: 3500, APR: 0.1999},
			},
			Investments: []models.InvestmentAccount{
				{ID: "starter", Name: "Starter Index Fund", Balance: 0, APR: 0.07},
			},
		},
	}
}

// EmergencyFund starts with thin savings, a car loan and three fixed bills.
func EmergencyFund() models.ScenarioConfig {
	return models.ScenarioConfig{
		ID:          "emergency_fund",
		Title:       "Building a Cushion",
		Description: "Rent, utilities and a car loan eat most of your pay. Can you build three months of savings?",
		TotalMonths: 18,
		InitialState: models.ScenarioState{
			Cash:   250,
			Income: 2800,
			VariableWants: []models.VariableCategory{
				{ID: "dining", Name: "Dining out", Planned: 120},
				{ID: "streaming", Name: "Streaming", Planned: 30},
			},
			VariableNeeds: []models.VariableCategory{
				{ID: "groceries", Name: "Groceries", Planned: 320},
				{ID: "transport", Name: "Transport", Planned: 140},
			},
			FixedExpenses: []models.FixedExpenseItem{
				{ID: "rent", Name: "Rent", BaseMonthly: 1250},
				{ID: "utilities", Name: "Utilities", BaseMonthly: 150},
				{ID: "phone", Name: "Phone", BaseMonthly: 60},
			},
			Debts: []models.DebtAccount{
				{ID: "car", Name: "Car Loan", Balance: 6200, APR: 0.069, MinimumRule: &models.MinimumRule{Base: 180}},
			},
			Investments: []models.InvestmentAccount{
				{ID: "savings", Name: "High-Yield Savings", Balance: 0, APR: 0.04},
			},
		},
	}
}

// TwoCards pits a high-rate store card against a larger general card.
func TwoCards() models.ScenarioConfig {
	return models.ScenarioConfig{
		ID:          "two_cards",
		Title:       "Avalanche or Snowball",
		Description: "Two credit cards with different rates and balances, plus a retirement account waiting for contributions.",
		TotalMonths: 24,
		InitialState: models.ScenarioState{
			Cash:   900,
			Income: 4200,
			VariableWants: []models.VariableCategory{
				{ID: "fun", Name: "Fun", Planned: 250},
				{ID: "travel", Name: "Travel fund", Planned: 150},
			},
			VariableNeeds: []models.VariableCategory{
				{ID: "groceries", Name: "Groceries", Planned: 450},
			},
			FixedExpenses: []models.FixedExpenseItem{
				{ID: "rent", Name: "Rent", BaseMonthly: 1700},
				{ID: "insurance", Name: "Insurance", BaseMonthly: 120},
			},
			Debts: []models.DebtAccount{
				{ID: "store", Name: "Store Card", Balance: 1200, APR: 0.2699},
				{ID: "visa", Name: "Visa", Balance: 5400, APR: 0.1849, MinimumRule: &models.MinimumRule{Base: 35}},
			},
			Investments: []models.InvestmentAccount{
				{ID: "ira", Name: "Retirement Account", Balance: 2500, APR: 0.07},
				{ID: "savings", Name: "Savings", Balance: 300, APR: 0.035},
			},
		},
	}
}

// BuiltIns returns fresh copies of every built-in scenario.
func BuiltIns() []models.ScenarioConfig {
	return []models.ScenarioConfig{CreditCard(), EmergencyFund(), TwoCards()}
}

// Catalog indexes scenarios by id. It is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	scenarios map[string]models.ScenarioConfig
	builtIn   map[string]bool
}

// NewCatalog returns a catalog holding the built-in scenarios.
func NewCatalog() *Catalog {
	c := &Catalog{
		scenarios: make(map[string]models.ScenarioConfig),
		builtIn:   make(map[string]bool),
	}
	for _, cfg := range BuiltIns() {
		c.scenarios[cfg.ID] = cfg
		c.builtIn[cfg.ID] = true
	}
	return c
}

// Add validates and registers a custom scenario. Ids already in the catalog are rejected.
func (c *Catalog) Add(cfg models.ScenarioConfig) error {
	if err := validation.ValidateScenario(cfg); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.scenarios[cfg.ID]; exists {
		return &simerror.ValidationError{Scenario: cfg.ID, Field: "id", Reason: "already registered"}
	}
	c.scenarios[cfg.ID] = cloneConfig(cfg)
	return nil
}

// Get returns a copy of the scenario with the given id.
func (c *Catalog) Get(id string) (models.ScenarioConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.scenarios[id]
	if !ok {
		return models.ScenarioConfig{}, &simerror.NotFoundError{Kind: "scenario", ID: id}
	}
	return cloneConfig(cfg), nil
}

// IsBuiltIn reports whether id names a built-in scenario.
func (c *Catalog) IsBuiltIn(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builtIn[id]
}

// All returns every scenario, built-ins first, each group sorted by id.
func (c *Catalog) All() []models.ScenarioConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.ScenarioConfig, 0, len(c.scenarios))
	for _, cfg := range c.scenarios {
		out = append(out, cloneConfig(cfg))
	}
	sort.Slice(out, func(i, j int) bool {
		bi, bj := c.builtIn[out[i].ID], c.builtIn[out[j].ID]
		if bi != bj {
			return bi
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of scenarios in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scenarios)
}

// String renders a short one-line description of the catalog, used in logs.
func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d scenarios)", c.Len())
}

func cloneConfig(cfg models.ScenarioConfig) models.ScenarioConfig {
	cfg.InitialState = cfg.InitialState.Clone()
	return cfg
}
