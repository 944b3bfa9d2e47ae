// Package validation checks scenario definitions and user-facing options before they
// reach the simulation. The engine accepts anything; these checks guard the edges.
package validation

import (
	"fmt"
	"math"
	"os"
	"strings"

	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/simerror"
)

// ReportFormats lists the supported report output formats.
var ReportFormats = []string{"text", "json", "csv"}

// ValidateScenario checks that a scenario can be offered to a caller: id and title
// present, a positive horizon, unique ids within each collection and finite amounts.
func ValidateScenario(cfg models.ScenarioConfig) error {
	fail := func(field, reason string) error {
		return &simerror.ValidationError{Scenario: cfg.ID, Field: field, Reason: reason}
	}

	if strings.TrimSpace(cfg.ID) == "" {
		return fail("id", "must not be empty")
	}
	if strings.TrimSpace(cfg.Title) == "" {
		return fail("title", "must not be empty")
	}
	if cfg.TotalMonths < 1 {
		return fail("totalMonths", fmt.Sprintf("must be at least 1, got %d", cfg.TotalMonths))
	}

	return ValidateState(cfg.ID, cfg.InitialState)
}

// ValidateState checks the collections of a state for unique, non-empty ids and
// finite monetary values.
func ValidateState(scenario string, s models.ScenarioState) error {
	fail := func(field, reason string) error {
		return &simerror.ValidationError{Scenario: scenario, Field: field, Reason: reason}
	}

	if !isFinite(s.Cash) {
		return fail("cash", "must be finite")
	}
	if !isFinite(s.Income) {
		return fail("income", "must be finite")
	}

	checks := []struct {
		field   string
		ids     []string
		amounts []float64
	}{
		{"variableWants", categoryIDs(s.VariableWants), categoryAmounts(s.VariableWants)},
		{"variableNeeds", categoryIDs(s.VariableNeeds), categoryAmounts(s.VariableNeeds)},
		{"fixedExpenses", fixedIDs(s.FixedExpenses), fixedAmounts(s.FixedExpenses)},
		{"debts", s.DebtIDs(), debtAmounts(s.Debts)},
		{"investments", s.InvestmentIDs(), investmentAmounts(s.Investments)},
	}
	for _, c := range checks {
		if err := uniqueIDs(c.ids); err != "" {
			return fail(c.field, err)
		}
		for _, v := range c.amounts {
			if !isFinite(v) {
				return fail(c.field, "amounts must be finite")
			}
		}
	}
	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	for _, f := range ReportFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are %s", format, strings.Join(ReportFormats, ", "))
}

// IsValidDirectory checks that path exists and is a directory.
func IsValidDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}

func uniqueIDs(ids []string) string {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return "ids must not be empty"
		}
		if seen[id] {
			return fmt.Sprintf("duplicate id '%s'", id)
		}
		seen[id] = true
	}
	return ""
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func categoryIDs(items []models.VariableCategory) []string {
	ids := make([]string, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	return ids
}

func categoryAmounts(items []models.VariableCategory) []float64 {
	out := make([]float64, 0, len(items))
	for _, c := range items {
		out = append(out, c.Planned)
	}
	return out
}

func fixedIDs(items []models.FixedExpenseItem) []string {
	ids := make([]string, 0, len(items))
	for _, f := range items {
		ids = append(ids, f.ID)
	}
	return ids
}

func fixedAmounts(items []models.FixedExpenseItem) []float64 {
	out := make([]float64, 0, 2*len(items))
	for _, f := range items {
		out = append(out, f.BaseMonthly, f.Arrears)
	}
	return out
}

func debtAmounts(items []models.DebtAccount) []float64 {
	out := make([]float64, 0, 2*len(items))
	for _, d := range items {
		out = append(out, d.Balance, d.APR)
	}
	return out
}

func investmentAmounts(items []models.InvestmentAccount) []float64 {
	out := make([]float64, 0, 2*len(items))
	for _, i := range items {
		out = append(out, i.Balance, i.APR)
	}
	return out
}
