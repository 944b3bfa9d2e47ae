// Package build creates custom scenarios from command line flags
package build

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-sim/cmd/root"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/scenario"
	"fjacquet/budget-sim/internal/store"

	"github.com/spf13/cobra"
)

// Options are the raw flag values of the build command.
type Options struct {
	ID          string
	Title       string
	Description string
	Months      int
	Cash        string
	Income      string
	Wants       []string
	Needs       []string
	Fixed       []string
	Debts       []string
	Investments []string
}

var opts Options

// Cmd represents the build command
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Build a custom scenario",
	Long: `Build a custom scenario and save it as YAML in scenarios.directory.

Line items are given as name=value. Debts take name=balance:apr[:minimum] and
investments name=balance:apr. Rates are annual decimals; a rate above 1 is read as a
percentage, so 0.2199 and 21.99 are the same. Ids are assigned in
the order items are given.

Example:
  budget-sim build --title "My budget" --income 3200 --cash 400 \
    --need Groceries=380 --fixed Rent=1350 --debt "Visa=2800:0.2199:30" -m 18`,
	Run: buildFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.ID, "id", "", "Scenario id (defaults to custom-<timestamp>)")
	Cmd.Flags().StringVar(&opts.Title, "title", scenario.DefaultTitle, "Scenario title")
	Cmd.Flags().StringVar(&opts.Description, "description", scenario.DefaultDescription, "Scenario description")
	Cmd.Flags().StringVar(&opts.Cash, "cash", "0", "Starting cash")
	Cmd.Flags().StringVar(&opts.Income, "income", "0", "Monthly income")
	Cmd.Flags().StringArrayVar(&opts.Wants, "want", nil, "Variable want as name=planned (repeatable)")
	Cmd.Flags().StringArrayVar(&opts.Needs, "need", nil, "Variable need as name=planned (repeatable)")
	Cmd.Flags().StringArrayVar(&opts.Fixed, "fixed", nil, "Fixed expense as name=monthly (repeatable)")
	Cmd.Flags().StringArrayVar(&opts.Debts, "debt", nil, "Debt as name=balance:apr[:minimum] (repeatable)")
	Cmd.Flags().StringArrayVar(&opts.Investments, "investment", nil, "Investment as name=balance:apr (repeatable)")
}

func buildFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
	}

	opts.Months = root.SharedFlags.Months
	if err := Save(cmd.OutOrStdout(), opts, appContainer.GetStore(), logger); err != nil {
		logger.Fatalf("Error building scenario: %v", err)
	}
}

// Save builds the scenario described by o and stores it.
func Save(w io.Writer, o Options, repo store.ScenarioRepository, logger logging.Logger) error {
	cfg, err := Scenario(o)
	if err != nil {
		return err
	}
	path, err := repo.Save(cfg)
	if err != nil {
		return err
	}
	logger.Info("Scenario saved",
		logging.F(logging.FieldScenario, cfg.ID),
		logging.F(logging.FieldFile, path))
	_, err = fmt.Fprintf(w, "Saved scenario %s to %s\n", cfg.ID, path)
	return err
}

// Scenario turns flag values into a validated scenario.
func Scenario(o Options) (models.ScenarioConfig, error) {
	b := scenario.NewBuilder().
		WithID(o.ID).
		WithTitle(o.Title).
		WithDescription(o.Description)
	if o.Months > 0 {
		b.WithMonths(o.Months)
	}

	cash, err := models.ParseAmount(o.Cash)
	if err != nil {
		return models.ScenarioConfig{}, fmt.Errorf("cash: %w", err)
	}
	income, err := models.ParseAmount(o.Income)
	if err != nil {
		return models.ScenarioConfig{}, fmt.Errorf("income: %w", err)
	}
	b.WithCash(cash).WithIncome(income)

	items := []struct {
		flag   string
		values []string
		parts  int
		add    func(name string, v []float64)
	}{
		{"want", o.Wants, 1, func(name string, v []float64) { b.AddWant(name, v[0]) }},
		{"need", o.Needs, 1, func(name string, v []float64) { b.AddNeed(name, v[0]) }},
		{"fixed", o.Fixed, 1, func(name string, v []float64) { b.AddFixed(name, v[0]) }},
		{"debt", o.Debts, 3, func(name string, v []float64) { b.AddDebt(name, v[0], v[1], v[2]) }},
		{"investment", o.Investments, 2, func(name string, v []float64) { b.AddInvestment(name, v[0], v[1]) }},
	}
	for _, item := range items {
		for _, raw := range item.values {
			name, values, err := ParseItem(raw, item.parts)
			if err != nil {
				return models.ScenarioConfig{}, fmt.Errorf("--%s %q: %w", item.flag, raw, err)
			}
			item.add(name, values)
		}
	}

	return b.Build()
}

// ParseItem splits "name=a:b:c" into the name and up to n amounts. Missing trailing
// amounts are zero; the first amount is required.
func ParseItem(raw string, n int) (string, []float64, error) {
	name, rest, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("expected name=value")
	}

	parts := strings.Split(rest, ":")
	if len(parts) > n {
		return "", nil, fmt.Errorf("expected at most %d values, got %d", n, len(parts))
	}
	if strings.TrimSpace(parts[0]) == "" {
		return "", nil, fmt.Errorf("missing value")
	}

	values := make([]float64, n)
	for i, p := range parts {
		v, err := models.ParseAmount(strings.TrimSpace(p))
		if err != nil {
			return "", nil, err
		}
		values[i] = v
	}
	return name, values, nil
}
