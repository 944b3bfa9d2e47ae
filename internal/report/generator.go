// Package report renders simulated runs for people and for other tools.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"

	"github.com/gocarina/gocsv"
)

// Generator renders runs as text, JSON or CSV. Amounts are rounded for display only.
type Generator struct {
	logger    logging.Logger
	delimiter rune
}

// NewGenerator creates a Generator. A zero delimiter means a comma.
func NewGenerator(logger logging.Logger, delimiter rune) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Generator{logger: logger, delimiter: delimiter}
}

// MonthRow is one simulated month flattened for CSV export.
type MonthRow struct {
	Month          int    `csv:"month"`
	Cash           string `csv:"cash"`
	CashChange     string `csv:"cash_change"`
	WantsPlanned   string `csv:"wants_planned"`
	WantsActual    string `csv:"wants_actual"`
	NeedsPlanned   string `csv:"needs_planned"`
	NeedsActual    string `csv:"needs_actual"`
	FixedDue       string `csv:"fixed_due"`
	FixedPaid      string `csv:"fixed_paid"`
	Arrears        string `csv:"arrears"`
	DebtPaid       string `csv:"debt_paid"`
	Interest       string `csv:"interest"`
	DebtBalance    string `csv:"debt_balance"`
	MissedMinimums int    `csv:"missed_minimums"`
	Contributions  string `csv:"contributions"`
	Growth         string `csv:"growth"`
	Investments    string `csv:"investments"`
	NetWorth       string `csv:"net_worth"`
	NetWorthChange string `csv:"net_worth_change"`
}

// SummaryRow condenses a whole run into one line.
type SummaryRow struct {
	Scenario       string `csv:"scenario" json:"scenario"`
	Title          string `csv:"title" json:"title"`
	Months         int    `csv:"months" json:"months"`
	FinalCash      string `csv:"final_cash" json:"finalCash"`
	FinalDebt      string `csv:"final_debt" json:"finalDebt"`
	FinalInvested  string `csv:"final_invested" json:"finalInvested"`
	NetWorthChange string `csv:"net_worth_change" json:"netWorthChange"`
	TotalInterest  string `csv:"total_interest" json:"totalInterest"`
	TotalGrowth    string `csv:"total_growth" json:"totalGrowth"`
	MissedMinimums int    `csv:"missed_minimums" json:"missedMinimums"`
}

// Generate renders a run in the given format: text, json or csv.
func (g *Generator) Generate(run models.Run, format string) ([]byte, error) {
	g.logger.Debug("Generating report",
		logging.F(logging.FieldScenario, run.Scenario.ID),
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldCount, len(run.Months)))

	switch format {
	case "text":
		return []byte(g.text(run)), nil
	case "json":
		return g.json(run)
	case "csv":
		return g.csv(MonthRows(run))
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateMonth renders a single month result in the given format.
func (g *Generator) GenerateMonth(result models.MonthResult, format string) ([]byte, error) {
	switch format {
	case "text":
		return []byte(strings.TrimPrefix(MonthText(result), "\n")), nil
	case "json":
		return g.json(result)
	case "csv":
		return g.csv(MonthRows(models.Run{Months: []models.MonthResult{result}}))
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateSummary renders one line per run in the given format.
func (g *Generator) GenerateSummary(runs []models.Run, format string) ([]byte, error) {
	rows := make([]SummaryRow, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, Summarize(run))
	}

	switch format {
	case "text":
		return []byte(summaryText(rows)), nil
	case "json":
		return g.json(rows)
	case "csv":
		return g.csv(rows)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// MonthRows flattens every month of a run.
func MonthRows(run models.Run) []MonthRow {
	rows := make([]MonthRow, 0, len(run.Months))
	for _, m := range run.Months {
		var fixedDue, fixedPaid, arrears float64
		for _, f := range m.FixedSummaries {
			fixedDue += f.Due
			fixedPaid += f.Paid
			arrears += f.NewArrears
		}
		var debtPaid, interest float64
		for _, d := range m.DebtSummaries {
			debtPaid += d.ActualPayment
			interest += d.Interest
		}
		var contributions, growth float64
		for _, i := range m.InvestmentSummaries {
			contributions += i.ActualContribution
			growth += i.Growth
		}

		rows = append(rows, MonthRow{
			Month:          m.NewState.Month,
			Cash:           models.FormatAmount(m.NewState.Cash),
			CashChange:     models.FormatAmount(m.CashChange),
			WantsPlanned:   models.FormatAmount(m.WantsSummary.Planned),
			WantsActual:    models.FormatAmount(m.WantsSummary.Actual),
			NeedsPlanned:   models.FormatAmount(m.NeedsSummary.Planned),
			NeedsActual:    models.FormatAmount(m.NeedsSummary.Actual),
			FixedDue:       models.FormatAmount(fixedDue),
			FixedPaid:      models.FormatAmount(fixedPaid),
			Arrears:        models.FormatAmount(arrears),
			DebtPaid:       models.FormatAmount(debtPaid),
			Interest:       models.FormatAmount(interest),
			DebtBalance:    models.FormatAmount(m.NewState.TotalDebt()),
			MissedMinimums: len(m.MissedMinimums()),
			Contributions:  models.FormatAmount(contributions),
			Growth:         models.FormatAmount(growth),
			Investments:    models.FormatAmount(m.NewState.TotalInvestments()),
			NetWorth:       models.FormatAmount(m.NetWorthEnd),
			NetWorthChange: models.FormatAmount(m.NetWorthChange),
		})
	}
	return rows
}

// Summarize condenses a run into its headline numbers.
func Summarize(run models.Run) SummaryRow {
	final := run.FinalState()
	return SummaryRow{
		Scenario:       run.Scenario.ID,
		Title:          run.Scenario.Title,
		Months:         len(run.Months),
		FinalCash:      models.FormatAmount(final.Cash),
		FinalDebt:      models.FormatAmount(final.TotalDebt()),
		FinalInvested:  models.FormatAmount(final.TotalInvestments()),
		NetWorthChange: models.FormatSignedAmount(run.NetWorthChange()),
		TotalInterest:  models.FormatAmount(run.TotalInterest()),
		TotalGrowth:    models.FormatAmount(run.TotalGrowth()),
		MissedMinimums: run.MissedMinimumCount(),
	}
}

func (g *Generator) json(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) csv(rows interface{}) ([]byte, error) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = g.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) text(run models.Run) string {
	var b strings.Builder
	cfg := run.Scenario

	fmt.Fprintf(&b, "%s (%s)\n", cfg.Title, cfg.ID)
	if cfg.Description != "" {
		fmt.Fprintf(&b, "%s\n", cfg.Description)
	}
	fmt.Fprintf(&b, "Months simulated: %d of %d\n", len(run.Months), cfg.TotalMonths)
	writeStart(&b, cfg.InitialState)

	for _, m := range run.Months {
		writeMonth(&b, m)
	}

	s := Summarize(run)
	b.WriteString("\nSummary\n")
	fmt.Fprintf(&b, "  Final cash:        %s\n", s.FinalCash)
	fmt.Fprintf(&b, "  Debt remaining:    %s\n", s.FinalDebt)
	fmt.Fprintf(&b, "  Invested:          %s\n", s.FinalInvested)
	fmt.Fprintf(&b, "  Net worth change:  %s\n", s.NetWorthChange)
	fmt.Fprintf(&b, "  Interest paid:     %s\n", s.TotalInterest)
	fmt.Fprintf(&b, "  Growth earned:     %s\n", s.TotalGrowth)
	fmt.Fprintf(&b, "  Missed minimums:   %d\n", s.MissedMinimums)
	return b.String()
}

func writeStart(b *strings.Builder, s models.ScenarioState) {
	if len(s.Debts) == 0 && len(s.Investments) == 0 {
		return
	}
	b.WriteString("\nStarting balances\n")
	for _, d := range s.Debts {
		fmt.Fprintf(b, "  Debt  %-20s balance %s  APR %s\n", d.Name, models.FormatAmount(d.Balance), models.FormatRate(d.APR))
	}
	for _, i := range s.Investments {
		fmt.Fprintf(b, "  Invest %-19s balance %s  APR %s\n", i.Name, models.FormatAmount(i.Balance), models.FormatRate(i.APR))
	}
}

// MonthText renders a single month result the way Generate does inside a text report.
func MonthText(m models.MonthResult) string {
	var b strings.Builder
	writeMonth(&b, m)
	return b.String()
}

func writeMonth(b *strings.Builder, m models.MonthResult) {
	fmt.Fprintf(b, "\nMonth %d\n", m.NewState.Month)
	fmt.Fprintf(b, "  Cash: %s (%s)  Net worth: %s (%s)\n",
		models.FormatAmount(m.NewState.Cash), models.FormatSignedAmount(m.CashChange),
		models.FormatAmount(m.NetWorthEnd), models.FormatSignedAmount(m.NetWorthChange))
	fmt.Fprintf(b, "  Wants: %s of %s  Needs: %s of %s\n",
		models.FormatAmount(m.WantsSummary.Actual), models.FormatAmount(m.WantsSummary.Planned),
		models.FormatAmount(m.NeedsSummary.Actual), models.FormatAmount(m.NeedsSummary.Planned))

	for _, f := range m.FixedSummaries {
		line := fmt.Sprintf("  Fixed %-20s paid %s of %s", f.Name, models.FormatAmount(f.Paid), models.FormatAmount(f.Due))
		if f.NewArrears > 0 {
			line += fmt.Sprintf("  arrears %s", models.FormatAmount(f.NewArrears))
		}
		b.WriteString(line + "\n")
	}
	for _, d := range m.DebtSummaries {
		line := fmt.Sprintf("  Debt  %-20s paid %s  interest %s  balance %s",
			d.Name, models.FormatAmount(d.ActualPayment), models.FormatAmount(d.Interest), models.FormatAmount(d.EndBalance))
		if !d.MetMinimum {
			line += fmt.Sprintf("  below suggested minimum %s", models.FormatAmount(d.SuggestedMinimum))
		}
		b.WriteString(line + "\n")
	}
	for _, i := range m.InvestmentSummaries {
		fmt.Fprintf(b, "  Invest %-19s added %s  growth %s  balance %s\n",
			i.Name, models.FormatAmount(i.ActualContribution), models.FormatAmount(i.Growth), models.FormatAmount(i.EndBalance))
	}
}

func summaryText(rows []SummaryRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %6s %12s %12s %12s %14s %10s\n",
		"SCENARIO", "MONTHS", "CASH", "DEBT", "INVESTED", "NET WORTH +/-", "MISSED")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-20s %6d %12s %12s %12s %14s %10d\n",
			r.Scenario, r.Months, r.FinalCash, r.FinalDebt, r.FinalInvested, r.NetWorthChange, r.MissedMinimums)
	}
	return b.String()
}
