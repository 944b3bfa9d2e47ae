package runner

import (
	"strings"

	"fjacquet/budget-sim/internal/models"
)

// Notices returns the warnings a month produced, ready to show to the player:
// debts below their suggested minimum and fixed expenses that left arrears.
func Notices(result models.MonthResult) []string {
	var notices []string
	if missed := result.MissedMinimums(); len(missed) > 0 {
		names := make([]string, 0, len(missed))
		for _, d := range missed {
			names = append(names, displayName(d.Name, d.ID))
		}
		notices = append(notices, "Missed suggested minimums: "+strings.Join(names, ", "))
	}
	if unpaid := result.UnpaidFixed(); len(unpaid) > 0 {
		names := make([]string, 0, len(unpaid))
		for _, f := range unpaid {
			names = append(names, displayName(f.Name, f.ID))
		}
		notices = append(notices, "Unpaid fixed expenses (arrears added): "+strings.Join(names, ", "))
	}
	return notices
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}
