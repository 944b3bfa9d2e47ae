// Package list prints the available scenarios
package list

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-sim/cmd/root"
	"fjacquet/budget-sim/internal/scenario"

	"github.com/spf13/cobra"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom scenarios",
	Long: `List every scenario that can be run: the built-in ones first, then the custom
scenarios found in scenarios.directory.

Example:
  budget-sim list`,
	Run: listFunc,
}

func listFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
	}

	if err := Scenarios(cmd.OutOrStdout(), appContainer.GetCatalog()); err != nil {
		logger.Fatalf("Error listing scenarios: %v", err)
	}
}

// Scenarios writes one line per catalog entry.
func Scenarios(w io.Writer, catalog *scenario.Catalog) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-8s %6s  %s\n", "ID", "SOURCE", "MONTHS", "TITLE")
	for _, cfg := range catalog.All() {
		source := "custom"
		if catalog.IsBuiltIn(cfg.ID) {
			source = "built-in"
		}
		fmt.Fprintf(&b, "%-20s %-8s %6d  %s\n", cfg.ID, source, cfg.TotalMonths, cfg.Title)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
