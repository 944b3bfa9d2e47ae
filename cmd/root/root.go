// Package root contains the root command for the application
package root

import (
	"fjacquet/budget-sim/internal/config"
	"fjacquet/budget-sim/internal/container"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Scenario string
	Output   string
	Plan     string
	Months   int
	Format   string
}

var (
	// Log is the bootstrap logger used until the container exists
	Log = logrus.New()

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for subcommands
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-sim",
		Short: "A CLI tool to simulate a household budget month by month.",
		Long: `budget-sim is a CLI tool that simulates monthly household finances.
Each month income is credited and cash flows through wants, needs, fixed expenses,
debts and investments in that order, following your allocation plan.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget-sim!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			if SharedFlags.Format != "" {
				if err := validation.IsValidReportFormat(SharedFlags.Format); err != nil {
					Log.Fatal(err)
				}
			}
			AppConfig = cfg

			c, err := container.NewContainer(cfg)
			if err != nil {
				Log.Fatalf("Failed to initialize application: %v", err)
			}
			AppContainer = c
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.Warnf("Failed to close application resources: %v", err)
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Scenario, "scenario", "s", "", "Scenario id (defaults to simulation.default_scenario)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (defaults to stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Plan, "plan", "p", "", "Plan schedule YAML file")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Months, "months", "m", 0, "Number of months to simulate (defaults to the scenario horizon)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Report format: text, json or csv (defaults to report.format)")
}

// GetLogrusAdapter returns the application logger, falling back to the bootstrap logger
func GetLogrusAdapter() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}

// GetContainer returns the application container, or nil before PersistentPreRun
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the application configuration, or nil before PersistentPreRun
func GetConfig() *config.Config {
	return AppConfig
}

// ReportFormat returns the --format flag when set, otherwise the configured format
func ReportFormat() string {
	if SharedFlags.Format != "" {
		return SharedFlags.Format
	}
	if cfg := GetConfig(); cfg != nil {
		return cfg.Report.Format
	}
	return "text"
}

// ScenarioID returns the --scenario flag when set, otherwise the configured default
func ScenarioID() string {
	if SharedFlags.Scenario != "" {
		return SharedFlags.Scenario
	}
	if cfg := GetConfig(); cfg != nil {
		return cfg.Simulation.DefaultScenario
	}
	return ""
}
