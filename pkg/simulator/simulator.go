// Package simulator exposes the budget simulator to other Go programs: a single month
// step, file-based scenario runs and a directory batch that writes one CSV per scenario.
package simulator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-sim/internal/engine"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/report"
	"fjacquet/budget-sim/internal/runner"
	"fjacquet/budget-sim/internal/scenario"
	"fjacquet/budget-sim/internal/store"
	"fjacquet/budget-sim/internal/validation"
)

type (
	// State is a household's finances at the start of a month.
	State = models.ScenarioState
	// Choice is the player's decisions for one month.
	Choice = models.ScenarioChoice
	// Result is the outcome of one simulated month.
	Result = models.MonthResult
	// Scenario is a starting state plus its horizon.
	Scenario = models.ScenarioConfig
	// Run is a scenario with its simulated months.
	Run = models.Run
)

// RunMonth simulates one month. The caller's state is never modified.
func RunMonth(state State, choice Choice) Result {
	return engine.RunMonth(state, choice)
}

// SimulateFile runs the scenario stored in scenarioFile. A non-empty planFile supplies the
// monthly choices, otherwise every month uses the default choice. months <= 0 runs to the
// scenario's horizon; the horizon is always enforced.
func SimulateFile(scenarioFile, planFile string, months int) (Run, error) {
	cfg, err := store.LoadFile(scenarioFile)
	if err != nil {
		return Run{}, err
	}

	schedule := runner.FixedSchedule(scenario.DefaultChoice(cfg.InitialState))
	if planFile != "" {
		if schedule, err = store.LoadSchedule(planFile); err != nil {
			return Run{}, err
		}
	}

	session := runner.NewSession(cfg, runner.Options{EnforceHorizon: true})
	if months > 0 {
		_, err = session.FastForward(months, schedule)
	} else {
		_, err = session.RunToHorizon(schedule)
	}
	if err != nil {
		return Run{}, fmt.Errorf("error simulating %s: %w", cfg.ID, err)
	}
	return session.Run(), nil
}

// ExportCSV writes one CSV row per simulated month of run to csvFile.
func ExportCSV(run Run, csvFile string) error {
	data, err := report.NewGenerator(nil, ',').Generate(run, "csv")
	if err != nil {
		return err
	}
	if err := os.WriteFile(csvFile, data, 0644); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

// BatchSimulate runs every scenario file (.yaml or .yml) in inputDir to its horizon and
// writes <scenario id>.csv into outputDir. It returns how many scenarios were written.
func BatchSimulate(inputDir, outputDir string) (int, error) {
	if err := validation.IsValidDirectory(inputDir); err != nil {
		return 0, fmt.Errorf("invalid input directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("error creating output directory: %w", err)
	}

	files, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("error reading input directory: %w", err)
	}

	count := 0
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if file.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		run, err := SimulateFile(filepath.Join(inputDir, file.Name()), "", 0)
		if err != nil {
			return count, fmt.Errorf("error simulating %s: %w", file.Name(), err)
		}
		if err := ExportCSV(run, filepath.Join(outputDir, run.Scenario.ID+".csv")); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
