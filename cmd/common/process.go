// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/budget-sim/internal/history"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/runner"
	"fjacquet/budget-sim/internal/scenario"
	"fjacquet/budget-sim/internal/store"
)

// WriteOutput writes data to outputFile, or to w when outputFile is empty.
func WriteOutput(w io.Writer, outputFile string, data []byte, log logging.Logger) error {
	if outputFile == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	log.Info("Report written", logging.F(logging.FieldFile, outputFile))
	return nil
}

// LoadSchedule reads planFile, or falls back to the default plan for state: every debt and
// investment in data order with nothing planned.
func LoadSchedule(planFile string, state models.ScenarioState) (runner.PlanSchedule, error) {
	if planFile == "" {
		return runner.FixedSchedule(scenario.DefaultChoice(state)), nil
	}
	schedule, err := store.LoadSchedule(planFile)
	if err != nil {
		return runner.PlanSchedule{}, fmt.Errorf("error loading plan: %w", err)
	}
	return schedule, nil
}

// ArchiveRun stores run when a history repository is configured. It returns 0 otherwise.
func ArchiveRun(ctx context.Context, repo *history.Repository, run models.Run, log logging.Logger) (int64, error) {
	if repo == nil {
		return 0, nil
	}
	id, err := repo.SaveRun(ctx, run)
	if err != nil {
		return 0, fmt.Errorf("error archiving run: %w", err)
	}
	log.Debug("Run archived", logging.F(logging.FieldRunID, id))
	return id, nil
}
