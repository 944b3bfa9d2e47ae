// Package container provides dependency injection for the budget-sim application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/budget-sim/internal/config"
	"fjacquet/budget-sim/internal/history"
	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/report"
	"fjacquet/budget-sim/internal/runner"
	"fjacquet/budget-sim/internal/scenario"
	"fjacquet/budget-sim/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
// All fields are private and only reachable through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	catalog   *scenario.Catalog
	store     store.ScenarioRepository
	generator *report.Generator
	history   *history.Repository
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	scenarioStore := store.NewScenarioStore(cfg.Scenarios.Directory, logger)
	catalog, err := loadCatalog(scenarioStore, logger)
	if err != nil {
		return nil, err
	}

	delimiter := ','
	if cfg.Report.CSVDelimiter != "" {
		delimiter = []rune(cfg.Report.CSVDelimiter)[0]
	}
	generator := report.NewGenerator(logger, delimiter)

	var historyRepo *history.Repository
	if cfg.History.Enabled {
		historyRepo, err = history.NewRepository(cfg.History.DBPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open run history: %w", err)
		}
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldCount, catalog.Len()),
		logging.F("history_enabled", historyRepo != nil))

	return &Container{
		logger:    logger,
		config:    cfg,
		catalog:   catalog,
		store:     scenarioStore,
		generator: generator,
		history:   historyRepo,
	}, nil
}

// loadCatalog starts from the built-in scenarios and adds every custom scenario on disk.
// A custom scenario that reuses a built-in id is skipped with a warning.
func loadCatalog(repo store.ScenarioRepository, logger logging.Logger) (*scenario.Catalog, error) {
	catalog := scenario.NewCatalog()

	custom, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load custom scenarios: %w", err)
	}
	for _, cfg := range custom {
		if err := catalog.Add(cfg); err != nil {
			logger.WithError(err).Warn("Skipping custom scenario",
				logging.F(logging.FieldScenario, cfg.ID))
		}
	}
	return catalog, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCatalog returns the built-in and custom scenarios.
func (c *Container) GetCatalog() *scenario.Catalog {
	return c.catalog
}

// GetStore returns the custom scenario store.
func (c *Container) GetStore() store.ScenarioRepository {
	return c.store
}

// GetReportGenerator returns the report generator configured with the CSV delimiter.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetHistory returns the run archive, or nil when history is disabled.
func (c *Container) GetHistory() *history.Repository {
	return c.history
}

// SessionOptions returns the runner options derived from configuration.
func (c *Container) SessionOptions() runner.Options {
	return runner.Options{
		EnforceHorizon: c.config.Simulation.EnforceHorizon,
		Logger:         c.logger,
	}
}

// Close releases the run archive, if one is open.
func (c *Container) Close() error {
	if c.history != nil {
		if err := c.history.Close(); err != nil {
			return fmt.Errorf("failed to close run history: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
