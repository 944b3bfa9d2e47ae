// Package store reads and writes scenarios, states, choices and plan schedules as YAML files.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/runner"
	"fjacquet/budget-sim/internal/simerror"
	"fjacquet/budget-sim/internal/validation"

	"gopkg.in/yaml.v3"
)

// ScenarioRepository is the set of operations the CLI needs for custom scenarios.
type ScenarioRepository interface {
	Save(cfg models.ScenarioConfig) (string, error)
	Load(id string) (models.ScenarioConfig, error)
	List() ([]models.ScenarioConfig, error)
}

// ScenarioStore keeps one YAML file per custom scenario, named after the scenario id.
type ScenarioStore struct {
	Directory string
	logger    logging.Logger
}

// NewScenarioStore creates a store rooted at directory. A nil logger discards output.
func NewScenarioStore(directory string, logger logging.Logger) *ScenarioStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ScenarioStore{Directory: directory, logger: logger}
}

// Path returns the file a scenario with the given id is stored in.
func (s *ScenarioStore) Path(id string) string {
	return filepath.Join(s.Directory, id+".yaml")
}

// Save validates cfg and writes it, replacing any previous file for the same id.
func (s *ScenarioStore) Save(cfg models.ScenarioConfig) (string, error) {
	if err := validation.ValidateScenario(cfg); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Directory, 0755); err != nil {
		return "", fmt.Errorf("error creating scenario directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("error marshaling scenario %s: %w", cfg.ID, err)
	}

	path := s.Path(cfg.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error writing scenario %s: %w", cfg.ID, err)
	}

	s.logger.Debug("Saved scenario",
		logging.F(logging.FieldScenario, cfg.ID),
		logging.F(logging.FieldFile, path))
	return path, nil
}

// Load reads the scenario stored under id.
func (s *ScenarioStore) Load(id string) (models.ScenarioConfig, error) {
	path := s.Path(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.ScenarioConfig{}, &simerror.NotFoundError{Kind: "scenario", ID: id}
	}
	return LoadFile(path)
}

// List returns every scenario in the directory sorted by id. A missing directory is
// an empty store, not an error.
func (s *ScenarioStore) List() ([]models.ScenarioConfig, error) {
	entries, err := os.ReadDir(s.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Scenario directory not found",
				logging.F(logging.FieldFile, s.Directory))
			return []models.ScenarioConfig{}, nil
		}
		return nil, fmt.Errorf("error reading scenario directory: %w", err)
	}

	configs := make([]models.ScenarioConfig, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		cfg, err := LoadFile(filepath.Join(s.Directory, entry.Name()))
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
	s.logger.Debug("Loaded custom scenarios",
		logging.F(logging.FieldCount, len(configs)),
		logging.F(logging.FieldFile, s.Directory))
	return configs, nil
}

// LoadFile reads and validates a single scenario file.
func LoadFile(path string) (models.ScenarioConfig, error) {
	var cfg models.ScenarioConfig
	if err := decodeFile(path, &cfg); err != nil {
		return models.ScenarioConfig{}, err
	}
	if err := validation.ValidateScenario(cfg); err != nil {
		return models.ScenarioConfig{}, &simerror.LoadError{FilePath: path, Err: err}
	}
	return cfg, nil
}

// LoadState reads a bare ScenarioState, as used to simulate a single month.
func LoadState(path string) (models.ScenarioState, error) {
	var state models.ScenarioState
	if err := decodeFile(path, &state); err != nil {
		return models.ScenarioState{}, err
	}
	if err := validation.ValidateState(filepath.Base(path), state); err != nil {
		return models.ScenarioState{}, &simerror.LoadError{FilePath: path, Err: err}
	}
	return state, nil
}

// LoadChoice reads a ScenarioChoice. An empty file is the empty choice.
func LoadChoice(path string) (models.ScenarioChoice, error) {
	var choice models.ScenarioChoice
	if err := decodeFile(path, &choice); err != nil && !errors.Is(err, io.EOF) {
		return models.ScenarioChoice{}, err
	}
	return choice, nil
}

// LoadSchedule reads a plan schedule: a default choice plus per-month overrides.
func LoadSchedule(path string) (runner.PlanSchedule, error) {
	var schedule runner.PlanSchedule
	if err := decodeFile(path, &schedule); err != nil && !errors.Is(err, io.EOF) {
		return runner.PlanSchedule{}, err
	}
	for month := range schedule.Months {
		if month < 1 {
			return runner.PlanSchedule{}, &simerror.LoadError{
				FilePath: path,
				Err:      fmt.Errorf("schedule month must be at least 1, got %d", month),
			}
		}
	}
	return schedule, nil
}

// decodeFile decodes a single YAML document. Unknown keys are rejected.
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &simerror.LoadError{FilePath: path, Err: err}
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return &simerror.LoadError{FilePath: path, Err: err}
	}
	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
