package store

import (
	"sort"

	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/simerror"
)

// MockScenarioStore is an in-memory ScenarioRepository for testing.
type MockScenarioStore struct {
	Scenarios map[string]models.ScenarioConfig

	// Error flags for testing error conditions
	SaveError error
	LoadError error
	ListError error
}

// Save stores cfg in memory.
func (m *MockScenarioStore) Save(cfg models.ScenarioConfig) (string, error) {
	if m.SaveError != nil {
		return "", m.SaveError
	}
	if m.Scenarios == nil {
		m.Scenarios = make(map[string]models.ScenarioConfig)
	}
	m.Scenarios[cfg.ID] = cfg
	return cfg.ID + ".yaml", nil
}

// Load returns the stored scenario or a NotFoundError.
func (m *MockScenarioStore) Load(id string) (models.ScenarioConfig, error) {
	if m.LoadError != nil {
		return models.ScenarioConfig{}, m.LoadError
	}
	cfg, ok := m.Scenarios[id]
	if !ok {
		return models.ScenarioConfig{}, &simerror.NotFoundError{Kind: "scenario", ID: id}
	}
	return cfg, nil
}

// List returns the stored scenarios sorted by id.
func (m *MockScenarioStore) List() ([]models.ScenarioConfig, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]models.ScenarioConfig, 0, len(m.Scenarios))
	for _, cfg := range m.Scenarios {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
