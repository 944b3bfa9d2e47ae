package simerror

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "validation with field",
			err:      &ValidationError{Scenario: "custom-1", Field: "debts", Reason: "duplicate id 'db0'"},
			expected: "invalid scenario 'custom-1': debts: duplicate id 'db0'",
		},
		{
			name:     "validation without field",
			err:      &ValidationError{Scenario: "custom-1", Reason: "title is required"},
			expected: "invalid scenario 'custom-1': title is required",
		},
		{
			name:     "not found",
			err:      &NotFoundError{Kind: "scenario", ID: "nope"},
			expected: "scenario 'nope' not found",
		},
		{
			name:     "load",
			err:      &LoadError{FilePath: "plan.yaml", Err: errors.New("bad yaml")},
			expected: "failed to load plan.yaml: bad yaml",
		},
		{
			name:     "horizon",
			err:      &HorizonReachedError{Scenario: "credit_card_poc", TotalMonths: 12},
			expected: "scenario 'credit_card_poc' already ran its 12 months",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestLoadError_Unwrap(t *testing.T) {
	err := &LoadError{FilePath: "missing.yaml", Err: fs.ErrNotExist}
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	notFound := fmt.Errorf("lookup: %w", &NotFoundError{Kind: "run", ID: "7"})
	horizon := fmt.Errorf("step: %w", &HorizonReachedError{Scenario: "x", TotalMonths: 1})

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(horizon))
	assert.False(t, IsNotFound(errors.New("other")))

	var reached *HorizonReachedError
	assert.ErrorAs(t, horizon, &reached)
	assert.Equal(t, 1, reached.TotalMonths)
}
