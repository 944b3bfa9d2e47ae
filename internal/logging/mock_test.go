package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ChildrenShareEntries(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldScenario, "credit_card_poc")
	child.Info("month simulated", F(FieldMonth, 1))
	mock.Warn("plain")

	entries := mock.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, []Field{F(FieldScenario, "credit_card_poc"), F(FieldMonth, 1)}, entries[0].Fields)
	assert.Empty(t, entries[1].Fields)
}

func TestMockLogger_WithErrorAndQueries(t *testing.T) {
	mock := NewMockLogger()
	boom := errors.New("boom")
	mock.WithError(boom).Error("failed")
	mock.Fatalf("exit %d", 1)

	assert.True(t, mock.HasEntry("ERROR", "failed"))
	assert.True(t, mock.HasEntry("FATAL", "exit 1"))
	require.Len(t, mock.EntriesByLevel("ERROR"), 1)
	assert.Equal(t, boom, mock.EntriesByLevel("ERROR")[0].Error)

	mock.Clear()
	assert.Empty(t, mock.Entries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Info("hello")
	assert.True(t, mock.HasEntry("INFO", "hello"))
}
