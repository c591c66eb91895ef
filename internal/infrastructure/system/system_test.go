package system_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ironhub-api/internal/infrastructure/system"
)

func TestClock_UTC(t *testing.T) {
	now := system.Clock{}.Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestUUIDGenerator_Unicos(t *testing.T) {
	g := system.UUIDGenerator{}
	a, b := g.NewID(), g.NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
