package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinThresholds(t *testing.T) {
	assert.Equal(t, 5, QueensToWin(2))
	assert.Equal(t, 5, QueensToWin(3))
	assert.Equal(t, 4, QueensToWin(4))
	assert.Equal(t, 4, QueensToWin(5))

	assert.Equal(t, 50, PointsToWin(2))
	assert.Equal(t, 50, PointsToWin(3))
	assert.Equal(t, 40, PointsToWin(4))
	assert.Equal(t, 40, PointsToWin(5))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.MinPlayers)
	assert.Equal(t, 5, cfg.MaxPlayers)
	assert.Equal(t, 5, cfg.HandSize)
	assert.Equal(t, 3, cfg.CASRetries)
}
