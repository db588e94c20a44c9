package engine

import "time"

// Config holds the tunable rules and pipeline limits
type Config struct {
	MinPlayers    int
	MaxPlayers    int
	HandSize      int
	DefenseWindow time.Duration
	MoveDeadline  time.Duration
	CASRetries    int
}

// DefaultConfig returns the standard rules configuration
func DefaultConfig() Config {
	return Config{
		MinPlayers:    2,
		MaxPlayers:    5,
		HandSize:      5,
		DefenseWindow: 5 * time.Second,
		MoveDeadline:  5 * time.Second,
		CASRetries:    3,
	}
}

// Win thresholds per player count. A player wins by reaching either
// the queen count or the point total for the table size.
var (
	queensToWin = map[int]int{2: 5, 3: 5, 4: 4, 5: 4}
	pointsToWin = map[int]int{2: 50, 3: 50, 4: 40, 5: 40}
)

// QueensToWin returns how many queens win for the given player count
func QueensToWin(playerCount int) int {
	return queensToWin[playerCount]
}

// PointsToWin returns how many points win for the given player count
func PointsToWin(playerCount int) int {
	return pointsToWin[playerCount]
}
