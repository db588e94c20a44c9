package domain

// MoveKind identifies a move type. The set is closed; the rule engine
// dispatches on it.
type MoveKind string

const (
	MoveJoinGame             MoveKind = "JOIN_GAME"
	MoveLeaveGame            MoveKind = "LEAVE_GAME"
	MoveStartGame            MoveKind = "START_GAME"
	MovePlayKing             MoveKind = "PLAY_KING"
	MovePlayKnight           MoveKind = "PLAY_KNIGHT"
	MovePlayPotion           MoveKind = "PLAY_POTION"
	MovePlayDragon           MoveKind = "PLAY_DRAGON"
	MovePlayWand             MoveKind = "PLAY_WAND"
	MoveAllowKnightAttack    MoveKind = "ALLOW_KNIGHT_ATTACK"
	MoveAllowPotionAttack    MoveKind = "ALLOW_POTION_ATTACK"
	MovePlayJester           MoveKind = "PLAY_JESTER"
	MoveSelectQueenForJester MoveKind = "SELECT_QUEEN_FOR_JESTER"
	MovePlayMathEquation     MoveKind = "PLAY_MATH_EQUATION"
	MoveDiscardSingle        MoveKind = "DISCARD_SINGLE"
	MoveDiscardPair          MoveKind = "DISCARD_PAIR"
	MoveStageCards           MoveKind = "STAGE_CARDS"
	MoveClearStaged          MoveKind = "CLEAR_STAGED"
	MoveRoseQueenBonus       MoveKind = "ROSE_QUEEN_BONUS"

	// Engine-internal kinds, never accepted from clients.
	MovePlayerConnected    MoveKind = "PLAYER_CONNECTED"
	MovePlayerDisconnected MoveKind = "PLAYER_DISCONNECTED"
)

// Internal checks whether the kind is engine-originated
func (k MoveKind) Internal() bool {
	return k == MovePlayerConnected || k == MovePlayerDisconnected
}

// Equation carries the number cards a player claims form a valid
// addition equation.
type Equation struct {
	CardIDs []string `json:"cardIds"`
	Sum     int      `json:"sum"`
}

// Move is the envelope every submitted move arrives in. Target
// references carry IDs only.
type Move struct {
	ID             string    `json:"id"`
	GameID         string    `json:"gameId"`
	PlayerID       string    `json:"playerId"`
	PlayerName     string    `json:"playerName,omitempty"`
	Kind           MoveKind  `json:"kind"`
	Cards          []string  `json:"cards,omitempty"`
	TargetCardID   string    `json:"targetCardId,omitempty"`
	TargetPlayerID string    `json:"targetPlayerId,omitempty"`
	Equation       *Equation `json:"equation,omitempty"`
	SubmittedAt    int64     `json:"submittedAt,omitempty"`
}
