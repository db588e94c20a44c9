package domain

import (
	"fmt"
	"time"

	"github.com/lazharichir/queens/cards"
)

// Phase represents the lifecycle phase of a game
type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

// PendingAttack records a knight or potion play awaiting the target's
// defense. The deadline bounds the defense window.
type PendingAttack struct {
	AttackerID    string    `json:"attackerId"`
	TargetID      string    `json:"targetId"`
	TargetQueenID string    `json:"targetQueenId"`
	Deadline      time.Time `json:"deadline"`
}

// JesterReveal records a jester play that revealed a number card and
// is waiting for the counted-to player to pick a sleeping queen.
type JesterReveal struct {
	OriginalPlayerID       string     `json:"originalPlayerId"`
	RevealedCard           cards.Card `json:"revealedCard"`
	TargetPlayerID         string     `json:"targetPlayerId"`
	AwaitingQueenSelection bool       `json:"awaitingQueenSelection"`
}

// RoseQueenBonus records the one-shot right to wake an extra queen
// after waking the Rose Queen with a king.
type RoseQueenBonus struct {
	PlayerID string `json:"playerId"`
	Pending  bool   `json:"pending"`
}

// LastAction describes the most recently committed move for observers
type LastAction struct {
	PlayerID string    `json:"playerId"`
	Kind     MoveKind  `json:"kind"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Game is the single source of truth for one game. It is only mutated
// by the move pipeline; everything else reads committed snapshots.
type Game struct {
	ID                 string                 `json:"id"`
	RoomCode           string                 `json:"roomCode"`
	Players            []Player               `json:"players"`
	CurrentPlayerIndex int                    `json:"currentPlayerIndex"`
	SleepingQueens     cards.Stack            `json:"sleepingQueens"`
	DrawPile           cards.Stack            `json:"drawPile"`
	DiscardPile        cards.Stack            `json:"discardPile"`
	Phase              Phase                  `json:"phase"`
	WinnerID           string                 `json:"winnerId,omitempty"`
	Version            int64                  `json:"version"`
	LastMoveID         string                 `json:"lastMoveId,omitempty"`
	StagedCards        map[string]cards.Stack `json:"stagedCards,omitempty"`
	PendingKnight      *PendingAttack         `json:"pendingKnightAttack,omitempty"`
	PendingPotion      *PendingAttack         `json:"pendingPotionAttack,omitempty"`
	JesterReveal       *JesterReveal          `json:"jesterReveal,omitempty"`
	RoseQueenBonus     *RoseQueenBonus        `json:"roseQueenBonus,omitempty"`
	LastAction         *LastAction            `json:"lastAction,omitempty"`
}

// NewGame creates a game in the waiting phase with no players seated
func NewGame(id, roomCode string) *Game {
	return &Game{
		ID:             id,
		RoomCode:       roomCode,
		Players:        []Player{},
		SleepingQueens: cards.Stack{},
		DrawPile:       cards.Stack{},
		DiscardPile:    cards.Stack{},
		Phase:          PhaseWaiting,
		StagedCards:    map[string]cards.Stack{},
	}
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// PlayerByID returns the player with the given ID, or nil
func (g *Game) PlayerByID(playerID string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return &g.Players[i]
		}
	}
	return nil
}

// OwnerOfQueen returns the player owning the given awake queen along
// with the queen itself, or nil if no player owns it.
func (g *Game) OwnerOfQueen(queenID string) (*Player, *cards.Card) {
	for i := range g.Players {
		if q, idx := g.Players[i].Queens.FindByID(queenID); idx >= 0 {
			return &g.Players[i], &q
		}
	}
	return nil, nil
}

// FindCardInHand returns the card with the given ID from the player's
// hand, or nil if the player does not hold it.
func (g *Game) FindCardInHand(playerID, cardID string) *cards.Card {
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil
	}
	if c, idx := p.Hand.FindByID(cardID); idx >= 0 {
		return &c
	}
	return nil
}

// SleepingQueenByID returns the sleeping queen with the given ID, or nil
func (g *Game) SleepingQueenByID(queenID string) *cards.Card {
	if q, idx := g.SleepingQueens.FindByID(queenID); idx >= 0 {
		return &q
	}
	return nil
}

// ConnectedCount returns how many seated players are connected
func (g *Game) ConnectedCount() int {
	n := 0
	for _, p := range g.Players {
		if p.Connected {
			n++
		}
	}
	return n
}

// HasPendingInteraction checks whether any out-of-turn record is active
func (g *Game) HasPendingInteraction() bool {
	return g.PendingKnight != nil ||
		g.PendingPotion != nil ||
		(g.JesterReveal != nil && g.JesterReveal.AwaitingQueenSelection) ||
		(g.RoseQueenBonus != nil && g.RoseQueenBonus.Pending)
}

// Clone returns a deep copy of the game state
func (g *Game) Clone() *Game {
	out := *g
	out.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		out.Players[i] = p.Clone()
	}
	out.SleepingQueens = g.SleepingQueens.Clone()
	out.DrawPile = g.DrawPile.Clone()
	out.DiscardPile = g.DiscardPile.Clone()
	if g.StagedCards != nil {
		out.StagedCards = make(map[string]cards.Stack, len(g.StagedCards))
		for id, staged := range g.StagedCards {
			out.StagedCards[id] = staged.Clone()
		}
	}
	if g.PendingKnight != nil {
		pk := *g.PendingKnight
		out.PendingKnight = &pk
	}
	if g.PendingPotion != nil {
		pp := *g.PendingPotion
		out.PendingPotion = &pp
	}
	if g.JesterReveal != nil {
		jr := *g.JesterReveal
		out.JesterReveal = &jr
	}
	if g.RoseQueenBonus != nil {
		rb := *g.RoseQueenBonus
		out.RoseQueenBonus = &rb
	}
	if g.LastAction != nil {
		la := *g.LastAction
		out.LastAction = &la
	}
	return &out
}

// CheckInvariants verifies the structural invariants that must hold
// after every committed move. A failure here is a bug, not a bad move.
func (g *Game) CheckInvariants() error {
	if g.Phase == PhaseWaiting {
		return nil
	}

	// Every card lives in exactly one location. Staged cards alias the
	// owner's hand until the play commits, so they are checked for
	// containment rather than counted.
	seen := map[string]string{}
	note := func(c cards.Card, where string) error {
		if prev, dup := seen[c.ID]; dup {
			return fmt.Errorf("card %s in both %s and %s", c.ID, prev, where)
		}
		seen[c.ID] = where
		return nil
	}
	for _, p := range g.Players {
		for _, c := range p.Hand {
			if err := note(c, "hand:"+p.ID); err != nil {
				return err
			}
		}
		for _, c := range p.Queens {
			if err := note(c, "queens:"+p.ID); err != nil {
				return err
			}
		}
	}
	for _, c := range g.SleepingQueens {
		if err := note(c, "sleeping"); err != nil {
			return err
		}
	}
	for _, c := range g.DrawPile {
		if err := note(c, "draw"); err != nil {
			return err
		}
	}
	for _, c := range g.DiscardPile {
		if err := note(c, "discard"); err != nil {
			return err
		}
	}
	if g.JesterReveal != nil && g.JesterReveal.AwaitingQueenSelection {
		if err := note(g.JesterReveal.RevealedCard, "jester-reveal"); err != nil {
			return err
		}
	}
	if len(seen) != cards.CatalogSize {
		return fmt.Errorf("card universe has %d cards, want %d", len(seen), cards.CatalogSize)
	}

	for _, p := range g.Players {
		if len(p.Hand) > HandSize {
			return fmt.Errorf("player %s holds %d cards", p.ID, len(p.Hand))
		}
		if p.Queens.Contains(cards.QueenCatID) && p.Queens.Contains(cards.QueenDogID) {
			return fmt.Errorf("player %s holds both cat and dog queens", p.ID)
		}
	}
	for playerID, staged := range g.StagedCards {
		p := g.PlayerByID(playerID)
		if p == nil {
			return fmt.Errorf("staged cards for unknown player %s", playerID)
		}
		for _, c := range staged {
			if !p.Hand.Contains(c.ID) {
				return fmt.Errorf("player %s staged %s without holding it", playerID, c.ID)
			}
		}
	}

	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return fmt.Errorf("current player index %d out of range", g.CurrentPlayerIndex)
	}

	pending := 0
	if g.PendingKnight != nil {
		pending++
	}
	if g.PendingPotion != nil {
		pending++
	}
	if g.JesterReveal != nil && g.JesterReveal.AwaitingQueenSelection {
		pending++
	}
	if g.RoseQueenBonus != nil && g.RoseQueenBonus.Pending {
		pending++
	}
	if pending > 1 {
		return fmt.Errorf("%d pending interactions active", pending)
	}

	if (g.Phase == PhaseEnded) != (g.WinnerID != "") {
		return fmt.Errorf("phase %q inconsistent with winner %q", g.Phase, g.WinnerID)
	}

	return nil
}

// HandSize is the hand cap every player refills to at end of turn
const HandSize = 5
