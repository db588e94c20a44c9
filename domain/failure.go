package domain

import "fmt"

// FailureKind tags a rejected move with the reason class surfaced to
// the client.
type FailureKind string

const (
	FailureNotYourTurn  FailureKind = "not-your-turn"
	FailureIllegalMove  FailureKind = "illegal-move"
	FailureStaleVersion FailureKind = "stale-version"
	FailureTimeout      FailureKind = "timeout"
	FailureGameNotFound FailureKind = "game-not-found"
	FailureGameEnded    FailureKind = "game-ended"
)

// Failure is a tagged move rejection. Validators return it without
// mutating state; it is surfaced, not retried.
type Failure struct {
	Kind   FailureKind
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

// NotYourTurn builds a not-your-turn failure
func NotYourTurn(reason string) *Failure {
	return &Failure{Kind: FailureNotYourTurn, Reason: reason}
}

// IllegalMove builds an illegal-move failure with a human sub-reason
func IllegalMove(format string, args ...any) *Failure {
	return &Failure{Kind: FailureIllegalMove, Reason: fmt.Sprintf(format, args...)}
}

// Result is what the submitter gets back for a move
type Result struct {
	OK      bool        `json:"ok"`
	Kind    FailureKind `json:"kind,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	Version int64       `json:"version,omitempty"`
}

// ResultFromFailure converts a failure into a client result
func ResultFromFailure(f *Failure) Result {
	return Result{OK: false, Kind: f.Kind, Reason: f.Reason}
}
