// Package rules implements the stealo move restrictions: a small closed set of
// policy families and the numbered registry that maps persisted rule ids to
// them.
package rules

import (
	"github.com/notnil/chess"
)

// Family identifies which kind of restriction a Policy applies.
type Family int

const (
	FamilyNone Family = iota
	FamilyCapture
	FamilyDelayedPiece
	FamilyDestination
	FamilyForcedOpening
)

func (f Family) String() string {
	switch f {
	case FamilyCapture:
		return "capture"
	case FamilyDelayedPiece:
		return "delayed-piece"
	case FamilyDestination:
		return "destination"
	case FamilyForcedOpening:
		return "forced-opening"
	default:
		return "none"
	}
}

// Context is everything a policy may look at when judging a candidate move.
type Context struct {
	Position *chess.Position
	// Plies is the number of actions already committed to the game, moves and
	// draw/resign bookkeeping alike.
	Plies int
	// MovesPlayed is the number of committed moves only.
	MovesPlayed int
}

// Turn is the full-move number the side to move is playing: half-moves 0-1
// are turn 1, 2-3 turn 2, and so on.
func (c Context) Turn() int {
	return (2 + c.MovesPlayed) / 2
}

// Policy decides whether a standard-legal move is disallowed. Implementations
// are immutable and safe for concurrent use.
type Policy interface {
	Disallows(ctx Context, m *chess.Move) bool
	Family() Family
	sealed()
}

// Filter returns every standard-legal move in ctx.Position that p does not
// disallow, in the order the move generator produced them.
func Filter(p Policy, ctx Context) []*chess.Move {
	if ctx.Position == nil {
		return nil
	}
	legal := ctx.Position.ValidMoves()
	allowed := make([]*chess.Move, 0, len(legal))
	for _, m := range legal {
		if !p.Disallows(ctx, m) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

func movingPiece(ctx Context, m *chess.Move) chess.PieceType {
	return ctx.Position.Board().Piece(m.S1()).Type()
}

// NoRestriction is plain chess.
type NoRestriction struct{}

func (NoRestriction) Disallows(Context, *chess.Move) bool { return false }
func (NoRestriction) Family() Family                      { return FamilyNone }
func (NoRestriction) sealed()                             {}

// CaptureRestriction forbids pieces in Sources from capturing pieces in
// Targets. Only the piece standing on the destination square counts, so
// quiet moves and en passant are never affected.
type CaptureRestriction struct {
	Sources PieceSet
	Targets PieceSet
}

func (r CaptureRestriction) Disallows(ctx Context, m *chess.Move) bool {
	if !r.Sources.Has(movingPiece(ctx, m)) {
		return false
	}
	captured := ctx.Position.Board().Piece(m.S2())
	if captured == chess.NoPiece {
		return false
	}
	return r.Targets.Has(captured.Type())
}

func (CaptureRestriction) Family() Family { return FamilyCapture }
func (CaptureRestriction) sealed()        {}

// DelayedPiece freezes one piece type once the current turn is past
// AfterTurn.
type DelayedPiece struct {
	Piece     chess.PieceType
	AfterTurn int
}

func (r DelayedPiece) Disallows(ctx Context, m *chess.Move) bool {
	if movingPiece(ctx, m) != r.Piece {
		return false
	}
	return ctx.Turn() > r.AfterTurn
}

func (DelayedPiece) Family() Family { return FamilyDelayedPiece }
func (DelayedPiece) sealed()        {}

// DestinationRestriction keeps the listed piece types off the forbidden
// squares.
type DestinationRestriction struct {
	Forbidden SquareSet
	Pieces    PieceSet
}

func (r DestinationRestriction) Disallows(ctx Context, m *chess.Move) bool {
	if !r.Pieces.Has(movingPiece(ctx, m)) {
		return false
	}
	return r.Forbidden.Has(m.S2())
}

func (DestinationRestriction) Family() Family { return FamilyDestination }
func (DestinationRestriction) sealed()        {}

// Step is one scripted opening move.
type Step struct {
	From chess.Square
	To   chess.Square
}

func (s Step) matches(m *chess.Move) bool {
	return m.S1() == s.From && m.S2() == s.To && m.Promo() == chess.NoPieceType
}

// ForcedOpening allows exactly Script[k] at ply k and nothing else, then
// stops restricting once the script runs out. The script interleaves both
// sides' moves; each side only consults it on its own plies.
type ForcedOpening struct {
	Script []Step
}

func (r ForcedOpening) Disallows(ctx Context, m *chess.Move) bool {
	if ctx.Plies < 0 || ctx.Plies >= len(r.Script) {
		return false
	}
	return !r.Script[ctx.Plies].matches(m)
}

func (ForcedOpening) Family() Family { return FamilyForcedOpening }
func (ForcedOpening) sealed()        {}
