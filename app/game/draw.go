package game

import (
	"strings"

	"github.com/notnil/chess"
)

// fiftyMoveClock is the halfmove clock value at which a draw may be claimed.
const fiftyMoveClock = 100

// OfferDraw records an offer from side. It stays open until accepted or until
// the opponent answers with a move.
func (g *ChessGame) OfferDraw(side chess.Color) error {
	if side != chess.White && side != chess.Black {
		return ErrInvalidSide
	}
	if g.Over() {
		return ErrGameOver
	}
	g.actions = append(g.actions, OfferDrawAction(side))
	g.drawOffer = side
	// The offer shifts the ply count that opening scripts read.
	g.resolve()
	return nil
}

// AcceptDraw ends the game as a draw if the opponent of side has an offer
// open. A side cannot accept its own offer.
func (g *ChessGame) AcceptDraw(side chess.Color) error {
	if side != chess.White && side != chess.Black {
		return ErrInvalidSide
	}
	if g.Over() {
		return ErrGameOver
	}
	if g.drawOffer == chess.NoColor || g.drawOffer != side.Other() {
		return ErrNoDrawOffer
	}
	g.actions = append(g.actions, AcceptDrawAction())
	g.terminate(ResultDraw, MethodDrawAgreed)
	return nil
}

// DeclareDraw claims a draw by threefold repetition or the fifty-move rule.
func (g *ChessGame) DeclareDraw() error {
	if g.Over() {
		return ErrGameOver
	}
	if !g.CanClaimDraw() {
		return ErrCannotClaimDraw
	}
	g.actions = append(g.actions, DeclareDrawAction())
	g.terminate(ResultDraw, MethodDrawClaimed)
	return nil
}

func (g *ChessGame) CanClaimDraw() bool {
	if g.seen[repetitionKey(g.position)] >= 3 {
		return true
	}
	return g.position.HalfMoveClock() >= fiftyMoveClock
}

// repetitionKey identifies a position for threefold counting. The en-passant
// square only counts when a capture onto it is actually legal.
func repetitionKey(pos *chess.Position) string {
	parts := strings.Split(NormalizeFEN(pos.String()), " ")
	if len(parts) == 4 && !canCaptureEnPassant(pos) {
		parts[3] = "-"
	}
	return strings.Join(parts, " ")
}

func canCaptureEnPassant(pos *chess.Position) bool {
	for _, m := range pos.ValidMoves() {
		if m.HasTag(chess.EnPassant) {
			return true
		}
	}
	return false
}

// NormalizeFEN strips move counters and keeps only the structural position:
// <pieces> <side> <castling> <en-passant>
func NormalizeFEN(fen string) string {
	parts := strings.Split(fen, " ")
	if len(parts) < 4 {
		return fen
	}
	return strings.Join(parts[:4], " ")
}
