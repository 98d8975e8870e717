// Package game is the stealo state machine: one chess game where each side
// plays under its own move restriction and running out of allowed moves is a
// loss unless it is a real stalemate.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/FelixBlom97/EloStealo/app/rules"
)

// ResignText is the move text that resigns when paired with a side.
const ResignText = "resign"

var (
	ErrIllegalMove      = errors.New("move not allowed")
	ErrGameOver         = errors.New("game is over")
	ErrNoDrawOffer      = errors.New("no draw offer to accept")
	ErrCannotClaimDraw  = errors.New("no draw can be claimed")
	ErrInvalidSide      = errors.New("invalid side")
	errCorruptActionLog = errors.New("corrupt action log")
)

// Player is one side of a game: display name, rating and rule id.
type Player struct {
	Name string
	Elo  int
	Rule int
}

// ChessGame holds the action log and everything derived from it. It is not
// safe for concurrent use.
type ChessGame struct {
	White Player
	Black Player

	actions   []Action
	position  *chess.Position
	moves     int
	seen      map[string]int
	drawOffer chess.Color
	result    Result
	method    Method
}

func New(white, black Player) *ChessGame {
	return newAt(chess.StartingPosition(), white, black)
}

func newAt(pos *chess.Position, white, black Player) *ChessGame {
	g := &ChessGame{
		White:     white,
		Black:     black,
		position:  pos,
		seen:      map[string]int{},
		drawOffer: chess.NoColor,
		result:    ResultNone,
	}
	g.seen[repetitionKey(pos)]++
	g.resolve()
	return g
}

// Restore replays a stored action log. Moves are checked against standard
// chess legality only, since rule filters were enforced when they were
// committed.
func Restore(white, black Player, actions []Action) (*ChessGame, error) {
	g := New(white, black)
	for i, a := range actions {
		if err := g.replay(a); err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, a, err)
		}
	}
	return g, nil
}

func (g *ChessGame) replay(a Action) error {
	switch a.Kind {
	case KindMove:
		if g.Over() {
			return ErrGameOver
		}
		cm := find(LegalMoves(g.position), a.Move)
		if cm == nil {
			return ErrIllegalMove
		}
		g.commit(a.Move, cm)
	case KindResign:
		if a.Side != chess.White && a.Side != chess.Black {
			return ErrInvalidSide
		}
		g.actions = append(g.actions, a)
		g.terminate(Winner(a.Side.Other()), MethodResignation)
	case KindOfferDraw:
		if a.Side != chess.White && a.Side != chess.Black {
			return ErrInvalidSide
		}
		g.actions = append(g.actions, a)
		if !g.Over() {
			g.drawOffer = a.Side
			g.resolve()
		}
	case KindAcceptDraw:
		g.actions = append(g.actions, a)
		g.terminate(ResultDraw, MethodDrawAgreed)
	case KindDeclareDraw:
		g.actions = append(g.actions, a)
		g.terminate(ResultDraw, MethodDrawClaimed)
	default:
		return errCorruptActionLog
	}
	return nil
}

// ApplyMove handles one client request. The text "resign" together with a
// side resigns for that side; anything else must parse as a move that the
// mover's rule allows. A rejected move leaves the game untouched.
func (g *ChessGame) ApplyMove(text string, side chess.Color) error {
	if strings.EqualFold(strings.TrimSpace(text), ResignText) && side != chess.NoColor {
		return g.Resign(side)
	}
	m, err := ParseMove(text)
	if err != nil {
		return err
	}
	return g.Play(m)
}

// Play commits m if the side to move is allowed to make it.
func (g *ChessGame) Play(m Move) error {
	if g.Over() {
		return ErrGameOver
	}
	cm := find(g.allowed(), m)
	if cm == nil {
		return fmt.Errorf("%s: %w", m, ErrIllegalMove)
	}
	g.commit(m, cm)
	return nil
}

func (g *ChessGame) commit(m Move, cm *chess.Move) {
	mover := g.position.Turn()
	g.actions = append(g.actions, MoveAction(m))
	g.position = g.position.Update(cm)
	g.moves++
	g.seen[repetitionKey(g.position)]++
	if g.drawOffer == mover.Other() {
		// Answering with a move declines the offer.
		g.drawOffer = chess.NoColor
	}
	g.resolve()
}

func (g *ChessGame) Resign(side chess.Color) error {
	if side != chess.White && side != chess.Black {
		return ErrInvalidSide
	}
	if g.Over() {
		return ErrGameOver
	}
	g.actions = append(g.actions, ResignAction(side))
	g.terminate(Winner(side.Other()), MethodResignation)
	return nil
}

// resolve settles the result once the side to move has no allowed move.
func (g *ChessGame) resolve() {
	if g.Over() || len(g.allowed()) > 0 {
		return
	}
	switch g.position.Status() {
	case chess.Stalemate:
		g.terminate(ResultDraw, MethodStalemate)
	case chess.Checkmate:
		g.terminate(Winner(g.position.Turn().Other()), MethodCheckmate)
	default:
		g.terminate(Winner(g.position.Turn().Other()), MethodRuleMate)
	}
}

// terminate records the first terminal result; later calls are ignored.
func (g *ChessGame) terminate(r Result, m Method) {
	if g.Over() {
		return
	}
	g.result = r
	g.method = m
	g.drawOffer = chess.NoColor
}

func (g *ChessGame) context() rules.Context {
	return rules.Context{
		Position:    g.position,
		Plies:       len(g.actions),
		MovesPlayed: g.moves,
	}
}

func (g *ChessGame) ruleOf(side chess.Color) int {
	if side == chess.Black {
		return g.Black.Rule
	}
	return g.White.Rule
}

func (g *ChessGame) allowed() []*chess.Move {
	return rules.FilteredMoves(g.ruleOf(g.position.Turn()), g.context())
}

// AllowedMoves lists the moves the side to move may play, empty once the
// game is over.
func (g *ChessGame) AllowedMoves() []Move {
	if g.Over() {
		return []Move{}
	}
	cms := g.allowed()
	out := make([]Move, 0, len(cms))
	for _, cm := range cms {
		out = append(out, MoveOf(cm))
	}
	return out
}

func (g *ChessGame) AllowedMoveStrings() []string {
	moves := g.AllowedMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

// Actions returns a copy of the action log.
func (g *ChessGame) Actions() []Action {
	out := make([]Action, len(g.actions))
	copy(out, g.actions)
	return out
}

func (g *ChessGame) Position() *chess.Position { return g.position }
func (g *ChessGame) FEN() string               { return g.position.String() }
func (g *ChessGame) SideToMove() chess.Color   { return g.position.Turn() }
func (g *ChessGame) Plies() int                { return len(g.actions) }
func (g *ChessGame) MovesPlayed() int          { return g.moves }
func (g *ChessGame) Result() Result            { return g.result }
func (g *ChessGame) Method() Method            { return g.method }
func (g *ChessGame) Over() bool                { return g.result != ResultNone }

// Turn is the full-move number being played, see rules.Context.Turn.
func (g *ChessGame) Turn() int {
	return g.context().Turn()
}

// PendingDrawOffer returns the side whose draw offer is open, or NoColor.
func (g *ChessGame) PendingDrawOffer() chess.Color {
	return g.drawOffer
}
