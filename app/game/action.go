package game

import (
	"fmt"

	"github.com/notnil/chess"
)

type ActionKind uint8

const (
	KindMove ActionKind = iota
	KindResign
	KindOfferDraw
	KindAcceptDraw
	KindDeclareDraw
)

func (k ActionKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindResign:
		return "resign"
	case KindOfferDraw:
		return "offer-draw"
	case KindAcceptDraw:
		return "accept-draw"
	case KindDeclareDraw:
		return "declare-draw"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// Action is one entry of a game's append-only log. Move is set for KindMove,
// Side for KindResign and KindOfferDraw.
type Action struct {
	Kind ActionKind
	Move Move
	Side chess.Color
}

func MoveAction(m Move) Action                { return Action{Kind: KindMove, Move: m} }
func ResignAction(side chess.Color) Action    { return Action{Kind: KindResign, Side: side} }
func OfferDrawAction(side chess.Color) Action { return Action{Kind: KindOfferDraw, Side: side} }
func AcceptDrawAction() Action                { return Action{Kind: KindAcceptDraw} }
func DeclareDrawAction() Action               { return Action{Kind: KindDeclareDraw} }

func (a Action) String() string {
	switch a.Kind {
	case KindMove:
		return a.Move.String()
	case KindResign, KindOfferDraw:
		return a.Kind.String() + ":" + ColorName(a.Side)
	default:
		return a.Kind.String()
	}
}

// Result is the terminal outcome of a game, "none" while it is in progress.
type Result string

const (
	ResultNone  Result = "none"
	ResultWhite Result = "white"
	ResultBlack Result = "black"
	ResultDraw  Result = "draw"
)

// Winner returns the result in favour of side.
func Winner(side chess.Color) Result {
	if side == chess.White {
		return ResultWhite
	}
	return ResultBlack
}

// Method records how a game ended.
type Method string

const (
	MethodNone        Method = ""
	MethodCheckmate   Method = "checkmate"
	MethodRuleMate    Method = "rule-mate"
	MethodStalemate   Method = "stalemate"
	MethodResignation Method = "resignation"
	MethodDrawAgreed  Method = "draw-agreed"
	MethodDrawClaimed Method = "draw-claimed"
)

func ColorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "white"
	case chess.Black:
		return "black"
	default:
		return "none"
	}
}

// ParseColor accepts "white"/"black" and the FEN letters "w"/"b".
func ParseColor(s string) (chess.Color, bool) {
	switch s {
	case "white", "w", "White":
		return chess.White, true
	case "black", "b", "Black":
		return chess.Black, true
	default:
		return chess.NoColor, false
	}
}
