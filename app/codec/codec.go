// Package codec turns a game's action log into bytes and back.
//
// The compact format spends one byte per action. A move is stored as its
// index in the legal move list of the position it was played from, so the
// log can only be read by replaying it from the starting position. Bytes
// 250-255 are reserved for draw and resign bookkeeping, which leaves the
// position untouched.
package codec

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"github.com/FelixBlom97/EloStealo/app/game"
)

const (
	ResignWhite    byte = 255
	ResignBlack    byte = 254
	OfferDrawWhite byte = 253
	OfferDrawBlack byte = 252
	AcceptDraw     byte = 251
	DeclareDraw    byte = 250

	// maxMoveIndex is the largest index a move byte may carry.
	maxMoveIndex = 249
)

var (
	ErrEncoding = errors.New("cannot encode action log")
	ErrDecoding = errors.New("cannot decode action log")
)

// EncodingError reports the action that could not be encoded.
type EncodingError struct {
	Ply    int
	Action game.Action
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode ply %d (%s): %s", e.Ply, e.Action, e.Reason)
}

func (e *EncodingError) Unwrap() error { return ErrEncoding }

// DecodingError reports where a byte stream stopped making sense. Available
// is the number of legal moves at that point, when relevant.
type DecodingError struct {
	Offset    int
	Byte      byte
	Available int
	Reason    string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode offset %d (byte %d): %s", e.Offset, e.Byte, e.Reason)
}

func (e *DecodingError) Unwrap() error { return ErrDecoding }

// Encode writes actions in the compact format.
func Encode(actions []game.Action) ([]byte, error) {
	pos := chess.StartingPosition()
	out := make([]byte, 0, len(actions))
	for i, a := range actions {
		switch a.Kind {
		case game.KindMove:
			moves := game.LegalMoves(pos)
			idx := indexOf(moves, a.Move)
			if idx < 0 {
				return nil, &EncodingError{Ply: i, Action: a, Reason: "move is not legal in the replayed position"}
			}
			if idx > maxMoveIndex {
				return nil, &EncodingError{Ply: i, Action: a, Reason: fmt.Sprintf("move index %d collides with reserved bytes", idx)}
			}
			out = append(out, byte(idx))
			pos = pos.Update(moves[idx])
		case game.KindResign:
			b, ok := sideByte(a.Side, ResignWhite, ResignBlack)
			if !ok {
				return nil, &EncodingError{Ply: i, Action: a, Reason: "resignation without a side"}
			}
			out = append(out, b)
		case game.KindOfferDraw:
			b, ok := sideByte(a.Side, OfferDrawWhite, OfferDrawBlack)
			if !ok {
				return nil, &EncodingError{Ply: i, Action: a, Reason: "draw offer without a side"}
			}
			out = append(out, b)
		case game.KindAcceptDraw:
			out = append(out, AcceptDraw)
		case game.KindDeclareDraw:
			out = append(out, DeclareDraw)
		default:
			return nil, &EncodingError{Ply: i, Action: a, Reason: "unknown action kind"}
		}
	}
	return out, nil
}

// Decode reads the compact format. Decode(Encode(a)) == a for every action
// log a game can produce.
func Decode(data []byte) ([]game.Action, error) {
	pos := chess.StartingPosition()
	actions := make([]game.Action, 0, len(data))
	for i, b := range data {
		switch b {
		case ResignWhite:
			actions = append(actions, game.ResignAction(chess.White))
		case ResignBlack:
			actions = append(actions, game.ResignAction(chess.Black))
		case OfferDrawWhite:
			actions = append(actions, game.OfferDrawAction(chess.White))
		case OfferDrawBlack:
			actions = append(actions, game.OfferDrawAction(chess.Black))
		case AcceptDraw:
			actions = append(actions, game.AcceptDrawAction())
		case DeclareDraw:
			actions = append(actions, game.DeclareDrawAction())
		default:
			moves := game.LegalMoves(pos)
			if int(b) >= len(moves) {
				return nil, &DecodingError{Offset: i, Byte: b, Available: len(moves), Reason: "move index out of range"}
			}
			actions = append(actions, game.MoveAction(game.MoveOf(moves[b])))
			pos = pos.Update(moves[b])
		}
	}
	return actions, nil
}

func indexOf(moves []*chess.Move, m game.Move) int {
	for i, cm := range moves {
		if m.Matches(cm) {
			return i
		}
	}
	return -1
}

func sideByte(side chess.Color, white, black byte) (byte, bool) {
	switch side {
	case chess.White:
		return white, true
	case chess.Black:
		return black, true
	default:
		return 0, false
	}
}
