package codec

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/FelixBlom97/EloStealo/app/game"
)

// Legacy records spend three bytes per action: source square, destination
// square and an info byte. For resign and draw offers both square bytes hold
// the side, 0 for white and 1 for black.
const (
	legacyPlain     byte = 0
	legacyQueen     byte = 1
	legacyRook      byte = 2
	legacyBishop    byte = 3
	legacyKnight    byte = 4
	legacyResign    byte = 5
	legacyOfferDraw byte = 6
)

var legacyPromotions = map[byte]chess.PieceType{
	legacyPlain:  chess.NoPieceType,
	legacyQueen:  chess.Queen,
	legacyRook:   chess.Rook,
	legacyBishop: chess.Bishop,
	legacyKnight: chess.Knight,
}

// EncodeLegacy writes the three-byte format. It has no encoding for accepted
// or claimed draws, so logs containing them are rejected.
func EncodeLegacy(actions []game.Action) ([]byte, error) {
	out := make([]byte, 0, len(actions)*3)
	for i, a := range actions {
		switch a.Kind {
		case game.KindMove:
			info, ok := legacyInfo(a.Move.Promotion)
			if !ok {
				return nil, &EncodingError{Ply: i, Action: a, Reason: "unsupported promotion piece"}
			}
			out = append(out, byte(a.Move.From), byte(a.Move.To), info)
		case game.KindResign, game.KindOfferDraw:
			c, ok := sideByte(a.Side, 0, 1)
			if !ok {
				return nil, &EncodingError{Ply: i, Action: a, Reason: "action without a side"}
			}
			tag := legacyResign
			if a.Kind == game.KindOfferDraw {
				tag = legacyOfferDraw
			}
			out = append(out, c, c, tag)
		default:
			return nil, &EncodingError{Ply: i, Action: a, Reason: "not representable in the legacy format"}
		}
	}
	return out, nil
}

// DecodeLegacy reads the three-byte format. Squares are range checked and
// every move must be legal in the replayed position.
func DecodeLegacy(data []byte) ([]game.Action, error) {
	if len(data)%3 != 0 {
		off := len(data) - len(data)%3
		return nil, &DecodingError{Offset: off, Byte: data[off], Reason: "truncated action"}
	}
	pos := chess.StartingPosition()
	actions := make([]game.Action, 0, len(data)/3)
	for off := 0; off < len(data); off += 3 {
		src, dst, info := data[off], data[off+1], data[off+2]
		switch info {
		case legacyResign, legacyOfferDraw:
			side, err := legacySide(src)
			if err != nil {
				return nil, &DecodingError{Offset: off, Byte: src, Reason: err.Error()}
			}
			if info == legacyResign {
				actions = append(actions, game.ResignAction(side))
			} else {
				actions = append(actions, game.OfferDrawAction(side))
			}
			continue
		}

		promo, ok := legacyPromotions[info]
		if !ok {
			return nil, &DecodingError{Offset: off + 2, Byte: info, Reason: "unknown info byte"}
		}
		from, err := game.NewSquare(int(src))
		if err != nil {
			return nil, &DecodingError{Offset: off, Byte: src, Reason: err.Error()}
		}
		to, err := game.NewSquare(int(dst))
		if err != nil {
			return nil, &DecodingError{Offset: off + 1, Byte: dst, Reason: err.Error()}
		}
		m := game.Move{From: from, To: to, Promotion: promo}
		moves := game.LegalMoves(pos)
		idx := indexOf(moves, m)
		if idx < 0 {
			return nil, &DecodingError{Offset: off, Byte: src, Available: len(moves), Reason: fmt.Sprintf("move %s is not legal", m)}
		}
		actions = append(actions, game.MoveAction(m))
		pos = pos.Update(moves[idx])
	}
	return actions, nil
}

func legacyInfo(promo chess.PieceType) (byte, bool) {
	for info, p := range legacyPromotions {
		if p == promo {
			return info, true
		}
	}
	return 0, false
}

func legacySide(b byte) (chess.Color, error) {
	switch b {
	case 0:
		return chess.White, nil
	case 1:
		return chess.Black, nil
	default:
		return chess.NoColor, fmt.Errorf("side byte %d", b)
	}
}
