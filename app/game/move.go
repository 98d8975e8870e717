package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrInvalidSquare   = errors.New("invalid square")
	ErrInvalidMoveText = errors.New("invalid move text")
)

// NewSquare converts a raw 0-63 index (a1 = 0, h8 = 63) to a square.
func NewSquare(index int) (chess.Square, error) {
	if index < 0 || index > 63 {
		return chess.NoSquare, fmt.Errorf("square index %d: %w", index, ErrInvalidSquare)
	}
	return chess.Square(index), nil
}

// ParseSquare reads algebraic coordinates like "e4".
func ParseSquare(s string) (chess.Square, error) {
	if len(s) != 2 {
		return chess.NoSquare, fmt.Errorf("square %q: %w", s, ErrInvalidSquare)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return chess.NoSquare, fmt.Errorf("square %q: %w", s, ErrInvalidSquare)
	}
	return NewSquare(int(rank-'1')*8 + int(file-'a'))
}

// Move is a from/to pair with an optional promotion piece. Castling is the
// king's two-square move.
type Move struct {
	From      chess.Square
	To        chess.Square
	Promotion chess.PieceType
}

var promotionPieces = map[byte]chess.PieceType{
	'n': chess.Knight,
	'b': chess.Bishop,
	'r': chess.Rook,
	'q': chess.Queen,
}

// ParseMove reads coordinate notation: "e2e4" or "e7e8q".
func ParseMove(text string) (Move, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) != 4 && len(text) != 5 {
		return Move{}, fmt.Errorf("move %q: %w", text, ErrInvalidMoveText)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", text, ErrInvalidMoveText)
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", text, ErrInvalidMoveText)
	}
	m := Move{From: from, To: to}
	if len(text) == 5 {
		promo, ok := promotionPieces[text[4]]
		if !ok {
			return Move{}, fmt.Errorf("move %q: bad promotion piece: %w", text, ErrInvalidMoveText)
		}
		m.Promotion = promo
	}
	return m, nil
}

// MoveOf converts a generated chess move.
func MoveOf(cm *chess.Move) Move {
	return Move{From: cm.S1(), To: cm.S2(), Promotion: cm.Promo()}
}

func (m Move) String() string {
	return m.From.String() + m.To.String() + m.Promotion.String()
}

// Matches reports whether cm is the same from/to/promotion triple.
func (m Move) Matches(cm *chess.Move) bool {
	return cm != nil && cm.S1() == m.From && cm.S2() == m.To && cm.Promo() == m.Promotion
}

// find returns the generated move matching m, or nil.
func find(moves []*chess.Move, m Move) *chess.Move {
	for _, cm := range moves {
		if m.Matches(cm) {
			return cm
		}
	}
	return nil
}

// LegalMoves is every standard-legal move in pos, in generation order. The
// compact codec stores indices into this slice, so the order must not change
// between encode and decode.
func LegalMoves(pos *chess.Position) []*chess.Move {
	return pos.ValidMoves()
}
