package rules

import (
	"github.com/notnil/chess"
)

// PieceSet is a set of piece types, one bit per chess.PieceType.
type PieceSet uint8

func Pieces(types ...chess.PieceType) PieceSet {
	var s PieceSet
	for _, t := range types {
		s |= 1 << uint(t)
	}
	return s
}

func (s PieceSet) Has(t chess.PieceType) bool {
	if t == chess.NoPieceType {
		return false
	}
	return s&(1<<uint(t)) != 0
}

var (
	allPieces    = Pieces(chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King)
	nonKingPiece = Pieces(chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen)
	minorsMajors = Pieces(chess.Knight, chess.Bishop, chess.Rook, chess.Queen)
)

// SquareSet is a bitboard indexed by square number, a1 = bit 0.
type SquareSet uint64

func Squares(sqs ...chess.Square) SquareSet {
	var s SquareSet
	for _, sq := range sqs {
		s |= 1 << uint(sq)
	}
	return s
}

func (s SquareSet) Has(sq chess.Square) bool {
	if sq < chess.A1 || sq > chess.H8 {
		return false
	}
	return s&(1<<uint(sq)) != 0
}

// Files returns every square on the given files, 0 = a.
func Files(files ...int) SquareSet {
	var s SquareSet
	for _, f := range files {
		for rank := 0; rank < 8; rank++ {
			s |= 1 << uint(rank*8+f)
		}
	}
	return s
}

// Without returns s with the given squares removed.
func (s SquareSet) Without(sqs ...chess.Square) SquareSet {
	return s &^ Squares(sqs...)
}

func squaresWhere(keep func(sq chess.Square) bool) SquareSet {
	var s SquareSet
	for i := 0; i < 64; i++ {
		if keep(chess.Square(i)) {
			s |= 1 << uint(i)
		}
	}
	return s
}

func isDark(sq chess.Square) bool {
	file, rank := int(sq)%8, int(sq)/8
	return (file+rank)%2 == 0
}

func isEdge(sq chess.Square) bool {
	file, rank := int(sq)%8, int(sq)/8
	return file == 0 || file == 7 || rank == 0 || rank == 7
}

var (
	darkSquares  = squaresWhere(isDark)
	lightSquares = squaresWhere(func(sq chess.Square) bool { return !isDark(sq) })
	innerSquares = squaresWhere(func(sq chess.Square) bool { return !isEdge(sq) })
)

const (
	fileC = 2
	fileE = 4
	fileH = 7
)
