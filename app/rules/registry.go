package rules

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

// MaxID is the highest rule id in the registry.
const MaxID = 59

var ErrUnknownRule = errors.New("unknown rule id")

// Rule is a registry entry. Ids are persisted with games and must never be
// reassigned to different semantics.
type Rule struct {
	ID     int
	Name   string
	Policy Policy
}

type captureRule struct {
	id      int
	name    string
	sources PieceSet
	targets PieceSet
}

var captureRules = []captureRule{
	{1, "only_pawns_or_king_can_capture_pawns", minorsMajors, Pieces(chess.Pawn)},
	{2, "only_king_can_capture_pawns", nonKingPiece, Pieces(chess.Pawn)},
	{3, "pawns_cant_be_captured", allPieces, Pieces(chess.Pawn)},
	{4, "king_cant_capture_anything", Pieces(chess.King), nonKingPiece},
	{5, "queen_cant_capture_anything", Pieces(chess.Queen), nonKingPiece},
	{6, "rooks_cant_capture_anything", Pieces(chess.Rook), nonKingPiece},
	{7, "bishops_cant_capture_anything", Pieces(chess.Bishop), nonKingPiece},
	{8, "knights_cant_capture_anything", Pieces(chess.Knight), nonKingPiece},
	{9, "knights_cant_capture_queens", Pieces(chess.Knight), Pieces(chess.Queen)},
	{10, "bishops_cant_capture_queens", Pieces(chess.Bishop), Pieces(chess.Queen)},
	{11, "rooks_cant_capture_queens", Pieces(chess.Rook), Pieces(chess.Queen)},
	{12, "queen_can_only_capture_pawns", Pieces(chess.Queen), minorsMajors},
	{13, "queen_can_only_capture_rooks", Pieces(chess.Queen), Pieces(chess.Pawn, chess.Knight, chess.Bishop, chess.Queen)},
	{14, "queen_can_only_capture_knights", Pieces(chess.Queen), Pieces(chess.Pawn, chess.Bishop, chess.Rook, chess.Queen)},
	{15, "queen_can_only_capture_bishops", Pieces(chess.Queen), Pieces(chess.Pawn, chess.Knight, chess.Rook, chess.Queen)},
	{16, "only_pawns_can_capture_pawns", Pieces(chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King), Pieces(chess.Pawn)},
	{17, "pawns_can_only_capture_pawns", Pieces(chess.Pawn), minorsMajors},
	{18, "pawns_cant_capture_pawns", Pieces(chess.Pawn), Pieces(chess.Pawn)},
	{19, "cant_capture_rooks", allPieces, Pieces(chess.Rook)},
	{20, "cant_capture_bishops", allPieces, Pieces(chess.Bishop)},
	{21, "cant_capture_knights", allPieces, Pieces(chess.Knight)},
}

type delayedRule struct {
	id    int
	name  string
	piece chess.PieceType
	after int
}

var delayedRules = []delayedRule{
	{22, "queen_cant_move_after_12", chess.Queen, 12},
	{23, "queen_cant_move_after_9", chess.Queen, 9},
	{24, "queen_cant_move_after_6", chess.Queen, 6},
	{25, "rook_cant_move_after_25", chess.Rook, 25},
	{26, "rook_cant_move_after_20", chess.Rook, 20},
	{27, "rook_cant_move_after_15", chess.Rook, 15},
	{28, "bishop_cant_move_after_20", chess.Bishop, 20},
	{29, "bishop_cant_move_after_15", chess.Bishop, 15},
	{30, "bishop_cant_move_after_10", chess.Bishop, 10},
	{31, "knight_cant_move_after_20", chess.Knight, 20},
	{32, "knight_cant_move_after_15", chess.Knight, 15},
	{33, "knight_cant_move_after_10", chess.Knight, 10},
}

type destinationRule struct {
	id        int
	name      string
	pieces    PieceSet
	forbidden SquareSet
}

var destinationRules = []destinationRule{
	{34, "rooks_can_only_move_to_the_edges", Pieces(chess.Rook), innerSquares},
	{35, "king_can_only_move_to_dark_squares", Pieces(chess.King), lightSquares},
	{36, "king_can_only_move_to_light_squares", Pieces(chess.King), darkSquares},
	{37, "queen_can_only_move_to_dark_squares", Pieces(chess.Queen), lightSquares},
	{38, "queen_can_only_move_to_light_squares", Pieces(chess.Queen), darkSquares},
	{39, "cant_play_on_the_c_file", allPieces, Files(fileC)},
	{40, "cant_play_on_the_h_file", allPieces, Files(fileH)},
	{41, "cant_play_on_the_e_file", allPieces, Files(fileE)},
	// The multi-file h rules have always left h8 open.
	{42, "cant_play_on_the_e_or_h_file", allPieces, Files(fileE, fileH).Without(chess.H8)},
	{43, "cant_play_on_the_c_or_e_file", allPieces, Files(fileC, fileE)},
	{44, "cant_play_on_the_c_or_h_file", allPieces, Files(fileC, fileH).Without(chess.H8)},
	{45, "cant_play_on_the_c_or_e_or_h_file", allPieces, Files(fileC, fileE, fileH).Without(chess.H8)},
}

type openingRule struct {
	id     int
	name   string
	script []string
}

var openingRules = []openingRule{
	{46, "two_g_pawn_moves", []string{"g2g3", "g7g6", "g3g4", "g6g5"}},
	{47, "knight_and_back", []string{"b1c3", "b8c6", "c3b1", "c6b8"}},
	{48, "d_and_f_pawn_one_square", []string{"d2d3", "d7d6", "f2f3", "f7f6"}},
	{49, "edge_pawns_two_squares", []string{"a2a4", "a7a5", "h2h4", "h7h5"}},
	{50, "the_cheese_opening", []string{"c2c4", "c7c5", "d2d3", "d7d6", "e2e4", "e7e5"}},
	{51, "rush_a", []string{"a2a4", "a7a5", "a4a5", "a5a4"}},
	{52, "rush_b", []string{"b2b4", "b7b5", "b4b5", "b5b4"}},
	{53, "scholars_mate", []string{"e2e4", "e7e5", "f1c4", "f8c5", "d1h5", "d8h4"}},
	{54, "move_f_pawn_twice", []string{"f2f3", "f7f6", "f3f4", "f6f5"}},
	{55, "bring_both_rooks_out", []string{"a2a4", "a7a5", "a1a3", "a8a6", "h2h4", "h7h5", "h1h3", "h8h6"}},
	{56, "allow_fools_mate", []string{"f2f3", "f7f6", "g2g4", "g7g5"}},
	{57, "bongcloud", []string{"e2e4", "e7e5", "e1e2", "e8e7"}},
	{58, "bongcloud_and_back", []string{"e2e4", "e7e5", "e1e2", "e8e7", "e2e1", "e7e8"}},
	{59, "knights_to_the_edges", []string{"b1a3", "b8a6", "g1h3", "g8h6"}},
}

var registry = buildRegistry()

func buildRegistry() [MaxID + 1]Rule {
	var reg [MaxID + 1]Rule
	reg[0] = Rule{ID: 0, Name: "no_rule", Policy: NoRestriction{}}
	add := func(id int, name string, p Policy) {
		if reg[id].Policy != nil {
			panic(fmt.Sprintf("rules: id %d registered twice", id))
		}
		reg[id] = Rule{ID: id, Name: name, Policy: p}
	}
	for _, r := range captureRules {
		add(r.id, r.name, CaptureRestriction{Sources: r.sources, Targets: r.targets})
	}
	for _, r := range delayedRules {
		add(r.id, r.name, DelayedPiece{Piece: r.piece, AfterTurn: r.after})
	}
	for _, r := range destinationRules {
		add(r.id, r.name, DestinationRestriction{Pieces: r.pieces, Forbidden: r.forbidden})
	}
	for _, r := range openingRules {
		script, err := parseScript(r.script)
		if err != nil {
			panic(fmt.Sprintf("rules: id %d: %v", r.id, err))
		}
		add(r.id, r.name, ForcedOpening{Script: script})
	}
	for id := range reg {
		if reg[id].Policy == nil {
			panic(fmt.Sprintf("rules: id %d has no policy", id))
		}
	}
	return reg
}

func parseScript(moves []string) ([]Step, error) {
	script := make([]Step, 0, len(moves))
	for _, mv := range moves {
		if len(mv) != 4 {
			return nil, fmt.Errorf("bad scripted move %q", mv)
		}
		from, ok1 := squareFromText(mv[0:2])
		to, ok2 := squareFromText(mv[2:4])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("bad scripted move %q", mv)
		}
		script = append(script, Step{From: from, To: to})
	}
	return script, nil
}

func squareFromText(s string) (chess.Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, false
	}
	return chess.Square(int(s[1]-'1')*8 + int(s[0]-'a')), true
}

// Lookup returns the rule registered under id. Unknown ids, negative ones
// included, return ErrUnknownRule.
func Lookup(id int) (Rule, error) {
	if id < 0 || id > MaxID {
		return Rule{}, fmt.Errorf("rule %d: %w", id, ErrUnknownRule)
	}
	return registry[id], nil
}

// PolicyFor is the dispatcher used during play: unknown ids fall back to
// NoRestriction so stale catalog entries never block a game.
func PolicyFor(id int) Policy {
	r, err := Lookup(id)
	if err != nil {
		return NoRestriction{}
	}
	return r.Policy
}

// FilteredMoves applies the rule registered under id to ctx.
func FilteredMoves(id int, ctx Context) []*chess.Move {
	return Filter(PolicyFor(id), ctx)
}

// All returns every registered rule ordered by id, id 0 included.
func All() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry[:])
	return out
}
