package codec

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"

	"github.com/FelixBlom97/EloStealo/app/game"
)

func mv(t *testing.T, text string) game.Action {
	t.Helper()
	m, err := game.ParseMove(text)
	if err != nil {
		t.Fatalf("ParseMove(%s): %v", text, err)
	}
	return game.MoveAction(m)
}

// randomLog plays random legal moves with the occasional draw offer.
func randomLog(rng *rand.Rand, plies int) []game.Action {
	pos := chess.StartingPosition()
	var actions []game.Action
	for i := 0; i < plies; i++ {
		moves := pos.ValidMoves()
		if len(moves) == 0 {
			break
		}
		if rng.Intn(10) == 0 {
			actions = append(actions, game.OfferDrawAction(pos.Turn()))
		}
		cm := moves[rng.Intn(len(moves))]
		actions = append(actions, game.MoveAction(game.MoveOf(cm)))
		pos = pos.Update(cm)
	}
	return actions
}

func TestCompactRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		actions := randomLog(rng, 150)
		actions = append(actions, game.ResignAction(chess.Black))

		data, err := Encode(actions)
		if err != nil {
			t.Fatalf("game %d: Encode: %v", i, err)
		}
		if len(data) != len(actions) {
			t.Fatalf("game %d: expected one byte per action, got %d for %d", i, len(data), len(actions))
		}
		got, err := Decode(data)
		if err != nil {
			t.Fatalf("game %d: Decode: %v", i, err)
		}
		if diff := cmp.Diff(actions, got); diff != "" {
			t.Fatalf("game %d: round trip mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestCompactSentinels(t *testing.T) {
	actions := []game.Action{
		mv(t, "e2e4"),
		game.OfferDrawAction(chess.Black),
		game.OfferDrawAction(chess.White),
		game.AcceptDrawAction(),
		game.DeclareDrawAction(),
		game.ResignAction(chess.White),
		game.ResignAction(chess.Black),
	}
	data, err := Encode(actions)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{data[0], OfferDrawBlack, OfferDrawWhite, AcceptDraw, DeclareDraw, ResignWhite, ResignBlack}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("bytes mismatch (-want +got):\n%s", diff)
	}
	if data[0] > maxMoveIndex {
		t.Fatalf("move byte %d collides with a sentinel", data[0])
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		actions []game.Action
	}{
		{name: "illegal move", actions: []game.Action{mv(t, "e2e5")}},
		{name: "resign without side", actions: []game.Action{{Kind: game.KindResign}}},
		{name: "unknown kind", actions: []game.Action{{Kind: game.ActionKind(9)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.actions)
			var encErr *EncodingError
			if !errors.As(err, &encErr) || !errors.Is(err, ErrEncoding) {
				t.Fatalf("expected EncodingError, got %v", err)
			}
			if encErr.Ply != 0 {
				t.Fatalf("expected ply 0, got %d", encErr.Ply)
			}
		})
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	_, err := Decode([]byte{0, 200})
	var decErr *DecodingError
	if !errors.As(err, &decErr) || !errors.Is(err, ErrDecoding) {
		t.Fatalf("expected DecodingError, got %v", err)
	}
	if decErr.Offset != 1 || decErr.Byte != 200 || decErr.Available != 20 {
		t.Fatalf("unexpected error detail: %+v", decErr)
	}
}

func TestDecodedLogRestoresGame(t *testing.T) {
	g := game.New(game.Player{Rule: 57}, game.Player{Rule: 39})
	for _, text := range []string{"e2e4", "e7e5", "e1e2"} {
		if err := g.ApplyMove(text, chess.NoColor); err != nil {
			t.Fatalf("ApplyMove(%s): %v", text, err)
		}
	}
	data, err := Encode(g.Actions())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	actions, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	restored, err := game.Restore(g.White, g.Black, actions)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.FEN() != g.FEN() {
		t.Fatalf("position mismatch: %s vs %s", restored.FEN(), g.FEN())
	}
	if diff := cmp.Diff(g.AllowedMoveStrings(), restored.AllowedMoveStrings()); diff != "" {
		t.Fatalf("allowed moves mismatch (-want +got):\n%s", diff)
	}
}

func TestLegacyEncoding(t *testing.T) {
	actions := []game.Action{mv(t, "e2e4"), mv(t, "e7e5")}
	data, err := EncodeLegacy(actions)
	if err != nil {
		t.Fatalf("EncodeLegacy: %v", err)
	}
	if diff := cmp.Diff([]byte{12, 28, 0, 52, 36, 0}, data); diff != "" {
		t.Fatalf("bytes mismatch (-want +got):\n%s", diff)
	}

	actions = append(actions, game.OfferDrawAction(chess.White), game.ResignAction(chess.White))
	data, err = EncodeLegacy(actions)
	if err != nil {
		t.Fatalf("EncodeLegacy: %v", err)
	}
	want := []byte{12, 28, 0, 52, 36, 0, 0, 0, 6, 0, 0, 5}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("bytes mismatch (-want +got):\n%s", diff)
	}

	got, err := DecodeLegacy(data)
	if err != nil {
		t.Fatalf("DecodeLegacy: %v", err)
	}
	if diff := cmp.Diff(actions, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := EncodeLegacy([]game.Action{game.AcceptDrawAction()}); !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding for an accepted draw, got %v", err)
	}
}

func TestLegacyRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		actions := randomLog(rng, 200)
		data, err := EncodeLegacy(actions)
		if err != nil {
			t.Fatalf("game %d: EncodeLegacy: %v", i, err)
		}
		got, err := DecodeLegacy(data)
		if err != nil {
			t.Fatalf("game %d: DecodeLegacy: %v", i, err)
		}
		if diff := cmp.Diff(actions, got); diff != "" {
			t.Fatalf("game %d: round trip mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestLegacyDecodeErrors(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantOffset int
	}{
		{name: "truncated", data: []byte{12, 28, 0, 52}, wantOffset: 3},
		{name: "source off the board", data: []byte{64, 28, 0}, wantOffset: 0},
		{name: "destination off the board", data: []byte{12, 200, 0}, wantOffset: 1},
		{name: "illegal move", data: []byte{12, 36, 0}, wantOffset: 0},
		{name: "unknown info byte", data: []byte{12, 28, 9}, wantOffset: 2},
		{name: "bad side", data: []byte{2, 2, 5}, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLegacy(tt.data)
			var decErr *DecodingError
			if !errors.As(err, &decErr) {
				t.Fatalf("expected DecodingError, got %v", err)
			}
			if decErr.Offset != tt.wantOffset {
				t.Fatalf("expected offset %d, got %d (%v)", tt.wantOffset, decErr.Offset, err)
			}
		})
	}
}

func TestDecodeFormat(t *testing.T) {
	legacy := []byte{12, 28, 0}
	got, err := DecodeFormat(FormatLegacy, legacy)
	if err != nil {
		t.Fatalf("DecodeFormat(legacy): %v", err)
	}
	compact, err := Encode(got)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := DecodeFormat(FormatCompact, compact)
	if err != nil {
		t.Fatalf("DecodeFormat(compact): %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("re-encoded log mismatch (-want +got):\n%s", diff)
	}
	if _, err := DecodeFormat("zip", legacy); !errors.Is(err, ErrDecoding) {
		t.Fatalf("expected ErrDecoding for an unknown format, got %v", err)
	}
}
