package game

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		text    string
		want    Move
		wantErr bool
	}{
		{text: "e2e4", want: Move{From: chess.E2, To: chess.E4}},
		{text: "E2E4", want: Move{From: chess.E2, To: chess.E4}},
		{text: "e7e8q", want: Move{From: chess.E7, To: chess.E8, Promotion: chess.Queen}},
		{text: "a2a1n", want: Move{From: chess.A2, To: chess.A1, Promotion: chess.Knight}},
		{text: "e7e8k", wantErr: true},
		{text: "i2i4", wantErr: true},
		{text: "e2", wantErr: true},
		{text: "e2e4qq", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseMove(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMoveText) {
					t.Fatalf("expected ErrInvalidMoveText, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMoveString(t *testing.T) {
	m := Move{From: chess.B7, To: chess.B8, Promotion: chess.Rook}
	if m.String() != "b7b8r" {
		t.Fatalf("got %q", m.String())
	}
}

func TestNewSquare(t *testing.T) {
	sq, err := NewSquare(63)
	if err != nil || sq != chess.H8 {
		t.Fatalf("NewSquare(63) = %v, %v", sq, err)
	}
	for _, idx := range []int{-1, 64, 255} {
		if _, err := NewSquare(idx); !errors.Is(err, ErrInvalidSquare) {
			t.Fatalf("NewSquare(%d): expected ErrInvalidSquare, got %v", idx, err)
		}
	}
}
