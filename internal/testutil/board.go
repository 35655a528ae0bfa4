package testutil

import (
	"testing"

	"github.com/lgbarn/board-rules-go/internal/chess"
)

// MustBoard builds a board from a placement string, failing the test on a
// malformed layout.
func MustBoard(t *testing.T, v chess.Variant, layout string) *chess.Board {
	t.Helper()
	b, err := chess.NewBoardFromLayout(v, layout)
	if err != nil {
		t.Fatalf("NewBoardFromLayout(%q) error: %v", layout, err)
	}
	return b
}

// Sq parses a square name on v's board, failing the test if it is invalid.
func Sq(t *testing.T, v chess.Variant, name string) chess.Coord {
	t.Helper()
	c, err := chess.ParseSquare(v, name)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error: %v", name, err)
	}
	return c
}

// PieceOn returns the piece on the named square, failing the test if the
// square is empty.
func PieceOn(t *testing.T, b *chess.Board, name string) chess.PieceID {
	t.Helper()
	id, ok := b.PieceAt(Sq(t, b.Variant(), name))
	if !ok {
		t.Fatalf("no piece on %s in %s", name, chess.Layout(b))
	}
	return id
}
