package rules

import (
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/testutil"
)

// squareIndex converts a cell to dragontoothmg's 0..63 index (a1 = 0).
func squareIndex(c chess.Coord) uint8 {
	return uint8((c.Y-1)*8 + (c.X - 1))
}

// TestAgainstMoveGenerator compares the engine with an independent legal
// move generator in quiet positions: no checks, no pins and no promotions,
// where movement rules alone decide legality.
func TestAgainstMoveGenerator(t *testing.T) {
	positions := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 5",
		"r3k2r/ppp2ppp/2nqbn2/3pp3/8/2NPBN2/PPPQ1PPP/R3K2R b KQkq - 0 9",
	}
	for _, fen := range positions {
		t.Run(fen, func(t *testing.T) {
			fields := strings.Fields(fen)
			side := chess.White
			if fields[1] == "b" {
				side = chess.Black
			}

			b := testutil.MustBoard(t, chess.Western, fields[0])
			eng := NewEngine(b)
			markMovedPawns(b, eng.Ledger())

			oracle := dragontoothmg.ParseFen(fen)
			legal := make(map[[2]uint8]bool)
			for _, mv := range oracle.GenerateLegalMoves() {
				legal[[2]uint8{mv.From(), mv.To()}] = true
			}

			for _, id := range b.Pieces(side) {
				from := b.CoordOf(id)
				for x := 1; x <= 8; x++ {
					for y := 1; y <= 8; y++ {
						to := chess.Coord{X: x, Y: y}
						want := legal[[2]uint8{squareIndex(from), squareIndex(to)}]
						if res := eng.Evaluate(id, to); res.Valid != want {
							t.Errorf("%s %v-%v: engine %v (%s), generator %v",
								b.TypeOf(id), from, to, res.Valid, res.Reason, want)
						}
					}
				}
			}
		})
	}
}

// markMovedPawns gives every pawn off its start rank a move so the ledger
// agrees with the position.
func markMovedPawns(b *chess.Board, l *Ledger) {
	for _, side := range []chess.Colour{chess.White, chess.Black} {
		for _, id := range b.Pieces(side) {
			if b.TypeOf(id) == chess.Pawn && b.CoordOf(id).Y != pawnStartRank(side) {
				l.moves[id] = 1
			}
		}
	}
}
