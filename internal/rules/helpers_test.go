package rules

import (
	"testing"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/testutil"
)

// fixture bundles a board with an engine recording its notifications.
type fixture struct {
	t     *testing.T
	board *chess.Board
	eng   *Engine
	rec   *Recorder
}

func newFixture(t *testing.T, v chess.Variant, layout string) *fixture {
	t.Helper()
	b := testutil.MustBoard(t, v, layout)
	rec := &Recorder{}
	return &fixture{t: t, board: b, eng: NewEngine(b, WithNotifier(rec)), rec: rec}
}

func (f *fixture) sq(name string) chess.Coord {
	f.t.Helper()
	return testutil.Sq(f.t, f.board.Variant(), name)
}

func (f *fixture) piece(name string) chess.PieceID {
	f.t.Helper()
	return testutil.PieceOn(f.t, f.board, name)
}

func (f *fixture) eval(from, to string) Result {
	f.t.Helper()
	return f.eng.Evaluate(f.piece(from), f.sq(to))
}

func (f *fixture) valid(from, to string) bool {
	f.t.Helper()
	return f.eval(from, to).Valid
}

// play runs the whole mover pipeline for a move that must be legal.
func (f *fixture) play(from, to string) (Result, Outcome) {
	f.t.Helper()
	res := f.eval(from, to)
	if !res.Valid {
		f.t.Fatalf("%s-%s rejected: %s", from, to, res.Reason)
	}
	checks := f.eng.Checks()
	if victim, ok := f.board.PieceAt(res.Move.To); ok {
		f.board.RemovePiece(victim)
		checks.Purge(victim)
		checks.IsCheckmate(victim)
	}
	f.board.MovePiece(res.Move.Piece, res.Move.To)
	out := f.eng.Commit(res, f.board)
	if out.Captured != chess.NoID {
		checks.Purge(out.Captured)
		checks.IsCheckmate(out.Captured)
	}
	if f.board.TypeOf(res.Move.Piece).IsRoyal() {
		checks.UpdateCandidateAttackers(res.Move.Piece)
	}
	checks.TryAnnounceCheck(res.Move.Piece)
	return res, out
}

// assertListInvariant checks obstructed ⊆ reachable ⊆ candidate for both
// sides.
func assertListInvariant(t *testing.T, ct *CheckTracker) {
	t.Helper()
	for _, side := range []chess.Colour{chess.White, chess.Black} {
		l := ct.lists[side]
		for id := range l.obstructed {
			if _, ok := l.reachable[id]; !ok {
				t.Errorf("%v: obstructed %d not in reachable", side, id)
			}
		}
		for id := range l.reachable {
			if _, ok := l.candidate[id]; !ok {
				t.Errorf("%v: reachable %d not in candidate", side, id)
			}
		}
	}
}
