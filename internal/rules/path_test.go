package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/testutil"
)

func TestBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to chess.Coord
		want     []chess.Coord
	}{
		{"file", chess.Coord{X: 1, Y: 1}, chess.Coord{X: 1, Y: 4}, []chess.Coord{{X: 1, Y: 2}, {X: 1, Y: 3}}},
		{"rank backwards", chess.Coord{X: 6, Y: 3}, chess.Coord{X: 3, Y: 3}, []chess.Coord{{X: 5, Y: 3}, {X: 4, Y: 3}}},
		{"diagonal", chess.Coord{X: 1, Y: 1}, chess.Coord{X: 4, Y: 4}, []chess.Coord{{X: 2, Y: 2}, {X: 3, Y: 3}}},
		{"anti-diagonal", chess.Coord{X: 5, Y: 2}, chess.Coord{X: 2, Y: 5}, []chess.Coord{{X: 4, Y: 3}, {X: 3, Y: 4}}},
		{"neighbours", chess.Coord{X: 1, Y: 1}, chess.Coord{X: 2, Y: 2}, nil},
		{"not aligned", chess.Coord{X: 1, Y: 1}, chess.Coord{X: 2, Y: 3}, nil},
		{"same cell", chess.Coord{X: 4, Y: 4}, chess.Coord{X: 4, Y: 4}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, Between(tt.from, tt.to), tt.want)
		})
	}
}

// Reversing origin and destination never changes the obstruction verdict.
func TestIsBlockedSymmetry(t *testing.T) {
	b := testutil.MustBoard(t, chess.Western, "r3k2r/pp3ppp/2n5/3pP3/1b6/2N2Q2/PPP2PPP/R3K2R")
	path := NewPathBlocking(b)
	sortCoords := cmpopts.SortSlices(func(a, b chess.Coord) bool {
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	for x1 := 1; x1 <= 8; x1++ {
		for y1 := 1; y1 <= 8; y1++ {
			for x2 := 1; x2 <= 8; x2++ {
				for y2 := 1; y2 <= 8; y2++ {
					a, c := chess.Coord{X: x1, Y: y1}, chess.Coord{X: x2, Y: y2}
					if path.IsBlocked(a, c) != path.IsBlocked(c, a) {
						t.Fatalf("IsBlocked(%v,%v) != IsBlocked(%v,%v)", a, c, c, a)
					}
					if path.ScreenCount(a, c) != path.ScreenCount(c, a) {
						t.Fatalf("ScreenCount(%v,%v) not symmetric", a, c)
					}
					testutil.AssertEqual(t, Between(a, c), Between(c, a), sortCoords, "Between(%v,%v)", a, c)
				}
			}
		}
	}
}

// A cannon captures iff exactly one piece stands between it and its target.
func TestCannonScreenRule(t *testing.T) {
	for screens := 0; screens <= 3; screens++ {
		b := chess.NewBoard(chess.Xiangqi)
		cannon := b.Place(chess.Red, chess.Cannon, chess.Coord{X: 1, Y: 1})
		b.Place(chess.Black, chess.Chariot, chess.Coord{X: 1, Y: 9})
		for i := 0; i < screens; i++ {
			b.Place(chess.Black, chess.Soldier, chess.Coord{X: 1, Y: 3 + 2*i})
		}
		eng := NewEngine(b)
		path := eng.Path()

		wantCapture := screens == 1
		if got := !path.CannonBlocked(chess.Coord{X: 1, Y: 1}, chess.Coord{X: 1, Y: 9}, true); got != wantCapture {
			t.Errorf("%d screens: capture allowed = %v; want %v", screens, got, wantCapture)
		}
		if got := !eng.IsInvalid(cannon, chess.Coord{X: 1, Y: 9}); got != wantCapture {
			t.Errorf("%d screens: cannon capture legal = %v; want %v", screens, got, wantCapture)
		}
		// A plain move to a2 never has screens in between.
		if eng.IsInvalid(cannon, chess.Coord{X: 1, Y: 2}) {
			t.Errorf("%d screens: cannon a1-a2 rejected", screens)
		}
	}
}

func TestCannonNonCaptureNeedsEmptyLine(t *testing.T) {
	b := chess.NewBoard(chess.Xiangqi)
	cannon := b.Place(chess.Red, chess.Cannon, chess.Coord{X: 2, Y: 3})
	b.Place(chess.Red, chess.Soldier, chess.Coord{X: 2, Y: 5})
	eng := NewEngine(b)

	testutil.AssertFalse(t, eng.IsInvalid(cannon, chess.Coord{X: 2, Y: 4}), "b3-b4 with nothing between")
	testutil.AssertTrue(t, eng.IsInvalid(cannon, chess.Coord{X: 2, Y: 7}), "b3-b7 jumping a screen onto an empty point")
}

func TestHorseLegAndMidpoint(t *testing.T) {
	tests := []struct {
		from, to chess.Coord
		leg      chess.Coord
	}{
		{chess.Coord{X: 2, Y: 1}, chess.Coord{X: 3, Y: 3}, chess.Coord{X: 2, Y: 2}},
		{chess.Coord{X: 2, Y: 1}, chess.Coord{X: 4, Y: 2}, chess.Coord{X: 3, Y: 1}},
		{chess.Coord{X: 5, Y: 5}, chess.Coord{X: 3, Y: 4}, chess.Coord{X: 4, Y: 5}},
		{chess.Coord{X: 5, Y: 5}, chess.Coord{X: 4, Y: 7}, chess.Coord{X: 5, Y: 6}},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, HorseLeg(tt.from, tt.to), tt.leg, "HorseLeg(%v,%v)", tt.from, tt.to)
	}
	testutil.AssertEqual(t, Midpoint(chess.Coord{X: 3, Y: 1}, chess.Coord{X: 5, Y: 3}), chess.Coord{X: 4, Y: 2})
}

func TestObstructs(t *testing.T) {
	f := newFixture(t, chess.Xiangqi, "4k4/9/9/4p4/9/9/4C4/9/9/3K1R3")
	path := f.eng.Path()

	tests := []struct {
		name     string
		attacker string
		target   string
		want     bool
	}{
		{"cannon with one screen", "e4", "e10", false},
		{"cannon with no screen", "e4", "e7", true},
		{"open chariot file", "f1", "f10", false},
		{"chariot through the general", "f1", "c1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := path.Obstructs(f.piece(tt.attacker), f.sq(tt.target))
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestObstructsSteppingPieces(t *testing.T) {
	f := newFixture(t, chess.Western, "4k3/8/8/8/8/2P5/1PN5/4K3")
	// A western knight jumps; pieces around it never obstruct.
	testutil.AssertFalse(t, f.eng.Path().Obstructs(f.piece("c2"), f.sq("a1")))
	testutil.AssertFalse(t, f.eng.Path().Obstructs(f.piece("e1"), f.sq("d2")))
}

func TestIsBlockedWithMessage(t *testing.T) {
	f := newFixture(t, chess.Western, "4k3/8/8/8/8/8/P7/R3K3")
	mv := Move{Piece: f.piece("a1"), From: f.sq("a1"), To: f.sq("a5")}

	testutil.AssertTrue(t, f.eng.Path().IsBlockedWithMessage(mv, f.rec))
	testutil.AssertEqual(t, f.rec.Rejections, []Rejection{{Move: mv, Reason: reasonPathBlocked}})
}
