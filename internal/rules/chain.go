package rules

import "github.com/lgbarn/board-rules-go/internal/chess"

// moveContext is everything a predicate may look at for one move.
type moveContext struct {
	eng *Engine

	piece chess.PieceID
	kind  chess.PieceType
	side  chess.Colour
	from  chess.Coord
	to    chess.Coord
	dx    int // signed file offset
	dy    int // signed rank offset

	target   chess.PieceID // destination occupant, NoID if empty
	occupied bool

	// attack evaluates a hypothetical capture on to, as check detection
	// needs: the destination counts as enemy-held whatever is there, and
	// special moves never apply.
	attack bool

	special SpecialMove
}

// forward is the signed rank direction of the moving side.
func (c *moveContext) forward() int {
	return c.side.Forward()
}

// capture reports whether the move takes an enemy piece.
func (c *moveContext) capture() bool {
	if c.attack {
		return true
	}
	return c.occupied && chess.IsOppositeSide(c.eng.board, c.piece, c.target)
}

// empty reports whether the destination is free for a non-capturing move.
func (c *moveContext) empty() bool {
	return !c.attack && !c.occupied
}

// predicate is one named test of a rule chain. test returns true when the
// move passes.
type predicate struct {
	name   string
	reason string
	// obstruction marks predicates that test physical blocking rather than
	// geometry; reachability checks skip them.
	obstruction bool
	test        func(c *moveContext) bool
}

// chain is the ordered rule list of one piece type. Every all predicate
// must pass, first failure rejecting the move. If any is non-empty, at
// least one of its alternative move classes must then pass; they are tried
// in order and the first success wins.
type chain struct {
	all      []predicate
	any      []predicate
	fallback string // reason when no alternative matches
}

// evaluate runs the chain on c. With reachOnly set, obstruction predicates
// are skipped.
func (ch chain) evaluate(c *moveContext, reachOnly bool) (bool, string) {
	for _, p := range commonPredicates {
		if !p.test(c) {
			return false, p.reason
		}
	}
	for _, p := range ch.all {
		if reachOnly && p.obstruction {
			continue
		}
		if !p.test(c) {
			return false, p.reason
		}
	}
	if len(ch.any) == 0 {
		return true, ""
	}
	for _, p := range ch.any {
		if reachOnly && p.obstruction {
			continue
		}
		if p.test(c) {
			return true, ""
		}
	}
	return false, ch.fallback
}

// Rejection reasons shared by both variants.
const (
	reasonOffBoard    = "destination is off the board"
	reasonStationary  = "a piece cannot move onto its own square"
	reasonOwnPiece    = "destination is occupied by a piece of the same side"
	reasonPathBlocked = "the path is blocked"
	reasonNotStraight = "must move along a rank or file"
	reasonNotDiagonal = "must move along a diagonal"
	reasonNotLShape   = "must move in an L shape"
)

var commonPredicates = []predicate{
	{
		name:   "on-board",
		reason: reasonOffBoard,
		test: func(c *moveContext) bool {
			return c.eng.variant.Contains(c.to)
		},
	},
	{
		name:   "not-stationary",
		reason: reasonStationary,
		test: func(c *moveContext) bool {
			return c.from != c.to
		},
	},
	{
		name:   "not-own-piece",
		reason: reasonOwnPiece,
		test: func(c *moveContext) bool {
			return c.attack || !c.occupied || chess.IsOppositeSide(c.eng.board, c.piece, c.target)
		},
	},
}

var (
	straightPredicate = predicate{
		name:   "straight",
		reason: reasonNotStraight,
		test: func(c *moveContext) bool {
			return IsStraight(c.from, c.to)
		},
	}
	diagonalPredicate = predicate{
		name:   "diagonal",
		reason: reasonNotDiagonal,
		test: func(c *moveContext) bool {
			return IsDiagonal(c.from, c.to)
		},
	}
	lShapePredicate = predicate{
		name:   "l-shape",
		reason: reasonNotLShape,
		test: func(c *moveContext) bool {
			return IsLShape(c.from, c.to)
		},
	}
	clearPathPredicate = predicate{
		name:        "clear-path",
		reason:      reasonPathBlocked,
		obstruction: true,
		test: func(c *moveContext) bool {
			return !c.eng.path.IsBlocked(c.from, c.to)
		},
	}
)
