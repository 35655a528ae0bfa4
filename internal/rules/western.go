package rules

import "github.com/lgbarn/board-rules-go/internal/chess"

// westernChains maps each western piece type to its rule chain. King and
// Pawn list alternative move classes; their order matters because the
// castling and en-passant alternatives attach a special move on success.
func westernChains() map[chess.PieceType]chain {
	return map[chess.PieceType]chain{
		chess.Rook: {
			all: []predicate{straightPredicate, clearPathPredicate},
		},
		chess.Bishop: {
			all: []predicate{diagonalPredicate, clearPathPredicate},
		},
		chess.Queen: {
			all: []predicate{straightOrDiagonalPredicate, clearPathPredicate},
		},
		chess.Horse: {
			all: []predicate{lShapePredicate},
		},
		chess.King: {
			any:      []predicate{adjacentPredicate, castlingPredicate},
			fallback: "King moves one square, or two along the back rank to castle",
		},
		chess.Pawn: {
			any: []predicate{
				twoStepAdvancePredicate,
				oneStepForwardPredicate,
				enPassantPredicate,
				diagonalCapturePredicate,
			},
			fallback: "Pawn moves one square forward, two from its start, or captures diagonally",
		},
	}
}

var straightOrDiagonalPredicate = predicate{
	name:   "straight-or-diagonal",
	reason: "must move along a rank, file or diagonal",
	test: func(c *moveContext) bool {
		return IsStraight(c.from, c.to) || IsDiagonal(c.from, c.to)
	},
}

var adjacentPredicate = predicate{
	name:   "adjacent-one-step",
	reason: "must move one square",
	test: func(c *moveContext) bool {
		return IsAdjacent(c.from, c.to)
	},
}

var castlingPredicate = predicate{
	name:   "castling",
	reason: "castling is not allowed",
	test:   testCastling,
}

// testCastling checks every castling condition and, when they all hold,
// attaches the castling record to the context.
func testCastling(c *moveContext) bool {
	if c.attack {
		return false
	}
	eng := c.eng
	home := HomeRank(c.side)
	if !eng.ledger.HasNotMoved(c.piece) || c.from.Y != home || c.to.Y != home || abs(c.dx) != 2 {
		return false
	}

	rookFile := 1
	if c.dx > 0 {
		rookFile = eng.variant.Width()
	}
	rook, ok := eng.board.PieceAt(chess.Coord{X: rookFile, Y: home})
	if !ok || eng.board.TypeOf(rook) != chess.Rook || eng.board.SideOf(rook) != c.side {
		return false
	}
	if !eng.ledger.HasNotMoved(rook) {
		return false
	}
	if eng.path.CastlingBlocked(rook, c.piece) {
		return false
	}

	enemy := c.side.Opposite()
	crossed := []chess.Coord{c.from, chess.Coord{X: c.from.X + sign(c.dx), Y: home}, c.to}
	for _, cell := range crossed {
		if eng.checks.IsAttacked(cell, enemy) {
			return false
		}
	}

	c.special = SpecialMove{Kind: Castling, Rook: rook, KingOrigin: c.from}
	return true
}

var twoStepAdvancePredicate = predicate{
	name:   "two-step-advance",
	reason: "a pawn may advance two squares only from its start",
	test: func(c *moveContext) bool {
		if c.dx != 0 || c.dy != 2*c.forward() || !c.empty() {
			return false
		}
		if c.from.Y != pawnStartRank(c.side) || !c.eng.ledger.HasNotMoved(c.piece) {
			return false
		}
		return !c.eng.board.IsOccupied(c.from.Add(0, c.forward()))
	},
}

var oneStepForwardPredicate = predicate{
	name:   "one-step-forward",
	reason: "a pawn advances one square onto an empty square",
	test: func(c *moveContext) bool {
		return c.dx == 0 && c.dy == c.forward() && c.empty()
	},
}

var enPassantPredicate = predicate{
	name:   "en-passant",
	reason: "en passant is not available",
	test:   testEnPassant,
}

// testEnPassant ignores the destination's occupant: eligibility comes only
// from the ledger flag of the pawn beside the mover.
func testEnPassant(c *moveContext) bool {
	if c.attack {
		return false
	}
	if c.from.Y != enPassantRank(c.side) || abs(c.dx) != 1 || c.dy != c.forward() {
		return false
	}
	eng := c.eng
	passed, ok := eng.board.PieceAt(chess.Coord{X: c.to.X, Y: c.from.Y})
	if !ok || eng.board.SideOf(passed) == c.side || eng.board.TypeOf(passed) != chess.Pawn {
		return false
	}
	if !eng.ledger.HasEnPassantRight(passed) {
		return false
	}
	c.special = SpecialMove{Kind: EnPassant, Executor: c.piece}
	return true
}

var diagonalCapturePredicate = predicate{
	name:   "diagonal-capture",
	reason: "a pawn captures one square diagonally forward",
	test: func(c *moveContext) bool {
		return abs(c.dx) == 1 && c.dy == c.forward() && c.capture()
	},
}
