package rules

import "github.com/lgbarn/board-rules-go/internal/chess"

// xiangqiChains maps each Xiangqi piece type to its rule chain. Every
// predicate is a requirement; there are no alternative move classes.
func xiangqiChains() map[chess.PieceType]chain {
	return map[chess.PieceType]chain{
		chess.Chariot: {
			all: []predicate{straightPredicate, clearPathPredicate},
		},
		chess.Horse: {
			all: []predicate{lShapePredicate, horseLegPredicate},
		},
		chess.Elephant: {
			all: []predicate{elephantStepPredicate, riverPredicate, elephantEyePredicate},
		},
		chess.Advisor: {
			all: []predicate{advisorStepPredicate, palacePredicate},
		},
		chess.General: {
			all: []predicate{orthogonalStepPredicate, palacePredicate},
		},
		chess.Cannon: {
			all: []predicate{straightPredicate, cannonScreenPredicate},
		},
		chess.Soldier: {
			all: []predicate{orthogonalStepPredicate, soldierForwardPredicate, soldierSidewaysPredicate},
		},
	}
}

var horseLegPredicate = predicate{
	name:        "leg-free",
	reason:      "the horse's leg is blocked",
	obstruction: true,
	test: func(c *moveContext) bool {
		return !c.eng.path.HorseHobbled(c.from, c.to)
	},
}

var elephantStepPredicate = predicate{
	name:   "two-point-diagonal",
	reason: "must move exactly two points diagonally",
	test: func(c *moveContext) bool {
		return IsDiagonalStep(c.from, c.to, 2)
	},
}

var riverPredicate = predicate{
	name:   "not-across-river",
	reason: "may not cross the river",
	test: func(c *moveContext) bool {
		return !AcrossRiver(c.from, c.to)
	},
}

var elephantEyePredicate = predicate{
	name:        "eye-free",
	reason:      "the elephant's eye is blocked",
	obstruction: true,
	test: func(c *moveContext) bool {
		return !c.eng.path.ElephantEyeBlocked(c.from, c.to)
	},
}

var advisorStepPredicate = predicate{
	name:   "one-point-diagonal",
	reason: "must move one point diagonally",
	test: func(c *moveContext) bool {
		return IsDiagonalStep(c.from, c.to, 1)
	},
}

var orthogonalStepPredicate = predicate{
	name:   "one-point-orthogonal",
	reason: "must move one point along a rank or file",
	test: func(c *moveContext) bool {
		return IsOrthogonalStep(c.from, c.to)
	},
}

var palacePredicate = predicate{
	name:   "in-palace",
	reason: "may not leave the palace",
	test: func(c *moveContext) bool {
		return InPalace(c.side, c.to)
	},
}

var cannonScreenPredicate = predicate{
	name:        "cannon-screen",
	reason:      "a cannon moves over an empty line and captures over exactly one screen",
	obstruction: true,
	test: func(c *moveContext) bool {
		return !c.eng.path.CannonBlocked(c.from, c.to, c.capture())
	},
}

var soldierForwardPredicate = predicate{
	name:   "not-backward",
	reason: "a soldier never retreats",
	test: func(c *moveContext) bool {
		return c.dy != -c.forward()
	},
}

var soldierSidewaysPredicate = predicate{
	name:   "side-behind-river",
	reason: "a soldier may move sideways only after crossing the river",
	test: func(c *moveContext) bool {
		return c.dx == 0 || HasCrossedRiver(c.side, c.from)
	},
}
