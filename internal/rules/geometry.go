package rules

import "github.com/lgbarn/board-rules-go/internal/chess"

// Geometric primitives shared by both rule sets. They look only at the two
// coordinates, never at the board.

// River sits between ranks 5 and 6 of the Xiangqi board.
const riverY = 5

// IsStraight reports whether from and to share a rank or a file.
func IsStraight(from, to chess.Coord) bool {
	return from.X == to.X || from.Y == to.Y
}

// IsDiagonal reports whether from and to lie on a common diagonal.
func IsDiagonal(from, to chess.Coord) bool {
	return abs(to.X-from.X) == abs(to.Y-from.Y)
}

// IsLShape reports a knight/horse jump: |dx|*|dy| == 2.
func IsLShape(from, to chess.Coord) bool {
	return abs(to.X-from.X)*abs(to.Y-from.Y) == 2
}

// IsAdjacent reports a one-point step in any direction.
func IsAdjacent(from, to chess.Coord) bool {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	return dx <= 1 && dy <= 1 && dx+dy > 0
}

// IsOrthogonalStep reports a one-point step along a rank or file.
func IsOrthogonalStep(from, to chess.Coord) bool {
	return abs(to.X-from.X)+abs(to.Y-from.Y) == 1
}

// IsDiagonalStep reports a diagonal move of exactly n points.
func IsDiagonalStep(from, to chess.Coord, n int) bool {
	return abs(to.X-from.X) == n && abs(to.Y-from.Y) == n
}

// AcrossRiver reports whether from and to lie on different banks.
func AcrossRiver(from, to chess.Coord) bool {
	return (from.Y <= riverY) != (to.Y <= riverY)
}

// HasCrossedRiver reports whether c is on the enemy bank for side.
func HasCrossedRiver(side chess.Colour, c chess.Coord) bool {
	if side == chess.Red {
		return c.Y > riverY
	}
	return c.Y <= riverY
}

// InPalace reports whether c lies in side's palace.
func InPalace(side chess.Colour, c chess.Coord) bool {
	if c.X < 4 || c.X > 6 {
		return false
	}
	if side == chess.Red {
		return c.Y >= 1 && c.Y <= 3
	}
	return c.Y >= 8 && c.Y <= 10
}

// HomeRank returns the western back rank of side.
func HomeRank(side chess.Colour) int {
	if side == chess.White {
		return 1
	}
	return 8
}

// pawnStartRank returns the rank western pawns of side start on.
func pawnStartRank(side chess.Colour) int {
	if side == chess.White {
		return 2
	}
	return 7
}

// enPassantRank returns the rank a western pawn of side must stand on to
// capture en passant.
func enPassantRank(side chess.Colour) int {
	if side == chess.White {
		return 5
	}
	return 4
}
