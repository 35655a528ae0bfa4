package rules

import "github.com/lgbarn/board-rules-go/internal/chess"

// PathBlocking answers obstruction questions against a board.
type PathBlocking struct {
	board chess.BoardQuery
}

// NewPathBlocking creates a PathBlocking over q.
func NewPathBlocking(q chess.BoardQuery) *PathBlocking {
	return &PathBlocking{board: q}
}

// Between returns the cells strictly between from and to along a rank,
// file or diagonal, walking from from. It returns nil when the two cells
// are not aligned or are neighbours; from == to yields an empty path.
func Between(from, to chess.Coord) []chess.Coord {
	if !IsStraight(from, to) && !IsDiagonal(from, to) {
		return nil
	}
	dx := sign(to.X - from.X)
	dy := sign(to.Y - from.Y)

	var cells []chess.Coord
	c := from.Add(dx, dy)
	for c != to && (dx != 0 || dy != 0) {
		cells = append(cells, c)
		c = c.Add(dx, dy)
	}
	return cells
}

// Midpoint returns the cell halfway between from and to. It is only
// meaningful when both offsets are even.
func Midpoint(from, to chess.Coord) chess.Coord {
	return chess.Coord{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
}

// HorseLeg returns the cell a horse must step over: one point from the
// origin along the long side of the L.
func HorseLeg(from, to chess.Coord) chess.Coord {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) > abs(dy) {
		return from.Add(sign(dx), 0)
	}
	return from.Add(0, sign(dy))
}

// ScreenCount returns the number of occupied cells strictly between from
// and to.
func (p *PathBlocking) ScreenCount(from, to chess.Coord) int {
	n := 0
	for _, c := range Between(from, to) {
		if p.board.IsOccupied(c) {
			n++
		}
	}
	return n
}

// IsBlocked reports whether anything occupies a cell strictly between from
// and to. The destination's own occupant is not part of the path.
func (p *PathBlocking) IsBlocked(from, to chess.Coord) bool {
	for _, c := range Between(from, to) {
		if p.board.IsOccupied(c) {
			return true
		}
	}
	return false
}

// IsBlockedWithMessage is IsBlocked that also reports the rejection.
func (p *PathBlocking) IsBlockedWithMessage(mv Move, n Notifier) bool {
	if !p.IsBlocked(mv.From, mv.To) {
		return false
	}
	n.ReportRejection(mv, reasonPathBlocked)
	return true
}

// CannonBlocked applies the cannon's screen rule: a plain move needs an
// empty line, a capture needs exactly one screen.
func (p *PathBlocking) CannonBlocked(from, to chess.Coord, capture bool) bool {
	screens := p.ScreenCount(from, to)
	if capture {
		return screens != 1
	}
	return screens != 0
}

// HorseHobbled reports whether the horse's leg cell is occupied.
func (p *PathBlocking) HorseHobbled(from, to chess.Coord) bool {
	return p.board.IsOccupied(HorseLeg(from, to))
}

// ElephantEyeBlocked reports whether the elephant's midpoint is occupied.
func (p *PathBlocking) ElephantEyeBlocked(from, to chess.Coord) bool {
	return p.board.IsOccupied(Midpoint(from, to))
}

// CastlingBlocked checks the cells between rook and king, walking from the
// rook since the rook is the piece whose path matters.
func (p *PathBlocking) CastlingBlocked(rook, king chess.PieceID) bool {
	return p.IsBlocked(p.board.CoordOf(rook), p.board.CoordOf(king))
}

// Obstructs reports whether attacker's capture path onto target is
// physically blocked. Pieces that step or jump without a path are never
// obstructed.
func (p *PathBlocking) Obstructs(attacker chess.PieceID, target chess.Coord) bool {
	from := p.board.CoordOf(attacker)
	switch p.board.TypeOf(attacker) {
	case chess.Rook, chess.Bishop, chess.Queen, chess.Chariot:
		return p.IsBlocked(from, target)
	case chess.Cannon:
		return p.CannonBlocked(from, target, true)
	case chess.Horse:
		if p.board.Variant() == chess.Xiangqi {
			return p.HorseHobbled(from, target)
		}
	case chess.Elephant:
		return p.ElephantEyeBlocked(from, target)
	}
	return false
}
