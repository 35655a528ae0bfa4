// Package chess provides the board types shared by the western and Xiangqi
// rule sets: sides, piece types, coordinates and the board query surface.
package chess

import "fmt"

// Colour represents the side a piece belongs to.
type Colour int

const (
	Black Colour = iota
	White
)

// Red is Xiangqi's first side. It occupies White's slot: it starts on the
// low ranks and moves up the board.
const Red = White

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White (and Red), -1 for Black.
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// Variant selects the board geometry and rule set.
type Variant int

const (
	Western Variant = iota
	Xiangqi
)

// String returns the lower-case variant name used in scripts and flags.
func (v Variant) String() string {
	if v == Xiangqi {
		return "xiangqi"
	}
	return "western"
}

// ParseVariant converts a variant name back to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "western", "chess", "w":
		return Western, true
	case "xiangqi", "chinese", "x":
		return Xiangqi, true
	}
	return Western, false
}

// Width returns the number of files.
func (v Variant) Width() int {
	if v == Xiangqi {
		return 9
	}
	return 8
}

// Height returns the number of ranks.
func (v Variant) Height() int {
	if v == Xiangqi {
		return 10
	}
	return 8
}

// Contains reports whether c lies on the board.
func (v Variant) Contains(c Coord) bool {
	return c.X >= 1 && c.X <= v.Width() && c.Y >= 1 && c.Y <= v.Height()
}

// PieceType represents a piece kind of either variant.
type PieceType int

const (
	NoPiece PieceType = iota

	// Western pieces.
	Rook
	Horse
	Bishop
	King
	Queen
	Pawn

	// Xiangqi pieces. The Xiangqi horse is Horse.
	Chariot
	Elephant
	Advisor
	General
	Cannon
	Soldier
)

var pieceNames = []string{
	"None", "Rook", "Horse", "Bishop", "King", "Queen", "Pawn",
	"Chariot", "Elephant", "Advisor", "General", "Cannon", "Soldier",
}

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	if int(p) >= 0 && int(p) < len(pieceNames) {
		return pieceNames[p]
	}
	return "Unknown"
}

// IsRoyal reports whether the piece is the checkable piece of its side.
func (p PieceType) IsRoyal() bool {
	return p == King || p == General
}

// Coord is a 1-based board coordinate. X is the file, Y the rank. A
// coordinate is also the identity of the cell it names.
type Coord struct {
	X, Y int
}

// String returns the square name, e.g. "e2" or "i10".
func (c Coord) String() string {
	if c.X < 1 || c.X > 26 {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+c.X-1, c.Y)
}

// Add returns c offset by dx, dy.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// PieceID identifies a piece for the lifetime of a board. Zero is never
// assigned.
type PieceID int

// NoID is the zero PieceID.
const NoID PieceID = 0

// BoardQuery answers the lookups the rules need. Implementations are
// trusted: unknown ids and off-board coordinates are the caller's problem.
type BoardQuery interface {
	Variant() Variant
	CoordOf(id PieceID) Coord
	PieceAt(c Coord) (PieceID, bool)
	IsOccupied(c Coord) bool
	SideOf(id PieceID) Colour
	TypeOf(id PieceID) PieceType
	// Pieces returns the on-board pieces of side in ascending id order.
	Pieces(side Colour) []PieceID
}

// Mover applies piece relocations and removals decided by the rules.
type Mover interface {
	MovePiece(id PieceID, to Coord)
	RemovePiece(id PieceID)
}

// IsPiece reports whether c holds a piece, returning it.
func IsPiece(q BoardQuery, c Coord) (PieceID, bool) {
	return q.PieceAt(c)
}

// IsOppositeSide reports whether two pieces belong to different sides.
func IsOppositeSide(q BoardQuery, a, b PieceID) bool {
	return q.SideOf(a) != q.SideOf(b)
}

// RoyalOf returns the royal piece of side, or NoID if it is not on the board.
func RoyalOf(q BoardQuery, side Colour) PieceID {
	for _, id := range q.Pieces(side) {
		if q.TypeOf(id).IsRoyal() {
			return id
		}
	}
	return NoID
}
