package chess

// Largest board dimensions across variants.
const (
	MaxWidth  = 9
	MaxHeight = 10
)

// Piece is the board's record of a single piece. Records outlive captures:
// a removed piece keeps its type and side but is no longer OnBoard.
type Piece struct {
	ID      PieceID
	Type    PieceType
	Side    Colour
	At      Coord
	OnBoard bool
}

// Board is an in-memory board implementing BoardQuery and Mover.
type Board struct {
	variant Variant

	// squares[x][y] holds the id on each cell; index 0 is unused so
	// coordinates index directly.
	squares [MaxWidth + 1][MaxHeight + 1]PieceID

	// pieces[id-1] is the record for id.
	pieces []Piece
}

// NewBoard creates a new empty board for the variant.
func NewBoard(v Variant) *Board {
	return &Board{variant: v}
}

// Variant returns the board's variant.
func (b *Board) Variant() Variant {
	return b.variant
}

// Place puts a new piece on an empty cell and returns its id. Placing on
// an occupied or off-board cell returns NoID.
func (b *Board) Place(side Colour, pt PieceType, at Coord) PieceID {
	if !b.variant.Contains(at) || b.squares[at.X][at.Y] != NoID {
		return NoID
	}
	id := PieceID(len(b.pieces) + 1)
	b.pieces = append(b.pieces, Piece{ID: id, Type: pt, Side: side, At: at, OnBoard: true})
	b.squares[at.X][at.Y] = id
	return id
}

// Piece returns the record for id.
func (b *Board) Piece(id PieceID) (Piece, bool) {
	if id <= NoID || int(id) > len(b.pieces) {
		return Piece{}, false
	}
	return b.pieces[id-1], true
}

// CoordOf returns the current (or last) coordinate of id.
func (b *Board) CoordOf(id PieceID) Coord {
	return b.pieces[id-1].At
}

// PieceAt returns the piece on c, if any.
func (b *Board) PieceAt(c Coord) (PieceID, bool) {
	if !b.variant.Contains(c) {
		return NoID, false
	}
	id := b.squares[c.X][c.Y]
	return id, id != NoID
}

// IsOccupied reports whether c holds a piece.
func (b *Board) IsOccupied(c Coord) bool {
	_, ok := b.PieceAt(c)
	return ok
}

// SideOf returns the side of id.
func (b *Board) SideOf(id PieceID) Colour {
	return b.pieces[id-1].Side
}

// TypeOf returns the piece type of id.
func (b *Board) TypeOf(id PieceID) PieceType {
	return b.pieces[id-1].Type
}

// Pieces returns the on-board pieces of side in ascending id order.
func (b *Board) Pieces(side Colour) []PieceID {
	var ids []PieceID
	for _, p := range b.pieces {
		if p.OnBoard && p.Side == side {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// MovePiece relocates id to an empty cell. Any occupant of the
// destination must have been removed first.
func (b *Board) MovePiece(id PieceID, to Coord) {
	p := &b.pieces[id-1]
	b.squares[p.At.X][p.At.Y] = NoID
	p.At = to
	b.squares[to.X][to.Y] = id
}

// RemovePiece takes id off the board.
func (b *Board) RemovePiece(id PieceID) {
	p := &b.pieces[id-1]
	if !p.OnBoard {
		return
	}
	b.squares[p.At.X][p.At.Y] = NoID
	p.OnBoard = false
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := &Board{variant: b.variant, squares: b.squares}
	nb.pieces = append([]Piece(nil), b.pieces...)
	return nb
}

// String renders the board as a layout string.
func (b *Board) String() string {
	return Layout(b)
}
