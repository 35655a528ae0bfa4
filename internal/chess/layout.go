package chess

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/board-rules-go/internal/errors"
)

// Initial piece placements, top rank first, upper case for White/Red.
const (
	InitialWesternLayout = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
	InitialXiangqiLayout = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR"
)

// InitialLayout returns the starting placement for v.
func InitialLayout(v Variant) string {
	if v == Xiangqi {
		return InitialXiangqiLayout
	}
	return InitialWesternLayout
}

var westernLetters = map[PieceType]byte{
	King: 'K', Queen: 'Q', Rook: 'R', Bishop: 'B', Horse: 'N', Pawn: 'P',
}

var xiangqiLetters = map[PieceType]byte{
	General: 'K', Advisor: 'A', Elephant: 'B', Horse: 'N', Chariot: 'R', Cannon: 'C', Soldier: 'P',
}

// ConvertLayoutChar converts a layout character to a piece type for v.
func ConvertLayoutChar(v Variant, c byte) PieceType {
	c = byte(unicode.ToUpper(rune(c)))
	if v == Xiangqi {
		switch c {
		case 'K', 'G':
			return General
		case 'A':
			return Advisor
		case 'B', 'E':
			return Elephant
		case 'N', 'H':
			return Horse
		case 'R':
			return Chariot
		case 'C':
			return Cannon
		case 'P', 'S':
			return Soldier
		}
		return NoPiece
	}
	switch c {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'R':
		return Rook
	case 'B':
		return Bishop
	case 'N':
		return Horse
	case 'P':
		return Pawn
	}
	return NoPiece
}

// PieceLetter returns the layout letter for pt, lower case for Black.
func PieceLetter(v Variant, pt PieceType, side Colour) byte {
	letters := westernLetters
	if v == Xiangqi {
		letters = xiangqiLetters
	}
	c, ok := letters[pt]
	if !ok {
		return '?'
	}
	if side == Black {
		c = byte(unicode.ToLower(rune(c)))
	}
	return c
}

// NewBoardFromLayout creates a board from a placement string. Only the
// first whitespace-separated field is read, so full FEN strings work.
func NewBoardFromLayout(v Variant, layout string) (*Board, error) {
	parts := strings.Fields(layout)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty layout: %w", errors.ErrInvalidLayout)
	}

	board := NewBoard(v)
	if err := parsePlacement(board, parts[0]); err != nil {
		return nil, err
	}
	return board, nil
}

// NewInitialBoard creates a board in the starting position of v.
func NewInitialBoard(v Variant) *Board {
	board, err := NewBoardFromLayout(v, InitialLayout(v))
	if err != nil {
		panic(err)
	}
	return board
}

// parsePlacement fills board from the placement field.
func parsePlacement(board *Board, placement string) error {
	v := board.Variant()
	rows := strings.Split(placement, "/")
	if len(rows) != v.Height() {
		return fmt.Errorf("%d ranks, want %d: %w", len(rows), v.Height(), errors.ErrInvalidLayout)
	}

	for i, row := range rows {
		y := v.Height() - i
		x := 1
		for _, c := range row {
			switch {
			case c >= '1' && c <= '9':
				x += int(c - '0')
			default:
				pt := ConvertLayoutChar(v, byte(c))
				if pt == NoPiece {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidLayout)
				}
				if x > v.Width() {
					return fmt.Errorf("rank %d overflows: %w", y, errors.ErrInvalidLayout)
				}
				side := White
				if unicode.IsLower(c) {
					side = Black
				}
				board.Place(side, pt, Coord{X: x, Y: y})
				x++
			}
		}
		if x != v.Width()+1 {
			return fmt.Errorf("rank %d has %d files, want %d: %w", y, x-1, v.Width(), errors.ErrInvalidLayout)
		}
	}
	return nil
}

// Layout renders the placement string of any board query.
func Layout(q BoardQuery) string {
	v := q.Variant()
	var sb strings.Builder
	for y := v.Height(); y >= 1; y-- {
		empty := 0
		for x := 1; x <= v.Width(); x++ {
			id, ok := q.PieceAt(Coord{X: x, Y: y})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(PieceLetter(v, q.TypeOf(id), q.SideOf(id)))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if y > 1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParseSquare converts a square name such as "e2" or "i10" to a Coord on
// v's board.
func ParseSquare(v Variant, s string) (Coord, error) {
	if len(s) < 2 || len(s) > 3 {
		return Coord{}, fmt.Errorf("%q: %w", s, errors.ErrInvalidSquare)
	}
	file := unicode.ToLower(rune(s[0]))
	if file < 'a' || file > 'z' {
		return Coord{}, fmt.Errorf("%q: %w", s, errors.ErrInvalidSquare)
	}
	rank := 0
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return Coord{}, fmt.Errorf("%q: %w", s, errors.ErrInvalidSquare)
		}
		rank = rank*10 + int(c-'0')
	}
	c := Coord{X: int(file-'a') + 1, Y: rank}
	if !v.Contains(c) {
		return Coord{}, fmt.Errorf("%q off the %s board: %w", s, v, errors.ErrInvalidSquare)
	}
	return c, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(v Variant, s string) Coord {
	c, err := ParseSquare(v, s)
	if err != nil {
		panic(err)
	}
	return c
}
