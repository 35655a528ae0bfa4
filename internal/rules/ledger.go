package rules

import "github.com/lgbarn/board-rules-go/internal/chess"

// SpecialKind tags a SpecialMove.
type SpecialKind int

const (
	NoSpecial SpecialKind = iota
	Castling
	EnPassant
)

// String returns the string representation of a special move kind.
func (k SpecialKind) String() string {
	switch k {
	case Castling:
		return "castling"
	case EnPassant:
		return "en passant"
	}
	return "none"
}

// SpecialMove is the castling or en-passant action attached to a legal move.
// Rook and KingOrigin are set for Castling; Executor for EnPassant.
type SpecialMove struct {
	Kind       SpecialKind
	Rook       chess.PieceID
	KingOrigin chess.Coord
	Executor   chess.PieceID
}

// Outcome describes what UpdateRecords did besides counting the move.
type Outcome struct {
	Special  SpecialKind
	Captured chess.PieceID // pawn taken en passant, NoID otherwise
	RookMove Move          // rook relocation for castling, zero otherwise
	// EnPassantArmed is the pawn that became capturable en passant.
	EnPassantArmed chess.PieceID
}

// Ledger tracks move counts, en-passant eligibility and the single pending
// special move.
type Ledger struct {
	moves     map[chess.PieceID]int
	enPassant map[chess.PieceID]bool
	pending   SpecialMove
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		moves:     make(map[chess.PieceID]int),
		enPassant: make(map[chess.PieceID]bool),
	}
}

// HasNotMoved reports whether id has a zero move count.
func (l *Ledger) HasNotMoved(id chess.PieceID) bool {
	return l.moves[id] <= 0
}

// MoveCount returns the number of committed moves of id.
func (l *Ledger) MoveCount(id chess.PieceID) int {
	return l.moves[id]
}

// HasEnPassantRight reports whether pawn id may be captured en passant.
func (l *Ledger) HasEnPassantRight(id chess.PieceID) bool {
	return l.enPassant[id]
}

// Pending returns the armed special move, if any.
func (l *Ledger) Pending() SpecialMove {
	return l.pending
}

// MarkUseCastling arms a castling record. While one is already pending the
// call is ignored: the first arm wins.
func (l *Ledger) MarkUseCastling(rook chess.PieceID, kingOrigin chess.Coord) {
	if l.pending.Kind == Castling {
		return
	}
	l.pending = SpecialMove{Kind: Castling, Rook: rook, KingOrigin: kingOrigin}
}

// MarkUseEnPassantRight arms pawn as the en-passant executor. It replaces
// a pending en passant but never a pending castling.
func (l *Ledger) MarkUseEnPassantRight(pawn chess.PieceID) {
	if l.pending.Kind == Castling {
		return
	}
	l.pending = SpecialMove{Kind: EnPassant, Executor: pawn}
}

// Arm records s as the pending special move.
func (l *Ledger) Arm(s SpecialMove) {
	switch s.Kind {
	case Castling:
		l.MarkUseCastling(s.Rook, s.KingOrigin)
	case EnPassant:
		l.MarkUseEnPassantRight(s.Executor)
	}
}

// UpdateRecords is called once a legal move mv has been applied to the
// board. In order it:
//
//  1. resolves the pending special move through m and clears the slot;
//  2. clears every en-passant flag on both sides;
//  3. flags mv's pawn if mv was a western two-step advance;
//  4. increments the moved piece's count.
func (l *Ledger) UpdateRecords(q chess.BoardQuery, mv Move, m chess.Mover) Outcome {
	var out Outcome

	pending := l.pending
	l.pending = SpecialMove{}
	switch pending.Kind {
	case EnPassant:
		if pending.Executor == mv.Piece {
			passed := chess.Coord{X: mv.To.X, Y: mv.From.Y}
			if victim, ok := q.PieceAt(passed); ok {
				m.RemovePiece(victim)
				out.Special = EnPassant
				out.Captured = victim
			}
		}
	case Castling:
		if q.TypeOf(mv.Piece).IsRoyal() && mv.From == pending.KingOrigin {
			rookTo := chess.Coord{X: (pending.KingOrigin.X + mv.To.X) / 2, Y: pending.KingOrigin.Y}
			out.Special = Castling
			out.RookMove = Move{Piece: pending.Rook, From: q.CoordOf(pending.Rook), To: rookTo}
			m.MovePiece(pending.Rook, rookTo)
			l.moves[pending.Rook]++
		}
	}

	for id := range l.enPassant {
		delete(l.enPassant, id)
	}

	if isTwoStepAdvance(q, mv) {
		l.enPassant[mv.Piece] = true
		out.EnPassantArmed = mv.Piece
	}

	l.moves[mv.Piece]++
	return out
}

// isTwoStepAdvance reports a western pawn moving two ranks up its file.
func isTwoStepAdvance(q chess.BoardQuery, mv Move) bool {
	return q.TypeOf(mv.Piece) == chess.Pawn &&
		mv.From.X == mv.To.X &&
		abs(mv.To.Y-mv.From.Y) == 2
}
