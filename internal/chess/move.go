package chess

// MoveRecord is one move of a GameRecord as written in a script.
type MoveRecord struct {
	// The move text (e.g., "e2-e4", "h3h10").
	Text string

	// Source and destination cells.
	From Coord
	To   Coord

	// Whether the script expects the rules to reject this move.
	ExpectIllegal bool

	// Rest-of-line comment following the move, if any.
	Comment string

	// Line number of the move in the input.
	Line uint
}

// NewMoveRecord creates a move record.
func NewMoveRecord(text string, from, to Coord) *MoveRecord {
	return &MoveRecord{Text: text, From: from, To: to}
}

// HasComment returns true if the move carries a comment.
func (m *MoveRecord) HasComment() bool {
	return m.Comment != ""
}

// String returns the move in from-to form.
func (m *MoveRecord) String() string {
	return m.From.String() + "-" + m.To.String()
}
