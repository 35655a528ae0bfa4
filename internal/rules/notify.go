package rules

import (
	"fmt"
	"io"

	"github.com/lgbarn/board-rules-go/internal/chess"
)

// Move names a piece moving between two cells.
type Move struct {
	Piece    chess.PieceID
	From, To chess.Coord
}

// String returns the move in from-to form, e.g. "e2-e4".
func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// Notifier receives rejection reasons and check announcements. Calls are
// fire-and-forget.
type Notifier interface {
	ReportRejection(mv Move, reason string)
	AnnounceCheck(attacker chess.PieceID)
}

type discard struct{}

func (discard) ReportRejection(Move, string) {}
func (discard) AnnounceCheck(chess.PieceID) {}

// Discard is a Notifier that drops everything.
var Discard Notifier = discard{}

// LogNotifier writes notifications as lines to an io.Writer.
type LogNotifier struct {
	w         io.Writer
	board     chess.BoardQuery
	verbosity int
}

// NewLogNotifier creates a LogNotifier. Rejections are written at verbosity
// 2 and above, checks at 1 and above. board may be nil, in which case
// attackers are written by id only.
func NewLogNotifier(w io.Writer, board chess.BoardQuery, verbosity int) *LogNotifier {
	return &LogNotifier{w: w, board: board, verbosity: verbosity}
}

// ReportRejection implements Notifier.
func (n *LogNotifier) ReportRejection(mv Move, reason string) {
	if n.verbosity < 2 {
		return
	}
	fmt.Fprintf(n.w, "rejected %s: %s\n", mv, reason)
}

// AnnounceCheck implements Notifier.
func (n *LogNotifier) AnnounceCheck(attacker chess.PieceID) {
	if n.verbosity < 1 {
		return
	}
	if n.board == nil {
		fmt.Fprintf(n.w, "check by piece %d\n", attacker)
		return
	}
	fmt.Fprintf(n.w, "check by %s %s on %s\n",
		n.board.SideOf(attacker), n.board.TypeOf(attacker), n.board.CoordOf(attacker))
}

// Rejection is one recorded rejection.
type Rejection struct {
	Move   Move
	Reason string
}

// Recorder keeps every notification it receives.
type Recorder struct {
	Rejections []Rejection
	Checks     []chess.PieceID
}

// ReportRejection implements Notifier.
func (r *Recorder) ReportRejection(mv Move, reason string) {
	r.Rejections = append(r.Rejections, Rejection{Move: mv, Reason: reason})
}

// AnnounceCheck implements Notifier.
func (r *Recorder) AnnounceCheck(attacker chess.PieceID) {
	r.Checks = append(r.Checks, attacker)
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.Rejections = nil
	r.Checks = nil
}

type multiNotifier []Notifier

func (m multiNotifier) ReportRejection(mv Move, reason string) {
	for _, n := range m {
		n.ReportRejection(mv, reason)
	}
}

func (m multiNotifier) AnnounceCheck(attacker chess.PieceID) {
	for _, n := range m {
		n.AnnounceCheck(attacker)
	}
}

// MultiNotifier fans notifications out to every non-nil notifier.
func MultiNotifier(ns ...Notifier) Notifier {
	var m multiNotifier
	for _, n := range ns {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}
