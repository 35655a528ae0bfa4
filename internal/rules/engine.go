// Package rules decides move legality and tracks checks for the western and
// Xiangqi variants.
//
// Legality evaluation is pure: Evaluate returns any castling or en-passant
// action as data in its Result, and only Commit arms and consumes it. The
// engine is single-threaded; one move must be evaluated and committed
// before the next is looked at.
//
// A move that leaves the mover's own royal piece attacked is not rejected.
// A game is decided when a royal piece is captured.
package rules

import (
	"io"

	"github.com/lgbarn/board-rules-go/internal/chess"
)

// Result is the verdict on one proposed move.
type Result struct {
	Move    Move
	Valid   bool
	Reason  string      // why the move was rejected, empty when valid
	Special SpecialMove // castling or en passant performed by this move
}

// Engine owns the rule set, path blocking, special-move ledger and check
// tracker for one board.
type Engine struct {
	board   chess.BoardQuery
	variant chess.Variant
	chains  map[chess.PieceType]chain

	path   *PathBlocking
	ledger *Ledger
	checks *CheckTracker
	notify Notifier
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the notification sink. The default discards.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notify = n
		}
	}
}

// WithLog writes notifications to w through a LogNotifier over the
// engine's own board.
func WithLog(w io.Writer, verbosity int) Option {
	return func(e *Engine) {
		e.notify = NewLogNotifier(w, e.board, verbosity)
	}
}

// WithLedger starts the engine from an existing ledger, e.g. to resume a
// position whose pieces have already moved.
func WithLedger(l *Ledger) Option {
	return func(e *Engine) {
		if l != nil {
			e.ledger = l
		}
	}
}

// NewEngine creates an engine over q and computes the initial attacker
// lists for both royal pieces.
func NewEngine(q chess.BoardQuery, opts ...Option) *Engine {
	e := &Engine{
		board:   q,
		variant: q.Variant(),
		path:    NewPathBlocking(q),
		ledger:  NewLedger(),
		notify:  Discard,
	}
	if e.variant == chess.Xiangqi {
		e.chains = xiangqiChains()
	} else {
		e.chains = westernChains()
	}
	for _, opt := range opts {
		opt(e)
	}
	e.checks = newCheckTracker(e)

	for _, side := range []chess.Colour{chess.White, chess.Black} {
		if royal := chess.RoyalOf(q, side); royal != chess.NoID {
			e.checks.UpdateCandidateAttackers(royal)
		}
	}
	return e
}

// Variant returns the engine's variant.
func (e *Engine) Variant() chess.Variant {
	return e.variant
}

// Path returns the engine's PathBlocking.
func (e *Engine) Path() *PathBlocking {
	return e.path
}

// Ledger returns the engine's special-move ledger.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

// Checks returns the engine's check tracker.
func (e *Engine) Checks() *CheckTracker {
	return e.checks
}

// Notifier returns the engine's notification sink.
func (e *Engine) Notifier() Notifier {
	return e.notify
}

func (e *Engine) newContext(id chess.PieceID, to chess.Coord, attack bool) *moveContext {
	from := e.board.CoordOf(id)
	c := &moveContext{
		eng:    e,
		piece:  id,
		kind:   e.board.TypeOf(id),
		side:   e.board.SideOf(id),
		from:   from,
		to:     to,
		dx:     to.X - from.X,
		dy:     to.Y - from.Y,
		attack: attack,
	}
	c.target, c.occupied = chess.IsPiece(e.board, to)
	return c
}

// Evaluate decides whether piece id may move to dest. It does not change
// any state.
func (e *Engine) Evaluate(id chess.PieceID, dest chess.Coord) Result {
	c := e.newContext(id, dest, false)
	res := Result{Move: Move{Piece: id, From: c.from, To: dest}}

	ch, ok := e.chains[c.kind]
	if !ok {
		res.Reason = c.kind.String() + " is not a " + e.variant.String() + " piece"
		return res
	}
	res.Valid, res.Reason = ch.evaluate(c, false)
	if res.Valid {
		res.Special = c.special
	} else {
		res.Reason = c.kind.String() + ": " + res.Reason
	}
	return res
}

// IsInvalid reports whether moving id to dest breaks the movement rules.
func (e *Engine) IsInvalid(id chess.PieceID, dest chess.Coord) bool {
	return !e.Evaluate(id, dest).Valid
}

// IsInvalidWithMessage is IsInvalid that also reports the rejection reason
// to the notifier.
func (e *Engine) IsInvalidWithMessage(id chess.PieceID, dest chess.Coord) bool {
	res := e.Evaluate(id, dest)
	if !res.Valid {
		e.notify.ReportRejection(res.Move, res.Reason)
	}
	return !res.Valid
}

// reaches reports whether attacker's movement rules would let it capture on
// target, ignoring anything in the way.
func (e *Engine) reaches(attacker chess.PieceID, target chess.Coord) bool {
	ch, ok := e.chains[e.board.TypeOf(attacker)]
	if !ok {
		return false
	}
	valid, _ := ch.evaluate(e.newContext(attacker, target, true), true)
	return valid
}

// attacks reports whether attacker could capture on target right now.
func (e *Engine) attacks(attacker chess.PieceID, target chess.Coord) bool {
	ch, ok := e.chains[e.board.TypeOf(attacker)]
	if !ok {
		return false
	}
	valid, _ := ch.evaluate(e.newContext(attacker, target, true), false)
	return valid
}

// Commit records a legal move that has already been applied to the board:
// it arms res.Special and runs the ledger update, which performs the
// rook relocation or en-passant removal through m.
func (e *Engine) Commit(res Result, m chess.Mover) Outcome {
	e.ledger.Arm(res.Special)
	return e.ledger.UpdateRecords(e.board, res.Move, m)
}
