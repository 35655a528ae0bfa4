// Package game drives the rules engine over an in-memory board: it is the
// mover that applies legal moves, resolves captures and keeps the check
// tracker current, and the session manager that holds many such games.
package game

import (
	"sync"
	"time"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/errors"
	"github.com/lgbarn/board-rules-go/internal/rules"
)

// Turn is the result of one played move.
type Turn struct {
	Ply      int
	Move     rules.Move
	Special  rules.SpecialKind
	RookMove rules.Move      // set for castling
	Captured []chess.PieceID // destination occupant and/or the pawn taken en passant
	Checks   []chess.PieceID // attackers announced after the move
	Mate     bool            // a royal piece was captured
	Winner   chess.Colour    // meaningful only when Mate is set
	Armed    chess.PieceID   // pawn that became capturable en passant
}

// Game is one session: a board, its engine and the plies played so far.
// Play is safe to call from several goroutines; moves are applied one at a
// time.
type Game struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu      sync.Mutex
	board   *chess.Board
	engine  *rules.Engine
	ply     int
	over    bool
	winner  chess.Colour
	history []Turn
}

// New creates a game on the placement layout of variant v. An empty layout
// starts from the variant's initial position.
func New(id string, v chess.Variant, layout string, opts ...rules.Option) (*Game, error) {
	if layout == "" {
		layout = chess.InitialLayout(v)
	}
	board, err := chess.NewBoardFromLayout(v, layout)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Game{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		board:     board,
		engine:    rules.NewEngine(board, opts...),
	}, nil
}

// Play moves the piece on from to to. A rejected move returns a
// *errors.MoveError wrapping errors.ErrIllegalMove with the rules' reason
// and leaves the game untouched.
func (g *Game) Play(from, to chess.Coord) (Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	text := from.String() + "-" + to.String()
	if g.over {
		return Turn{}, g.moveError(errors.ErrGameOver, text, "")
	}
	id, ok := g.board.PieceAt(from)
	if !ok {
		return Turn{}, g.moveError(errors.ErrNoPiece, text, "")
	}

	res := g.engine.Evaluate(id, to)
	if !res.Valid {
		g.engine.Notifier().ReportRejection(res.Move, res.Reason)
		return Turn{}, g.moveError(errors.ErrIllegalMove, text, res.Reason)
	}

	g.ply++
	turn := Turn{Ply: g.ply, Move: res.Move}
	checks := g.engine.Checks()

	if victim, occupied := g.board.PieceAt(to); occupied {
		g.board.RemovePiece(victim)
		turn.Captured = append(turn.Captured, victim)
	}
	g.board.MovePiece(id, to)

	out := g.engine.Commit(res, g.board)
	turn.Special = out.Special
	turn.RookMove = out.RookMove
	turn.Armed = out.EnPassantArmed
	if out.Captured != chess.NoID {
		turn.Captured = append(turn.Captured, out.Captured)
	}

	for _, victim := range turn.Captured {
		checks.Purge(victim)
		if checks.IsCheckmate(victim) {
			turn.Mate = true
			turn.Winner = g.board.SideOf(id)
		}
	}
	if g.board.TypeOf(id).IsRoyal() {
		checks.UpdateCandidateAttackers(id)
	}
	turn.Checks = checks.TryAnnounceCheck(id)

	if turn.Mate {
		g.over = true
		g.winner = turn.Winner
	}
	g.history = append(g.history, turn)
	g.UpdatedAt = time.Now()
	return turn, nil
}

// PlayRecord plays a scripted move, attaching the script's text to any
// error.
func (g *Game) PlayRecord(mv *chess.MoveRecord) (Turn, error) {
	turn, err := g.Play(mv.From, mv.To)
	var me *errors.MoveError
	if errors.As(err, &me) && mv.Text != "" {
		me.MoveText = mv.Text
	}
	return turn, err
}

func (g *Game) moveError(err error, text, reason string) error {
	return &errors.MoveError{
		Err:      err,
		GameID:   g.ID,
		PlyNum:   g.ply + 1,
		MoveText: text,
		Reason:   reason,
	}
}

// Board returns a copy of the current position.
func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy()
}

// Layout returns the placement string of the current position.
func (g *Game) Layout() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return chess.Layout(g.board)
}

// Variant returns the game's variant.
func (g *Game) Variant() chess.Variant {
	return g.board.Variant()
}

// Ply returns the number of moves played.
func (g *Game) Ply() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ply
}

// Over reports whether a royal piece has been captured, and by which side.
func (g *Game) Over() (bool, chess.Colour) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over, g.winner
}

// History returns the turns played so far.
func (g *Game) History() []Turn {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Turn(nil), g.history...)
}

// InCheck reports whether side's royal piece is currently attacked.
func (g *Game) InCheck(side chess.Colour) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Checks().InCheck(side)
}

// PieceAt returns the piece standing on c, if any.
func (g *Game) PieceAt(c chess.Coord) (chess.PieceID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.PieceAt(c)
}

// Describe names a piece as "White Rook", using the game's board.
func (g *Game) Describe(id chess.PieceID) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.SideOf(id).String() + " " + g.board.TypeOf(id).String()
}
