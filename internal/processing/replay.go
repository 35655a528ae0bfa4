// Package processing replays scripted games through the rules engine and
// checks every move, and the final outcome, against what the script
// expects.
package processing

import (
	"bytes"
	"fmt"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/errors"
	"github.com/lgbarn/board-rules-go/internal/game"
	"github.com/lgbarn/board-rules-go/internal/rules"
)

// PlyResult is the outcome of one scripted move.
type PlyResult struct {
	Ply      int // 1-based index into the script's moves
	Text     string
	From, To chess.Coord
	Piece    string // e.g. "White Pawn"; empty when the origin was empty

	Legal    bool
	Expected bool   // the outcome matched the script
	Reason   string // rejection reason or replay error

	Special  rules.SpecialKind
	Captured int
	Checks   int
	Mate     bool
	Comment  string
}

// ValidationResult holds the result of replay validation.
type ValidationResult struct {
	Valid       bool
	ErrorPly    int
	ErrorMsg    string
	ParseErrors []string
}

// ReplayResult is the full record of replaying one game.
type ReplayResult struct {
	Game      *chess.GameRecord
	SessionID string // manager session the game was played in
	Plies     []PlyResult
	ValidationResult

	Over        bool
	Winner      chess.Colour
	Result      string // "1-0", "0-1" or "*"
	FinalLayout string

	// Notifications written by the engine at the configured verbosity.
	Log string
}

// Played returns the number of moves the rules accepted.
func (r *ReplayResult) Played() int {
	n := 0
	for _, p := range r.Plies {
		if p.Legal {
			n++
		}
	}
	return n
}

// Replay plays rec's moves from its starting layout in a session of its
// own. See ReplayWith.
func Replay(rec *chess.GameRecord, cfg *config.Config) *ReplayResult {
	return ReplayWith(game.NewManager(), rec, cfg)
}

// ReplayWith plays rec's moves from its starting layout in a new session of
// m, which is removed again once the replay ends. It stops at the first
// move whose outcome differs from the script unless cfg.Replay.KeepGoing
// is set.
func ReplayWith(m *game.Manager, rec *chess.GameRecord, cfg *config.Config) *ReplayResult {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	result := &ReplayResult{
		Game:             rec,
		ValidationResult: ValidationResult{Valid: true},
		Result:           "*",
	}

	if r := rec.GetTag(chess.TagResult); r != "" && !isValidResult(r) {
		result.ParseErrors = append(result.ParseErrors, fmt.Sprintf("invalid result: %s", r))
	}

	var log bytes.Buffer
	defer func() { result.Log = log.String() }()

	g, err := m.NewGame(rec.Variant, rec.Layout, rules.WithLog(&log, cfg.Verbosity))
	if err != nil {
		result.fail(0, fmt.Sprintf("invalid layout: %v", err))
		return result
	}
	result.SessionID = g.ID
	defer m.Remove(g.ID) //nolint:errcheck // the session was added above

	for i, mv := range rec.Moves {
		if cfg.Replay.PlyLimit > 0 && i >= cfg.Replay.PlyLimit {
			break
		}
		ply, msg := replayMove(g, i+1, mv)
		result.Plies = append(result.Plies, ply)
		if ply.Expected {
			continue
		}
		result.fail(ply.Ply, msg)
		if !cfg.Replay.KeepGoing {
			break
		}
	}

	result.Over, result.Winner = g.Over()
	result.Result = resultString(result.Over, result.Winner)
	result.FinalLayout = g.Layout()

	if want := rec.GetTag(chess.TagResult); isValidResult(want) && result.Valid && want != result.Result {
		result.fail(0, fmt.Sprintf("result %s expected, game ended %s", want, result.Result))
	}
	return result
}

// replayMove plays one scripted move and judges it against the script.
// msg describes the surprise when the outcome was not the expected one.
func replayMove(g *game.Game, ply int, mv *chess.MoveRecord) (p PlyResult, msg string) {
	p = PlyResult{
		Ply:     ply,
		Text:    mv.Text,
		From:    mv.From,
		To:      mv.To,
		Comment: mv.Comment,
	}
	if id, ok := g.PieceAt(mv.From); ok {
		p.Piece = g.Describe(id)
	}

	turn, err := g.PlayRecord(mv)
	switch {
	case err == nil:
		p.Legal = true
		p.Special = turn.Special
		p.Captured = len(turn.Captured)
		p.Checks = len(turn.Checks)
		p.Mate = turn.Mate
		p.Expected = !mv.ExpectIllegal
		if !p.Expected {
			msg = fmt.Sprintf("move %s was expected to be illegal", mv.Text)
		}

	case errors.Is(err, errors.ErrIllegalMove), errors.Is(err, errors.ErrNoPiece):
		p.Expected = mv.ExpectIllegal
		var me *errors.MoveError
		if errors.As(err, &me) && me.Reason != "" {
			p.Reason = me.Reason
		} else {
			p.Reason = err.Error()
		}
		if !p.Expected {
			msg = fmt.Sprintf("illegal move at ply %d: %s (%s)", ply, mv.Text, p.Reason)
		}

	default:
		p.Reason = err.Error()
		msg = p.Reason
	}
	return p, msg
}

// fail records the first unexpected outcome.
func (r *ReplayResult) fail(ply int, msg string) {
	if !r.Valid {
		return
	}
	r.Valid = false
	r.ErrorPly = ply
	r.ErrorMsg = msg
}

// resultString renders an outcome the way a Result tag writes it.
func resultString(over bool, winner chess.Colour) string {
	switch {
	case !over:
		return "*"
	case winner == chess.White:
		return "1-0"
	default:
		return "0-1"
	}
}

// isValidResult checks if a result string is a valid Result tag.
func isValidResult(result string) bool {
	switch result {
	case "1-0", "0-1", "*":
		return true
	default:
		return false
	}
}
