// Package output writes replay reports as text, JSON or parquet.
package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/processing"
	"github.com/lgbarn/board-rules-go/internal/rules"
)

// maxLineLength is the wrap column of compact move lists.
const maxLineLength = 80

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line if anything was written on it.
func (o *OutputWriter) NewLine() {
	if o.lineLength > 0 {
		fmt.Fprintln(o.w)
	}
	o.lineLength = 0
	o.needsSpace = false
}

// OutputResult writes one game's report in text form.
func OutputResult(res *processing.ReplayResult, cfg *config.Config, w io.Writer) {
	outputTags(res.Game, w)

	if cfg.Output.ShowTurns {
		for i := range res.Plies {
			fmt.Fprintln(w, FormatPly(&res.Plies[i]))
		}
	} else {
		outputMoveList(res, w)
	}

	fmt.Fprintf(w, "result %s", res.Result)
	if want := res.Game.GetTag(chess.TagResult); want != "" {
		fmt.Fprintf(w, " (expected %s)", want)
	}
	fmt.Fprintf(w, ", %d of %d moves played\n", res.Played(), len(res.Plies))
	if cfg.Output.ShowLayout && res.FinalLayout != "" {
		fmt.Fprintf(w, "layout %s\n", res.FinalLayout)
	}
	for _, msg := range res.ParseErrors {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	if res.Valid {
		fmt.Fprintln(w, "ok")
	} else if res.ErrorPly > 0 {
		fmt.Fprintf(w, "FAILED at ply %d: %s\n", res.ErrorPly, res.ErrorMsg)
	} else {
		fmt.Fprintf(w, "FAILED: %s\n", res.ErrorMsg)
	}

	// Blank line between games
	fmt.Fprintln(w)
}

// outputTags writes the meaningful tags first, then the rest by name. The
// variant is always written, from the record when there is no tag.
func outputTags(game *chess.GameRecord, w io.Writer) {
	for _, tag := range chess.KnownTags {
		value := game.GetTag(tag)
		if tag == chess.TagVariant && value == "" {
			value = game.Variant.String()
		}
		if value != "" {
			fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
		}
	}

	others := maps.Keys(game.Tags)
	slices.Sort(others)
	for _, tag := range others {
		if !chess.IsKnownTag(tag) {
			fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(game.Tags[tag]))
		}
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// outputMoveList writes the replayed moves as a wrapped list, marking
// rejected ones with '?'.
func outputMoveList(res *processing.ReplayResult, w io.Writer) {
	ow := NewOutputWriter(w, maxLineLength)
	for _, p := range res.Plies {
		if p.Legal {
			ow.Write(p.Text)
		} else {
			ow.Write(p.Text + "?")
		}
	}
	ow.NewLine()
}

// FormatPly renders one ply as a report line, e.g.
// "  3. g1-f3    White Knight    ok, check".
func FormatPly(p *processing.PlyResult) string {
	text := p.Text
	if !p.Legal {
		text += "?"
	}
	piece := p.Piece
	if piece == "" {
		piece = "-"
	}
	line := fmt.Sprintf("%3d. %-8s %-15s %s", p.Ply, text, piece, Outcome(p))
	if p.Comment != "" {
		line += " ; " + p.Comment
	}
	return line
}

// Outcome summarizes what happened to a ply.
func Outcome(p *processing.PlyResult) string {
	switch {
	case p.Legal && !p.Expected:
		return "UNEXPECTED: legal"
	case !p.Legal && p.Expected:
		return "rejected: " + p.Reason
	case !p.Legal:
		return "ILLEGAL: " + p.Reason
	}

	parts := []string{"ok"}
	if p.Special != rules.NoSpecial {
		parts = append(parts, p.Special.String())
	}
	if p.Captured > 0 {
		parts = append(parts, fmt.Sprintf("captures %d", p.Captured))
	}
	if p.Checks > 0 {
		parts = append(parts, "check")
	}
	if p.Mate {
		parts = append(parts, "mate")
	}
	return strings.Join(parts, ", ")
}
