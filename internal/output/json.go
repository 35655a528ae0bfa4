package output

import (
	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/processing"
	"github.com/lgbarn/board-rules-go/internal/rules"
)

// JSONGame represents one replayed game in JSON format.
type JSONGame struct {
	Name        string            `json:"name,omitempty"`
	Session     string            `json:"session,omitempty"`
	File        string            `json:"file,omitempty"`
	StartLine   uint              `json:"startLine,omitempty"`
	Variant     string            `json:"variant"`
	Tags        map[string]string `json:"tags,omitempty"`
	StartLayout string            `json:"startLayout"`
	FinalLayout string            `json:"finalLayout,omitempty"`
	Result      string            `json:"result"`
	Expected    string            `json:"expectedResult,omitempty"`
	Valid       bool              `json:"valid"`
	ErrorPly    int               `json:"errorPly,omitempty"`
	Error       string            `json:"error,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
	Plies       []JSONPly         `json:"plies,omitempty"`
}

// JSONPly represents one replayed move in JSON format.
type JSONPly struct {
	Ply      int    `json:"ply"`
	Move     string `json:"move"`
	From     string `json:"from"`
	To       string `json:"to"`
	Piece    string `json:"piece,omitempty"`
	Legal    bool   `json:"legal"`
	Expected bool   `json:"expected"`
	Reason   string `json:"reason,omitempty"`
	Special  string `json:"special,omitempty"`
	Captured int    `json:"captured,omitempty"`
	Checks   int    `json:"checks,omitempty"`
	Mate     bool   `json:"mate,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games  []*JSONGame `json:"games"`
	Errors []string    `json:"errors,omitempty"`
}

// ResultToJSON converts a replay result to JSON format.
func ResultToJSON(res *processing.ReplayResult) *JSONGame {
	rec := res.Game
	jg := &JSONGame{
		Name:        rec.Name(),
		Session:     res.SessionID,
		File:        rec.File,
		StartLine:   rec.StartLine,
		Variant:     rec.Variant.String(),
		StartLayout: rec.StartLayout(),
		FinalLayout: res.FinalLayout,
		Result:      res.Result,
		Expected:    rec.GetTag(chess.TagResult),
		Valid:       res.Valid,
		ErrorPly:    res.ErrorPly,
		Error:       res.ErrorMsg,
		Warnings:    res.ParseErrors,
	}
	if len(rec.Tags) > 0 {
		jg.Tags = copyTags(rec.Tags)
	}

	jg.Plies = make([]JSONPly, 0, len(res.Plies))
	for i := range res.Plies {
		jg.Plies = append(jg.Plies, plyToJSON(&res.Plies[i]))
	}
	return jg
}

// plyToJSON converts one ply.
func plyToJSON(p *processing.PlyResult) JSONPly {
	jp := JSONPly{
		Ply:      p.Ply,
		Move:     p.Text,
		From:     p.From.String(),
		To:       p.To.String(),
		Piece:    p.Piece,
		Legal:    p.Legal,
		Expected: p.Expected,
		Reason:   p.Reason,
		Captured: p.Captured,
		Checks:   p.Checks,
		Mate:     p.Mate,
		Comment:  p.Comment,
	}
	if p.Special != rules.NoSpecial {
		jp.Special = p.Special.String()
	}
	return jp
}

// copyTags copies game tags.
func copyTags(tags map[string]string) map[string]string {
	result := make(map[string]string, len(tags))
	for k, v := range tags {
		result[k] = v
	}
	return result
}
