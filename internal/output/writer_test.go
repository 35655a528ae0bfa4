package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/parser"
	"github.com/lgbarn/board-rules-go/internal/processing"
	"github.com/lgbarn/board-rules-go/internal/rules"
	"github.com/lgbarn/board-rules-go/internal/testutil"
)

const shortScript = `[Name "Short"]
[Event "club"]
1. e2-e4 e7-e5 2. e1-e3? {king jumps} f1-c4 *
`

func testConfig() *config.Config {
	return config.NewConfigBuilder().WithVerbosity(0).WithLog(&bytes.Buffer{}).Build()
}

// replayScript parses the first game of script and replays it.
func replayScript(t *testing.T, script string, cfg *config.Config) *processing.ReplayResult {
	t.Helper()
	p := parser.NewParser(strings.NewReader(script), cfg)
	games, err := p.ParseAllGames()
	testutil.AssertNoError(t, err)
	if len(games) == 0 {
		t.Fatal("no game parsed")
	}
	return processing.Replay(games[0], cfg)
}

func TestFormatPly(t *testing.T) {
	tests := []struct {
		name string
		ply  processing.PlyResult
		want string
	}{
		{
			name: "legal with check",
			ply:  processing.PlyResult{Ply: 3, Text: "g1-f3", Piece: "White Knight", Legal: true, Expected: true, Checks: 1},
			want: "  3. g1-f3    White Knight    ok, check",
		},
		{
			name: "expected rejection",
			ply:  processing.PlyResult{Ply: 12, Text: "a1-a1", Piece: "Black Rook", Expected: true, Reason: "no move"},
			want: " 12. a1-a1?   Black Rook      rejected: no move",
		},
		{
			name: "empty origin with comment",
			ply:  processing.PlyResult{Ply: 1, Text: "e3-e4", Reason: "no piece", Comment: "oops"},
			want: "  1. e3-e4?   -               ILLEGAL: no piece ; oops",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, FormatPly(&tt.ply), tt.want)
		})
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		ply  processing.PlyResult
		want string
	}{
		{"plain", processing.PlyResult{Legal: true, Expected: true}, "ok"},
		{"castling", processing.PlyResult{Legal: true, Expected: true, Special: rules.Castling}, "ok, castling"},
		{"capture and mate", processing.PlyResult{Legal: true, Expected: true, Captured: 1, Checks: 2, Mate: true}, "ok, captures 1, check, mate"},
		{"unexpected legal", processing.PlyResult{Legal: true}, "UNEXPECTED: legal"},
		{"illegal", processing.PlyResult{Reason: "blocked"}, "ILLEGAL: blocked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, Outcome(&tt.ply), tt.want)
		})
	}
}

func TestTextWriter(t *testing.T) {
	cfg := testConfig()
	res := replayScript(t, shortScript, cfg)

	var buf bytes.Buffer
	w := NewReportWriter(&buf, cfg)
	testutil.AssertNoError(t, w.WriteResult(res))
	testutil.AssertNoError(t, w.Close())
	out := buf.String()

	wantLines := []string{
		"[Name \"Short\"]\n[Variant \"western\"]\n[Result \"*\"]\n[Event \"club\"]\n",
		"  1. e2-e4    White Pawn      ok\n",
		"  3. e1-e3?   White King      rejected: ",
		"  4. f1-c4    White Bishop    ok\n",
		"result * (expected *), 3 of 4 moves played\n",
		"layout rnbqkbnr/pppp1ppp/8/4p3/2B1P3/8/PPPP1PPP/RNBQK1NR\n",
		"ok\n\n",
	}
	for _, want := range wantLines {
		testutil.AssertTrue(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
	}
	testutil.AssertTrue(t, strings.Contains(out, "; king jumps"), "comment missing")
}

func TestTextWriterCompact(t *testing.T) {
	cfg := testConfig()
	cfg.Output.ShowTurns = false
	cfg.Output.ShowLayout = false
	res := replayScript(t, shortScript, cfg)

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewTextWriter(&buf, cfg).WriteResult(res))
	out := buf.String()

	testutil.AssertTrue(t, strings.Contains(out, "e2-e4 e7-e5 e1-e3? f1-c4\n"), out)
	testutil.AssertFalse(t, strings.Contains(out, "layout "), out)
}

func TestTextWriterFailure(t *testing.T) {
	cfg := testConfig()
	res := replayScript(t, "e2-e5 *\n", cfg)

	var buf bytes.Buffer
	w := NewTextWriter(&buf, cfg)
	testutil.AssertNoError(t, w.WriteResult(res))
	testutil.AssertNoError(t, w.WriteError(fmt.Errorf("bad script")))

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "FAILED at ply 1: illegal move at ply 1: e2-e5"), out)
	testutil.AssertTrue(t, strings.HasSuffix(out, "error: bad script\n\n"), out)
}

func TestOutputWriterWraps(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOutputWriter(&buf, 11)
	for _, s := range []string{"e2-e4", "e7-e5", "g1-f3"} {
		ow.Write(s)
	}
	ow.NewLine()
	testutil.AssertEqual(t, buf.String(), "e2-e4 e7-e5\ng1-f3\n")
}

func TestEscapeTagValue(t *testing.T) {
	testutil.AssertEqual(t, escapeTagValue(`plain`), `plain`)
	testutil.AssertEqual(t, escapeTagValue(`a "b" \c`), `a \"b\" \\c`)
}

func TestJSONWriterBatch(t *testing.T) {
	cfg := testConfig()
	res := replayScript(t, shortScript, cfg)

	var buf bytes.Buffer
	cfg.Output.Format = config.JSONFormat
	w := NewReportWriter(&buf, cfg)
	testutil.AssertNoError(t, w.WriteResult(res))
	testutil.AssertNoError(t, w.WriteError(fmt.Errorf("bad script")))
	testutil.AssertEqual(t, buf.Len(), 0, "batch writer wrote before Close")
	testutil.AssertNoError(t, w.Close())

	var doc JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &doc))
	testutil.AssertEqual(t, len(doc.Games), 1)
	testutil.AssertEqual(t, doc.Errors, []string{"bad script"})

	g := doc.Games[0]
	testutil.AssertEqual(t, g.Name, "Short")
	testutil.AssertEqual(t, g.Variant, "western")
	testutil.AssertEqual(t, g.Tags["Event"], "club")
	testutil.AssertTrue(t, g.Valid)
	testutil.AssertEqual(t, len(g.Plies), 4)
	testutil.AssertFalse(t, g.Plies[2].Legal)
	testutil.AssertTrue(t, g.Plies[2].Expected)
	testutil.AssertEqual(t, g.Plies[2].Comment, "king jumps")
	testutil.AssertEqual(t, g.Plies[3].Piece, "White Bishop")
}

func TestJSONWriterSingle(t *testing.T) {
	cfg := testConfig()
	res := replayScript(t, shortScript, cfg)

	var buf bytes.Buffer
	w := NewJSONWriterSingle(&buf)
	testutil.AssertNoError(t, w.WriteResult(res))
	testutil.AssertTrue(t, buf.Len() > 0, "single writer should write immediately")
	testutil.AssertNoError(t, w.WriteError(fmt.Errorf("bad script")))
	testutil.AssertNoError(t, w.Close())

	dec := json.NewDecoder(&buf)
	var g JSONGame
	testutil.AssertNoError(t, dec.Decode(&g))
	testutil.AssertEqual(t, g.Result, "*")
	testutil.AssertEqual(t, g.Session, res.SessionID)
	testutil.AssertTrue(t, g.Session != "", "session id missing")
	var e map[string]string
	testutil.AssertNoError(t, dec.Decode(&e))
	testutil.AssertEqual(t, e["error"], "bad script")
}

func TestJSONWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, NewJSONWriter(&buf).Close())
	testutil.AssertEqual(t, buf.Len(), 0)
}

func TestMultiWriter(t *testing.T) {
	cfg := testConfig()
	res := replayScript(t, shortScript, cfg)

	var text, js bytes.Buffer
	w := MultiWriter(NewTextWriter(&text, cfg), NewJSONWriter(&js))
	testutil.AssertNoError(t, w.WriteResult(res))
	testutil.AssertNoError(t, w.Flush())
	testutil.AssertNoError(t, w.Close())

	testutil.AssertTrue(t, strings.Contains(text.String(), "[Name \"Short\"]"))
	testutil.AssertTrue(t, strings.Contains(js.String(), `"name": "Short"`))
}

func TestParquetWriterRoundTrip(t *testing.T) {
	cfg := testConfig()
	res := replayScript(t, shortScript, cfg)
	castle := replayScript(t, "[Layout \"4k3/8/8/8/8/8/8/4K2R\"]\ne1-g1 *\n", cfg)

	path := filepath.Join(t.TempDir(), "plies.parquet")
	w, err := NewParquetWriter(path, 1)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, w.WriteResult(res))
	testutil.AssertNoError(t, w.WriteError(fmt.Errorf("ignored")))
	testutil.AssertNoError(t, w.WriteResult(castle))
	testutil.AssertEqual(t, w.Rows(), 5)
	testutil.AssertNoError(t, w.Close())

	fr, err := local.NewLocalFileReader(path)
	testutil.AssertNoError(t, err)
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(PlyRow), 1)
	testutil.AssertNoError(t, err)
	defer pr.ReadStop()

	n := int(pr.GetNumRows())
	testutil.AssertEqual(t, n, 5)
	rows := make([]PlyRow, n)
	testutil.AssertNoError(t, pr.Read(&rows))

	testutil.AssertEqual(t, rows, append(PlyRows(res), PlyRows(castle)...))
	testutil.AssertEqual(t, rows[2].Move, "e1-e3")
	testutil.AssertFalse(t, rows[2].Legal)
	testutil.AssertEqual(t, rows[4].Special, "castling")
	testutil.AssertEqual(t, rows[0].Session, res.SessionID)
	testutil.AssertEqual(t, rows[4].Session, castle.SessionID)
}

func TestNewParquetWriterBadPath(t *testing.T) {
	_, err := NewParquetWriter(filepath.Join(t.TempDir(), "missing", "plies.parquet"), 1)
	testutil.AssertTrue(t, err != nil, "expected an error for a missing directory")
}
