package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/processing"
)

// ReportWriter is the interface for writing replay reports.
// Different implementations handle different output formats (text, JSON,
// parquet).
type ReportWriter interface {
	// WriteResult writes the report of one replayed game.
	WriteResult(res *processing.ReplayResult) error

	// WriteError reports a game that could not be parsed.
	WriteError(err error) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewReportWriter returns the writer for cfg's output format.
func NewReportWriter(w io.Writer, cfg *config.Config) ReportWriter {
	if cfg.Output.Format == config.JSONFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes reports as text.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteResult writes a game report in text form.
func (tw *TextWriter) WriteResult(res *processing.ReplayResult) error {
	OutputResult(res, tw.cfg, tw.w)
	return nil
}

// WriteError writes a parse error line.
func (tw *TextWriter) WriteError(err error) error {
	_, werr := fmt.Fprintf(tw.w, "error: %v\n\n", err)
	return werr
}

// Flush flushes the text writer (no-op as it writes immediately).
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes reports in JSON format.
// It buffers games and writes them as one document on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*JSONGame
	errors []string
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteResult buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteResult(res *processing.ReplayResult) error {
	jg := ResultToJSON(res)
	if jw.single {
		return jw.encode(jg)
	}
	jw.games = append(jw.games, jg)
	return nil
}

// WriteError records a parse error (or writes it immediately in single mode).
func (jw *JSONWriter) WriteError(err error) error {
	if jw.single {
		return jw.encode(map[string]string{"error": err.Error()})
	}
	jw.errors = append(jw.errors, err.Error())
	return nil
}

// Flush writes all buffered games as a JSON document.
func (jw *JSONWriter) Flush() error {
	if jw.single || (len(jw.games) == 0 && len(jw.errors) == 0) {
		return nil
	}

	out := &JSONOutput{
		Games:  jw.games,
		Errors: jw.errors,
	}
	if out.Games == nil {
		out.Games = []*JSONGame{}
	}
	err := jw.encode(out)

	// Clear buffer after writing
	jw.games = nil
	jw.errors = nil

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func (jw *JSONWriter) encode(v interface{}) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// multiWriter fans reports out to several writers.
type multiWriter []ReportWriter

// MultiWriter returns a ReportWriter that writes to every w in order,
// stopping at the first error.
func MultiWriter(ws ...ReportWriter) ReportWriter {
	return multiWriter(ws)
}

func (m multiWriter) WriteResult(res *processing.ReplayResult) error {
	for _, w := range m {
		if err := w.WriteResult(res); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) WriteError(err error) error {
	for _, w := range m {
		if werr := w.WriteError(err); werr != nil {
			return werr
		}
	}
	return nil
}

func (m multiWriter) Flush() error {
	for _, w := range m {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer, returning the first error.
func (m multiWriter) Close() error {
	var first error
	for _, w := range m {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
