package output

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lgbarn/board-rules-go/internal/errors"
	"github.com/lgbarn/board-rules-go/internal/processing"
	"github.com/lgbarn/board-rules-go/internal/rules"
)

// PlyRow is one replayed move as a parquet row.
type PlyRow struct {
	Game     string `parquet:"name=game, type=BYTE_ARRAY, convertedtype=UTF8"`
	Session  string `parquet:"name=session, type=BYTE_ARRAY, convertedtype=UTF8"`
	File     string `parquet:"name=file, type=BYTE_ARRAY, convertedtype=UTF8"`
	Variant  string `parquet:"name=variant, type=BYTE_ARRAY, convertedtype=UTF8"`
	Ply      int32  `parquet:"name=ply, type=INT32"`
	Move     string `parquet:"name=move, type=BYTE_ARRAY, convertedtype=UTF8"`
	From     string `parquet:"name=from, type=BYTE_ARRAY, convertedtype=UTF8"`
	To       string `parquet:"name=to, type=BYTE_ARRAY, convertedtype=UTF8"`
	Piece    string `parquet:"name=piece, type=BYTE_ARRAY, convertedtype=UTF8"`
	Legal    bool   `parquet:"name=legal, type=BOOLEAN"`
	Expected bool   `parquet:"name=expected, type=BOOLEAN"`
	Reason   string `parquet:"name=reason, type=BYTE_ARRAY, convertedtype=UTF8"`
	Special  string `parquet:"name=special, type=BYTE_ARRAY, convertedtype=UTF8"`
	Captured int32  `parquet:"name=captured, type=INT32"`
	Checks   int32  `parquet:"name=checks, type=INT32"`
	Mate     bool   `parquet:"name=mate, type=BOOLEAN"`
}

// ParquetWriter writes one row per replayed ply to a parquet file.
// Parse errors have no plies and are not recorded.
type ParquetWriter struct {
	file source.ParquetFile
	pw   *writer.ParquetWriter
	rows int
}

// NewParquetWriter creates the parquet file at path. parallel is the
// number of goroutines the encoder may use.
func NewParquetWriter(path string, parallel int64) (*ParquetWriter, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}
	pw, err := writer.NewParquetWriter(fw, new(PlyRow), parallel)
	if err != nil {
		fw.Close()
		return nil, errors.Wrap(err, "parquet schema")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	return &ParquetWriter{file: fw, pw: pw}, nil
}

// PlyRows flattens a replay into rows.
func PlyRows(res *processing.ReplayResult) []PlyRow {
	rows := make([]PlyRow, 0, len(res.Plies))
	for _, p := range res.Plies {
		row := PlyRow{
			Game:     res.Game.Name(),
			Session:  res.SessionID,
			File:     res.Game.File,
			Variant:  res.Game.Variant.String(),
			Ply:      int32(p.Ply),
			Move:     p.Text,
			From:     p.From.String(),
			To:       p.To.String(),
			Piece:    p.Piece,
			Legal:    p.Legal,
			Expected: p.Expected,
			Reason:   p.Reason,
			Captured: int32(p.Captured),
			Checks:   int32(p.Checks),
			Mate:     p.Mate,
		}
		if p.Special != rules.NoSpecial {
			row.Special = p.Special.String()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteResult appends the game's plies.
func (w *ParquetWriter) WriteResult(res *processing.ReplayResult) error {
	for _, row := range PlyRows(res) {
		if err := w.pw.Write(row); err != nil {
			return err
		}
		w.rows++
	}
	return nil
}

// WriteError implements ReportWriter; parse errors produce no rows.
func (w *ParquetWriter) WriteError(error) error {
	return nil
}

// Flush writes the buffered row group.
func (w *ParquetWriter) Flush() error {
	return w.pw.Flush(true)
}

// Rows returns the number of rows written so far.
func (w *ParquetWriter) Rows() int {
	return w.rows
}

// Close writes the footer and closes the file.
func (w *ParquetWriter) Close() error {
	if err := w.pw.WriteStop(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
