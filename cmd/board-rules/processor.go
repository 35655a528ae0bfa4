// processor.go - Script reading, replay and report output
package main

import (
	"fmt"
	"io"

	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/output"
	"github.com/lgbarn/board-rules-go/internal/parser"
	"github.com/lgbarn/board-rules-go/internal/worker"
)

// Stats counts what happened to the games of a run.
type Stats struct {
	Games      int // games parsed and replayed
	Failed     int // replayed games whose outcome differed from the script
	Unreadable int // scripts that could not be parsed
}

// OK reports whether every game was read and replayed as scripted.
func (s Stats) OK() bool {
	return s.Failed == 0 && s.Unreadable == 0
}

// processInput reads every game of one input as work items numbered from
// first. Parse errors are kept in place so reports stay in input order.
func processInput(r io.Reader, name string, first int, cfg *config.Config) ([]worker.WorkItem, error) {
	dr, err := parser.NewDecodingReader(r, cfg.Charset)
	if err != nil {
		return nil, err
	}
	p := parser.NewParser(dr, cfg)
	p.SetFileName(name)

	var items []worker.WorkItem
	for {
		game, err := p.ParseGame()
		if err == nil && game == nil {
			return items, nil
		}
		items = append(items, worker.WorkItem{Game: game, Err: err, Index: first + len(items)})
		if err != nil && cfg.Replay.Strict {
			return items, nil
		}
	}
}

// newReportWriter creates the report writer for cfg, adding a parquet
// writer when one is configured.
func newReportWriter(cfg *config.Config) (output.ReportWriter, error) {
	w := output.NewReportWriter(cfg.OutputFile, cfg)
	if cfg.Output.ParquetFile == "" {
		return w, nil
	}
	parallel := int64(cfg.Workers)
	if parallel < 1 {
		parallel = 1
	}
	pw, err := output.NewParquetWriter(cfg.Output.ParquetFile, parallel)
	if err != nil {
		return nil, err
	}
	return output.MultiWriter(w, pw), nil
}

// replayItems replays items and writes their reports in input order. Engine
// notifications of each game go to the log ahead of its report.
func replayItems(items []worker.WorkItem, cfg *config.Config, w output.ReportWriter) (Stats, error) {
	var stats Stats
	for _, res := range worker.ReplayAll(items, cfg) {
		if res.Error != nil {
			stats.Unreadable++
			if err := w.WriteError(res.Error); err != nil {
				return stats, err
			}
			continue
		}

		stats.Games++
		if !res.Replay.Valid {
			stats.Failed++
		}
		if res.Replay.Log != "" && cfg.LogFile != nil {
			fmt.Fprint(cfg.LogFile, res.Replay.Log)
		}
		if err := w.WriteResult(res.Replay); err != nil {
			return stats, err
		}
	}
	return stats, nil
}
