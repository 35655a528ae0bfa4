// board-rules replays scripted western chess and Xiangqi games, checking
// each move against the rules and reporting checks, captures and results.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("board-rules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	stats, err := run(flag.Args(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Verbosity > 0 {
		reportStatistics(os.Stderr, stats)
	}
	if !stats.OK() {
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// run reads every named file, or stdin when there are none, then replays
// the games and writes their reports.
func run(args []string, cfg *config.Config) (Stats, error) {
	var items []worker.WorkItem

	if len(args) == 0 {
		got, err := processInput(os.Stdin, "stdin", 0, cfg)
		if err != nil {
			return Stats{}, err
		}
		items = got
	}
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", filename, err)
			continue
		}
		got, err := processInput(file, filename, len(items), cfg)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			return Stats{}, err
		}
		items = append(items, got...)
		if cfg.Replay.Strict && hasParseError(got) {
			break
		}
	}

	w, err := newReportWriter(cfg)
	if err != nil {
		return Stats{}, err
	}
	stats, err := replayItems(items, cfg, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return stats, err
}

func hasParseError(items []worker.WorkItem) bool {
	for _, item := range items {
		if item.Err != nil {
			return true
		}
	}
	return false
}

// reportStatistics prints the final statistics.
func reportStatistics(w io.Writer, stats Stats) {
	fmt.Fprintf(w, "%d game(s) replayed, %d failed, %d unreadable.\n",
		stats.Games, stats.Failed, stats.Unreadable)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: board-rules [options] [script-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays western chess and Xiangqi move scripts against the rules.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nScript format:\n")
	fmt.Fprintf(os.Stderr, "  [Variant \"xiangqi\"]   variant of the game (default from -variant)\n")
	fmt.Fprintf(os.Stderr, "  [Layout \"...\"]        starting placement, ranks top to bottom\n")
	fmt.Fprintf(os.Stderr, "  [Result \"1-0\"]        expected outcome: 1-0, 0-1 or *\n")
	fmt.Fprintf(os.Stderr, "  1. e2-e4 e7-e5         moves as from-to squares, numbers optional\n")
	fmt.Fprintf(os.Stderr, "  e1-e3?                 a move the rules must reject\n")
	fmt.Fprintf(os.Stderr, "  {text} ; text # text   comments\n")
}
