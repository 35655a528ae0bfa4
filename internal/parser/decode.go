package parser

import (
	"fmt"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/errors"
)

// isFile returns true if c can start a square name.
func isFile(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit returns true if c is a rank digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isSeparator returns true if c may separate the two squares of a move.
func isSeparator(c byte) bool {
	return c == '-' || c == 'x' || c == 'X' || c == ':'
}

// scanSquare returns the end of the square name starting at i, or -1.
func scanSquare(s string, i int) int {
	if i >= len(s) || !isFile(s[i]) {
		return -1
	}
	j := i + 1
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i+1 {
		return -1
	}
	return j
}

// DecodeMove parses move text such as "e2-e4", "e2e4", "e4xd5" or
// "h10-h8" into a move record on v's board.
func DecodeMove(text string, v chess.Variant) (*chess.MoveRecord, error) {
	fromEnd := scanSquare(text, 0)
	if fromEnd < 0 {
		return nil, fmt.Errorf("move %q: %w", text, errors.ErrParseFailure)
	}
	toStart := fromEnd
	if toStart+1 < len(text) && isSeparator(text[toStart]) && isFile(text[toStart+1]) {
		toStart++
	}
	toEnd := scanSquare(text, toStart)
	if toEnd != len(text) {
		return nil, fmt.Errorf("move %q: %w", text, errors.ErrParseFailure)
	}

	from, err := chess.ParseSquare(v, text[:fromEnd])
	if err != nil {
		return nil, fmt.Errorf("move %q: %w: %w", text, errors.ErrParseFailure, err)
	}
	to, err := chess.ParseSquare(v, text[toStart:toEnd])
	if err != nil {
		return nil, fmt.Errorf("move %q: %w: %w", text, errors.ErrParseFailure, err)
	}
	return chess.NewMoveRecord(text, from, to), nil
}
