// Package parser reads move scripts: tag pairs naming the variant and the
// starting layout, followed by from-to moves to replay.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Tokens returned to the parser
	EOFToken TokenType = iota
	TagToken
	StringToken
	CommentToken
	MoveNumber
	MoveToken
	ExpectIllegal
	TerminatingResult

	// Internal tokens used for identification
	Whitespace
	TagStart
	TagEnd
	DoubleQuote
	CommentStart
	CommentEnd
	LineComment
	Annotate
	Dot
	Percent
	Escape
	Alpha
	Digit
	Star
	EOS
	NoToken
	ErrorToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:          "EOF",
	TagToken:          "TAG",
	StringToken:       "STRING",
	CommentToken:      "COMMENT",
	MoveNumber:        "MOVE_NUMBER",
	MoveToken:         "MOVE",
	ExpectIllegal:     "EXPECT_ILLEGAL",
	TerminatingResult: "TERMINATING_RESULT",
	Whitespace:        "WHITESPACE",
	TagStart:          "TAG_START",
	TagEnd:            "TAG_END",
	DoubleQuote:       "DOUBLE_QUOTE",
	CommentStart:      "COMMENT_START",
	CommentEnd:        "COMMENT_END",
	LineComment:       "LINE_COMMENT",
	Annotate:          "ANNOTATE",
	Dot:               "DOT",
	Percent:           "PERCENT",
	Escape:            "ESCAPE",
	Alpha:             "ALPHA",
	Digit:             "DIGIT",
	Star:              "STAR",
	EOS:               "EOS",
	NoToken:           "NO_TOKEN",
	ErrorToken:        "ERROR_TOKEN",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// TokenString is used for tag names and values, move text, comments
	// and results
	TokenString string

	// MoveNum holds move numbers
	MoveNum uint

	// Line and column for error reporting
	Line   uint
	Column uint
}

// NewToken creates a new token of the given type.
func NewToken(tokenType TokenType) *Token {
	return &Token{Type: tokenType}
}
