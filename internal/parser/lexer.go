package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/lgbarn/board-rules-go/internal/config"
)

// Lexer tokenizes move scripts.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	start   int
	lineNum uint
	eof     bool
	cfg     *config.Config
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	// Initialize all to error
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	// Whitespace
	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = Whitespace
	}

	// Brackets and quotes
	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd

	// Special symbols
	chTab[';'] = LineComment
	chTab['#'] = LineComment
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['.'] = Dot
	chTab['%'] = Percent
	chTab['\\'] = Escape
	chTab[0] = EOS
	chTab['*'] = Star

	// Digits
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}

	// Alpha characters (upper and lowercase)
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
// A move is two square names, optionally separated by '-', 'x' or ':'.
func initMoveChars() {
	for c := byte('a'); c <= 'z'; c++ {
		moveChars[c] = true
		moveChars[c-32] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		moveChars[c] = true
	}
	moveChars['-'] = true
	moveChars[':'] = true
}

// NewLexer creates a new lexer for the given reader.
// If cfg is nil, a default config is created.
func NewLexer(r io.Reader, cfg *config.Config) *Lexer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Lexer{
		reader: bufio.NewReader(r),
		cfg:    cfg,
	}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			l.line = line
			l.pos = 0
			l.lineNum++
			return true
		}
		l.eof = true
		return false
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// warnf writes a lexing warning to the log.
func (l *Lexer) warnf(format string, args ...interface{}) {
	if l.cfg.Verbosity > 0 && l.cfg.LogFile != nil {
		fmt.Fprintf(l.cfg.LogFile, format, args...)
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		token := l.getNextSymbol()
		if token.Type != NoToken {
			token.Line = l.lineNum
			token.Column = uint(l.start) + 1
			return token
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() *Token {
	// Need a new line?
	if l.line == "" || l.pos >= len(l.line) {
		if !l.readLine() {
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}
	}

	ch := l.currentChar()
	l.start = l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
			l.advance()
		}
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		l.warnf("Unmatched comment end on line %d.\n", l.lineNum)
		return &Token{Type: NoToken}

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, TokenString: text}

	case Annotate:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Annotate {
			l.advance()
		}
		text := l.line[l.start:l.pos]
		if strings.Contains(text, "?") {
			return &Token{Type: ExpectIllegal, TokenString: text}
		}
		return &Token{Type: NoToken}

	case Dot:
		// Skip dots
		for l.pos < len(l.line) && chTab[l.currentChar()] == Dot {
			l.advance()
		}
		return &Token{Type: NoToken}

	case Percent:
		// Escaped line
		l.pos = len(l.line)
		return &Token{Type: NoToken}

	case Escape:
		// Skip next character
		if l.pos < len(l.line) {
			l.advance()
		}
		return &Token{Type: NoToken}

	case Alpha:
		return l.gatherMove()

	case Digit:
		return l.gatherNumeric(ch)

	case Star:
		return &Token{Type: TerminatingResult, TokenString: "*"}

	case EOS:
		// End of string, get next line
		if !l.readLine() {
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}

	case ErrorToken:
		l.warnf("Unknown character %c (0x%x) on line %d.\n", ch, ch, l.lineNum)
		for l.pos < len(l.line) && chTab[l.currentChar()] == ErrorToken {
			l.advance()
		}
		return &Token{Type: NoToken}

	default:
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	// Skip whitespace
	for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
		l.advance()
	}

	// Gather tag name
	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	if l.pos > start {
		return &Token{Type: TagToken, TokenString: l.line[start:l.pos]}
	}
	return &Token{Type: NoToken}
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		if ch == '"' {
			// End of string
			return &Token{Type: StringToken, TokenString: sb.String()}
		}

		sb.WriteByte(ch)
	}

	// String not properly terminated
	l.warnf("Missing closing quote on line %d.\n", l.lineNum)
	return &Token{Type: StringToken, TokenString: strings.TrimRight(sb.String(), "\r\n")}
}

// gatherComment gathers a comment block, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder

	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{Type: CommentToken, TokenString: strings.TrimSpace(sb.String())}
			}
			sb.WriteByte(ch)
		}

		if !l.readLine() {
			break
		}
	}

	l.warnf("Missing end of comment.\n")
	return &Token{Type: CommentToken, TokenString: strings.TrimSpace(sb.String())}
}

// gatherMove gathers move text such as "e2-e4" or "b10c8". The squares are
// decoded by the parser, which knows the variant.
func (l *Lexer) gatherMove() *Token {
	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}
	return &Token{Type: MoveToken, TokenString: l.line[l.start:l.pos]}
}

// gatherNumeric handles numeric tokens (move numbers and results).
func (l *Lexer) gatherNumeric(initialDigit byte) *Token {
	remaining := l.line[l.pos:]

	switch {
	case initialDigit == '1' && strings.HasPrefix(remaining, "-0"):
		l.pos += 2
		return &Token{Type: TerminatingResult, TokenString: "1-0"}
	case initialDigit == '0' && strings.HasPrefix(remaining, "-1"):
		l.pos += 2
		return &Token{Type: TerminatingResult, TokenString: "0-1"}
	}

	return l.gatherMoveNumber()
}

// gatherMoveNumber parses a move number token.
func (l *Lexer) gatherMoveNumber() *Token {
	for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
		l.advance()
	}
	numStr := l.line[l.start:l.pos]

	// Skip trailing dots
	for l.pos < len(l.line) && l.currentChar() == '.' {
		l.advance()
	}

	var moveNum uint
	fmt.Sscanf(numStr, "%d", &moveNum) //nolint:gosec // G104: default 0 is acceptable

	return &Token{Type: MoveNumber, MoveNum: moveNum, TokenString: numStr}
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() uint {
	return l.lineNum
}
