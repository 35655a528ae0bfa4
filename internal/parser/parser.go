package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/errors"
)

// Parser parses move scripts into GameRecord structures.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	lastLine     uint
	tagLines     map[string]uint
	cfg          *config.Config
	fileName     string
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r, cfg),
		cfg:   cfg,
	}
}

// SetFileName names the input in records and errors.
func (p *Parser) SetFileName(name string) {
	p.fileName = name
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	if p.currentToken != nil && p.currentToken.Type != EOFToken {
		p.lastLine = p.currentToken.Line
	}
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available. After an error the rest of
// the offending game is skipped, so parsing can continue with the next.
func (p *Parser) ParseGame() (*chess.GameRecord, error) {
	// Get first token if we haven't yet
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()

	game := chess.NewGameRecord(p.cfg.Variant)
	game.File = p.fileName
	game.StartLine = p.currentToken.Line

	if err := p.parseOptTagList(game); err != nil {
		p.skipRestOfGame()
		return nil, err
	}
	if err := p.parseMoveList(game); err != nil {
		p.skipRestOfGame()
		return nil, err
	}

	if result := p.parseResult(); result != "" {
		game.SetTag(chess.TagResult, result)
	}
	game.EndLine = p.lastLine

	// Check if we got anything
	if p.currentToken.Type == EOFToken && len(game.Moves) == 0 && len(game.Tags) == 0 {
		return nil, nil
	}

	return game, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult:
			return
		default:
			p.nextToken()
		}
	}
}

// skipRestOfGame skips to the tags of the next game or past a result.
func (p *Parser) skipRestOfGame() {
	inMoves := false
	for {
		switch p.currentToken.Type {
		case EOFToken:
			return
		case TagToken, StringToken:
			if inMoves {
				return
			}
		case TerminatingResult:
			p.nextToken()
			return
		default:
			inMoves = true
		}
		p.nextToken()
	}
}

// parseOptTagList parses zero or more tags, then applies the ones that
// shape the replay.
func (p *Parser) parseOptTagList(game *chess.GameRecord) error {
	p.tagLines = make(map[string]uint)
	for {
		p.parseOptCommentList()
		if !p.parseTag(game) {
			break
		}
	}
	return p.applyTags(game)
}

// parseOptCommentList parses zero or more comments.
func (p *Parser) parseOptCommentList() []string {
	var comments []string
	for p.currentToken.Type == CommentToken {
		if p.currentToken.TokenString != "" {
			comments = append(comments, p.currentToken.TokenString)
		}
		p.nextToken()
	}
	return comments
}

// parseTag parses a single tag.
func (p *Parser) parseTag(game *chess.GameRecord) bool {
	if p.currentToken.Type == TagToken {
		tagName := p.currentToken.TokenString
		p.tagLines[tagName] = p.currentToken.Line
		p.nextToken()

		if p.currentToken.Type == StringToken {
			game.SetTag(tagName, p.currentToken.TokenString)
			p.nextToken()
		} else {
			p.warnf("Missing tag string for %s.\n", tagName)
		}
		return true
	}

	if p.currentToken.Type == StringToken {
		p.warnf("Missing tag name for %s.\n", p.currentToken.TokenString)
		p.nextToken()
		return true
	}

	return false
}

// applyTags sets the record's variant and starting layout from its tags.
// The variant is applied first because the layout is read on its board.
func (p *Parser) applyTags(game *chess.GameRecord) error {
	if name := game.GetTag(chess.TagVariant); name != "" {
		v, ok := chess.ParseVariant(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return &errors.ParseError{
				Err:      errors.ErrParseFailure,
				File:     p.fileName,
				Line:     int(p.tagLines[chess.TagVariant]),
				Expected: "variant western or xiangqi",
				Got:      name,
			}
		}
		game.Variant = v
	}

	if layout := strings.TrimSpace(game.GetTag(chess.TagLayout)); layout != "" {
		if _, err := chess.NewBoardFromLayout(game.Variant, layout); err != nil {
			return &errors.ParseError{
				Err:  fmt.Errorf("%w: %w", errors.ErrParseFailure, err),
				File: p.fileName,
				Line: int(p.tagLines[chess.TagLayout]),
			}
		}
		game.Layout = layout
	}
	return nil
}

// parseMoveList parses moves with their move numbers, expected-illegal
// marks and comments.
func (p *Parser) parseMoveList(game *chess.GameRecord) error {
	var last *chess.MoveRecord
	for {
		tok := p.currentToken
		switch tok.Type {
		case MoveNumber:
			p.nextToken()

		case MoveToken:
			move, err := DecodeMove(tok.TokenString, game.Variant)
			if err != nil {
				return &errors.ParseError{
					Err:    err,
					File:   p.fileName,
					Line:   int(tok.Line),
					Column: int(tok.Column),
				}
			}
			move.Line = tok.Line
			game.Moves = append(game.Moves, move)
			last = move
			p.nextToken()

		case ExpectIllegal:
			if last == nil {
				return &errors.ParseError{
					Err:      errors.ErrParseFailure,
					File:     p.fileName,
					Line:     int(tok.Line),
					Column:   int(tok.Column),
					Expected: "move",
					Got:      tok.TokenString,
				}
			}
			last.ExpectIllegal = true
			p.nextToken()

		case CommentToken:
			if last != nil && tok.TokenString != "" {
				if last.Comment != "" {
					last.Comment += " "
				}
				last.Comment += tok.TokenString
			}
			p.nextToken()

		default:
			return nil
		}
	}
}

// parseResult parses a game result.
func (p *Parser) parseResult() string {
	if p.currentToken.Type == TerminatingResult {
		result := p.currentToken.TokenString
		// Set to NoToken to help skip between games
		p.lastLine = p.currentToken.Line
		p.currentToken = &Token{Type: NoToken}
		return result
	}
	return ""
}

// warnf writes a parsing warning to the log.
func (p *Parser) warnf(format string, args ...interface{}) {
	p.lexer.warnf(format, args...)
}

// ParseAllGames parses all games from the input. It stops at the first
// parse error, returning the games read before it.
func (p *Parser) ParseAllGames() ([]*chess.GameRecord, error) {
	var games []*chess.GameRecord

	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}

	return games, nil
}
