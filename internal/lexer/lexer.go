// Package lexer provides a lexer for turning source code into tokens.
//
// A Lexer is created by calling New() with the source code as input. Tokens
// are then read one at a time by calling Next() until an EOF token is
// returned.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/deepnoodle-ai/chainexpr/internal/token"
)

// Lexer holds the state for lexing one input string.
type Lexer struct {
	// input is the source code being lexed
	input string

	// pos is the byte offset of the current character
	pos int

	// readPos is the byte offset following the current character
	readPos int

	// ch is the current character
	ch rune

	// line is the 0-indexed line number of the current character
	line int

	// lineStart is the byte offset of the start of the current line
	lineStart int

	// filename of the input, used in positions and error messages
	filename string
}

// New returns a Lexer for the given input string.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// SetFilename sets the filename associated with the input.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the filename associated with the input.
func (l *Lexer) Filename() string {
	return l.filename
}

// GetLineText returns the line of source text containing the given token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

// Next returns the next token from the input. Once the input is exhausted,
// EOF tokens are returned indefinitely. A non-nil error indicates the input
// is malformed at the returned token's position.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	// Comments run to the end of the line
	for l.ch == '#' || (l.ch == '/' && l.peekChar() == '/') {
		l.skipComment()
		l.skipWhitespace()
	}

	start := l.position()
	switch l.ch {
	case 0:
		return l.emit(token.EOF, "", start), nil
	case '\n':
		tok := l.emit(token.NEWLINE, "\n", start)
		l.readChar()
		l.line++
		l.lineStart = l.pos
		return tok, nil
	case '=':
		if l.peekChar() == '=' {
			return l.emitTwo(token.EQ, start), nil
		}
		return l.emitOne(token.ASSIGN, start), nil
	case '!':
		if l.peekChar() == '=' {
			return l.emitTwo(token.NOT_EQ, start), nil
		}
		return l.emitOne(token.BANG, start), nil
	case '<':
		if l.peekChar() == '=' {
			return l.emitTwo(token.LT_EQUALS, start), nil
		}
		return l.emitOne(token.LT, start), nil
	case '>':
		if l.peekChar() == '=' {
			return l.emitTwo(token.GT_EQUALS, start), nil
		}
		return l.emitOne(token.GT, start), nil
	case '&':
		if l.peekChar() == '&' {
			return l.emitTwo(token.AND, start), nil
		}
		return l.illegal(start)
	case '|':
		if l.peekChar() == '|' {
			return l.emitTwo(token.OR, start), nil
		}
		return l.illegal(start)
	case '?':
		// "?." is the optional chaining operator, unless the character after
		// the "." is a decimal digit, in which case a lone "?" is emitted and
		// the "." is left for the next token so that ".3" can be read as a
		// float literal (the conditional operator reading, as in "x?.3:.5").
		if l.peekChar() == '.' && !isDigit(l.peekCharAt(2)) {
			return l.emitTwo(token.QUESTION_DOT, start), nil
		}
		if l.peekChar() == '?' {
			return l.emitTwo(token.NULLISH, start), nil
		}
		return l.emitOne(token.QUESTION, start), nil
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(start)
		}
		return l.emitOne(token.PERIOD, start), nil
	case '*':
		if l.peekChar() == '*' {
			return l.emitTwo(token.POW, start), nil
		}
		return l.emitOne(token.ASTERISK, start), nil
	case '+':
		return l.emitOne(token.PLUS, start), nil
	case '-':
		return l.emitOne(token.MINUS, start), nil
	case '/':
		return l.emitOne(token.SLASH, start), nil
	case '%':
		return l.emitOne(token.MOD, start), nil
	case '(':
		return l.emitOne(token.LPAREN, start), nil
	case ')':
		return l.emitOne(token.RPAREN, start), nil
	case '[':
		return l.emitOne(token.LBRACKET, start), nil
	case ']':
		return l.emitOne(token.RBRACKET, start), nil
	case '{':
		return l.emitOne(token.LBRACE, start), nil
	case '}':
		return l.emitOne(token.RBRACE, start), nil
	case ',':
		return l.emitOne(token.COMMA, start), nil
	case ':':
		return l.emitOne(token.COLON, start), nil
	case ';':
		return l.emitOne(token.SEMICOLON, start), nil
	case '"', '\'':
		return l.readString(l.ch, start)
	case '`':
		return l.readTemplate(start)
	}
	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) {
		return l.readIdent(start), nil
	}
	return l.illegal(start)
}

// emit returns a token of the given type without consuming input.
func (l *Lexer) emit(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start.Advance(len(literal)),
	}
}

// emitOne returns a single-character token and consumes it.
func (l *Lexer) emitOne(typ token.Type, start token.Position) token.Token {
	tok := l.emit(typ, string(l.ch), start)
	l.readChar()
	return tok
}

// emitTwo returns a two-character token and consumes both characters.
func (l *Lexer) emitTwo(typ token.Type, start token.Position) token.Token {
	literal := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return l.emit(typ, literal, start)
}

func (l *Lexer) illegal(start token.Position) (token.Token, error) {
	tok := l.emit(token.ILLEGAL, string(l.ch), start)
	l.readChar()
	return tok, fmt.Errorf("unexpected character %q", tok.Literal)
}

func (l *Lexer) readIdent(start token.Position) token.Token {
	pos := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	literal := l.input[pos:l.pos]
	return l.emit(token.LookupIdent(literal), literal, start)
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	pos := l.pos
	typ := token.Type(token.INT)
	if l.ch == '.' {
		typ = token.FLOAT
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if typ == token.INT && l.ch == '.' && isDigit(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	literal := l.input[pos:l.pos]
	if isIdentStart(l.ch) {
		return l.emit(token.ILLEGAL, literal, start),
			fmt.Errorf("invalid number literal %q", literal+string(l.ch))
	}
	return l.emit(typ, literal, start), nil
}

func (l *Lexer) readString(quote rune, start token.Position) (token.Token, error) {
	var sb strings.Builder
	l.readChar() // move past the opening quote
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return l.emit(token.ILLEGAL, sb.String(), start),
				fmt.Errorf("unterminated string literal")
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\':
				sb.WriteRune('\\')
			case '\'':
				sb.WriteRune('\'')
			case '"':
				sb.WriteRune('"')
			case '`':
				sb.WriteRune('`')
			case '0':
				sb.WriteRune(0)
			default:
				return l.emit(token.ILLEGAL, sb.String(), start),
					fmt.Errorf("invalid escape sequence \\%c in string literal", l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // move past the closing quote
	tok := l.emit(token.STRING, sb.String(), start)
	// Literal excludes the quotes; the end position must include them
	tok.EndPosition = l.position()
	return tok, nil
}

// readTemplate reads a backtick-delimited template literal. The content is
// raw: backslashes and newlines are kept as-is.
func (l *Lexer) readTemplate(start token.Position) (token.Token, error) {
	l.readChar() // move past the opening backtick
	pos := l.pos
	for l.ch != '`' {
		if l.ch == 0 {
			return l.emit(token.ILLEGAL, l.input[pos:l.pos], start),
				fmt.Errorf("unterminated template literal")
		}
		if l.ch == '\n' {
			l.line++
			l.lineStart = l.readPos
		}
		l.readChar()
	}
	literal := l.input[pos:l.pos]
	l.readChar() // move past the closing backtick
	tok := l.emit(token.TEMPLATE, literal, start)
	tok.EndPosition = l.position()
	return tok, nil
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// position returns the Position of the current character.
func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.filename,
	}
}

// readChar advances to the next character in the input.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += width
}

// peekChar returns the character following the current one without advancing.
func (l *Lexer) peekChar() rune {
	return l.peekCharAt(1)
}

// peekCharAt returns the character n positions ahead of the current one
// without advancing. peekCharAt(0) is the current character.
func (l *Lexer) peekCharAt(n int) rune {
	pos := l.pos
	for ; n > 0; n-- {
		if pos >= len(l.input) {
			return 0
		}
		_, width := utf8.DecodeRuneInString(l.input[pos:])
		pos += width
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
