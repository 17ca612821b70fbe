package lexer

import (
	"testing"

	"github.com/deepnoodle-ai/chainexpr/internal/token"
	"github.com/stretchr/testify/require"
)

// tokenize reads all tokens until EOF, failing the test on a lexer error.
func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func types(tokens []token.Token) []token.Type {
	result := make([]token.Type, 0, len(tokens))
	for _, tok := range tokens {
		result = append(result, tok.Type)
	}
	return result
}

func TestNextToken(t *testing.T) {
	input := `x = 5
y = x + 2.5
ok = x >= 3 && y != 0`
	expected := []struct {
		typ     token.Type
		literal string
	}{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "y"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.FLOAT, "2.5"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "ok"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.GT_EQUALS, ">="},
		{token.INT, "3"},
		{token.AND, "&&"},
		{token.IDENT, "y"},
		{token.NOT_EQ, "!="},
		{token.INT, "0"},
	}
	tokens := tokenize(t, input)
	require.Len(t, tokens, len(expected))
	for i, want := range expected {
		require.Equal(t, want.typ, tokens[i].Type, "token %d", i)
		require.Equal(t, want.literal, tokens[i].Literal, "token %d", i)
	}
}

func TestOptionalChainingToken(t *testing.T) {
	tokens := tokenize(t, "a?.b?.[0]?.()")
	require.Equal(t, []token.Type{
		token.IDENT,
		token.QUESTION_DOT,
		token.IDENT,
		token.QUESTION_DOT,
		token.LBRACKET,
		token.INT,
		token.RBRACKET,
		token.QUESTION_DOT,
		token.LPAREN,
		token.RPAREN,
	}, types(tokens))
}

// A "?." followed by a decimal digit is not optional chaining: the "?" is a
// lone conditional operator and ".3" is a float literal.
func TestQuestionDotDigitLookahead(t *testing.T) {
	tokens := tokenize(t, "foo?.3:0")
	require.Equal(t, []token.Type{
		token.IDENT,
		token.QUESTION,
		token.FLOAT,
		token.COLON,
		token.INT,
	}, types(tokens))
	require.Equal(t, ".3", tokens[2].Literal)

	// A non-digit after "?." is optional chaining even mid-ternary
	tokens = tokenize(t, "foo?.x:0")
	require.Equal(t, []token.Type{
		token.IDENT,
		token.QUESTION_DOT,
		token.IDENT,
		token.COLON,
		token.INT,
	}, types(tokens))
}

func TestNullishToken(t *testing.T) {
	tokens := tokenize(t, "a ?? b")
	require.Equal(t, []token.Type{
		token.IDENT,
		token.NULLISH,
		token.IDENT,
	}, types(tokens))
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.Type
		literal string
	}{
		{"0", token.INT, "0"},
		{"42", token.INT, "42"},
		{"3.14", token.FLOAT, "3.14"},
		{".5", token.FLOAT, ".5"},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.input)
		require.Len(t, tokens, 1, "input: %s", tt.input)
		require.Equal(t, tt.typ, tokens[0].Type, "input: %s", tt.input)
		require.Equal(t, tt.literal, tokens[0].Literal, "input: %s", tt.input)
	}
}

func TestKeywords(t *testing.T) {
	tokens := tokenize(t, "delete new nil true false")
	require.Equal(t, []token.Type{
		token.DELETE,
		token.NEW,
		token.NIL,
		token.TRUE,
		token.FALSE,
	}, types(tokens))
}

func TestStrings(t *testing.T) {
	tokens := tokenize(t, `"hello" 'world' "a\nb"`)
	require.Len(t, tokens, 3)
	require.Equal(t, "hello", tokens[0].Literal)
	require.Equal(t, "world", tokens[1].Literal)
	require.Equal(t, "a\nb", tokens[2].Literal)
}

func TestTemplateLiteral(t *testing.T) {
	tokens := tokenize(t, "`raw \\n text`")
	require.Len(t, tokens, 1)
	require.Equal(t, token.TEMPLATE, tokens[0].Type)
	require.Equal(t, `raw \n text`, tokens[0].Literal)
}

func TestComments(t *testing.T) {
	tokens := tokenize(t, "1 # one\n2 // two\n3")
	require.Equal(t, []token.Type{
		token.INT,
		token.NEWLINE,
		token.INT,
		token.NEWLINE,
		token.INT,
	}, types(tokens))
}

func TestUnicodeIdentifiers(t *testing.T) {
	tokens := tokenize(t, "café")
	require.Len(t, tokens, 1)
	require.Equal(t, token.IDENT, tokens[0].Type)
	require.Equal(t, "café", tokens[0].Literal)
}

func TestIllegalCharacter(t *testing.T) {
	l := New("a @ b")
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.IDENT, tok.Type)
	_, err = l.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected character")
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	_, err := l.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated string")
}

func TestPositions(t *testing.T) {
	l := New("a\n bc")
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, 1, tok.StartPosition.LineNumber())
	require.Equal(t, 1, tok.StartPosition.ColumnNumber())

	tok, err = l.Next() // newline
	require.NoError(t, err)
	require.Equal(t, token.NEWLINE, tok.Type)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, "bc", tok.Literal)
	require.Equal(t, 2, tok.StartPosition.LineNumber())
	require.Equal(t, 2, tok.StartPosition.ColumnNumber())
}

func TestGetLineText(t *testing.T) {
	l := New("first\nsecond line")
	var tok token.Token
	var err error
	for i := 0; i < 3; i++ { // first, newline, second
		tok, err = l.Next()
		require.NoError(t, err)
	}
	require.Equal(t, "second", tok.Literal)
	require.Equal(t, "second line", l.GetLineText(tok))
}
