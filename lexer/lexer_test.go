package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicTokens(t *testing.T) {
	input := `int x = 1 + 2;`

	tests := []struct {
		kind Kind
		code int
		lit  string
	}{
		{Ident, 0, "int"},
		{Ident, 0, "x"},
		{Punct, int('='), ""},
		{Number, 0, "1"},
		{Punct, int('+'), ""},
		{Number, 0, "2"},
		{Punct, int(';'), ""},
		{None, 0, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		require.Equalf(t, tt.kind, tok.Kind, "token %d", i)
		switch tt.kind {
		case Ident, Number:
			require.Equalf(t, tt.lit, tok.Lit, "token %d", i)
		case Punct:
			require.Equalf(t, tt.code, tok.Code, "token %d", i)
		}
	}
}

func TestMultiByteOperators(t *testing.T) {
	input := `a == b && c || d -> e << f >> g`
	l := New(input)

	var codes []int
	for {
		tok := l.Next()
		if tok.Kind == None {
			break
		}
		if tok.Kind == Punct {
			codes = append(codes, tok.Code)
		}
	}
	require.Equal(t, []int{EQ, ANDAND, OROR, ARROW, SHL, SHR}, codes)
}

func TestCommentsAreWhitespace(t *testing.T) {
	input := "int a; // trailing\n/* block\ncomment */ int b;"
	l := New(input)

	var idents []string
	for {
		tok := l.Next()
		if tok.Kind == None {
			break
		}
		if tok.Kind == Ident {
			idents = append(idents, tok.Lit)
		}
	}
	require.Equal(t, []string{"int", "a", "int", "b"}, idents)
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\"b\nc"`)
	tok := l.Next()
	require.Equal(t, String, tok.Kind)
	require.Equal(t, "a\"b\nc", tok.Lit)
}

func TestCharLiteralDoesNotTranslateEscapes(t *testing.T) {
	// '\n' lexes to the byte 'n', not a newline -- preserved deliberately.
	l := New(`'\n'`)
	tok := l.Next()
	require.Equal(t, Char, tok.Kind)
	require.Equal(t, byte('n'), tok.Ch)
}

func TestNumberAcceptsLettersAndDot(t *testing.T) {
	// Classification is deferred to the parser; the lexer just scans
	// the maximal alnum/. run.
	l := New(`123.45e10L`)
	tok := l.Next()
	require.Equal(t, Number, tok.Kind)
	require.Equal(t, "123.45e10L", tok.Lit)
}

func TestPushbackIdempotence(t *testing.T) {
	l := New(`a b`)

	p1 := l.Peek()
	p2 := l.Peek()
	require.Equal(t, p1, p2)

	tok := l.Next()
	l.Unget(tok)
	again := l.Next()
	require.Equal(t, tok, again)
}

func TestSecondPushbackIsFatal(t *testing.T) {
	l := New(`a b`)
	tok := l.Next()

	require.Panics(t, func() {
		l.Unget(tok)
		l.Unget(tok)
	})
}

func TestUngetNoneIsNoop(t *testing.T) {
	l := New(``)
	require.NotPanics(t, func() {
		l.Unget(Token{Kind: None})
	})
}
