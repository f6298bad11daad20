// Package lexer tokenizes the preprocessed C source: a byte stream
// with one-byte pushback feeds a token stream with one-token pushback.
// Classification of ambiguous number shapes is deliberately deferred
// to the parser (see the design notes on preserving that behavior).
package lexer

import "github.com/stackvm-lang/cc/cerr"

// Lexer produces tokens from source text, skipping whitespace and
// comments and owning one slot of token pushback.
type Lexer struct {
	src *source

	hasUngot bool
	ungot    Token
}

// New returns a Lexer reading from input.
func New(input string) *Lexer {
	return &Lexer{src: newSource(input)}
}

// Unget pushes tok back into the one-slot buffer; pushing back a
// second token, or pushing back a None token, is handled per spec: a
// None pushback is a no-op, anything else with a slot already full is
// fatal.
func (l *Lexer) Unget(tok Token) {
	if tok.Kind == None {
		return
	}
	if l.hasUngot {
		cerr.Fatalf(tok.Line, "lexer: second consecutive token pushback")
	}
	l.hasUngot = true
	l.ungot = tok
}

// Peek reads the next token and immediately pushes it back.
func (l *Lexer) Peek() Token {
	tok := l.Next()
	l.Unget(tok)
	return tok
}

// Next returns the next token, consuming pushback first if present.
func (l *Lexer) Next() Token {
	if l.hasUngot {
		l.hasUngot = false
		return l.ungot
	}
	return l.scan()
}

func (l *Lexer) scan() Token {
	l.skipSpaceAndComments()

	line := l.src.line
	ch := l.src.getc()

	switch {
	case ch == 0:
		return Token{Kind: None, Line: line}

	case isDigit(ch):
		return l.readNumber(ch, line)

	case isIdentStart(ch):
		return l.readIdent(ch, line)

	case ch == '"':
		return l.readString(line)

	case ch == '\'':
		return l.readChar(line)

	default:
		return l.readPunct(ch, line)
	}
}

func (l *Lexer) skipSpaceAndComments() {
	for {
		ch := l.src.getc()
		// The byte after a '/' is read straight from the input rather than
		// through the pushback slot, so a lone '/' can still be pushed back.
		var after byte
		if ch == '/' && l.src.pos < len(l.src.input) {
			after = l.src.input[l.src.pos]
		}
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			continue
		case ch == '/' && after == '/':
			l.src.getc()
			l.skipToEOL()
			continue
		case ch == '/' && after == '*':
			l.src.getc()
			l.skipBlockComment()
			continue
		default:
			if ch != 0 {
				l.src.ungetc(ch)
			}
			return
		}
	}
}

func (l *Lexer) peekByte() byte {
	ch := l.src.getc()
	if ch != 0 {
		l.src.ungetc(ch)
	}
	return ch
}

func (l *Lexer) skipToEOL() {
	for {
		ch := l.src.getc()
		if ch == 0 || ch == '\n' {
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	for {
		ch := l.src.getc()
		if ch == 0 {
			cerr.Fatalf(l.src.line, "unterminated block comment")
		}
		if ch == '*' && l.peekByte() == '/' {
			l.src.getc()
			return
		}
	}
}

func (l *Lexer) readNumber(first byte, line int) Token {
	buf := []byte{first}
	for {
		ch := l.src.getc()
		if isAlnum(ch) || ch == '.' {
			buf = append(buf, ch)
			continue
		}
		if ch != 0 {
			l.src.ungetc(ch)
		}
		break
	}
	return Token{Kind: Number, Lit: string(buf), Line: line}
}

func (l *Lexer) readIdent(first byte, line int) Token {
	buf := []byte{first}
	for {
		ch := l.src.getc()
		if isAlnum(ch) {
			buf = append(buf, ch)
			continue
		}
		if ch != 0 {
			l.src.ungetc(ch)
		}
		break
	}
	return Token{Kind: Ident, Lit: string(buf), Line: line}
}

// readString consumes until an unescaped `"`. Recognized escapes are
// `\"` (literal quote) and `\n` (newline); any other `\x` is a lexer
// error.
func (l *Lexer) readString(line int) Token {
	var buf []byte
	for {
		ch := l.src.getc()
		if ch == 0 {
			cerr.Fatalf(line, "unterminated string literal")
		}
		if ch == '"' {
			break
		}
		if ch == '\\' {
			esc := l.src.getc()
			switch esc {
			case '"':
				buf = append(buf, '"')
			case 'n':
				buf = append(buf, '\n')
			default:
				cerr.Fatalf(l.src.line, "unknown escape sequence \\%c", esc)
			}
			continue
		}
		buf = append(buf, ch)
	}
	return Token{Kind: String, Lit: string(buf), Line: line}
}

// readChar reads one byte, optionally backslash-prefixed. There is no
// escape translation here: a leading backslash is simply consumed and
// the following byte is taken verbatim, so `'\n'` lexes to the byte
// 'n', not a newline. Preserved deliberately (see design notes).
func (l *Lexer) readChar(line int) Token {
	ch := l.src.getc()
	if ch == 0 {
		cerr.Fatalf(line, "unterminated char literal")
	}
	if ch == '\\' {
		ch = l.src.getc()
		if ch == 0 {
			cerr.Fatalf(line, "unterminated char literal")
		}
	}
	closing := l.src.getc()
	if closing != '\'' {
		cerr.Fatalf(line, "unterminated char literal")
	}
	return Token{Kind: Char, Ch: ch, Line: line}
}

// readPunct handles both single-byte punctuators and the two-byte
// operators formed by consuming an expected second byte.
func (l *Lexer) readPunct(ch byte, line int) Token {
	two := func(second byte, code int) (Token, bool) {
		if l.peekByte() == second {
			l.src.getc()
			return Token{Kind: Punct, Code: code, Line: line}, true
		}
		return Token{}, false
	}

	switch ch {
	case '+':
		if t, ok := two('+', INC); ok {
			return t
		}
		return Token{Kind: Punct, Code: int('+'), Line: line}
	case '-':
		if t, ok := two('-', DEC); ok {
			return t
		}
		if t, ok := two('>', ARROW); ok {
			return t
		}
		return Token{Kind: Punct, Code: int('-'), Line: line}
	case '=':
		if t, ok := two('=', EQ); ok {
			return t
		}
		return Token{Kind: Punct, Code: int('='), Line: line}
	case '&':
		if t, ok := two('&', ANDAND); ok {
			return t
		}
		return Token{Kind: Punct, Code: int('&'), Line: line}
	case '|':
		if t, ok := two('|', OROR); ok {
			return t
		}
		return Token{Kind: Punct, Code: int('|'), Line: line}
	case '<':
		if t, ok := two('<', SHL); ok {
			return t
		}
		return Token{Kind: Punct, Code: int('<'), Line: line}
	case '>':
		if t, ok := two('>', SHR); ok {
			return t
		}
		return Token{Kind: Punct, Code: int('>'), Line: line}
	case '*', '(', ')', ',', ';', '.', '[', ']', '{', '}', '!', '?', ':', '/':
		return Token{Kind: Punct, Code: int(ch), Line: line}
	default:
		cerr.Fatalf(line, "unexpected byte %q", ch)
		panic("unreachable")
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlnum(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
