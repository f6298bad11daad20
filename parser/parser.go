package parser

import (
	"github.com/stackvm-lang/cc/ast"
	"github.com/stackvm-lang/cc/cerr"
	"github.com/stackvm-lang/cc/ctype"
	"github.com/stackvm-lang/cc/lexer"
)

// ParseTopLevels is the parser's single public entry point: it reads
// an entire translation unit and returns the top-level declarations in
// source order. The first lexical, syntactic, or semantic error aborts
// the parse; Recover converts the internal bailout panic into the
// returned error here, so every other parser method may simply call
// cerr.Fatalf and unwind.
func (p *Parser) ParseTopLevels() (tops []ast.TopLevel, err error) {
	defer cerr.Recover(&err)

	var out []ast.TopLevel
	for {
		tl := p.readDeclOrFuncDef()
		if tl == nil {
			break
		}
		out = append(out, tl)
	}
	return out, nil
}

func (p *Parser) next() lexer.Token  { return p.lex.Next() }
func (p *Parser) peek() lexer.Token  { return p.lex.Peek() }
func (p *Parser) unget(t lexer.Token) { p.lex.Unget(t) }

// expectPunct consumes the next token and fatals if it isn't the given
// punctuation code.
func (p *Parser) expectPunct(code int) {
	tok := p.next()
	if !tok.IsPunct(code) {
		cerr.Fatalf(tok.Line, "%q expected, but got %s", lexer.PunctName(code), tok.String())
	}
}

// isIdent reports whether tok is the identifier s.
func isIdent(tok lexer.Token, s string) bool {
	return tok.Kind == lexer.Ident && tok.Lit == s
}

// getCtype maps a type-keyword identifier token to its ctype, or nil
// if tok doesn't name a primitive type.
func getCtype(tok lexer.Token) *ctype.Ctype {
	if tok.Kind != lexer.Ident {
		return nil
	}
	switch tok.Lit {
	case "void":
		return ctype.VoidType
	case "int":
		return ctype.IntType
	case "long":
		return ctype.LongType
	case "char":
		return ctype.CharType
	case "float":
		return ctype.FloatType
	case "double":
		if ctype.AllowDouble {
			return ctype.DoubleType
		}
		return nil
	default:
		return nil
	}
}

// isTypeKeyword reports whether tok begins a decl-spec: a primitive
// type name, or `struct`/`union`.
func (p *Parser) isTypeKeyword(tok lexer.Token) bool {
	return getCtype(tok) != nil || isIdent(tok, "struct") || isIdent(tok, "union")
}

// ensureLvalue fatals unless e is one of the four lvalue-producing
// node kinds: LVar, GVar, a Deref Unop, or StructRef.
func ensureLvalue(line int, e ast.Expr) {
	switch v := e.(type) {
	case *ast.LVar, *ast.GVar, *ast.StructRef:
		return
	case *ast.Unop:
		if v.Kind == ast.Deref {
			return
		}
	}
	cerr.Fatalf(line, "lvalue expected")
}

// newBinop builds a Binop (or, for assignment, reuses the same ctype
// machinery): it computes the result ctype via the usual arithmetic
// conversions and, for every operator but `=`, swaps operands so a
// pointer operand is always on the left.
func newBinop(line int, op string, left, right ast.Expr) ast.Expr {
	rt, err := ctype.ResultType(op, left.CType(), right.CType())
	if err != nil {
		cerr.Fatalf(line, "%s", err)
	}
	if op != "=" {
		dl := ctype.ConvertArray(left.CType())
		dr := ctype.ConvertArray(right.CType())
		if dl.Kind != ctype.KPtr && dr.Kind == ctype.KPtr {
			left, right = right, left
		}
	}
	return &ast.Binop{Ctype: rt, Op: op, Left: left, Right: right}
}
