package parser

import (
	"strconv"
	"strings"

	"github.com/stackvm-lang/cc/ast"
	"github.com/stackvm-lang/cc/cerr"
	"github.com/stackvm-lang/cc/ctype"
	"github.com/stackvm-lang/cc/lexer"
)

// MaxOpPriority bounds the top-level expression parse: ReadExpr calls
// readExprInt(MaxOpPriority) so every operator (priority 1..14) can
// apply.
const MaxOpPriority = 16

// MaxArgs bounds the number of arguments a call may pass.
const MaxArgs = 6

// priority returns the Pratt-loop priority of a punctuation code, and
// whether the code denotes a binary/postfix operator at all. Smaller
// numbers bind tighter; gaps (9) are deliberate, matching the
// reference table.
func priority(code int) (int, bool) {
	switch code {
	case int('['), int('.'), lexer.ARROW:
		return 1, true
	case lexer.INC, lexer.DEC:
		return 2, true
	case int('*'), int('/'):
		return 3, true
	case int('+'), int('-'):
		return 4, true
	case lexer.SHL, lexer.SHR:
		return 5, true
	case int('<'), int('>'):
		return 6, true
	case lexer.EQ:
		return 7, true
	case int('&'):
		return 8, true
	case int('|'):
		return 10, true
	case lexer.ANDAND:
		return 11, true
	case lexer.OROR:
		return 12, true
	case int('?'):
		return 13, true
	case int('='):
		return 14, true
	default:
		return -1, false
	}
}

func isRightAssoc(code int) bool { return code == int('=') }

// ReadExpr parses a full expression, equivalent to readExprInt(MaxOpPriority).
func (p *Parser) ReadExpr() ast.Expr {
	return p.readExprInt(MaxOpPriority)
}

// readExprInt is the Pratt loop: parse a unary expression, then while
// the next token is a punctuator with priority strictly less than
// bound, dispatch on the operator.
func (p *Parser) readExprInt(bound int) ast.Expr {
	left := p.readUnaryExpr()
	if left == nil {
		return nil
	}

	for {
		tok := p.next()
		if tok.Kind != lexer.Punct {
			p.unget(tok)
			return left
		}
		prio, ok := priority(tok.Code)
		if !ok || bound <= prio {
			p.unget(tok)
			return left
		}

		switch tok.Code {
		case int('?'):
			left = p.readCondExpr(left)
			continue
		case int('.'):
			left = p.readStructField(left)
			continue
		case lexer.ARROW:
			if left.CType().Kind != ctype.KPtr {
				cerr.Fatalf(tok.Line, "pointer type expected")
			}
			left = &ast.Unop{Kind: ast.Deref, Ctype: left.CType().Elem, Operand: left}
			left = p.readStructField(left)
			continue
		case int('['):
			left = p.readSubscriptExpr(left)
			continue
		case lexer.INC, lexer.DEC:
			// this is BUG!! ++ should be in readUnaryExpr(), I think.
			ensureLvalue(tok.Line, left)
			kind := ast.PostIncr
			if tok.Code == lexer.DEC {
				kind = ast.PostDecr
			}
			left = &ast.Unop{Kind: kind, Ctype: left.CType(), Operand: left}
			continue
		}

		if tok.Code == int('=') {
			ensureLvalue(tok.Line, left)
		}
		rightBound := prio
		if isRightAssoc(tok.Code) {
			rightBound++
		}
		right := p.readExprInt(rightBound)
		if right == nil {
			cerr.Fatalf(tok.Line, "second operand missing")
		}
		if tok.Code == lexer.SHL || tok.Code == lexer.SHR {
			if !isCharOrInt(left.CType()) || !isCharOrInt(right.CType()) {
				cerr.Fatalf(tok.Line, "invalid operand to shift")
			}
		}
		left = newBinop(tok.Line, lexer.PunctName(tok.Code), left, right)
	}
}

func isCharOrInt(c *ctype.Ctype) bool {
	return c.Kind == ctype.KChar || c.Kind == ctype.KInt
}

func (p *Parser) readCondExpr(cond ast.Expr) ast.Expr {
	then := p.ReadExpr()
	p.expectPunct(int(':'))
	els := p.ReadExpr()
	return &ast.Ternary{Ctype: then.CType(), Cond: cond, Then: then, Else: els}
}

func (p *Parser) readStructField(obj ast.Expr) ast.Expr {
	ct := obj.CType()
	if ct.Kind != ctype.KStruct {
		cerr.Fatalf(0, "struct expected")
	}
	tok := p.next()
	if tok.Kind != lexer.Ident {
		cerr.Fatalf(tok.Line, "field name expected, but got %s", tok.String())
	}
	field, ok := ct.Fields.GetLocal(tok.Lit)
	if !ok {
		cerr.Fatalf(tok.Line, "unknown field: %s", tok.Lit)
	}
	return &ast.StructRef{Ctype: field, Object: obj, Field: tok.Lit}
}

func (p *Parser) readSubscriptExpr(arr ast.Expr) ast.Expr {
	sub := p.ReadExpr()
	p.expectPunct(int(']'))
	sum := newBinop(0, "+", arr, sub)
	return &ast.Unop{Kind: ast.Deref, Ctype: sum.CType().Elem, Operand: sum}
}

func (p *Parser) readUnaryExpr() ast.Expr {
	tok := p.next()
	if tok.Kind != lexer.Punct {
		p.unget(tok)
		return p.readPrim()
	}

	switch tok.Code {
	case int('('):
		r := p.ReadExpr()
		p.expectPunct(int(')'))
		return r
	case int('&'):
		operand := p.readUnaryExpr()
		ensureLvalue(tok.Line, operand)
		return &ast.Unop{Kind: ast.AddrOf, Ctype: ctype.NewPtr(operand.CType()), Operand: operand}
	case int('!'):
		operand := p.readUnaryExpr()
		return &ast.Unop{Kind: ast.Not, Ctype: ctype.IntType, Operand: operand}
	case int('*'):
		operand := p.readUnaryExpr()
		decayed := ctype.ConvertArray(operand.CType())
		if decayed.Kind != ctype.KPtr {
			cerr.Fatalf(tok.Line, "pointer type expected")
		}
		if decayed.Elem == ctype.VoidType {
			cerr.Fatalf(tok.Line, "pointer to void can not be dereferenced")
		}
		return &ast.Unop{Kind: ast.Deref, Ctype: operand.CType().Elem, Operand: operand}
	}

	p.unget(tok)
	return p.readPrim()
}

func (p *Parser) readPrim() ast.Expr {
	tok := p.next()
	switch tok.Kind {
	case lexer.None:
		return nil
	case lexer.Ident:
		return p.readIdentOrFunc(tok)
	case lexer.Number:
		return p.readNumberLiteral(tok)
	case lexer.Char:
		return &ast.Literal{Ctype: ctype.CharType, Ival: int64(tok.Ch)}
	case lexer.String:
		return p.newStringLiteral(tok.Lit)
	case lexer.Punct:
		p.unget(tok)
		return nil
	default:
		cerr.Fatalf(tok.Line, "unexpected token: %s", tok.String())
		panic("unreachable")
	}
}

// newStringLiteral builds a String node and registers it in the
// shared Strings collection exactly once per construction (invariant
// 4), including for the array-initializer call site.
func (p *Parser) newStringLiteral(value string) *ast.String {
	s := &ast.String{
		Ctype: ctype.NewArray(ctype.CharType, len(value)+1),
		Value: value,
		Label: p.ctx.Labeler.Next(),
	}
	p.ctx.Strings = append(p.ctx.Strings, s)
	return s
}

func (p *Parser) readIdentOrFunc(tok lexer.Token) ast.Expr {
	next := p.next()
	if next.IsPunct(int('(')) {
		return p.readFuncArgs(tok.Lit)
	}
	p.unget(next)
	v, ok := p.lookup(tok.Lit)
	if !ok {
		cerr.Fatalf(tok.Line, "undefined variable: %s", tok.Lit)
	}
	return v
}

func (p *Parser) readFuncArgs(name string) ast.Expr {
	var args []ast.Expr
	for {
		tok := p.next()
		if tok.IsPunct(int(')')) {
			break
		}
		p.unget(tok)
		args = append(args, p.ReadExpr())
		tok = p.next()
		if tok.IsPunct(int(')')) {
			break
		}
		if !tok.IsPunct(int(',')) {
			cerr.Fatalf(tok.Line, "unexpected token: %s", tok.String())
		}
	}
	if len(args) > MaxArgs {
		cerr.Fatalf(0, "too many arguments: %s", name)
	}
	return &ast.Funcall{Name: name, Args: args}
}

func (p *Parser) readNumberLiteral(tok lexer.Token) ast.Expr {
	lit := tok.Lit
	if isLongToken(lit) {
		v, err := strconv.ParseInt(strings.TrimRight(lit, "Ll"), 10, 64)
		if err != nil {
			cerr.Fatalf(tok.Line, "malformed number: %s", lit)
		}
		return &ast.Literal{Ctype: ctype.LongType, Ival: v}
	}
	if isIntToken(lit) {
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			cerr.Fatalf(tok.Line, "malformed number: %s", lit)
		}
		if v < 0 || v > int64(^uint32(0)) {
			return &ast.Literal{Ctype: ctype.LongType, Ival: v}
		}
		return &ast.Literal{Ctype: ctype.IntType, Ival: v}
	}
	if isFloatToken(lit) {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			cerr.Fatalf(tok.Line, "malformed number: %s", lit)
		}
		ct := ctype.FloatType
		if ctype.AllowDouble {
			ct = ctype.DoubleType
		}
		fl := &ast.FloatLiteral{Ctype: ct, Fval: f, Label: p.ctx.Labeler.Next()}
		p.ctx.Flonums = append(p.ctx.Flonums, fl)
		return fl
	}
	cerr.Fatalf(tok.Line, "malformed number: %s", lit)
	panic("unreachable")
}

// isLongToken, isIntToken, isFloatToken classify a number's surface
// text; the lexer never validates this shape, so malformed numbers
// reach here and become an error at classification time, not lex time.
func isLongToken(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return (s[i] == 'L' || s[i] == 'l') && i == len(s)-1
		}
	}
	return false
}

func isIntToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isFloatToken(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i >= len(s) || s[i] != '.' {
		return false
	}
	i++
	if i >= len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// EvalIntExpr evaluates a compile-time integer expression over +, -,
// *, /, <<, >>, integer literals, and references to globals whose own
// initializer already folded to a constant.
func (p *Parser) EvalIntExpr(e ast.Expr) int64 {
	switch n := e.(type) {
	case *ast.Literal:
		if ctype.IsInt(n.Ctype) {
			return n.Ival
		}
	case *ast.GVar:
		if v, ok := p.ctx.ConstVals[n.Name]; ok {
			return v
		}
	case *ast.Binop:
		l, r := p.EvalIntExpr(n.Left), p.EvalIntExpr(n.Right)
		switch n.Op {
		case "+":
			return l + r
		case "-":
			return l - r
		case "*":
			return l * r
		case "/":
			return l / r
		case "<<":
			return l << uint(r)
		case ">>":
			return l >> uint(r)
		}
	}
	cerr.Fatalf(0, "integer expression expected")
	panic("unreachable")
}
