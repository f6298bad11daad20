package parser

import (
	"github.com/stackvm-lang/cc/ast"
	"github.com/stackvm-lang/cc/lexer"
)

// readStmt dispatches on the first token: if/for/return/compound, or
// an expression statement.
func (p *Parser) readStmt() ast.Stmt {
	tok := p.next()
	switch {
	case isIdent(tok, "if"):
		return p.readIfStmt()
	case isIdent(tok, "for"):
		return p.readForStmt()
	case isIdent(tok, "return"):
		return p.readReturnStmt()
	case tok.IsPunct(int('{')):
		return p.readCompoundStmt()
	}
	p.unget(tok)
	e := p.ReadExpr()
	p.expectPunct(int(';'))
	return &ast.ExprStmt{X: e}
}

func (p *Parser) readIfStmt() ast.Stmt {
	p.expectPunct(int('('))
	cond := p.ReadExpr()
	p.expectPunct(int(')'))
	then := p.readStmt()

	tok := p.next()
	if tok.Kind != lexer.Ident || tok.Lit != "else" {
		p.unget(tok)
		return &ast.If{Cond: cond, Then: then}
	}
	els := p.readStmt()
	return &ast.If{Cond: cond, Then: then, Else: els}
}

// readDeclOrStmt reads one declaration (if the next token is a type
// keyword) or one statement; nil at end of stream.
func (p *Parser) readDeclOrStmt() ast.Node {
	tok := p.peek()
	if tok.Kind == lexer.None {
		return nil
	}
	if p.isTypeKeyword(tok) {
		return p.readLocalDecl()
	}
	return p.readStmt()
}

func (p *Parser) readOptDeclOrStmt() ast.Node {
	tok := p.next()
	if tok.IsPunct(int(';')) {
		return nil
	}
	p.unget(tok)
	return p.readDeclOrStmt()
}

func (p *Parser) readOptExpr() ast.Expr {
	tok := p.next()
	if tok.IsPunct(int(';')) {
		return nil
	}
	p.unget(tok)
	e := p.ReadExpr()
	p.expectPunct(int(';'))
	return e
}

// readForStmt opens a new scope for the header; the body sees that
// scope as its parent.
func (p *Parser) readForStmt() ast.Stmt {
	p.expectPunct(int('('))
	prev := p.pushScope()
	init := p.readOptDeclOrStmt()
	cond := p.readOptExpr()
	var step ast.Expr
	if !p.peek().IsPunct(int(')')) {
		step = p.ReadExpr()
	}
	p.expectPunct(int(')'))
	body := p.readStmt()
	p.popScope(prev)
	return &ast.For{Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) readReturnStmt() ast.Stmt {
	val := p.ReadExpr()
	p.expectPunct(int(';'))
	return &ast.Return{Value: val}
}

// readCompoundStmt opens a new scope and alternates between
// declarations and statements until `}`.
func (p *Parser) readCompoundStmt() *ast.Compound {
	prev := p.pushScope()
	var stmts []ast.Stmt
	for {
		n := p.readDeclOrStmt()
		if n == nil {
			break
		}
		stmts = append(stmts, n.(ast.Stmt))
		tok := p.next()
		if tok.IsPunct(int('}')) {
			break
		}
		p.unget(tok)
	}
	p.popScope(prev)
	return &ast.Compound{Stmts: stmts}
}
