package parser

import (
	"github.com/stackvm-lang/cc/ast"
	"github.com/stackvm-lang/cc/cerr"
	"github.com/stackvm-lang/cc/container"
	"github.com/stackvm-lang/cc/ctype"
	"github.com/stackvm-lang/cc/lexer"
)

// readParams reads a parenthesized parameter list; array-typed
// parameters decay to pointer-typed locals at entry.
func (p *Parser) readParams() []*ast.Param {
	var params []*ast.Param
	tok := p.next()
	if tok.IsPunct(int(')')) {
		return params
	}
	p.unget(tok)
	for {
		ct := p.readDeclSpec()
		name := p.next()
		if name.Kind != lexer.Ident {
			cerr.Fatalf(name.Line, "identifier expected, but got %s", name.String())
		}
		ct = p.readArrayDimensions(ct)
		if ct.Kind == ctype.KArray {
			ct = ctype.NewPtr(ct.Elem)
		}
		p.newLVar(ct, name.Lit)
		params = append(params, &ast.Param{Ctype: ct, Name: name.Lit})

		tok = p.next()
		if tok.IsPunct(int(')')) {
			return params
		}
		if !tok.IsPunct(int(',')) {
			cerr.Fatalf(tok.Line, "comma expected, but got %s", tok.String())
		}
	}
}

// readFuncDef reads `( params ) { body }` given the return type and
// name already consumed. It opens two nested scopes: one for
// parameters (parent = global) and one for the body, and installs a
// fresh locals collector for the duration.
func (p *Parser) readFuncDef(rettype *ctype.Ctype, name string) *ast.Func {
	p.expectPunct(int('('))

	savedScope, savedLocals := p.scope, p.localVars
	p.scope = nil // parameter scope's parent is Global
	p.pushScope()
	params := p.readParams()

	p.expectPunct(int('{'))
	p.pushScope()
	p.localVars = container.NewList[*ast.LVar]()

	body := p.readCompoundStmt()

	locals := p.localVars.Slice()
	p.scope, p.localVars = savedScope, savedLocals

	return &ast.Func{Ctype: rettype, Name: name, Params: params, Locals: locals, Body: body}
}

// readDeclOrFuncDef reads one top-level entity: a function definition
// or a global (with or without initializer). nil at end of stream.
func (p *Parser) readDeclOrFuncDef() ast.TopLevel {
	tok := p.peek()
	if tok.Kind == lexer.None {
		return nil
	}

	ct := p.readDeclSpec()
	name := p.next()
	if name.Kind != lexer.Ident {
		cerr.Fatalf(name.Line, "identifier expected, but got %s", name.String())
	}

	next := p.peek()
	if next.IsPunct(int('(')) {
		return p.readFuncDef(ct, name.Lit)
	}

	if ct == ctype.VoidType {
		cerr.Fatalf(name.Line, "storage size of '%s' is not known", name.Lit)
	}
	ct = p.readArrayDimensions(ct)

	if next.IsPunct(int('=')) || ct.Kind == ctype.KArray {
		v := &ast.GVar{Ctype: ct, Name: name.Lit, Label: name.Lit}
		p.declare(name.Lit, v)
		return p.readDeclInit(v)
	}
	if next.IsPunct(int(';')) {
		p.next()
		v := &ast.GVar{Ctype: ct, Name: name.Lit, Label: name.Lit}
		p.declare(name.Lit, v)
		return &ast.Decl{Var: v, Init: nil}
	}
	cerr.Fatalf(next.Line, "don't know how to handle %s", next.String())
	panic("unreachable")
}
