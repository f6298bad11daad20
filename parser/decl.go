package parser

import (
	"github.com/stackvm-lang/cc/ast"
	"github.com/stackvm-lang/cc/cerr"
	"github.com/stackvm-lang/cc/ctype"
	"github.com/stackvm-lang/cc/lexer"
)

// readDeclSpec reads a primitive type name or a struct/union clause,
// then zero or more `*`s wrapping the type in Ptr.
func (p *Parser) readDeclSpec() *ctype.Ctype {
	tok := p.next()
	var ct *ctype.Ctype
	switch {
	case isIdent(tok, "struct"):
		ct = p.readStructDef()
	case isIdent(tok, "union"):
		ct = p.readUnionDef()
	default:
		ct = getCtype(tok)
	}
	if ct == nil {
		cerr.Fatalf(tok.Line, "type expected, but got %s", tok.String())
	}
	for {
		tok = p.next()
		if !tok.IsPunct(int('*')) {
			p.unget(tok)
			return ct
		}
		ct = ctype.NewPtr(ct)
	}
}

// readStructUnionTag reads an optional tag identifier following
// `struct`/`union`.
func (p *Parser) readStructUnionTag() (string, bool) {
	tok := p.next()
	if tok.Kind == lexer.Ident {
		return tok.Lit, true
	}
	p.unget(tok)
	return "", false
}

// readStructUnionFields reads `{ type ident ; ... }`.
func (p *Parser) readStructUnionFields() []ctype.FieldSpec {
	p.expectPunct(int('{'))
	var fields []ctype.FieldSpec
	for p.isTypeKeyword(p.peek()) {
		fieldType, name := p.readDeclSpecAndIdent()
		fields = append(fields, ctype.FieldSpec{Name: name, Type: fieldType})
		p.expectPunct(int(';'))
	}
	p.expectPunct(int('}'))
	return fields
}

// readDeclSpecAndIdent reads a decl-spec followed by array dimensions
// and the identifier naming a field/parameter/local — the shared shape
// struct fields, parameters, and plain declarations all start with.
func (p *Parser) readDeclSpecAndIdent() (*ctype.Ctype, string) {
	ct := p.readDeclSpec()
	name := p.next()
	if name.Kind != lexer.Ident {
		cerr.Fatalf(name.Line, "identifier expected, but got %s", name.String())
	}
	ct = p.readArrayDimensions(ct)
	return ct, name.Lit
}

// readUnionDef reads `union [tag] { fields }`; a tag already defined
// short-circuits to the cached ctype without reading or validating a
// body (so two bodies for the same tag silently keep the first).
func (p *Parser) readUnionDef() *ctype.Ctype {
	tag, hasTag := p.readStructUnionTag()
	if hasTag {
		if ct, ok := p.ctx.UnionDefs.GetLocal(tag); ok {
			return ct
		}
	}
	fields := p.readStructUnionFields()
	layout, size := ctype.LayoutUnion(fields)
	ct := ctype.NewStruct(layout, size, true)
	if hasTag {
		p.ctx.UnionDefs.Put(tag, ct)
	}
	return ct
}

// readStructDef reads `struct [tag] { fields }`; same tag-cache
// behavior as readUnionDef.
func (p *Parser) readStructDef() *ctype.Ctype {
	tag, hasTag := p.readStructUnionTag()
	if hasTag {
		if ct, ok := p.ctx.StructDefs.GetLocal(tag); ok {
			return ct
		}
	}
	fields := p.readStructUnionFields()
	layout, size := ctype.LayoutStruct(fields)
	ct := ctype.NewStruct(layout, size, false)
	if hasTag {
		p.ctx.StructDefs.Put(tag, ct)
	}
	return ct
}

// readArrayDimensions reads zero or more `[N]` suffixes. Only the
// outermost dimension may be empty (dim == -1, pending an
// initializer); an omitted inner dimension is a hard error.
func (p *Parser) readArrayDimensions(base *ctype.Ctype) *ctype.Ctype {
	if ct := p.readArrayDimensionsInt(base); ct != nil {
		return ct
	}
	return base
}

func (p *Parser) readArrayDimensionsInt(base *ctype.Ctype) *ctype.Ctype {
	tok := p.next()
	if !tok.IsPunct(int('[')) {
		p.unget(tok)
		return nil
	}
	dim := -1
	if !p.peek().IsPunct(int(']')) {
		size := p.ReadExpr()
		dim = int(p.EvalIntExpr(size))
	}
	p.expectPunct(int(']'))

	sub := p.readArrayDimensionsInt(base)
	if sub != nil {
		if sub.Len == -1 {
			cerr.Fatalf(tok.Line, "array size is not specified")
		}
		return ctype.NewArray(sub, dim)
	}
	return ctype.NewArray(base, dim)
}

// readDeclArrayInit reads the initializer for an array-typed
// declaration: a string literal directly (for `char s[] = "..."`), or
// a brace-enclosed list, each element checked against the element type.
func (p *Parser) readDeclArrayInit(arrayType *ctype.Ctype) ast.Expr {
	tok := p.next()
	if arrayType.Elem.Kind == ctype.KChar && tok.Kind == lexer.String {
		return p.newStringLiteral(tok.Lit)
	}
	if !tok.IsPunct(int('{')) {
		cerr.Fatalf(tok.Line, "expected an initializer list, but got %s", tok.String())
	}
	var items []ast.Expr
	for {
		t := p.next()
		if t.IsPunct(int('}')) {
			break
		}
		p.unget(t)
		item := p.ReadExpr()
		items = append(items, item)
		if _, err := ctype.ResultType("=", item.CType(), arrayType.Elem); err != nil {
			cerr.Fatalf(t.Line, "%s", err)
		}
		t = p.next()
		if !t.IsPunct(int(',')) {
			p.unget(t)
		}
	}
	return &ast.ArrayInit{Items: items}
}

// readDeclInitVal reads the `= initializer` half of a declaration,
// given that `=` has already been consumed.
func (p *Parser) readDeclInitVal(v ast.Lvalue) *ast.Decl {
	vt := v.CType()
	if vt.Kind == ctype.KArray {
		init := p.readDeclArrayInit(vt)
		var length int
		if s, ok := init.(*ast.String); ok {
			length = len(s.Value) + 1
		} else {
			length = len(init.(*ast.ArrayInit).Items)
		}
		if vt.Len == -1 {
			vt.Len = length
			vt.Size = length * vt.Elem.Size
		} else if vt.Len != length {
			cerr.Fatalf(0, "invalid array initializer: expected %d items but got %d", vt.Len, length)
		}
		p.expectPunct(int(';'))
		return &ast.Decl{Var: v, Init: init}
	}

	init := p.ReadExpr()
	p.expectPunct(int(';'))
	if gv, isGVar := v.(*ast.GVar); isGVar {
		val := p.EvalIntExpr(init)
		init = &ast.Literal{Ctype: ctype.IntType, Ival: val}
		p.ctx.ConstVals[gv.Name] = val
	}
	return &ast.Decl{Var: v, Init: init}
}

// readDeclInit reads the optional `= initializer` following a
// declared variable, or a bare `;` if none is present (only legal when
// the variable's array length is already known).
func (p *Parser) readDeclInit(v ast.Lvalue) *ast.Decl {
	tok := p.next()
	if tok.IsPunct(int('=')) {
		return p.readDeclInitVal(v)
	}
	if v.CType().Kind == ctype.KArray && v.CType().Len == -1 {
		cerr.Fatalf(tok.Line, "missing array initializer")
	}
	p.unget(tok)
	p.expectPunct(int(';'))
	return &ast.Decl{Var: v, Init: nil}
}

// readLocalDecl reads one local variable declaration, the form that
// appears inside a compound statement.
func (p *Parser) readLocalDecl() *ast.Decl {
	ct, name := p.readDeclSpecAndIdent()
	if ct == ctype.VoidType {
		cerr.Fatalf(0, "storage size of '%s' is not known", name)
	}
	v := p.newLVar(ct, name)
	return p.readDeclInit(v)
}

// newLVar constructs an LVar, binds it in the current scope, and
// appends it to the per-function locals collector if one is active.
func (p *Parser) newLVar(ct *ctype.Ctype, name string) *ast.LVar {
	v := &ast.LVar{Ctype: ct, Name: name}
	p.declare(name, v)
	if p.localVars != nil {
		p.localVars.PushTail(v)
	}
	return v
}
