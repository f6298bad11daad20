// Package parser implements the recursive-descent, Pratt-expression-core
// parser that drives the type system to build a fully-typed AST for an
// entire translation unit.
package parser

import (
	"github.com/stackvm-lang/cc/ast"
	"github.com/stackvm-lang/cc/container"
	"github.com/stackvm-lang/cc/ctype"
	"github.com/stackvm-lang/cc/lexer"
)

// Context gathers every piece of process-wide mutable state the
// reference implementation keeps as separate globals (labelseq,
// globalenv, struct_defs, union_defs, strings, flonums) into a single
// value threaded through the parser, per the design notes'
// ParserContext recommendation.
type Context struct {
	Global     *container.Dict[ast.Expr]
	StructDefs *container.Dict[*ctype.Ctype]
	UnionDefs  *container.Dict[*ctype.Ctype]
	Labeler    ast.Labeler
	Strings    []*ast.String
	Flonums    []*ast.FloatLiteral

	// ConstVals records the folded value of every global whose own
	// initializer was itself a compile-time integer constant, so a
	// later global's initializer can reference an earlier one (e.g.
	// `int a = 1; int b = a + 1;`).
	ConstVals map[string]int64
}

// NewContext returns a fresh, empty context for one translation unit.
func NewContext() *Context {
	return &Context{
		Global:     container.NewDict[ast.Expr](nil),
		StructDefs: container.NewDict[*ctype.Ctype](nil),
		UnionDefs:  container.NewDict[*ctype.Ctype](nil),
		ConstVals:  map[string]int64{},
	}
}

// Parser holds the lexer, the shared Context, and the parser's own
// scope-stack / locals-collector state, which is local to whichever
// function body (if any) is currently being parsed.
type Parser struct {
	lex *lexer.Lexer
	ctx *Context

	scope     *container.Dict[ast.Expr] // innermost active scope; nil means only Global is visible
	localVars *container.List[*ast.LVar] // non-nil only while parsing a function body
}

// New returns a Parser reading tokens from l, with a fresh Context.
func New(l *lexer.Lexer) *Parser {
	return &Parser{lex: l, ctx: NewContext()}
}

// NewWithContext returns a Parser sharing an existing Context, for
// callers that want access to the Strings/Flonums registries set up
// ahead of time.
func NewWithContext(l *lexer.Lexer, ctx *Context) *Parser {
	return &Parser{lex: l, ctx: ctx}
}

// Context returns the parser's shared context, exposing the
// emitter-facing Strings/Flonums registries once parsing completes.
func (p *Parser) Context() *Context { return p.ctx }

// pushScope opens a new scope frame whose parent is the current
// innermost scope (or Global if none is active), and returns the scope
// that was active before it (nil if none) so the caller can pop back
// with popScope on every exit path.
func (p *Parser) pushScope() *container.Dict[ast.Expr] {
	prev := p.scope
	parent := prev
	if parent == nil {
		parent = p.ctx.Global
	}
	frame := container.NewDict[ast.Expr](parent)
	p.scope = frame
	return prev
}

// popScope restores the given previous scope (the value pushScope's
// caller captured before calling it).
func (p *Parser) popScope(prev *container.Dict[ast.Expr]) {
	p.scope = prev
}

// lookup resolves name in the active scope chain, falling back to
// Global if no function scope is open.
func (p *Parser) lookup(name string) (ast.Expr, bool) {
	if p.scope != nil {
		return p.scope.Get(name)
	}
	return p.ctx.Global.Get(name)
}

// declare binds name in the innermost active scope (or Global at file
// scope).
func (p *Parser) declare(name string, v ast.Expr) {
	if p.scope != nil {
		p.scope.Put(name, v)
		return
	}
	p.ctx.Global.Put(name, v)
}
