// Package ast defines every node constructor the parser produces: a
// tagged family of expressions, statements, and top-level
// declarations, modeled as Go interfaces with marker methods rather
// than an inheritance hierarchy, per a self-referential-type family
// (Ctype mirrors this shape in the ctype package).
package ast

import "github.com/stackvm-lang/cc/ctype"

// Node is the root of every AST variant.
type Node interface {
	node()
}

// Expr is any AST node usable in expression position; every Expr except
// ArrayInit has a non-nil ctype.
type Expr interface {
	Node
	expr()
	CType() *ctype.Ctype
}

// Stmt is any AST node usable in statement position.
type Stmt interface {
	Node
	stmt()
}

// TopLevel is either a Func or a Decl appearing at file scope.
type TopLevel interface {
	Node
	topLevel()
}

// Lvalue is implemented by the four node kinds the grammar accepts
// anywhere an lvalue is required: assignment's left side, `&`'s
// operand, and `++`/`--`'s operand.
type Lvalue interface {
	Expr
	lvalue()
}

// ---- expressions ----

// Literal is an integer constant of type char, int, or long.
type Literal struct {
	Ctype *ctype.Ctype
	Ival  int64
}

func (*Literal) node() {}
func (*Literal) expr() {}
func (n *Literal) CType() *ctype.Ctype { return n.Ctype }

// FloatLiteral is a floating-point constant, registered in the
// parser's flonums collection under Label.
type FloatLiteral struct {
	Ctype *ctype.Ctype
	Fval  float64
	Label string
}

func (*FloatLiteral) node() {}
func (*FloatLiteral) expr() {}
func (n *FloatLiteral) CType() *ctype.Ctype { return n.Ctype }

// String is a string literal, registered in the parser's strings
// collection under Label. Its ctype is always array-of-char sized
// len(Value)+1 (the NUL terminator).
type String struct {
	Ctype *ctype.Ctype
	Value string
	Label string
}

func (*String) node() {}
func (*String) expr() {}
func (n *String) CType() *ctype.Ctype { return n.Ctype }

// LVar is a local variable or parameter reference.
type LVar struct {
	Ctype *ctype.Ctype
	Name  string
}

func (*LVar) node() {}
func (*LVar) expr() {}
func (*LVar) lvalue() {}
func (n *LVar) CType() *ctype.Ctype { return n.Ctype }

// GVar is a global variable reference. Label is the symbol the emitter
// should use; the parser always sets it to Name.
type GVar struct {
	Ctype *ctype.Ctype
	Name  string
	Label string
}

func (*GVar) node() {}
func (*GVar) expr() {}
func (*GVar) lvalue() {}
func (n *GVar) CType() *ctype.Ctype { return n.Ctype }

// Binop is a binary operator application. Op is the operator's surface
// spelling ("+", "==", "<<", ...), as returned by lexer.PunctName.
type Binop struct {
	Ctype *ctype.Ctype
	Op    string
	Left  Expr
	Right Expr
}

func (*Binop) node() {}
func (*Binop) expr() {}
func (n *Binop) CType() *ctype.Ctype { return n.Ctype }

// UnopKind enumerates the unary operator families the grammar accepts.
type UnopKind int

const (
	AddrOf UnopKind = iota
	Deref
	Not
	PostIncr
	PostDecr
)

// Unop is a unary operator application; Operand is required to be an
// Lvalue for AddrOf, PostIncr, and PostDecr.
type Unop struct {
	Ctype   *ctype.Ctype
	Kind    UnopKind
	Operand Expr
}

func (*Unop) node() {}
func (*Unop) expr() {}
func (n *Unop) CType() *ctype.Ctype { return n.Ctype }

// lvalue marks Unop as an Lvalue only meaningfully when Kind == Deref;
// the parser never constructs a Deref Unop that isn't addressable, so
// the marker is unconditional here (mirroring LVar/GVar/StructRef,
// which are always lvalues by construction).
func (*Unop) lvalue() {}

// Funcall is a function call. Its ctype is always int regardless of
// the callee's actual declared return type — a known limitation
// preserved for compatibility with the reference implementation (see
// design notes: the call site never looks up the callee's signature).
type Funcall struct {
	Name string
	Args []Expr
}

func (*Funcall) node() {}
func (*Funcall) expr() {}
func (*Funcall) CType() *ctype.Ctype { return ctype.IntType }

// Param is one function parameter.
type Param struct {
	Ctype *ctype.Ctype
	Name  string
}

// Func is a function definition; Ctype is its return type.
type Func struct {
	Ctype  *ctype.Ctype
	Name   string
	Params []*Param
	Locals []*LVar
	Body   *Compound
}

func (*Func) node()     {}
func (*Func) topLevel() {}

// CType returns the function's return type (the one TopLevel variant
// for which CType is meaningful).
func (n *Func) CType() *ctype.Ctype { return n.Ctype }

// ---- declarations / statements ----

// Decl is a variable declaration, with an optional initializer
// (scalar expression or ArrayInit). Var is always *LVar or *GVar.
type Decl struct {
	Var  Lvalue
	Init Expr // nil, an Expr, or *ArrayInit
}

func (*Decl) node()     {}
func (*Decl) stmt()     {}
func (*Decl) topLevel() {}

// ArrayInit is a brace-enclosed initializer list; it carries no ctype
// of its own and is only ever found as a Decl's Init.
type ArrayInit struct {
	Items []Expr
}

func (*ArrayInit) node() {}
func (*ArrayInit) expr() {}
func (*ArrayInit) CType() *ctype.Ctype { return nil }

// ExprStmt wraps an expression used in statement position (an
// expression followed by `;`).
type ExprStmt struct {
	X Expr
}

func (*ExprStmt) node() {}
func (*ExprStmt) stmt() {}

// If is a conditional statement with an optional else branch.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

func (*If) node() {}
func (*If) stmt() {}

// Ternary is `cond ? then : els`; its ctype is Then's ctype (Else is
// not consulted).
type Ternary struct {
	Ctype *ctype.Ctype
	Cond  Expr
	Then  Expr
	Else  Expr
}

func (*Ternary) node() {}
func (*Ternary) expr() {}
func (n *Ternary) CType() *ctype.Ctype { return n.Ctype }

// For is a C-style for loop; any of Init, Cond, Step may be nil.
type For struct {
	Init Node // Stmt or *Decl, or nil
	Cond Expr // nil means "always true"
	Step Expr // nil if absent
	Body Stmt
}

func (*For) node() {}
func (*For) stmt() {}

// Return is a return statement.
type Return struct {
	Value Expr
}

func (*Return) node() {}
func (*Return) stmt() {}

// Compound is a brace-enclosed statement list, possibly mixing
// declarations and statements.
type Compound struct {
	Stmts []Stmt
}

func (*Compound) node() {}
func (*Compound) stmt() {}

// StructRef is `object.field`; Ctype is the field's type.
type StructRef struct {
	Ctype  *ctype.Ctype
	Object Expr
	Field  string
}

func (*StructRef) node() {}
func (*StructRef) expr() {}
func (*StructRef) lvalue() {}
func (n *StructRef) CType() *ctype.Ctype { return n.Ctype }
