package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackvm-lang/cc/ast"
	"github.com/stackvm-lang/cc/ctype"
	"github.com/stackvm-lang/cc/lexer"
)

func parse(t *testing.T, src string) []ast.TopLevel {
	t.Helper()
	p := New(lexer.New(src))
	tops, err := p.ParseTopLevels()
	require.NoError(t, err)
	return tops
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	p := New(lexer.New(src))
	_, err := p.ParseTopLevels()
	require.Error(t, err)
	return err
}

// S1: simple int decl + expression, with global initializer folding.
func TestGlobalIntDeclsFoldConstantInitializers(t *testing.T) {
	tops := parse(t, `int a = 1; int b = 48 + 2; int c = a + b;`)
	require.Len(t, tops, 3)

	declC, ok := tops[2].(*ast.Decl)
	require.True(t, ok)
	lit, ok := declC.Init.(*ast.Literal)
	require.True(t, ok, "global initializer should be folded to a literal")
	assert.Equal(t, int64(51), lit.Ival)
	assert.Same(t, ctype.IntType, lit.Ctype)
}

// S2: pointer arithmetic with array decay. Declared as locals, not
// globals, so the initializer is not subject to the global
// constant-folding path (that path produces a plain int Literal for
// every global scalar initializer, per §4.6 -- it would reject this
// expression, since it isn't a compile-time integer expression).
func TestArrayDecayInPointerArithmetic(t *testing.T) {
	tops := parse(t, `
int f() {
	int a[] = {20,30,40};
	int *b = a + 1;
	return 0;
}
`)
	fn := tops[0].(*ast.Func)

	declA := fn.Body.Stmts[0].(*ast.Decl)
	lvarA := declA.Var.(*ast.LVar)
	require.Equal(t, ctype.KArray, lvarA.Ctype.Kind)
	assert.Equal(t, 3, lvarA.Ctype.Len)
	assert.Equal(t, 12, lvarA.Ctype.Size)

	declB := fn.Body.Stmts[1].(*ast.Decl)
	binop, ok := declB.Init.(*ast.Binop)
	require.True(t, ok)
	assert.Equal(t, "+", binop.Op)
	require.Equal(t, ctype.KPtr, binop.Ctype.Kind)
	assert.Same(t, ctype.IntType, binop.Ctype.Elem)

	left, ok := binop.Left.(*ast.LVar)
	require.True(t, ok)
	assert.Equal(t, "a", left.Name)
}

// S3: struct field offsets per §4.6 / property 5.
func TestStructFieldOffsetsAndStructRef(t *testing.T) {
	tops := parse(t, `struct S { char c; int i; long l; } x;`)
	require.Len(t, tops, 1)

	decl := tops[0].(*ast.Decl)
	gvar := decl.Var.(*ast.GVar)
	require.Equal(t, ctype.KStruct, gvar.Ctype.Kind)
	assert.Equal(t, 16, gvar.Ctype.Size)

	fc, ok := gvar.Ctype.Fields.GetLocal("c")
	require.True(t, ok)
	assert.Equal(t, 0, fc.Offset)

	fi, ok := gvar.Ctype.Fields.GetLocal("i")
	require.True(t, ok)
	assert.Equal(t, 4, fi.Offset)

	fl, ok := gvar.Ctype.Fields.GetLocal("l")
	require.True(t, ok)
	assert.Equal(t, 8, fl.Offset)

	// x.i via the expression parser yields a StructRef of ctype int.
	tops2 := parse(t, `struct S { char c; int i; long l; } x; int f() { return x.i; }`)
	fn := tops2[1].(*ast.Func)
	ret := fn.Body.Stmts[0].(*ast.Return)
	ref, ok := ret.Value.(*ast.StructRef)
	require.True(t, ok)
	assert.Equal(t, "i", ref.Field)
	assert.Equal(t, ctype.KInt, ref.Ctype.Kind)
	assert.Equal(t, 4, ref.Ctype.Offset)
}

// S4: union shared storage.
func TestUnionSharedStorage(t *testing.T) {
	tops := parse(t, `union U { char a[4]; int b; } x;`)
	decl := tops[0].(*ast.Decl)
	gvar := decl.Var.(*ast.GVar)
	require.Equal(t, ctype.KStruct, gvar.Ctype.Kind)
	assert.True(t, gvar.Ctype.IsUnion)
	assert.Equal(t, 4, gvar.Ctype.Size)

	fa, ok := gvar.Ctype.Fields.GetLocal("a")
	require.True(t, ok)
	assert.Equal(t, 0, fa.Offset)
	fb, ok := gvar.Ctype.Fields.GetLocal("b")
	require.True(t, ok)
	assert.Equal(t, 0, fb.Offset)
}

// S5: nested for scope — the for header's scope and the body's scope
// are popped and invisible after the loop.
func TestForOpensNestedScopes(t *testing.T) {
	src := `
int f(int n) {
	for (int i = 0; i < n; i = i + 1) {
		int j = i;
	}
	return 0;
}
`
	tops := parse(t, src)
	fn := tops[0].(*ast.Func)
	forStmt := fn.Body.Stmts[0].(*ast.For)

	initDecl := forStmt.Init.(*ast.Decl)
	iVar := initDecl.Var.(*ast.LVar)
	assert.Equal(t, "i", iVar.Name)

	body := forStmt.Body.(*ast.Compound)
	jDecl := body.Stmts[0].(*ast.Decl)
	jVar := jDecl.Var.(*ast.LVar)
	assert.Equal(t, "j", jVar.Name)

	// Both i and j were collected into the function's locals list.
	names := map[string]bool{}
	for _, lv := range fn.Locals {
		names[lv.Name] = true
	}
	assert.True(t, names["i"])
	assert.True(t, names["j"])
}

// S5 corollary: i/j are not visible once the for statement ends.
func TestForScopeVariablesNotVisibleAfterLoop(t *testing.T) {
	src := `
int f(int n) {
	for (int i = 0; i < n; i = i + 1) {
		int j = i;
	}
	return i;
}
`
	parseErr(t, src)
}

// S6: ternary mixing a pointer and an array operand; the ternary takes
// the then operand's ctype, Ptr(int).
func TestTernaryWithArrayOperandHasPointerType(t *testing.T) {
	src := `
int *p;
int a[3];
int f() {
	p = 1 ? p : a;
	return 0;
}
`
	tops := parse(t, src)
	fn := tops[2].(*ast.Func)
	exprStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	assign := exprStmt.X.(*ast.Binop)
	assert.Equal(t, "=", assign.Op)

	ternary, ok := assign.Right.(*ast.Ternary)
	require.True(t, ok)
	require.Equal(t, ctype.KPtr, ternary.Ctype.Kind)
	assert.Same(t, ctype.IntType, ternary.Ctype.Elem)
}

// Property 4: precedence correctness for a representative pair of
// distinct-priority operators (+ tighter... no, * tighter than +).
func TestPrecedenceMulTighterThanAdd(t *testing.T) {
	src := `int f() { return 1 + 2 * 3; }`
	tops := parse(t, src)
	fn := tops[0].(*ast.Func)
	ret := fn.Body.Stmts[0].(*ast.Return)
	top := ret.Value.(*ast.Binop)
	assert.Equal(t, "+", top.Op)
	_, leftIsLit := top.Left.(*ast.Literal)
	assert.True(t, leftIsLit)
	right := top.Right.(*ast.Binop)
	assert.Equal(t, "*", right.Op)
}

// Property 4: equal-priority left-associativity for +/-.
func TestLeftAssociativityForEqualPriority(t *testing.T) {
	src := `int f() { return 1 - 2 - 3; }`
	tops := parse(t, src)
	fn := tops[0].(*ast.Func)
	ret := fn.Body.Stmts[0].(*ast.Return)
	top := ret.Value.(*ast.Binop)
	assert.Equal(t, "-", top.Op)
	left := top.Left.(*ast.Binop)
	assert.Equal(t, "-", left.Op)
	_, rightIsLit := top.Right.(*ast.Literal)
	assert.True(t, rightIsLit)
}

// Property 4: assignment is right-associative.
func TestAssignmentIsRightAssociative(t *testing.T) {
	src := `
int f() {
	int a; int b; int c;
	a = b = c;
	return 0;
}
`
	tops := parse(t, src)
	fn := tops[0].(*ast.Func)
	exprStmt := fn.Body.Stmts[3].(*ast.ExprStmt)
	outer := exprStmt.X.(*ast.Binop)
	assert.Equal(t, "=", outer.Op)
	_, leftIsLVar := outer.Left.(*ast.LVar)
	assert.True(t, leftIsLVar)
	inner := outer.Right.(*ast.Binop)
	assert.Equal(t, "=", inner.Op)
}

// Property 7 / array-size inference from char-string initializer.
func TestCharArraySizedFromStringInitializer(t *testing.T) {
	tops := parse(t, `char s[] = "abc";`)
	decl := tops[0].(*ast.Decl)
	gvar := decl.Var.(*ast.GVar)
	assert.Equal(t, 4, gvar.Ctype.Len)
	assert.Equal(t, 4, gvar.Ctype.Size)
}

func TestArraySizedFromBraceInitializer(t *testing.T) {
	tops := parse(t, `int a[] = {1,2,3,4,5};`)
	decl := tops[0].(*ast.Decl)
	gvar := decl.Var.(*ast.GVar)
	assert.Equal(t, 5, gvar.Ctype.Len)
	assert.Equal(t, 20, gvar.Ctype.Size)
}

// Struct tag caching: a second reference to the same tag without a
// body reuses the cached ctype (invariant 6).
func TestStructTagIsCachedAcrossReferences(t *testing.T) {
	tops := parse(t, `
struct S { int x; } s;
struct S a;
struct S b;
`)
	declA := tops[1].(*ast.Decl)
	declB := tops[2].(*ast.Decl)
	ctA := declA.Var.(*ast.GVar).Ctype
	ctB := declB.Var.(*ast.GVar).Ctype
	assert.Same(t, ctA, ctB)
}

// Functions: array parameters decay to pointer locals at entry.
func TestArrayParameterDecaysToPointer(t *testing.T) {
	tops := parse(t, `int f(int a[]) { return a[0]; }`)
	fn := tops[0].(*ast.Func)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, ctype.KPtr, fn.Params[0].Ctype.Kind)
}

// MAX_ARGS enforcement.
func TestTooManyArgumentsIsAnError(t *testing.T) {
	parseErr(t, `int f() { return g(1,2,3,4,5,6,7); }`)
}

// Postfix-only ++/--: prefix form falls through to primary parsing
// and leaves the operator as an unconsumed punctuator, which is not a
// valid primary -- the known grammar gap called out in the design
// notes, preserved rather than fixed.
func TestPrefixIncrementIsNotSupported(t *testing.T) {
	parseErr(t, `int f() { int a; return ++a; }`)
}

// Known limitation: Funcall's ctype is always int regardless of the
// callee's actual declared return type.
func TestFuncallCtypeIsAlwaysInt(t *testing.T) {
	tops := parse(t, `
long g() { return 1; }
int f() { return g(); }
`)
	fn := tops[1].(*ast.Func)
	ret := fn.Body.Stmts[0].(*ast.Return)
	call := ret.Value.(*ast.Funcall)
	assert.Same(t, ctype.IntType, call.CType())
}

func TestUndefinedVariableIsAnError(t *testing.T) {
	parseErr(t, `int f() { return x; }`)
}

func TestMissingArraySizeIsAnError(t *testing.T) {
	parseErr(t, `int a[];`)
}

func TestVoidVariableIsAnError(t *testing.T) {
	parseErr(t, `void a;`)
}

func TestDereferenceOfVoidPointerIsAnError(t *testing.T) {
	parseErr(t, `
void *p;
int f() { return *p; }
`)
}

func TestAssignmentToNonLvalueIsAnError(t *testing.T) {
	parseErr(t, `int f() { 1 = 2; return 0; }`)
}

func TestShiftWithNonIntegralOperandIsAnError(t *testing.T) {
	parseErr(t, `
float f;
int g() { return f << 1; }
`)
}
