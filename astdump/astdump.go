// Package astdump implements a minimal textual AST dumper for
// `cmd/cc --dump-ast`. It performs no semantic work: it is a debugging
// aid, not part of the parser's tested contract.
package astdump

import (
	"fmt"
	"strings"

	"github.com/stackvm-lang/cc/ast"
)

// Dump renders a parenthesized, indented textual form of the
// top-level declarations, one tree per TopLevel entry.
func Dump(tops []ast.TopLevel) string {
	var b strings.Builder
	for _, t := range tops {
		dumpNode(&b, t, 0)
		b.WriteByte('\n')
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpNode(b *strings.Builder, n ast.Node, depth int) {
	indent(b, depth)
	switch v := n.(type) {
	case *ast.Func:
		fmt.Fprintf(b, "(func %s : %s\n", v.Name, v.Ctype)
		for _, p := range v.Params {
			indent(b, depth+1)
			fmt.Fprintf(b, "(param %s : %s)\n", p.Name, p.Ctype)
		}
		dumpNode(b, v.Body, depth+1)
		indent(b, depth)
		b.WriteString(")")

	case *ast.Decl:
		fmt.Fprintf(b, "(decl %s", varName(v.Var))
		if v.Init != nil {
			b.WriteString("\n")
			dumpNode(b, v.Init, depth+1)
			b.WriteByte('\n')
			indent(b, depth)
		}
		b.WriteString(")")

	case *ast.Compound:
		b.WriteString("(block\n")
		for _, s := range v.Stmts {
			dumpNode(b, s, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteString(")")

	case *ast.If:
		b.WriteString("(if\n")
		dumpNode(b, v.Cond, depth+1)
		b.WriteByte('\n')
		dumpNode(b, v.Then, depth+1)
		if v.Else != nil {
			b.WriteByte('\n')
			dumpNode(b, v.Else, depth+1)
		}
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteString(")")

	case *ast.For:
		b.WriteString("(for\n")
		if v.Init != nil {
			dumpNode(b, v.Init, depth+1)
			b.WriteByte('\n')
		}
		if v.Cond != nil {
			dumpNode(b, v.Cond, depth+1)
			b.WriteByte('\n')
		}
		if v.Step != nil {
			dumpNode(b, v.Step, depth+1)
			b.WriteByte('\n')
		}
		dumpNode(b, v.Body, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteString(")")

	case *ast.Return:
		b.WriteString("(return\n")
		dumpNode(b, v.Value, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteString(")")

	case *ast.ExprStmt:
		dumpNode(b, v.X, depth)

	case *ast.Binop:
		fmt.Fprintf(b, "(%s\n", v.Op)
		dumpNode(b, v.Left, depth+1)
		b.WriteByte('\n')
		dumpNode(b, v.Right, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteString(")")

	case *ast.Unop:
		fmt.Fprintf(b, "(%s\n", unopName(v.Kind))
		dumpNode(b, v.Operand, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteString(")")

	case *ast.Ternary:
		b.WriteString("(?:\n")
		dumpNode(b, v.Cond, depth+1)
		b.WriteByte('\n')
		dumpNode(b, v.Then, depth+1)
		b.WriteByte('\n')
		dumpNode(b, v.Else, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteString(")")

	case *ast.Funcall:
		fmt.Fprintf(b, "(call %s", v.Name)
		for _, a := range v.Args {
			b.WriteByte('\n')
			dumpNode(b, a, depth+1)
		}
		b.WriteString(")")

	case *ast.StructRef:
		fmt.Fprintf(b, "(field %s\n", v.Field)
		dumpNode(b, v.Object, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteString(")")

	case *ast.ArrayInit:
		b.WriteString("(array-init")
		for _, item := range v.Items {
			b.WriteByte('\n')
			dumpNode(b, item, depth+1)
		}
		b.WriteString(")")

	case *ast.Literal:
		fmt.Fprintf(b, "%d", v.Ival)
	case *ast.FloatLiteral:
		fmt.Fprintf(b, "%g", v.Fval)
	case *ast.String:
		fmt.Fprintf(b, "%q", v.Value)
	case *ast.LVar:
		b.WriteString(v.Name)
	case *ast.GVar:
		b.WriteString(v.Name)

	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}

func varName(v ast.Lvalue) string {
	switch x := v.(type) {
	case *ast.LVar:
		return x.Name
	case *ast.GVar:
		return x.Name
	default:
		return "?"
	}
}

func unopName(k ast.UnopKind) string {
	switch k {
	case ast.AddrOf:
		return "&"
	case ast.Deref:
		return "*"
	case ast.Not:
		return "!"
	case ast.PostIncr:
		return "post++"
	case ast.PostDecr:
		return "post--"
	default:
		return "?"
	}
}
