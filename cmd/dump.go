package cmd

import (
	"fmt"
	"io"

	"github.com/tinylang/stackc/internal/ast"
)

// dumpProgram prints the full parse tree for the -pt/--parse-tree flag.
func dumpProgram(w io.Writer, program *ast.Program) {
	fmt.Fprintf(w, "Program (%d functions)\n", len(program.Funcs))
	for _, fn := range program.Funcs {
		dumpNode(w, fn, 1)
	}
}

func dumpNode(w io.Writer, node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.FuncDecl:
		fmt.Fprintf(w, "%sFuncDecl %s (%d items)\n", pad, n.Name, len(n.Body))
		for _, stmt := range n.Body {
			dumpNode(w, stmt, indent+1)
		}
	case *ast.Block:
		fmt.Fprintf(w, "%sBlock (%d items)\n", pad, len(n.Items))
		for _, stmt := range n.Items {
			dumpNode(w, stmt, indent+1)
		}
	case *ast.VarDecl:
		fmt.Fprintf(w, "%sVarDecl %s\n", pad, n.Name)
		dumpNode(w, n.Init, indent+1)
	case *ast.Assign:
		fmt.Fprintf(w, "%sAssign %s\n", pad, n.Name)
		dumpNode(w, n.Value, indent+1)
	case *ast.Exit:
		fmt.Fprintf(w, "%sExit\n", pad)
		dumpNode(w, n.Value, indent+1)
	case *ast.DebugDump:
		fmt.Fprintf(w, "%sDebugDump\n", pad)
		dumpNode(w, n.Value, indent+1)
	case *ast.FuncCall:
		fmt.Fprintf(w, "%sFuncCall %s\n", pad, n.Name)
	case *ast.Conditional:
		fmt.Fprintf(w, "%sConditional\n", pad)
		fmt.Fprintf(w, "%s  Guard:\n", pad)
		dumpNode(w, n.Guard, indent+2)
		fmt.Fprintf(w, "%s  Then:\n", pad)
		dumpNode(w, n.Then, indent+2)
		if n.Else != nil {
			fmt.Fprintf(w, "%s  Else:\n", pad)
			dumpNode(w, n.Else, indent+2)
		}
	case *ast.BinOp:
		fmt.Fprintf(w, "%sBinOp (%s)\n", pad, n.Operator)
		dumpNode(w, n.Left, indent+1)
		dumpNode(w, n.Right, indent+1)
	case *ast.UnOp:
		fmt.Fprintf(w, "%sUnOp (%s)\n", pad, n.Operator)
		dumpNode(w, n.Operand, indent+1)
	case *ast.Var:
		fmt.Fprintf(w, "%sVar %s\n", pad, n.Name)
	case *ast.Literal:
		fmt.Fprintf(w, "%sLiteral %d\n", pad, n.Value)
	default:
		fmt.Fprintf(w, "%s<unknown node %T>\n", pad, n)
	}
}
