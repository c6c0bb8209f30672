package codegen

import (
	"fmt"
	"strings"

	"github.com/tinylang/stackc/internal/ast"
)

func (g *generator) compileStmt(out *strings.Builder, stmt ast.Stmt) error {
	switch node := stmt.(type) {
	case *ast.VarDecl:
		return g.compileVarDecl(out, node)
	case *ast.Assign:
		return g.compileAssign(out, node)
	case *ast.Exit:
		return g.compileExit(out, node)
	case *ast.DebugDump:
		return g.compileDebugDump(out, node)
	case *ast.FuncCall:
		return g.compileFuncCall(out, node)
	case *ast.Conditional:
		return g.compileConditional(out, node)
	default:
		return newCodegenError(stmt.Pos(), "unsupported statement node %T", stmt)
	}
}

func (g *generator) compileBlock(out *strings.Builder, block *ast.Block) error {
	g.beginScope()
	for _, item := range block.Items {
		if err := g.compileStmt(out, item); err != nil {
			return err
		}
	}
	if n := g.endScope(); n > 0 {
		fmt.Fprintf(out, "    add rsp, %d\n", 8*n)
	}
	return nil
}

func (g *generator) compileVarDecl(out *strings.Builder, v *ast.VarDecl) error {
	if err := g.compileExpr(out, v.Init); err != nil {
		return err
	}
	return g.declareLocal(v.Pos(), v.Name)
}

func (g *generator) compileAssign(out *strings.Builder, a *ast.Assign) error {
	loc, ok := g.resolveLocal(a.Name)
	if !ok {
		return newSemanticError(a.Pos(), "assignment to undeclared variable %q", a.Name)
	}
	if err := g.compileExpr(out, a.Value); err != nil {
		return err
	}
	out.WriteString("    pop rax\n")
	fmt.Fprintf(out, "    mov [rbp%+d], rax\n", loc.offset)
	return nil
}

func (g *generator) compileExit(out *strings.Builder, e *ast.Exit) error {
	if err := g.compileExpr(out, e.Value); err != nil {
		return err
	}
	out.WriteString("; --- Exit ---\n")
	out.WriteString("    pop rdi\n")
	out.WriteString("    mov rax, 60\n")
	out.WriteString("    syscall\n")
	return nil
}

func (g *generator) compileDebugDump(out *strings.Builder, d *ast.DebugDump) error {
	if err := g.compileExpr(out, d.Value); err != nil {
		return err
	}
	out.WriteString("; --- DebugDump ---\n")
	out.WriteString("    pop rdi\n")
	out.WriteString("    call dump\n")
	return nil
}

func (g *generator) compileFuncCall(out *strings.Builder, c *ast.FuncCall) error {
	if !g.funcNames[c.Name] {
		return newSemanticError(c.Pos(), "call to undeclared function %q", c.Name)
	}
	fmt.Fprintf(out, "    call %s\n", c.Name)
	return nil
}

func (g *generator) compileConditional(out *strings.Builder, cond *ast.Conditional) error {
	if err := g.compileExpr(out, cond.Guard); err != nil {
		return err
	}

	elseLabel := g.nextLabel("else")
	endLabel := g.nextLabel("endif")

	out.WriteString("    pop rax\n")
	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    je %s\n", elseLabel)

	if err := g.compileBlock(out, cond.Then); err != nil {
		return err
	}

	if cond.Else != nil {
		fmt.Fprintf(out, "    jmp %s\n", endLabel)
		fmt.Fprintf(out, "%s:\n", elseLabel)
		if err := g.compileBlock(out, cond.Else); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s:\n", endLabel)
	} else {
		fmt.Fprintf(out, "%s:\n", elseLabel)
	}

	return nil
}
