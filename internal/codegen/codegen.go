// Package codegen lowers a parsed Program directly to Linux x86-64 NASM
// assembly text. Every expression leaves exactly one 8-byte value on the
// hardware stack; statements consume what their sub-expressions leave
// behind. Locals live at negative rbp offsets and are never spilled to any
// other storage: declaring one is simply pushing its initializer.
package codegen

import (
	"fmt"
	"strings"

	"github.com/tinylang/stackc/internal/ast"
	"github.com/tinylang/stackc/internal/lexer"
)

// dumpPrelude prints the unsigned base-10 rendering of the integer in rdi,
// followed by a newline, to stdout. The digit-extraction loop is a fixed
// constant-multiplication reciprocal for division by 10 and never changes
// regardless of what source program is being compiled.
const dumpPrelude = `dump:
    sub rsp, 40
    lea rsi, [rsp + 31]
    mov byte [rsp + 31], 10
    mov ecx, 1
    mov r8, -3689348814741910323
.LBB0_dump:
    mov rax, rdi
    mul r8
    shr rdx, 3
    lea eax, [rdx + rdx]
    lea eax, [rax + 4*rax]
    mov r9d, edi
    sub r9d, eax
    or r9b, 48
    mov byte [rsi - 1], r9b
    dec rsi
    inc rcx
    cmp rdi, 9
    mov rdi, rdx
    ja .LBB0_dump
    mov edi, 1
    mov rdx, rcx
    mov rax, 1
    syscall
    add rsp, 40
    ret
`

// Generate compiles a Program into a complete NASM source text, ready to be
// handed to the assembler. Generation is fatal-on-first-error.
func Generate(program *ast.Program) (string, error) {
	g := &generator{funcNames: map[string]bool{}}

	for _, fn := range program.Funcs {
		if fn.Name == "dump" {
			return "", newSemanticError(fn.Pos(), "function name %q collides with the runtime dump routine", fn.Name)
		}
		if g.funcNames[fn.Name] {
			return "", newSemanticError(fn.Pos(), "function %q is already declared", fn.Name)
		}
		g.funcNames[fn.Name] = true
	}

	var out strings.Builder
	out.WriteString("; --- Header ---\n")
	out.WriteString("global _start\n")
	out.WriteString("section .text\n")
	out.WriteString("; --- Debug Dump ---\n")
	out.WriteString(dumpPrelude)

	for _, fn := range program.Funcs {
		if err := g.compileFunction(&out, fn); err != nil {
			return "", err
		}
	}

	out.WriteString("_start:\n")
	out.WriteString("    call main\n")
	out.WriteString("; --- Footer ---\n")
	out.WriteString("    mov rdi, 0\n")
	out.WriteString("    mov rax, 60\n")
	out.WriteString("    syscall\n")

	return out.String(), nil
}

// generator holds per-function compilation state. A fresh one is never
// needed per function: compileFunction resets the locals bookkeeping at
// the start of every function instead, since label uniqueness must still
// span the whole program.
type generator struct {
	funcNames    map[string]bool
	locals       []local
	scopeDepth   int
	nextOffset   int // next free rbp-relative byte offset; starts at -8
	curFunc      string
	labelCounter int
}

type local struct {
	name   string
	depth  int
	offset int
}

func (g *generator) compileFunction(out *strings.Builder, fn *ast.FuncDecl) error {
	g.locals = g.locals[:0]
	g.scopeDepth = 0
	g.nextOffset = -8
	g.curFunc = fn.Name

	fmt.Fprintf(out, "%s:\n", fn.Name)
	out.WriteString("    push rbp\n")
	out.WriteString("    mov rbp, rsp\n")

	for _, stmt := range fn.Body {
		if err := g.compileStmt(out, stmt); err != nil {
			return err
		}
	}

	out.WriteString("    mov rsp, rbp\n")
	out.WriteString("    pop rbp\n")
	out.WriteString("    ret\n")
	return nil
}

// nextLabel derives a globally-unique assembly label from the enclosing
// function's name and a monotonic counter, never from source position:
// two syntactically identical `if` statements at different call sites
// used to collide when labels were position-derived, producing duplicate
// symbols at link time.
func (g *generator) nextLabel(tag string) string {
	g.labelCounter++
	return fmt.Sprintf(".L%s_%s%d", g.curFunc, tag, g.labelCounter)
}

func (g *generator) beginScope() {
	g.scopeDepth++
}

// endScope pops every local declared in the scope just exited and returns
// how many there were, so the caller can emit the matching `add rsp`.
func (g *generator) endScope() int {
	n := 0
	for len(g.locals) > 0 && g.locals[len(g.locals)-1].depth == g.scopeDepth {
		g.locals = g.locals[:len(g.locals)-1]
		g.nextOffset += 8
		n++
	}
	g.scopeDepth--
	return n
}

func (g *generator) declareLocal(pos lexer.Position, name string) error {
	if _, ok := g.resolveLocalInCurrentScope(name); ok {
		return newSemanticError(pos, "variable %q is already declared in this scope", name)
	}
	offset := g.nextOffset
	g.nextOffset -= 8
	g.locals = append(g.locals, local{name: name, depth: g.scopeDepth, offset: offset})
	return nil
}

func (g *generator) resolveLocal(name string) (local, bool) {
	for i := len(g.locals) - 1; i >= 0; i-- {
		if g.locals[i].name == name {
			return g.locals[i], true
		}
	}
	return local{}, false
}

func (g *generator) resolveLocalInCurrentScope(name string) (local, bool) {
	for i := len(g.locals) - 1; i >= 0; i-- {
		loc := g.locals[i]
		if loc.depth != g.scopeDepth {
			break
		}
		if loc.name == name {
			return loc, true
		}
	}
	return local{}, false
}
