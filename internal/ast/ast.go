// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the code generator.
package ast

import (
	"bytes"
	"fmt"

	"github.com/tinylang/stackc/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	// Pos returns the node's source position, taken from its defining token.
	Pos() lexer.Position
	// String renders the node as source-like text for debugging.
	String() string
}

// Expr is any node that produces a value when code-generated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action without producing a value. The
// parser produces as block items only VarDecl, Assign, Exit, DebugDump,
// FuncCall, and Conditional; Block also satisfies Stmt but appears only as
// a Conditional arm.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root node: an ordered list of function declarations.
// The parser requires at least one of them to be named "main"; the code
// generator rejects duplicate function names, so exactly one main survives.
type Program struct {
	Funcs []*FuncDecl
}

func (p *Program) Pos() lexer.Position {
	if len(p.Funcs) > 0 {
		return p.Funcs[0].Pos()
	}
	return lexer.Position{}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, f := range p.Funcs {
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	return out.String()
}

// FuncDecl is a nullary, void function: "func" <name> "{" BlockItem* "}".
type FuncDecl struct {
	Token lexer.Token // the KeywordFunctionDecl token
	Name  string
	Body  []Stmt
}

func (f *FuncDecl) Pos() lexer.Position { return f.Token.Pos }
func (f *FuncDecl) String() string {
	return fmt.Sprintf("func %s { ... (%d items) }", f.Name, len(f.Body))
}

// Block is a brace-delimited list of BlockItems, used as the then/else arm
// of a Conditional.
type Block struct {
	Token lexer.Token // the OpenScope token
	Items []Stmt
}

func (b *Block) Pos() lexer.Position { return b.Token.Pos }
func (b *Block) String() string      { return fmt.Sprintf("{ ... (%d items) }", len(b.Items)) }
func (b *Block) stmtNode()           {}

// VarDecl declares a new local in the current lexical scope. Init is never
// nil after parsing: an omitted initializer is synthesized as a Literal 0
// at the declaration's own position.
type VarDecl struct {
	Token lexer.Token // the KeywordVariableDecl token
	Name  string
	Init  Expr
}

func (v *VarDecl) Pos() lexer.Position { return v.Token.Pos }
func (v *VarDecl) String() string      { return fmt.Sprintf("let %s = %s;", v.Name, v.Init) }
func (v *VarDecl) stmtNode()           {}

// Assign stores the value of Value into the already-declared local Name.
type Assign struct {
	Token lexer.Token // the identifier token
	Name  string
	Value Expr
}

func (a *Assign) Pos() lexer.Position { return a.Token.Pos }
func (a *Assign) String() string      { return fmt.Sprintf("%s = %s;", a.Name, a.Value) }
func (a *Assign) stmtNode()           {}

// Exit terminates the process with Value's evaluated result as exit code.
type Exit struct {
	Token lexer.Token // the KeywordExit token
	Value Expr
}

func (e *Exit) Pos() lexer.Position { return e.Token.Pos }
func (e *Exit) String() string      { return fmt.Sprintf("exit %s;", e.Value) }
func (e *Exit) stmtNode()           {}

// DebugDump prints Value's evaluated result as an unsigned base-10 integer.
type DebugDump struct {
	Token lexer.Token // the KeywordDebugDump token
	Value Expr
}

func (d *DebugDump) Pos() lexer.Position { return d.Token.Pos }
func (d *DebugDump) String() string      { return fmt.Sprintf("dump %s;", d.Value) }
func (d *DebugDump) stmtNode()           {}

// FuncCall invokes a nullary function as a statement. Calls are not
// permitted in expression position.
type FuncCall struct {
	Token lexer.Token // the identifier token
	Name  string
}

func (c *FuncCall) Pos() lexer.Position { return c.Token.Pos }
func (c *FuncCall) String() string      { return fmt.Sprintf("%s();", c.Name) }
func (c *FuncCall) stmtNode()           {}

// Var references a previously declared local by name.
type Var struct {
	Token lexer.Token // the identifier token
	Name  string
}

func (v *Var) Pos() lexer.Position { return v.Token.Pos }
func (v *Var) String() string      { return v.Name }
func (v *Var) exprNode()           {}

// Literal is a signed 64-bit integer constant.
type Literal struct {
	Token lexer.Token // the LiteralInt token
	Value int64
}

func (l *Literal) Pos() lexer.Position { return l.Token.Pos }
func (l *Literal) String() string      { return l.Token.Literal }
func (l *Literal) exprNode()           {}

// UnOp is a unary operator applied to a single operand. The only unary
// operator in the grammar is "-", which is right-associative.
type UnOp struct {
	Token    lexer.Token // the operator token
	Operator string
	Operand  Expr
}

func (u *UnOp) Pos() lexer.Position { return u.Token.Pos }
func (u *UnOp) String() string      { return fmt.Sprintf("(%s%s)", u.Operator, u.Operand) }
func (u *UnOp) exprNode()           {}

// BinOp is a left-associative binary operator applied to two operands.
// Left is always evaluated (and pushed) before Right.
type BinOp struct {
	Token    lexer.Token // the operator token
	Operator string
	Left     Expr
	Right    Expr
}

func (b *BinOp) Pos() lexer.Position { return b.Token.Pos }
func (b *BinOp) String() string      { return fmt.Sprintf("(%s %s %s)", b.Left, b.Operator, b.Right) }
func (b *BinOp) exprNode()           {}

// Conditional is an if/else statement. Else is nil when the source omits
// the else arm.
type Conditional struct {
	Token lexer.Token // the KeywordIf token
	Guard Expr
	Then  *Block
	Else  *Block
}

func (c *Conditional) Pos() lexer.Position { return c.Token.Pos }
func (c *Conditional) String() string {
	if c.Else != nil {
		return fmt.Sprintf("if %s %s else %s", c.Guard, c.Then, c.Else)
	}
	return fmt.Sprintf("if %s %s", c.Guard, c.Then)
}
func (c *Conditional) stmtNode() {}
