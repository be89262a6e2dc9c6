// Package ast defines the expression tree produced by the parser.
//
// Expressions form a sealed set of variants discriminated by type; each
// node carries the source span covering its full extent and owns its
// children outright. Nodes are immutable once built.
package ast

import (
	"strconv"
	"strings"

	"github.com/esclang/escc/internal/lexer"
	"github.com/esclang/escc/internal/text"
)

// Expr is one expression node.
type Expr interface {
	// Span returns the source range the node covers; it encloses the
	// spans of all children.
	Span() text.Span
	// String renders the node in the compact structural form used by
	// the driver and the tests.
	String() string

	lisp(p *lispPrinter, indent int)
}

// IntLit is an integer literal, optionally hinted (`0xFF_u16`).
type IntLit struct {
	Value    uint64
	TypeHint string
	Source   text.Span
}

func (e *IntLit) Span() text.Span { return e.Source }

func (e *IntLit) String() string {
	return "$int(" + strconv.FormatUint(e.Value, 10) + ")"
}

// FloatLit is a float literal, optionally hinted (`1.5_f32`).
type FloatLit struct {
	Value    float64
	TypeHint string
	Source   text.Span
}

func (e *FloatLit) Span() text.Span { return e.Source }

func (e *FloatLit) String() string {
	return "$float(" + strconv.FormatFloat(e.Value, 'g', -1, 64) + ")"
}

// TextLit is a text literal; TypeHint is "char", "string", or empty.
type TextLit struct {
	Value    string
	TypeHint string
	Source   text.Span
}

func (e *TextLit) Span() text.Span { return e.Source }

func (e *TextLit) String() string {
	return "$string(" + e.Value + ")"
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value  bool
	Source text.Span
}

func (e *BoolLit) Span() text.Span { return e.Source }

func (e *BoolLit) String() string {
	return "$bool(" + strconv.FormatBool(e.Value) + ")"
}

// Ident is a bare identifier.
type Ident struct {
	Name   string
	Source text.Span
}

func (e *Ident) Span() text.Span { return e.Source }

func (e *Ident) String() string {
	return "$id(" + e.Name + ")"
}

// Binary applies an infix operator token to two operands.
type Binary struct {
	Left   Expr
	Op     lexer.Token
	Right  Expr
	Source text.Span
}

func (e *Binary) Span() text.Span { return e.Source }

func (e *Binary) String() string {
	return "bin(" + e.Left.String() + " " + e.Op.Kind.String() + " " + e.Right.String() + ")"
}

// Unary applies a prefix operator token to one operand.
type Unary struct {
	Op      lexer.Token
	Operand Expr
	Source  text.Span
}

func (e *Unary) Span() text.Span { return e.Source }

func (e *Unary) String() string {
	return "unary(" + e.Op.Kind.String() + " " + e.Operand.String() + ")"
}

// Block is a `{ … }` grouping around one inner expression.
type Block struct {
	Inner  Expr
	Source text.Span
}

func (e *Block) Span() text.Span { return e.Source }

func (e *Block) String() string {
	return "{" + e.Inner.String() + "}"
}

// Call applies a callee to zero or more arguments.
type Call struct {
	Callee Expr
	Args   []Expr
	Source text.Span
}

func (e *Call) Span() text.Span { return e.Source }

func (e *Call) String() string {
	var b strings.Builder
	b.WriteString("call(")
	b.WriteString(e.Callee.String())
	for _, a := range e.Args {
		b.WriteString(" ")
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}

// Property accesses a named member of an object.
type Property struct {
	Object Expr
	Name   string
	Source text.Span
}

func (e *Property) Span() text.Span { return e.Source }

func (e *Property) String() string {
	return "prop(" + e.Object.String() + " " + e.Name + ")"
}

// ElseIf is one `else if cond { body }` link of an If chain.
type ElseIf struct {
	Cond Expr
	Body Expr
}

// If is a conditional with an optional else-if chain and else branch.
type If struct {
	Cond    Expr
	Then    Expr
	ElseIfs []ElseIf
	Else    Expr // nil when absent
	Source  text.Span
}

func (e *If) Span() text.Span { return e.Source }

func (e *If) String() string {
	var b strings.Builder
	b.WriteString("if(")
	b.WriteString(e.Cond.String())
	b.WriteString(" ")
	b.WriteString(e.Then.String())
	for _, ei := range e.ElseIfs {
		b.WriteString(" elif ")
		b.WriteString(ei.Cond.String())
		b.WriteString(" ")
		b.WriteString(ei.Body.String())
	}
	if e.Else != nil {
		b.WriteString(" else ")
		b.WriteString(e.Else.String())
	}
	b.WriteString(")")
	return b.String()
}

// Loop is `loop { body? }`; Body is nil for an empty loop.
type Loop struct {
	Body   Expr
	Source text.Span
}

func (e *Loop) Span() text.Span { return e.Source }

func (e *Loop) String() string {
	if e.Body == nil {
		return "loop()"
	}
	return "loop(" + e.Body.String() + ")"
}

// Break is `break value?`; Value is nil for a bare break.
type Break struct {
	Value  Expr
	Source text.Span
}

func (e *Break) Span() text.Span { return e.Source }

func (e *Break) String() string {
	if e.Value == nil {
		return "break()"
	}
	return "break(" + e.Value.String() + ")"
}
