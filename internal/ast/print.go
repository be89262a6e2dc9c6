package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/lexer"
)

// Lispfmt writes an indented, parenthesized rendering of the tree, one
// node per line. Literals and identifiers are colourized when color is
// set.
func Lispfmt(w io.Writer, e Expr, color bool) {
	p := &lispPrinter{w: w, color: color}
	e.lisp(p, 0)
}

type lispPrinter struct {
	w     io.Writer
	color bool
}

func (p *lispPrinter) line(indent int, s string) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", indent), s)
}

func (p *lispPrinter) colored(col, s string) string {
	if !p.color {
		return s
	}
	return col + s + diag.ColorClear
}

func (e *IntLit) lisp(p *lispPrinter, indent int) {
	p.line(indent, p.colored(diag.ColorCyan, fmt.Sprintf("%d", e.Value)))
}

func (e *FloatLit) lisp(p *lispPrinter, indent int) {
	p.line(indent, p.colored(diag.ColorCyan, fmt.Sprintf("%g", e.Value)))
}

func (e *TextLit) lisp(p *lispPrinter, indent int) {
	p.line(indent, p.colored(diag.ColorGreen, fmt.Sprintf("%q", e.Value)))
}

func (e *BoolLit) lisp(p *lispPrinter, indent int) {
	p.line(indent, p.colored(diag.ColorCyan, fmt.Sprintf("%t", e.Value)))
}

func (e *Ident) lisp(p *lispPrinter, indent int) {
	p.line(indent, p.colored(diag.ColorWarn, e.Name))
}

func (e *Binary) lisp(p *lispPrinter, indent int) {
	p.line(indent, "("+lexer.Literal(e.Op.Kind))
	e.Left.lisp(p, indent+1)
	e.Right.lisp(p, indent+1)
	p.line(indent, ")")
}

func (e *Unary) lisp(p *lispPrinter, indent int) {
	p.line(indent, "("+lexer.Literal(e.Op.Kind))
	e.Operand.lisp(p, indent+1)
	p.line(indent, ")")
}

func (e *Block) lisp(p *lispPrinter, indent int) {
	p.line(indent, "{")
	e.Inner.lisp(p, indent+1)
	p.line(indent, "}")
}

func (e *Call) lisp(p *lispPrinter, indent int) {
	p.line(indent, "(call")
	e.Callee.lisp(p, indent+1)
	for _, a := range e.Args {
		a.lisp(p, indent+1)
	}
	p.line(indent, ")")
}

func (e *Property) lisp(p *lispPrinter, indent int) {
	p.line(indent, "(."+e.Name)
	e.Object.lisp(p, indent+1)
	p.line(indent, ")")
}

func (e *If) lisp(p *lispPrinter, indent int) {
	p.line(indent, "(if")
	e.Cond.lisp(p, indent+1)
	e.Then.lisp(p, indent+1)
	for _, ei := range e.ElseIfs {
		p.line(indent, " elif")
		ei.Cond.lisp(p, indent+1)
		ei.Body.lisp(p, indent+1)
	}
	if e.Else != nil {
		p.line(indent, " else")
		e.Else.lisp(p, indent+1)
	}
	p.line(indent, ")")
}

func (e *Loop) lisp(p *lispPrinter, indent int) {
	p.line(indent, "(loop")
	if e.Body != nil {
		e.Body.lisp(p, indent+1)
	}
	p.line(indent, ")")
}

func (e *Break) lisp(p *lispPrinter, indent int) {
	p.line(indent, "(break")
	if e.Value != nil {
		e.Value.lisp(p, indent+1)
	}
	p.line(indent, ")")
}
