// Package lint provides token-stream lint checks that run after a
// successful lex, before parsing.
package lint

import (
	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/lexer"
)

// Rule is a lint check over a lexed token stream. Rules report through
// the sink; warnings do not stop compilation.
type Rule interface {
	ID() string
	Description() string
	Run(tokens []lexer.Token, rep *diag.Reporter)
}

// Runner executes lint rules in order.
type Runner struct {
	rules []Rule
}

// NewRunner builds a lint runner from a rule set.
func NewRunner(rules ...Rule) *Runner {
	return &Runner{rules: append([]Rule(nil), rules...)}
}

// NewDefaultRunner builds the default lint rule set.
func NewDefaultRunner() *Runner {
	return NewRunner(
		HexCaseRule{},
	)
}

// Run executes all configured rules against the token stream.
func (r *Runner) Run(tokens []lexer.Token, rep *diag.Reporter) {
	if r == nil {
		return
	}
	for _, rule := range r.rules {
		rule.Run(tokens, rep)
	}
}
