// Package lexer tokenizes expression-language source into tagged tokens
// with source spans and decoded literal payloads.
package lexer

import (
	"fmt"
	"strings"

	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/text"
)

// TokenKind identifies the syntactic category of a token.
type TokenKind uint8

// TokenKind values produced by the tokenizer. TokenEEE is a parser-only
// sentinel that never appears in a token stream; it exists to force the
// "expected an expression" diagnostic path.
const (
	TokenIntLit TokenKind = iota
	TokenFloatLit
	TokenTextLit
	TokenBoolLit
	TokenIdent

	TokenLet
	TokenIf
	TokenElse
	TokenFn
	TokenReturn
	TokenConst
	TokenMatch
	TokenType
	TokenContinue
	TokenBreak
	TokenLoop

	TokenEq
	TokenEqEq
	TokenNeq
	TokenLt
	TokenGt
	TokenLeq
	TokenGeq
	TokenPlus
	TokenMinus
	TokenStar
	TokenExp
	TokenSlash
	TokenNot
	TokenPlusEq
	TokenMinusEq
	TokenStarEq
	TokenSlashEq
	TokenExpEq
	TokenSemi
	TokenColon
	TokenDot
	TokenComma
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenArrow

	TokenEEE
	TokenEOF

	tokenKindCount
)

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

var tokenKindNames = [tokenKindCount]string{
	TokenIntLit:   "IntLit",
	TokenFloatLit: "FloatLit",
	TokenTextLit:  "TextLit",
	TokenBoolLit:  "BoolLit",
	TokenIdent:    "Ident",
	TokenLet:      "Let",
	TokenIf:       "If",
	TokenElse:     "Else",
	TokenFn:       "Fn",
	TokenReturn:   "Return",
	TokenConst:    "Const",
	TokenMatch:    "Match",
	TokenType:     "Type",
	TokenContinue: "Continue",
	TokenBreak:    "Break",
	TokenLoop:     "Loop",
	TokenEq:       "Eq",
	TokenEqEq:     "EqEq",
	TokenNeq:      "Neq",
	TokenLt:       "Lt",
	TokenGt:       "Gt",
	TokenLeq:      "Leq",
	TokenGeq:      "Geq",
	TokenPlus:     "Plus",
	TokenMinus:    "Minus",
	TokenStar:     "Star",
	TokenExp:      "Exp",
	TokenSlash:    "Slash",
	TokenNot:      "Not",
	TokenPlusEq:   "PlusEq",
	TokenMinusEq:  "MinusEq",
	TokenStarEq:   "StarEq",
	TokenSlashEq:  "SlashEq",
	TokenExpEq:    "ExpEq",
	TokenSemi:     "Semi",
	TokenColon:    "Colon",
	TokenDot:      "Dot",
	TokenComma:    "Comma",
	TokenLParen:   "LParen",
	TokenRParen:   "RParen",
	TokenLBracket: "LBracket",
	TokenRBracket: "RBracket",
	TokenLBrace:   "LBrace",
	TokenRBrace:   "RBrace",
	TokenArrow:    "Arrow",
	TokenEEE:      "EEE",
	TokenEOF:      "EOF",
}

// Describe returns the phrase used for a token kind in diagnostics, e.g.
// "an integer literal" or "'+='".
func Describe(k TokenKind) string {
	switch k {
	case TokenIntLit:
		return "an integer literal"
	case TokenFloatLit:
		return "a float literal"
	case TokenTextLit:
		return "a string literal"
	case TokenBoolLit:
		return "a boolean literal ('true' or 'false')"
	case TokenIdent:
		return "an identifier"
	case TokenEEE:
		return diag.ICE("you should never see this (TokenEEE)")
	case TokenEOF:
		return "EOF"
	default:
		return "'" + Literal(k) + "'"
	}
}

// Literal returns the source text of a fixed-spelling token kind. It is
// what the structural printer uses as operator labels.
func Literal(k TokenKind) string {
	if int(k) < len(tokenKindLiterals) && tokenKindLiterals[k] != "" {
		return tokenKindLiterals[k]
	}
	return k.String()
}

var tokenKindLiterals = [tokenKindCount]string{
	TokenLet:      "let",
	TokenIf:       "if",
	TokenElse:     "else",
	TokenFn:       "fn",
	TokenReturn:   "return",
	TokenConst:    "const",
	TokenMatch:    "match",
	TokenType:     "type",
	TokenContinue: "continue",
	TokenBreak:    "break",
	TokenLoop:     "loop",
	TokenEq:       "=",
	TokenEqEq:     "==",
	TokenNeq:      "!=",
	TokenLt:       "<",
	TokenGt:       ">",
	TokenLeq:      "<=",
	TokenGeq:      ">=",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenStar:     "*",
	TokenExp:      "**",
	TokenSlash:    "/",
	TokenNot:      "!",
	TokenPlusEq:   "+=",
	TokenMinusEq:  "-=",
	TokenStarEq:   "*=",
	TokenSlashEq:  "/=",
	TokenExpEq:    "**=",
	TokenSemi:     ";",
	TokenColon:    ":",
	TokenDot:      ".",
	TokenComma:    ",",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenLBracket: "[",
	TokenRBracket: "]",
	TokenLBrace:   "{",
	TokenRBrace:   "}",
	TokenArrow:    "->",
	TokenEOF:      "EOF",
}

// Keyword tables per surface language. The language switch predates any
// real localization effort; the French set is partial.
var language = "en"

var keywordTables = map[string]map[string]TokenKind{
	"en": {
		"let":      TokenLet,
		"if":       TokenIf,
		"else":     TokenElse,
		"fn":       TokenFn,
		"return":   TokenReturn,
		"const":    TokenConst,
		"match":    TokenMatch,
		"type":     TokenType,
		"continue": TokenContinue,
		"break":    TokenBreak,
		"loop":     TokenLoop,
	},
	"fr": {
		"si":        TokenIf,
		"fn":        TokenFn,
		"retourner": TokenReturn,
		"let":       TokenLet,
	},
}

// SetLanguage selects the keyword table. Unknown names are ignored.
func SetLanguage(name string) {
	if _, ok := keywordTables[name]; ok {
		language = name
	}
}

// Token is a lexed token. Exactly one payload field is meaningful,
// selected by Kind; TypeHint is set when a literal carried an `_hint`
// suffix.
type Token struct {
	Kind     TokenKind
	Span     text.Span
	Int      uint64
	Float    float64
	Text     string
	Bool     bool
	TypeHint string
}

func (t Token) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<Token %s `%s`", t.Kind, t.Span.Content())
	if t.TypeHint != "" {
		fmt.Fprintf(&b, " [%s]", t.TypeHint)
	}
	switch t.Kind {
	case TokenIntLit:
		fmt.Fprintf(&b, " %d", t.Int)
	case TokenFloatLit:
		fmt.Fprintf(&b, " %g", t.Float)
	case TokenTextLit, TokenIdent:
		fmt.Fprintf(&b, " %q", t.Text)
	case TokenBoolLit:
		fmt.Fprintf(&b, " %t", t.Bool)
	}
	b.WriteString(">")
	return b.String()
}
