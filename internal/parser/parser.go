// Package parser builds expression trees from token streams using
// top-down operator-precedence (Pratt) parsing.
package parser

import (
	"errors"
	"strings"

	"github.com/esclang/escc/internal/ast"
	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/lexer"
	"github.com/esclang/escc/internal/text"
)

// ErrFatalParse is returned when the parser hit an unrecoverable syntax
// error. The diagnostic has already been reported through the sink.
var ErrFatalParse = errors.New("parsing aborted after a fatal syntax error")

// Binding powers, higher binds tighter. The break floor keeps a `;`
// after `break value` from being swallowed into the break value.
const (
	precSemicolon  = 1
	precBreak      = 5
	precLogical    = 10 // reserved for logical operators
	precComparison = 15
	precAddSub     = 20
	precMulDivExp  = 30
	precUnary      = 40
	precCall       = 50
)

type prefixFn func(*Parser, lexer.Token) ast.Expr

type infixFn func(*Parser, ast.Expr, lexer.Token) ast.Expr

// Dispatch tables indexed by token kind. A nil prefix entry means the
// token cannot start an expression; a zero infix precedence means the
// token never continues one. The postfix table is reserved and empty.
//
// These are populated in init() rather than via composite literal
// because the handlers call back into expression(), which reads these
// same tables; a literal initializer would create an initialization
// cycle that the compiler rejects.
var prefixHandlers [lexer.TokenEOF + 1]prefixFn

var infixHandlers [lexer.TokenEOF + 1]infixFn

// postfixHandlers is reserved for postfix operators; nothing registers
// into it yet.
var postfixHandlers [lexer.TokenEOF + 1]infixFn

func init() {
	prefixHandlers[lexer.TokenIntLit] = (*Parser).literal
	prefixHandlers[lexer.TokenFloatLit] = (*Parser).literal
	prefixHandlers[lexer.TokenTextLit] = (*Parser).literal
	prefixHandlers[lexer.TokenBoolLit] = (*Parser).literal
	prefixHandlers[lexer.TokenIdent] = (*Parser).identifier
	prefixHandlers[lexer.TokenLParen] = (*Parser).parenthesized
	prefixHandlers[lexer.TokenLBrace] = (*Parser).block
	prefixHandlers[lexer.TokenNot] = (*Parser).unary
	prefixHandlers[lexer.TokenMinus] = (*Parser).unary
	prefixHandlers[lexer.TokenIf] = (*Parser).ifExpression
	prefixHandlers[lexer.TokenLoop] = (*Parser).loopExpression
	prefixHandlers[lexer.TokenBreak] = (*Parser).breakExpression

	infixHandlers[lexer.TokenSemi] = (*Parser).binary
	infixHandlers[lexer.TokenEqEq] = (*Parser).binary
	infixHandlers[lexer.TokenNeq] = (*Parser).binary
	infixHandlers[lexer.TokenLt] = (*Parser).binary
	infixHandlers[lexer.TokenLeq] = (*Parser).binary
	infixHandlers[lexer.TokenGt] = (*Parser).binary
	infixHandlers[lexer.TokenGeq] = (*Parser).binary
	infixHandlers[lexer.TokenPlus] = (*Parser).binary
	infixHandlers[lexer.TokenMinus] = (*Parser).binary
	infixHandlers[lexer.TokenStar] = (*Parser).binary
	infixHandlers[lexer.TokenSlash] = (*Parser).binary
	infixHandlers[lexer.TokenExp] = (*Parser).binary
	infixHandlers[lexer.TokenLParen] = (*Parser).call
	infixHandlers[lexer.TokenDot] = (*Parser).property
}

var infixPrecedences = [lexer.TokenEOF + 1]int{
	lexer.TokenSemi:   precSemicolon,
	lexer.TokenEqEq:   precComparison,
	lexer.TokenNeq:    precComparison,
	lexer.TokenLt:     precComparison,
	lexer.TokenLeq:    precComparison,
	lexer.TokenGt:     precComparison,
	lexer.TokenGeq:    precComparison,
	lexer.TokenPlus:   precAddSub,
	lexer.TokenMinus:  precAddSub,
	lexer.TokenStar:   precMulDivExp,
	lexer.TokenSlash:  precMulDivExp,
	lexer.TokenExp:    precMulDivExp,
	lexer.TokenLParen: precCall,
	lexer.TokenDot:    precCall,
}

// Parser consumes a token stream once, front to back. The only
// backward move is the single back() re-classifying the current token
// as "cannot start an expression".
type Parser struct {
	tokens []lexer.Token
	cursor int
	rep    *diag.Reporter
}

// fatalParse unwinds the recursive descent to Parse after the first
// unrecoverable error.
type fatalParse struct{}

// New builds a parser over tokens, appending the EOF sentinel. The
// sentinel's span sits at the end of the last token so diagnostics
// about premature input end point somewhere useful.
func New(tokens []lexer.Token, rep *diag.Reporter) *Parser {
	eofSpan := text.NewSpan("<file contained no text>", "", 0, 0)
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1].Span
		eofSpan = text.NewSpan(last.Filename, last.Source, last.End, last.End)
	}
	return &Parser{
		tokens: append(tokens, lexer.Token{Kind: lexer.TokenEOF, Span: eofSpan}),
		rep:    rep,
	}
}

// Parse consumes the meaningful prefix of the token stream and returns
// the expression it covers, or ErrFatalParse after the first
// unrecoverable syntax error.
func (p *Parser) Parse() (expr ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalParse); ok {
				expr, err = nil, ErrFatalParse
				return
			}
			panic(r)
		}
	}()
	return p.expression(0), nil
}

func (p *Parser) next() lexer.Token {
	p.cursor++
	return p.tokens[p.cursor-1]
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.cursor]
}

func (p *Parser) back() {
	p.cursor--
}

// expect consumes the next token, failing fatally unless it has the
// wanted kind. `<ET>` and `<AT>` in message expand to descriptions of
// the expected and actual kinds.
func (p *Parser) expect(kind lexer.TokenKind, message, note string) lexer.Token {
	token := p.next()
	if token.Kind != kind {
		msg := strings.ReplaceAll(message, "<ET>", lexer.Describe(kind))
		msg = strings.ReplaceAll(msg, "<AT>", lexer.Describe(token.Kind))
		p.rep.Error(msg, diag.Note{Span: token.Span, Message: note})
		panic(fatalParse{})
	}
	return token
}

func (p *Parser) infixPrecedence() int {
	return infixPrecedences[p.peek().Kind]
}

// expression parses at the given precedence floor: a prefix handler
// produces the left-hand side, then infix handlers fold in operators
// that bind tighter than level. Handlers recurse with their operator's
// own precedence, so equal precedence nests leftward.
func (p *Parser) expression(level int) ast.Expr {
	token := p.next()
	handler := prefixHandlers[token.Kind]
	if handler == nil {
		p.back()
		p.expect(lexer.TokenEEE, "expected an expression, got <AT>", "")
	}
	left := handler(p, token)
	for level < p.infixPrecedence() {
		token = p.next()
		left = infixHandlers[token.Kind](p, left, token)
	}
	return left
}

// canStartExpression reports whether the upcoming token has a prefix
// handler; loop bodies and break values are optional on this basis.
func (p *Parser) canStartExpression() bool {
	return prefixHandlers[p.peek().Kind] != nil
}

func (p *Parser) literal(token lexer.Token) ast.Expr {
	switch token.Kind {
	case lexer.TokenIntLit:
		return &ast.IntLit{Value: token.Int, TypeHint: token.TypeHint, Source: token.Span}
	case lexer.TokenFloatLit:
		if strings.HasSuffix(token.Span.Content(), ".") && p.peek().Kind == lexer.TokenIdent {
			return p.dottedIntProperty(token)
		}
		return &ast.FloatLit{Value: token.Float, TypeHint: token.TypeHint, Source: token.Span}
	case lexer.TokenTextLit:
		return &ast.TextLit{Value: token.Text, TypeHint: token.TypeHint, Source: token.Span}
	default:
		return &ast.BoolLit{Value: token.Bool, Source: token.Span}
	}
}

// dottedIntProperty repairs `42.foo`: the lexer folded the dot into a
// float literal, but an identifier right after means the user meant a
// method call on the integer. Report, then parse as property access.
func (p *Parser) dottedIntProperty(token lexer.Token) ast.Expr {
	dotSpan := text.NewSpan(token.Span.Filename, token.Span.Source, token.Span.End-1, token.Span.End)
	p.rep.Error("wrap integers in parentheses when calling methods upon them",
		diag.Note{Span: dotSpan})
	intSpan := text.NewSpan(token.Span.Filename, token.Span.Source, token.Span.Start, token.Span.End-1)
	object := &ast.IntLit{Value: uint64(token.Float), TypeHint: token.TypeHint, Source: intSpan}
	name := p.next()
	return &ast.Property{
		Object: object,
		Name:   name.Text,
		Source: text.Merge(token.Span, name.Span),
	}
}

func (p *Parser) identifier(token lexer.Token) ast.Expr {
	return &ast.Ident{Name: token.Text, Source: token.Span}
}

// parenthesized returns the inner expression directly; grouping leaves
// no node behind.
func (p *Parser) parenthesized(lexer.Token) ast.Expr {
	expr := p.expression(0)
	p.expect(lexer.TokenRParen, "expected a closing parenthesis, got <AT>", "")
	return expr
}

func (p *Parser) block(start lexer.Token) ast.Expr {
	expr := p.expression(0)
	end := p.expect(lexer.TokenRBrace, "expected <ET>, got <AT>", "")
	return &ast.Block{Inner: expr, Source: text.Merge(start.Span, end.Span)}
}

func (p *Parser) unary(token lexer.Token) ast.Expr {
	operand := p.expression(precUnary)
	return &ast.Unary{
		Op:      token,
		Operand: operand,
		Source:  text.Merge(token.Span, operand.Span()),
	}
}

// bracedBody parses the `{ expression }` body of an if branch.
func (p *Parser) bracedBody() ast.Expr {
	start := p.expect(lexer.TokenLBrace, "expected <ET>, got <AT>", "")
	return p.block(start)
}

func (p *Parser) ifExpression(token lexer.Token) ast.Expr {
	cond := p.expression(0)
	then := p.bracedBody()
	span := text.Merge(token.Span, then.Span())

	var elseIfs []ast.ElseIf
	var elseBody ast.Expr
	for p.peek().Kind == lexer.TokenElse {
		p.next()
		if p.peek().Kind == lexer.TokenIf {
			p.next()
			elifCond := p.expression(0)
			elifBody := p.bracedBody()
			elseIfs = append(elseIfs, ast.ElseIf{Cond: elifCond, Body: elifBody})
			span = text.Merge(span, elifBody.Span())
			continue
		}
		elseBody = p.bracedBody()
		span = text.Merge(span, elseBody.Span())
		break
	}

	return &ast.If{Cond: cond, Then: then, ElseIfs: elseIfs, Else: elseBody, Source: span}
}

func (p *Parser) loopExpression(token lexer.Token) ast.Expr {
	p.expect(lexer.TokenLBrace, "expected <ET>, got <AT>", "")
	var body ast.Expr
	if p.canStartExpression() {
		body = p.expression(0)
	}
	end := p.expect(lexer.TokenRBrace, "expected <ET>, got <AT>", "")
	return &ast.Loop{Body: body, Source: text.Merge(token.Span, end.Span)}
}

func (p *Parser) breakExpression(token lexer.Token) ast.Expr {
	if !p.canStartExpression() {
		return &ast.Break{Source: token.Span}
	}
	value := p.expression(precBreak)
	return &ast.Break{Value: value, Source: text.Merge(token.Span, value.Span())}
}

func (p *Parser) binary(lhs ast.Expr, token lexer.Token) ast.Expr {
	rhs := p.expression(infixPrecedences[token.Kind])
	return &ast.Binary{
		Left:   lhs,
		Op:     token,
		Right:  rhs,
		Source: text.Merge(lhs.Span(), token.Span, rhs.Span()),
	}
}

// call parses an argument list after an infix `(`. Trailing commas are
// accepted.
func (p *Parser) call(lhs ast.Expr, lparen lexer.Token) ast.Expr {
	var args []ast.Expr
	var end lexer.Token
	if p.peek().Kind == lexer.TokenRParen {
		end = p.next()
	} else {
		for {
			args = append(args, p.expression(0))
			if p.peek().Kind == lexer.TokenComma {
				p.next()
				if p.peek().Kind == lexer.TokenRParen {
					end = p.next()
					break
				}
				continue
			}
			end = p.expect(lexer.TokenRParen, "expected <ET> or ',' in an argument list, got <AT>", "")
			break
		}
	}
	return &ast.Call{
		Callee: lhs,
		Args:   args,
		Source: text.Merge(lhs.Span(), lparen.Span, end.Span),
	}
}

func (p *Parser) property(lhs ast.Expr, _ lexer.Token) ast.Expr {
	name := p.expect(lexer.TokenIdent, "expected <ET> after '.', got <AT>", "")
	return &ast.Property{
		Object: lhs,
		Name:   name.Text,
		Source: text.Merge(lhs.Span(), name.Span),
	}
}
