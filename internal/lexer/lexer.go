package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/text"
)

// Tokenizer scans one source file. Diagnostics go to the reporter; the
// scanner keeps going past recoverable problems (a bad type hint, a bad
// escape) so one run can surface several of them.
type Tokenizer struct {
	filename string
	src      string
	i        int
	rep      *diag.Reporter
}

// New builds a tokenizer over src.
func New(filename, src string, rep *diag.Reporter) *Tokenizer {
	return &Tokenizer{filename: filename, src: src, rep: rep}
}

// Tokenize scans the whole source and returns the token list, without a
// trailing EOF token (the parser appends its own sentinel). It returns
// nil when an error was reported from a path that cannot yield a valid
// token; recoverable errors leave the stream intact but counted.
func (t *Tokenizer) Tokenize() []Token {
	tokens := []Token{}
	for !t.eof() {
		start := t.i
		b := t.src[t.i]
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			t.i++
		case b == '/' && t.peek(1) == '/':
			for !t.eof() && t.src[t.i] != '\n' {
				t.i++
			}
		case b == '/' && t.peek(1) == '*':
			if !t.skipBlockComment() {
				return nil
			}
		case b == '-' && t.peek(1) == '>':
			t.i += 2
			tokens = append(tokens, t.token(TokenArrow, start))
		case b == '0' && t.peek(1) == 'x':
			tokens = append(tokens, t.scanPrefixedInt(start, "an hexadecimal", 16, isHexDigit))
		case b == '0' && t.peek(1) == 'o':
			tokens = append(tokens, t.scanPrefixedInt(start, "an octal", 8, isOctalDigit))
		case b == '0' && t.peek(1) == 'b':
			tokens = append(tokens, t.scanPrefixedInt(start, "a binary", 2, isBinaryDigit))
		case b == '.' && isDigit(t.peek(1)):
			tokens = append(tokens, t.scanLeadingDotFloat(start))
		case isDigit(b):
			tokens = append(tokens, t.scanNumber(start))
		case strings.HasPrefix(t.src[t.i:], "true"):
			t.i += len("true")
			tokens = append(tokens, t.boolToken(start, true))
		case strings.HasPrefix(t.src[t.i:], "false"):
			t.i += len("false")
			tokens = append(tokens, t.boolToken(start, false))
		case isIdentStart(b):
			tokens = append(tokens, t.scanIdentOrKeyword(start))
		case b == '\'':
			tok, ok := t.scanTextLiteral(start)
			if !ok {
				return nil
			}
			tokens = append(tokens, tok)
		default:
			kind, ok := t.scanOperator(b)
			if !ok {
				t.rep.Error(fmt.Sprintf("Unrecognized character %q", rune(b)),
					diag.Note{Span: t.span(start, start+1)})
				return nil
			}
			tokens = append(tokens, t.token(kind, start))
		}
	}
	return tokens
}

func (t *Tokenizer) eof() bool {
	return t.i >= len(t.src)
}

// peek returns the byte delta positions ahead of the cursor, or 0 past
// the end of input.
func (t *Tokenizer) peek(delta int) byte {
	j := t.i + delta
	if j < 0 || j >= len(t.src) {
		return 0
	}
	return t.src[j]
}

func (t *Tokenizer) span(start, end int) text.Span {
	return text.NewSpan(t.filename, t.src, text.ByteOffset(start), text.ByteOffset(end))
}

func (t *Tokenizer) token(kind TokenKind, start int) Token {
	return Token{Kind: kind, Span: t.span(start, t.i)}
}

func (t *Tokenizer) boolToken(start int, v bool) Token {
	tok := t.token(TokenBoolLit, start)
	tok.Bool = v
	return tok
}

// skipBlockComment consumes a nestable /* */ comment. At EOF every
// still-open opener is annotated in order, so the user sees exactly
// which comments never closed.
func (t *Tokenizer) skipBlockComment() bool {
	openers := []int{t.i}
	t.i += 2
	depth := 1
	for depth > 0 {
		if t.i+2 > len(t.src) {
			notes := make([]diag.Note, depth)
			for i := 0; i < depth; i++ {
				notes[i] = diag.Note{
					Span:    t.span(openers[i], openers[i]+2),
					Message: fmt.Sprintf("%s unclosed comment started here", ordinal(i+1)),
				}
			}
			plural := ""
			if depth > 1 {
				plural = "s"
			}
			t.rep.Error(fmt.Sprintf("encountered EOF while in a multiline comment (%d unclosed comment%s)", depth, plural), notes...)
			return false
		}
		switch t.src[t.i : t.i+2] {
		case "*/":
			t.i += 2
			depth--
			openers = openers[:depth]
		case "/*":
			openers = append(openers, t.i)
			t.i += 2
			depth++
		default:
			t.i++
		}
	}
	return true
}

// scanTypeHint consumes an optional `_hint` suffix and returns the hint
// text without the underscore. A bare trailing underscore is reported
// and yields an empty hint.
func (t *Tokenizer) scanTypeHint() string {
	if t.eof() || t.src[t.i] != '_' {
		return ""
	}
	underscore := t.i
	t.i++
	start := t.i
	for !t.eof() && isHintChar(t.src[t.i]) {
		t.i++
	}
	if t.i == start {
		t.rep.Error("a trailing underscore is not a valid type hint",
			diag.Note{Span: t.span(underscore, underscore+1)})
		return ""
	}
	return t.src[start:t.i]
}

var intHints = map[string]bool{
	"u8": true, "i8": true, "u16": true, "i16": true, "u32": true,
	"i32": true, "u64": true, "i64": true, "u128": true, "i128": true,
}

var floatHints = map[string]bool{"f32": true, "f64": true}

// checkNumericHint validates a hint against the literal class and
// returns it when acceptable, or empty after reporting.
func (t *Tokenizer) checkNumericHint(isFloat bool, hint string, hintSpan text.Span) string {
	switch {
	case hint == "":
		return ""
	case intHints[hint]:
		if isFloat {
			t.rep.Error("int type hints are invalid for float literals",
				diag.Note{Span: hintSpan, Message: "a valid type would be one of f32, f64"})
			return ""
		}
		return hint
	case floatHints[hint]:
		if !isFloat {
			t.rep.Error("float type hints are invalid for int literals",
				diag.Note{Span: hintSpan, Message: "a valid type would be one of u8, i8, u16, i16, u32, i32, u64, i64, u128, i128"})
			return ""
		}
		return hint
	case (hint[0] == 'u' || hint[0] == 'i' || hint[0] == 'f') && allDigits(hint[1:]):
		class, widths := "integer", "8, 16, 32, 64 and 128"
		if hint[0] == 'f' {
			class, widths = "float", "32 and 64"
		}
		t.rep.Error(fmt.Sprintf("invalid width %s for %s literal", hint[1:], class),
			diag.Note{Span: hintSpan, Message: fmt.Sprintf("valid widths for %ss are %s", class, widths)})
		return ""
	default:
		t.rep.Error(fmt.Sprintf("invalid type hint for number literal: `_%s`", hint),
			diag.Note{Span: hintSpan})
		return ""
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// scanPrefixedInt handles 0x/0o/0b literals plus their optional hint.
func (t *Tokenizer) scanPrefixedInt(start int, article string, base int, digitOK func(byte) bool) Token {
	t.i += 2
	digitsStart := t.i
	for !t.eof() && digitOK(t.src[t.i]) {
		t.i++
	}
	digits := t.src[digitsStart:t.i]

	var val uint64
	if digits == "" {
		t.rep.Error(fmt.Sprintf("%s literal must contain at least one digit", article),
			diag.Note{Span: t.span(start, start+2)})
	} else {
		var err error
		val, err = strconv.ParseUint(digits, base, 64)
		if err != nil {
			t.rep.Error("integer literal is too large",
				diag.Note{Span: t.span(start, t.i)})
			val = 0
		}
	}

	hintStart := t.i
	hint := t.scanTypeHint()
	tok := t.token(TokenIntLit, start)
	tok.Int = val
	tok.TypeHint = t.checkNumericHint(false, hint, t.span(hintStart, t.i))
	return tok
}

// scanNumber handles bare decimal integers and floats. A trailing dot
// with no fraction digits is kept in the literal text; the parser
// recognizes that shape to repair `42.foo`.
func (t *Tokenizer) scanNumber(start int) Token {
	for !t.eof() && isDigit(t.src[t.i]) {
		t.i++
	}
	isFloat := false
	if !t.eof() && t.src[t.i] == '.' {
		isFloat = true
		t.i++
		for !t.eof() && isDigit(t.src[t.i]) {
			t.i++
		}
	}
	lit := t.src[start:t.i]

	hintStart := t.i
	hint := t.scanTypeHint()
	hintSpan := t.span(hintStart, t.i)

	if isFloat {
		val, _ := strconv.ParseFloat(lit, 64)
		tok := t.token(TokenFloatLit, start)
		tok.Float = val
		tok.TypeHint = t.checkNumericHint(true, hint, hintSpan)
		return tok
	}

	val, err := strconv.ParseUint(lit, 10, 64)
	if err != nil {
		t.rep.Error("integer literal is too large",
			diag.Note{Span: t.span(start, start+len(lit))})
		val = 0
	}
	tok := t.token(TokenIntLit, start)
	tok.Int = val
	tok.TypeHint = t.checkNumericHint(false, hint, hintSpan)
	return tok
}

// scanLeadingDotFloat lexes `.digits` as a float while reporting that a
// float literal needs an integer part, suggesting the `0` prefix.
func (t *Tokenizer) scanLeadingDotFloat(start int) Token {
	t.i++ // '.'
	for !t.eof() && isDigit(t.src[t.i]) {
		t.i++
	}
	lit := "0" + t.src[start:t.i]

	hintStart := t.i
	hint := t.scanTypeHint()
	hintSpan := t.span(hintStart, t.i)

	val, _ := strconv.ParseFloat(lit, 64)
	tok := t.token(TokenFloatLit, start)
	tok.Float = val
	tok.TypeHint = t.checkNumericHint(true, hint, hintSpan)
	t.rep.Error("a float literal must have an integer part",
		diag.Note{
			Span:    t.span(start, start+len(lit)-1),
			Message: fmt.Sprintf("help: add a `0` before it: %s", lit),
		})
	return tok
}

func (t *Tokenizer) scanIdentOrKeyword(start int) Token {
	t.i++
	for !t.eof() && isIdentPart(t.src[t.i]) {
		t.i++
	}
	ident := t.src[start:t.i]
	if kind, ok := keywordTables[language][ident]; ok {
		return t.token(kind, start)
	}
	tok := t.token(TokenIdent, start)
	tok.Text = ident
	return tok
}

// scanOperator maps punctuation and operator spellings, applying the
// `=`-doubling and `**` rules.
func (t *Tokenizer) scanOperator(b byte) (TokenKind, bool) {
	switch b {
	case '(', ')', '[', ']', '{', '}', ';', '.', ':', ',':
		t.i++
		return singleCharKinds[b], true
	case '!', '/', '+', '-', '=', '<', '>':
		t.i++
		if !t.eof() && t.src[t.i] == '=' {
			t.i++
			return eqSuffixedKinds[b], true
		}
		return singleOperatorKinds[b], true
	case '*':
		t.i++
		isExp := !t.eof() && t.src[t.i] == '*'
		if isExp {
			t.i++
		}
		hasEq := !t.eof() && t.src[t.i] == '='
		if hasEq {
			t.i++
		}
		switch {
		case isExp && hasEq:
			return TokenExpEq, true
		case isExp:
			return TokenExp, true
		case hasEq:
			return TokenStarEq, true
		default:
			return TokenStar, true
		}
	default:
		return 0, false
	}
}

var singleCharKinds = map[byte]TokenKind{
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	';': TokenSemi,
	'.': TokenDot,
	':': TokenColon,
	',': TokenComma,
}

var eqSuffixedKinds = map[byte]TokenKind{
	'!': TokenNeq,
	'/': TokenSlashEq,
	'+': TokenPlusEq,
	'-': TokenMinusEq,
	'=': TokenEqEq,
	'<': TokenLeq,
	'>': TokenGeq,
}

var singleOperatorKinds = map[byte]TokenKind{
	'!': TokenNot,
	'/': TokenSlash,
	'+': TokenPlus,
	'-': TokenMinus,
	'=': TokenEq,
	'<': TokenLt,
	'>': TokenGt,
}

// scanTextLiteral lexes a '…' literal with the escape grammar, then an
// optional _char/_string hint. The second result is false when lexing
// cannot continue.
func (t *Tokenizer) scanTextLiteral(start int) (Token, bool) {
	t.i++ // opening quote
	var contents strings.Builder
	for {
		if t.eof() {
			t.rep.Error("encountered EOF while reading a text literal",
				diag.Note{Span: t.span(start, start+1), Message: "string was started here"})
			return Token{}, false
		}
		c := t.src[t.i]
		if c == '\'' {
			t.i++
			break
		}
		if c == '\\' {
			escStart := t.i
			expansion, ok := t.readEscape(escStart)
			if !ok {
				t.rep.Error("invalid escape sequence",
					diag.Note{Span: t.span(escStart, escStart+2)})
			}
			contents.WriteString(expansion)
			continue
		}
		contents.WriteByte(c)
		t.i++
	}

	decoded := contents.String()
	beforeHint := t.i
	hint := t.scanTypeHint()
	switch hint {
	case "":
		// no hint, or the trailing-underscore error already reported
	case "char":
		if utf8.RuneCountInString(decoded) != 1 {
			t.rep.Error("text literals tagged as char must be exactly 1 character long",
				diag.Note{Span: t.span(start, t.i)})
			return Token{}, false
		}
	case "string":
		// accepted as-is
	default:
		t.rep.Error(fmt.Sprintf("`_%s` is not a valid type hint for a text literal", hint),
			diag.Note{Span: t.span(beforeHint, t.i)})
		return Token{}, false
	}

	tok := t.token(TokenTextLit, start)
	tok.Text = decoded
	switch hint {
	case "char", "string":
		tok.TypeHint = hint
	}
	return tok, true
}

// readEscape decodes one escape sequence with the cursor on the
// backslash, leaving the cursor past it. A false result means the
// sequence was unrecognized and the caller should report it; error
// paths inside \u{…} report themselves and expand to nothing.
func (t *Tokenizer) readEscape(escStart int) (string, bool) {
	t.i++ // '\'
	if t.eof() {
		// the enclosing literal's EOF handler reports this
		return "", true
	}
	c := t.src[t.i]
	switch c {
	case 'n':
		t.i++
		return "\n", true
	case 't':
		t.i++
		return "\t", true
	case 'r':
		t.i++
		return "\r", true
	case '\\':
		t.i++
		return "\\", true
	case '\'':
		t.i++
		return "'", true
	case '0':
		t.i++
		return "\x00", true
	case 'u':
		t.i++
		return t.readUnicodeEscape(escStart)
	default:
		t.i++
		return "", false
	}
}

func (t *Tokenizer) readUnicodeEscape(escStart int) (string, bool) {
	if t.eof() || t.src[t.i] != '{' {
		t.rep.Error("\\u must be followed by a {",
			diag.Note{Span: t.span(t.i, t.i+1)})
		return "", false
	}
	t.i++
	digitsStart := t.i
	for {
		if t.eof() {
			// let the enclosing literal's EOF handler catch it
			return "", true
		}
		c := t.src[t.i]
		if c == '}' {
			break
		}
		if !isHexDigit(c) {
			msg := "Non-hexadecimal character in Unicode escape"
			if c == '\'' {
				msg = "Unclosed Unicode escape"
			}
			t.rep.Error(msg, diag.Note{Span: t.span(t.i, t.i+1)})
			return "", true
		}
		t.i++
	}
	digits := t.src[digitsStart:t.i]
	t.i++ // '}'

	switch {
	case len(digits) == 0:
		t.rep.Error("Empty Unicode escape",
			diag.Note{Span: t.span(escStart, t.i)})
		return "", true
	case len(digits) > 6:
		t.rep.Error("Unicode escapes have a maximum of 6 hexadecimal digits",
			diag.Note{Span: t.span(escStart, t.i)})
		return "", true
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > utf8.MaxRune {
		t.rep.Error("Unicode escape is not a valid code point",
			diag.Note{Span: t.span(escStart, t.i)})
		return "", true
	}
	return string(rune(v)), true
}

// ordinal renders 1 -> 1st, 2 -> 2nd, 3 -> 3rd by last digit.
func ordinal(n int) string {
	s := strconv.Itoa(n)
	switch s[len(s)-1] {
	case '1':
		return s + "st"
	case '2':
		return s + "nd"
	case '3':
		return s + "rd"
	default:
		return s + "th"
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isHintChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || isDigit(b)
}
