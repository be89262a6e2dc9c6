package lint

import (
	"strings"

	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/lexer"
)

// HexCaseRule warns when hexadecimal integer literals mix digit case
// across a file. The check is collective: a file written consistently
// upper or consistently lower is fine; one warning covers all the
// literals otherwise, labelling each one.
type HexCaseRule struct{}

// ID implements Rule.
func (HexCaseRule) ID() string { return "hex-case" }

// Description implements Rule.
func (HexCaseRule) Description() string {
	return "hexadecimal literals should use one digit case consistently"
}

// Run implements Rule.
func (HexCaseRule) Run(tokens []lexer.Token, rep *diag.Reporter) {
	var hexTokens []lexer.Token
	var digits []string
	for _, tok := range tokens {
		if tok.Kind != lexer.TokenIntLit {
			continue
		}
		content := tok.Span.Content()
		if !strings.HasPrefix(content, "0x") {
			continue
		}
		hexTokens = append(hexTokens, tok)
		digits = append(digits, hexDigits(content))
	}

	all := strings.Join(digits, " ")
	if all == strings.ToLower(all) || all == strings.ToUpper(all) {
		return
	}

	notes := make([]diag.Note, len(hexTokens))
	for i, tok := range hexTokens {
		notes[i] = diag.Note{
			Span:    tok.Span,
			Message: "this literal uses " + caseLabel(digits[i]) + " case",
		}
	}
	rep.Warning("mixed case in hexadecimal literals", notes...)
}

// hexDigits strips the 0x prefix and any type-hint suffix.
func hexDigits(content string) string {
	digits, _, _ := strings.Cut(strings.TrimPrefix(content, "0x"), "_")
	return digits
}

func caseLabel(digits string) string {
	switch {
	case digits == strings.ToUpper(digits):
		return "upper"
	case digits == strings.ToLower(digits):
		return "lower"
	default:
		return "mixed"
	}
}
