package lint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/lexer"
)

func lintSource(t *testing.T, src string) (string, *diag.Reporter) {
	t.Helper()

	var out bytes.Buffer
	rep := diag.NewReporter(&out, false)
	tokens := lexer.New("lint.esc", src, rep).Tokenize()
	require.NotNil(t, tokens, "lexing failed:\n%s", out.String())
	NewDefaultRunner().Run(tokens, rep)
	return out.String(), rep
}

func TestHexCaseWarnsOnMixedCaseAcrossLiterals(t *testing.T) {
	t.Parallel()

	out, rep := lintSource(t, "0xAB + 0xcd")
	require.Equal(t, 0, rep.ErrorCount(), "lint must warn, not error")
	require.Contains(t, out, "mixed case in hexadecimal literals")
	require.Contains(t, out, "this literal uses upper case")
	require.Contains(t, out, "this literal uses lower case")
}

func TestHexCaseWarnsOnMixedCaseWithinOneLiteral(t *testing.T) {
	t.Parallel()

	out, _ := lintSource(t, "0xAb")
	require.Contains(t, out, "mixed case in hexadecimal literals")
	require.Contains(t, out, "this literal uses mixed case")
}

func TestHexCaseConsistentFilesAreQuiet(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"0xAB + 0xCD",
		"0xab + 0xcd",
		"0x12 + 0x34", // digits alone have no case
		"1 + 2",       // no hex at all
		"0o17 + 0b11", // other bases are exempt
	} {
		out, _ := lintSource(t, src)
		require.Empty(t, out, "unexpected output for %q", src)
	}
}

func TestHexCaseIgnoresTypeHintSuffix(t *testing.T) {
	t.Parallel()

	// the hint's lowercase letters must not count as hex digit case
	out, _ := lintSource(t, "0xAB_u16 + 0xCD")
	require.Empty(t, out)

	out, _ = lintSource(t, "0xab_u16 + 0xCD")
	require.Contains(t, out, "mixed case in hexadecimal literals")
}

func TestRunnerRunsConfiguredRulesOnly(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rep := diag.NewReporter(&out, false)
	tokens := lexer.New("lint.esc", "0xAB + 0xcd", rep).Tokenize()
	require.NotNil(t, tokens)

	NewRunner().Run(tokens, rep)
	require.Empty(t, out.String())

	NewRunner(HexCaseRule{}).Run(tokens, rep)
	require.Contains(t, out.String(), "mixed case in hexadecimal literals")
}

func TestHexCaseRuleMetadata(t *testing.T) {
	t.Parallel()

	rule := HexCaseRule{}
	require.Equal(t, "hex-case", rule.ID())
	require.NotEmpty(t, rule.Description())
}
