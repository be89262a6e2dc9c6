package lexer

import (
	"io"
	"testing"

	"github.com/esclang/escc/internal/diag"
)

func FuzzTokenize(f *testing.F) {
	for _, s := range []string{
		"",
		"let x = 1 + 2 * 3;",
		"if a { 1 } else if b { 2 } else { 3 }",
		"0xAB + 0xcd + 0o17 + 0b101",
		"f(1, 2,) ** -g.h",
		"'text \\u{1F600} literal'_string",
		"1_u8 2_f32 3.5_u8 .5 0x_",
		"/* nested /* comment",       // malformed comment
		"'unterminated",              // malformed string
		"loop { break 'x'_char ; }",
	} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		t.Helper()

		// Keep the target responsive; fuzzing should explore shape, not
		// spend cycles on huge blobs.
		if len(src) > 512*1024 {
			t.Skip()
		}

		rep := diag.NewReporter(io.Discard, false)
		tokens := New("fuzz.esc", src, rep).Tokenize()
		if tokens == nil {
			if rep.ErrorCount() == 0 {
				t.Fatal("nil token stream without a reported error")
			}
			return
		}

		prevEnd := 0
		for i, tok := range tokens {
			if !tok.Span.IsValid() {
				t.Fatalf("token[%d] invalid span %s", i, tok.Span)
			}
			if int(tok.Span.Start) < prevEnd {
				t.Fatalf("token spans out of order: prevEnd=%d curStart=%d", prevEnd, tok.Span.Start)
			}
			if int(tok.Span.End) > len(src) {
				t.Fatalf("token[%d] span %s out of bounds (len=%d)", i, tok.Span, len(src))
			}
			if tok.Span.Content() != src[tok.Span.Start:tok.Span.End] {
				t.Fatalf("token[%d] content does not match consumed input", i)
			}
			if tok.Kind == TokenEOF || tok.Kind == TokenEEE {
				t.Fatalf("token[%d] has sentinel kind %s", i, tok.Kind)
			}
			prevEnd = int(tok.Span.End)
		}
	})
}
