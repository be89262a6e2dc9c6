package diag

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/esclang/escc/internal/text"
)

func span(src string, start, end int) text.Span {
	return text.NewSpan("demo.esc", src, text.ByteOffset(start), text.ByteOffset(end))
}

func TestErrorCountTracksErrorsOnly(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rep := NewReporter(&out, false)

	if rep.ErrorCount() != 0 {
		t.Fatalf("fresh count = %d", rep.ErrorCount())
	}
	rep.Error("first")
	rep.Warning("not counted")
	rep.Info("not counted either")
	rep.Error("second")
	if rep.ErrorCount() != 2 {
		t.Fatalf("count = %d, want 2", rep.ErrorCount())
	}
	rep.ResetErrorCount()
	if rep.ErrorCount() != 0 {
		t.Fatalf("count after reset = %d", rep.ErrorCount())
	}
}

func TestSeverityHeaders(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rep := NewReporter(&out, false)
	rep.Error("boom")
	rep.Warning("careful")
	rep.Info("fyi")
	rep.FatalError("goodbye")

	got := out.String()
	for _, want := range []string{"error: boom", "warning: careful", "info: fyi", "fatal error: goodbye"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestFatalTerminates(t *testing.T) {
	exited := -1
	exitFn = func(code int) { exited = code }
	defer func() { exitFn = os.Exit }()

	var out bytes.Buffer
	NewReporter(&out, false).Fatal("done")
	if exited != 1 {
		t.Fatalf("exit code = %d, want 1", exited)
	}
	if !strings.Contains(out.String(), "fatal error: done") {
		t.Fatalf("output missing fatal header:\n%s", out.String())
	}
}

func TestSingleLineAnnotationRendering(t *testing.T) {
	t.Parallel()

	src := "let x = 5\nlet y = @\nlet z = 7\n"
	var out bytes.Buffer
	rep := NewReporter(&out, false)
	rep.Error("unexpected character", Note{Span: span(src, 18, 19), Message: "remove this"})

	got := out.String()
	wantLines := []string{
		"error: unexpected character",
		"= demo.esc:2:9",
		"1   | let x = 5",
		"2   | let y = @",
		"3   | let z = 7",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "| remove this") {
		t.Fatalf("output missing note line:\n%s", got)
	}
}

func TestMultiLineAnnotationRendering(t *testing.T) {
	t.Parallel()

	src := "aaa\nbbb\nccc\nddd\neee\n"
	var out bytes.Buffer
	rep := NewReporter(&out, true)
	// covers the end of line 2 through the start of line 4
	rep.Warning("wide range", Note{Span: span(src, 5, 13)})

	got := out.String()
	if !strings.Contains(got, "= demo.esc:2:2") {
		t.Fatalf("banner missing:\n%s", got)
	}
	// first line: highlight starts mid-line; interior line fully
	// highlighted; last line: highlight ends mid-line
	for _, want := range []string{
		"b" + ColorHighlight + "bb" + ColorReset + "\n",
		ColorHighlight + "ccc" + ColorReset + "\n",
		ColorHighlight + "d" + ColorReset + "dd\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestContextWindowIsClamped(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "line")
	}
	src := strings.Join(lines, "\n")

	var out bytes.Buffer
	rep := NewReporter(&out, false)
	// annotate line 7 (offset of its first byte: 7*5)
	rep.Error("mid", Note{Span: span(src, 35, 39)})

	got := out.String()
	for _, want := range []string{"5   | line", "6   | line", "9   | line", "10  | line"} {
		if !strings.Contains(got, want) {
			t.Fatalf("window missing %q:\n%s", want, got)
		}
	}
	for _, absent := range []string{"4   | ", "11  | "} {
		if strings.Contains(got, absent) {
			t.Fatalf("window not clamped, found %q:\n%s", absent, got)
		}
	}
}

func TestControlCharactersAreEscaped(t *testing.T) {
	t.Parallel()

	src := "a\x00b\x1bc\x7fd\x05e"
	var out bytes.Buffer
	rep := NewReporter(&out, false)
	rep.Error("controls", Note{Span: span(src, 0, len(src))})

	got := out.String()
	for _, want := range []string{"<NUL>", "<ESC>", "<DEL>", "<ENQ>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestNewlineIsNeverEscaped(t *testing.T) {
	t.Parallel()

	src := "one\ntwo"
	var out bytes.Buffer
	rep := NewReporter(&out, false)
	rep.Error("spans both", Note{Span: span(src, 0, len(src))})

	if strings.Contains(out.String(), "<LF>") || strings.Contains(out.String(), "<0x0A>") {
		t.Fatalf("newline was escaped:\n%s", out.String())
	}
}

func TestMalformedSpanDegradesGracefully(t *testing.T) {
	t.Parallel()

	src := "short"
	var out bytes.Buffer
	rep := NewReporter(&out, false)
	rep.Error("past the end", Note{Span: span(src, 2, 99)})

	if !strings.Contains(out.String(), "short") {
		t.Fatalf("source line not rendered:\n%s", out.String())
	}
}

func TestICETag(t *testing.T) {
	t.Parallel()

	got := ICE("table corrupted")
	if got != "internal compiler error (please report this): table corrupted" {
		t.Fatalf("ICE = %q", got)
	}
}
