package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/esclang/escc/internal/text"
)

// ANSI SGR fragments. The highlight is reverse video so the faulty
// range stays readable on any terminal background.
const (
	ColorError     = "\x1b[31m"
	ColorWarn      = "\x1b[33m"
	ColorQuote     = "\x1b[34m"
	ColorKeyword   = "\x1b[35m"
	ColorCyan      = "\x1b[36m"
	ColorGreen     = "\x1b[32m"
	ColorHighlight = "\x1b[7m"
	ColorClear     = "\x1b[39m"
	ColorReset     = "\x1b[0m"
)

// contextLines sets the snippet window around an annotated range: it
// starts contextLines lines before the first annotated line and ends,
// exclusive, contextLines lines after the last one.
const contextLines = 3

func (r *Reporter) c(code string) string {
	if !r.color {
		return ""
	}
	return code
}

// renderNote prints the file:line:col banner, a windowed source snippet
// with the annotated range in reverse video, and the optional remark.
func (r *Reporter) renderNote(n Note) {
	li := text.NewLineIndex(n.Span.Source)
	start := li.OffsetToPoint(n.Span.Start)
	end := li.OffsetToPoint(n.Span.End)

	visibleStart := start.Line - contextLines
	visibleEnd := min(end.Line+contextLines, li.LineCount())
	width := max(len(strconv.Itoa(visibleStart)), len(strconv.Itoa(visibleEnd)))

	fmt.Fprintf(r.out, "%s= %s:%d:%d%s\n", r.c(ColorQuote), n.Span.Filename, start.Line+1, start.Column+1, r.c(ColorReset))

	for idx := 0; idx < li.LineCount(); idx++ {
		if idx < visibleStart || idx >= visibleEnd {
			continue
		}
		line, err := li.LineContent(idx)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.out, "%s%-*s | %s", r.c(ColorQuote), width+1, strconv.Itoa(idx+1), r.c(ColorReset))
		if idx < start.Line || idx > end.Line {
			fmt.Fprintln(r.out, r.safe(line))
			continue
		}
		r.renderAnnotatedLine(line, idx, start, end)
	}

	if n.Message != "" {
		gutter := " " + strings.Repeat("*", width+1) + "| "
		fmt.Fprintf(r.out, "%s%s%s%s\n", r.c(ColorQuote), gutter, n.Message, r.c(ColorReset))
	}
}

// renderAnnotatedLine highlights the portion of line intersected by the
// annotated range. Single-line, first, last, and interior lines of a
// multi-line range are each sliced differently.
func (r *Reporter) renderAnnotatedLine(line string, idx int, start, end text.Point) {
	startCol := min(start.Column, len(line))
	endCol := min(end.Column, len(line))

	switch {
	case idx == start.Line && idx == end.Line:
		fmt.Fprint(r.out, r.safe(line[:startCol]))
		fmt.Fprintf(r.out, "%s%s%s", r.c(ColorHighlight), r.safe(line[startCol:endCol]), r.c(ColorReset))
		fmt.Fprintln(r.out, r.safe(line[endCol:]))
	case idx == start.Line:
		fmt.Fprint(r.out, r.safe(line[:startCol]))
		fmt.Fprintf(r.out, "%s%s%s\n", r.c(ColorHighlight), r.safe(line[startCol:]), r.c(ColorReset))
	case idx == end.Line:
		fmt.Fprintf(r.out, "%s%s%s", r.c(ColorHighlight), r.safe(line[:endCol]), r.c(ColorReset))
		fmt.Fprintln(r.out, r.safe(line[endCol:]))
	default:
		fmt.Fprintf(r.out, "%s%s%s\n", r.c(ColorHighlight), r.safe(line), r.c(ColorReset))
	}
}

// controlNames maps C0 control bytes to their mnemonics. Newline is
// absent on purpose: it structures output and is never escaped.
var controlNames = [...]string{
	0x00: "NUL", 0x01: "SOH", 0x02: "STX", 0x03: "ETX",
	0x04: "EOT", 0x05: "ENQ", 0x06: "ACK", 0x07: "BEL",
	0x08: "BS", 0x09: "HT", 0x0B: "VT", 0x0C: "FF",
	0x0D: "CR", 0x0E: "SO", 0x0F: "SI", 0x10: "DLE",
	0x11: "DC1", 0x12: "DC2", 0x13: "DC3", 0x14: "DC4",
	0x15: "NAK", 0x16: "SYN", 0x17: "ETB", 0x18: "CAN",
	0x19: "EM", 0x1A: "SUB", 0x1B: "ESC", 0x1C: "FS",
	0x1D: "GS", 0x1E: "RS", 0x1F: "US",
}

// safe replaces control characters in rendered source with bracketed
// mnemonics so stray escapes cannot corrupt the terminal.
func (r *Reporter) safe(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c == '\n':
			b.WriteRune(c)
		case c < 0x20 && controlNames[c] != "":
			fmt.Fprintf(&b, "%s<%s>%s", r.c(ColorCyan), controlNames[c], r.c(ColorClear))
		case c == 0x7F:
			fmt.Fprintf(&b, "%s<DEL>%s", r.c(ColorCyan), r.c(ColorClear))
		case c < 0x20 || (c >= 0x80 && c <= 0x9F):
			fmt.Fprintf(&b, "%s<0x%02X>%s", r.c(ColorCyan), c, r.c(ColorClear))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
