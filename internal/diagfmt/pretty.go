package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"aslc/internal/diag"
	"aslc/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Faint)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty renders the bag in human-readable form, one diagnostic per
// block:
//
//	path:line:col: ERROR [SEM3002]: identifier 'y' is undeclared
//	    x = y;
//	        ^
//
// Callers are expected to bag.Sort() first for source order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printOne(w, d, fs, opts)
	}
}

func printOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := fmt.Sprintf("[%s]", d.Code.ID())
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", file.Path, start.Line, start.Col, sev, code, d.Message)

	if opts.ShowSource {
		printSourceLine(w, file, start, end, opts)
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			nStart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n", note.Msg, file.Path, nStart.Line, nStart.Col)
		}
	}
}

func printSourceLine(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	// Tabs are expanded so the printed line and the marker agree on
	// column positions; widths are rune-aware.
	fmt.Fprintf(w, "    %s\n", expandTabs(line))

	prefix := substringByCol(line, start.Col)
	pad := runewidth.StringWidth(expandTabs(prefix))

	span := 1
	if end.Line == start.Line && end.Col > start.Col {
		marked := substringRange(line, start.Col, end.Col)
		if width := runewidth.StringWidth(expandTabs(marked)); width > 0 {
			span = width
		}
	}

	marker := "^" + strings.Repeat("~", span-1)
	if opts.Color {
		marker = caretColor.Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), marker)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// substringByCol returns the line prefix before the 1-based column.
func substringByCol(line string, col uint32) string {
	if int(col)-1 <= len(line) {
		return line[:col-1]
	}
	return line
}

// substringRange returns line[startCol-1:endCol-1], clamped.
func substringRange(line string, startCol, endCol uint32) string {
	lo, hi := int(startCol)-1, int(endCol)-1
	if lo > len(line) {
		lo = len(line)
	}
	if hi > len(line) {
		hi = len(line)
	}
	if lo >= hi {
		return ""
	}
	return line[lo:hi]
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	}
	return infoColor
}

// Summary renders the closing "N errors" line.
func Summary(w io.Writer, bag *diag.Bag, useColor bool) {
	errs := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			errs++
		}
	}
	if errs == 0 {
		return
	}
	word := "errors"
	if errs == 1 {
		word = "error"
	}
	line := fmt.Sprintf("%d %s", errs, word)
	if useColor {
		line = errorColor.Sprint(line)
	}
	fmt.Fprintln(w, line)
}
