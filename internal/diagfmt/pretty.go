package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ppbuf/internal/diag"
	"ppbuf/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^^^^ по Span, затем Notes с аналогичным форматом,
// затем Fixes (если ShowFixes) и построчный preview применения (если ShowPreview).
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		writeDiagnosticPretty(w, d, fs, opts)
	}
}

func writeDiagnosticPretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path, line, col := locatePretty(fs, d.Primary, opts.PathMode)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, line, col, severityToken(d.Severity, opts.Color), d.Code.ID(), d.Message)

	if opts.Context > 0 {
		writeContext(w, fs, d.Primary, opts.Context)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			npath, nline, ncol := locatePretty(fs, n.Span, opts.PathMode)
			fmt.Fprintf(w, "  note: %s:%d:%d %s\n", npath, nline, ncol, n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fx.Title)
			for _, e := range fx.Edits {
				fmt.Fprintf(w, "    apply=%q\n", e.NewText)
			}
			if opts.ShowPreview {
				writeFixPreview(w, fs, d.Primary.File, fx)
			}
		}
	}
}

func locatePretty(fs *source.FileSet, span source.Span, mode PathMode) (path string, line, col uint32) {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return formatPathForMode(f, fs, mode), start.Line, start.Col
}

func formatPathForMode(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", fs.BaseDir())
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", fs.BaseDir())
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}

func severityToken(sev diag.Severity, useColor bool) string {
	label := sev.String()
	if !useColor {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.RedString(label)
	case diag.SevWarning:
		return color.YellowString(label)
	default:
		return color.CyanString(label)
	}
}

func writeContext(w io.Writer, fs *source.FileSet, span source.Span, context int8) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)

	firstLine := start.Line
	if uint32(context) < start.Line {
		firstLine = start.Line - uint32(context)
	} else {
		firstLine = 1
	}
	lastLine := end.Line + uint32(context)

	for ln := firstLine; ln <= lastLine; ln++ {
		text := f.GetLine(ln)
		if text == "" && ln != start.Line {
			continue
		}
		fmt.Fprintf(w, "  %4d | %s\n", ln, text)
		if ln == start.Line {
			pad := strings.Repeat(" ", int(start.Col)-1)
			width := int(end.Col) - int(start.Col)
			if width < 1 {
				width = 1
			}
			fmt.Fprintf(w, "       | %s%s\n", pad, strings.Repeat("^", width))
		}
	}
}

func writeFixPreview(w io.Writer, fs *source.FileSet, fileID source.FileID, fx diag.Fix) {
	if len(fx.Edits) == 0 {
		return
	}
	file := fs.Get(fileID)
	fmt.Fprintln(w, "    preview:")
	for _, e := range fx.Edits {
		start, _ := fs.Resolve(e.Span)
		before := file.GetLine(start.Line)
		offset := int(start.Col) - 1
		if offset < 0 || offset > len(before) {
			continue
		}
		tail := offset + int(e.Span.End-e.Span.Start)
		if tail > len(before) {
			tail = len(before)
		}
		after := before[:offset] + e.NewText + before[tail:]
		fmt.Fprintf(w, "    - %s\n", before)
		fmt.Fprintf(w, "    + %s\n", after)
	}
}
