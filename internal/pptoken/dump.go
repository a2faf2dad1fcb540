package pptoken

import (
	"fmt"
	"io"
	"strings"

	"ppbuf/internal/ppsrc"
	"ppbuf/internal/token"
)

// Dump renders buf in the stable, test-consumed debug format:
//
//	expanded tokens:
//	  <space-separated texts, EOF omitted>
//	file '<path>'
//	  spelled tokens:
//	    <space-separated texts>
//	  mappings:
//	    ['<spBegin>'_<i>, '<spEnd>'_<j>) => ['<exBegin>'_<k>, '<exEnd>'_<l>)
//
// Files are printed in ascending file-id order.
func Dump(w io.Writer, buf *TokenBuffer) error {
	fmt.Fprintln(w, "expanded tokens:")
	fmt.Fprintf(w, "  %s\n", joinTexts(buf.ExpandedTokens, buf.Mgr, true))

	for _, fid := range buf.order {
		mf := buf.Files[fid]
		path := buf.Mgr.FileSet().Get(fid).Path
		fmt.Fprintf(w, "file '%s'\n", path)
		fmt.Fprintln(w, "  spelled tokens:")
		fmt.Fprintf(w, "    %s\n", joinTexts(mf.SpelledTokens, buf.Mgr, false))
		fmt.Fprintln(w, "  mappings:")
		for _, m := range mf.Mappings {
			fmt.Fprintf(w, "    ['%s'_%d, '%s'_%d) => ['%s'_%d, '%s'_%d)\n",
				boundaryText(mf.SpelledTokens, m.BeginSpelled, buf.Mgr), m.BeginSpelled,
				boundaryText(mf.SpelledTokens, m.EndSpelled, buf.Mgr), m.EndSpelled,
				boundaryText(buf.ExpandedTokens, m.BeginExpanded, buf.Mgr), m.BeginExpanded,
				boundaryText(buf.ExpandedTokens, m.EndExpanded, buf.Mgr), m.EndExpanded,
			)
		}
	}
	return nil
}

func joinTexts(toks []Token, mgr *ppsrc.Manager, skipEOF bool) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		if skipEOF && t.Kind == token.EOF {
			continue
		}
		parts = append(parts, t.Text(mgr))
	}
	return strings.Join(parts, " ")
}

// boundaryText prints the text of the token at idx, or "<eof>" when idx is
// one past the slice's last element (the common case for an End* index).
func boundaryText(toks []Token, idx int, mgr *ppsrc.Manager) string {
	if idx < 0 || idx >= len(toks) {
		return "<eof>"
	}
	return toks[idx].Text(mgr)
}
