package bufcheck

import (
	"fmt"

	"ppbuf/internal/pptoken"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

// Check runs the structural checks listed in the package doc against buf
// and returns every
// violation found — it does not stop at the first one, so a single run
// surfaces the whole picture.
func Check(buf *pptoken.TokenBuffer) []error {
	var errs []error

	if len(buf.ExpandedTokens) == 0 {
		errs = append(errs, fmt.Errorf("expanded stream is empty"))
		return errs
	}
	if last := buf.ExpandedTokens[len(buf.ExpandedTokens)-1]; last.Kind != token.EOF {
		errs = append(errs, fmt.Errorf("expanded stream must end in EOF, ends in %v", last.Kind))
	}
	for i, t := range buf.ExpandedTokens[:len(buf.ExpandedTokens)-1] {
		if t.Kind == token.EOF {
			errs = append(errs, fmt.Errorf("expanded[%d]: EOF before the final token", i))
		}
	}

	for fid, mf := range buf.Files {
		errs = append(errs, checkFile(fid, mf)...)
	}
	return errs
}

func checkFile(fid source.FileID, mf *pptoken.MarkedFile) []error {
	var errs []error
	errf := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("file %d: "+format, append([]any{fid}, args...)...))
	}

	for _, t := range mf.SpelledTokens {
		if t.Kind == token.EOF {
			errf("SpelledTokens must never contain EOF")
			break
		}
	}

	prevSpelled, prevExpanded := -1, -1
	for i, m := range mf.Mappings {
		if m.BeginSpelled > m.EndSpelled {
			errf("mapping %d: BeginSpelled %d > EndSpelled %d", i, m.BeginSpelled, m.EndSpelled)
		}
		if m.BeginExpanded > m.EndExpanded {
			errf("mapping %d: BeginExpanded %d > EndExpanded %d", i, m.BeginExpanded, m.EndExpanded)
		}
		if m.BeginSpelled == m.EndSpelled {
			errf("mapping %d: empty spelled side is forbidden", i)
		}
		if m.BeginSpelled < prevSpelled {
			errf("mapping %d: spelled side out of order (begin %d < previous %d)", i, m.BeginSpelled, prevSpelled)
		}
		if m.BeginExpanded < prevExpanded {
			errf("mapping %d: expanded side out of order (begin %d < previous %d)", i, m.BeginExpanded, prevExpanded)
		}
		prevSpelled, prevExpanded = m.EndSpelled, m.EndExpanded
	}

	if mf.BeginExpanded > mf.EndExpanded {
		errf("BeginExpanded %d > EndExpanded %d", mf.BeginExpanded, mf.EndExpanded)
	}

	return errs
}
