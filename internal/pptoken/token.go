package pptoken

import (
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

// Token is a triple {Location, Length, Kind}. Annotation tokens are never
// represented here; Kind is drawn from the language's lexical kind
// enumeration.
type Token struct {
	Loc  ppsrc.Loc
	Len  uint32
	Kind token.Kind
}

// IsSpelled reports whether t's location refers to a real file position.
func (t Token) IsSpelled(mgr *ppsrc.Manager) bool {
	return mgr.IsFileLoc(t.Loc)
}

// Text returns the token's spelling, looked up through the source manager.
// For a spelled token this is the literal source slice; for an expanded
// token it is the slice at the token's immediate spelling location.
func (t Token) Text(mgr *ppsrc.Manager) string {
	fid, off, ok := mgr.Decompose(mgr.SpellingLoc(t.Loc))
	if !ok {
		return ""
	}
	f := mgr.FileSet().Get(fid)
	end := off + t.Len
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	return string(f.Content[off:end])
}

// FileRange projects t onto its spelled file range. It fails with
// ErrNotSpelled for expanded tokens.
func (t Token) FileRange(mgr *ppsrc.Manager) (FileRange, error) {
	if !t.IsSpelled(mgr) {
		return FileRange{}, ErrNotSpelled
	}
	fid, off, _ := mgr.Decompose(t.Loc)
	return FileRange{File: fid, Begin: off, End: off + t.Len}, nil
}

// MergeFileRange builds the FileRange spanning two spelled tokens from the
// same file, in source order.
func MergeFileRange(mgr *ppsrc.Manager, a, b Token) (FileRange, error) {
	ra, err := a.FileRange(mgr)
	if err != nil {
		return FileRange{}, err
	}
	rb, err := b.FileRange(mgr)
	if err != nil {
		return FileRange{}, err
	}
	if ra.File != rb.File {
		return FileRange{}, ErrCrossFile
	}
	if ra.End > rb.Begin {
		return FileRange{}, ErrOutOfOrder
	}
	return FileRange{File: ra.File, Begin: ra.Begin, End: rb.End}, nil
}

// FileRange is a half-open byte range {FileId, BeginOffset, EndOffset} inside
// a single file.
type FileRange struct {
	File  source.FileID
	Begin uint32
	End   uint32
}

// Len returns the range's length in bytes.
func (r FileRange) Len() uint32 { return r.End - r.Begin }

// Text returns the literal source slice covered by r.
func (r FileRange) Text(mgr *ppsrc.Manager) string {
	f := mgr.FileSet().Get(r.File)
	end := r.End
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	return string(f.Content[r.Begin:end])
}

// Span converts r into the equivalent source.Span.
func (r FileRange) Span() source.Span {
	return source.Span{File: r.File, Start: r.Begin, End: r.End}
}

// NewFileRangeLen builds a FileRange from a begin location and a length.
func NewFileRangeLen(mgr *ppsrc.Manager, begin ppsrc.Loc, length uint32) (FileRange, error) {
	fid, off, ok := mgr.Decompose(begin)
	if !ok || !mgr.IsFileLoc(begin) {
		return FileRange{}, ErrNotSpelled
	}
	return FileRange{File: fid, Begin: off, End: off + length}, nil
}

// NewFileRangeBetween builds a FileRange from two locations in the same
// file, requiring begin <= end.
func NewFileRangeBetween(mgr *ppsrc.Manager, begin, end ppsrc.Loc) (FileRange, error) {
	if !mgr.IsFileLoc(begin) || !mgr.IsFileLoc(end) {
		return FileRange{}, ErrNotSpelled
	}
	bfid, boff, _ := mgr.Decompose(begin)
	efid, eoff, _ := mgr.Decompose(end)
	if bfid != efid {
		return FileRange{}, ErrCrossFile
	}
	if boff > eoff {
		return FileRange{}, ErrOutOfOrder
	}
	return FileRange{File: bfid, Begin: boff, End: eoff}, nil
}
