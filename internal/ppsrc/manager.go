package ppsrc

import (
	"fmt"
	"sort"

	"ppbuf/internal/source"
)

// ExpansionInfo records how a single macro-produced Loc relates back to the
// text that spelled it and to the call site that triggered the expansion.
type ExpansionInfo struct {
	Spelling   Loc // where this token's text actually comes from
	Expansion  Loc // the location of the macro invocation that produced it
	IsArgument bool
}

type fileBlock struct {
	start Loc
	end   Loc // one past the file's EOF loc (EOF loc == end-1)
	file  source.FileID
}

// Manager allocates and resolves Locs. File blocks are allocated once, up
// front, from every file registered in the backing FileSet; macro entries are
// appended on demand as the preprocessor expands macros.
type Manager struct {
	fs        *source.FileSet
	fileBlock []fileBlock // sorted by start
	macroBase Loc
	macros    []ExpansionInfo
	next      Loc
}

// NewManager allocates file blocks for every file currently registered in fs.
// Files must not be added to fs after this call; the Non-goals of this
// package exclude discovering new files mid-run (no include tracking).
func NewManager(fs *source.FileSet) *Manager {
	m := &Manager{fs: fs, next: 1} // 0 is NoLoc
	count := fs.Count()
	for i := 0; i < count; i++ {
		f := fs.Get(source.FileID(i))
		start := m.next
		length := Loc(len(f.Content))
		m.fileBlock = append(m.fileBlock, fileBlock{start: start, end: start + length + 1, file: f.ID})
		m.next = start + length + 1
	}
	m.macroBase = m.next
	return m
}

// FileSet returns the backing source.FileSet.
func (m *Manager) FileSet() *source.FileSet { return m.fs }

// ComposeFileLoc builds the Loc for a given byte offset in file fid.
func (m *Manager) ComposeFileLoc(fid source.FileID, offset uint32) Loc {
	b := m.blockFor(fid)
	return b.start + Loc(offset)
}

// LocForEndOfFile returns the Loc one past the last byte of fid's content.
func (m *Manager) LocForEndOfFile(fid source.FileID) Loc {
	b := m.blockFor(fid)
	return b.end - 1
}

func (m *Manager) blockFor(fid source.FileID) fileBlock {
	for _, b := range m.fileBlock {
		if b.file == fid {
			return b
		}
	}
	panic(fmt.Errorf("ppsrc: unknown file id %d", fid))
}

// IsFileLoc reports whether l denotes a plain file position.
func (m *Manager) IsFileLoc(l Loc) bool {
	return l.Valid() && l < m.macroBase
}

// AllocExpansionLoc reserves a fresh Loc describing one macro-produced
// token, recording how it was spelled and which invocation produced it.
func (m *Manager) AllocExpansionLoc(info ExpansionInfo) Loc {
	l := m.next
	m.next++
	m.macros = append(m.macros, info)
	return l
}

func (m *Manager) macroEntry(l Loc) ExpansionInfo {
	idx := int(l - m.macroBase)
	if idx < 0 || idx >= len(m.macros) {
		panic(fmt.Errorf("ppsrc: loc %d is not a macro entry", l))
	}
	return m.macros[idx]
}

// Decompose resolves l to the file and byte offset it ultimately belongs to,
// recursing through expansion spelling for macro-produced locations.
func (m *Manager) Decompose(l Loc) (source.FileID, uint32, bool) {
	if !l.Valid() {
		return 0, 0, false
	}
	if m.IsFileLoc(l) {
		i := sort.Search(len(m.fileBlock), func(i int) bool { return m.fileBlock[i].end > l })
		if i == len(m.fileBlock) {
			return 0, 0, false
		}
		b := m.fileBlock[i]
		return b.file, uint32(l - b.start), true
	}
	entry := m.macroEntry(l)
	return m.Decompose(entry.Spelling)
}

// SpellingLoc returns the immediate spelling location of l: itself if l is
// already a file location, else the macro entry's recorded spelling.
func (m *Manager) SpellingLoc(l Loc) Loc {
	if m.IsFileLoc(l) {
		return l
	}
	return m.macroEntry(l).Spelling
}

// ExpansionLoc fully resolves l up through nested macro invocations until it
// reaches a file location — the location of the outermost call site.
func (m *Manager) ExpansionLoc(l Loc) Loc {
	for !m.IsFileLoc(l) {
		l = m.macroEntry(l).Expansion
	}
	return l
}

// FileID returns the id of the file that ultimately produced l, resolving
// through the expansion chain first.
func (m *Manager) FileID(l Loc) source.FileID {
	fid, _, _ := m.Decompose(m.ExpansionLoc(l))
	return fid
}

// IsBeforeInTranslationUnit reports whether a was allocated strictly before
// b. File and macro locations share one monotonically increasing space, so
// comparing raw values is sufficient.
func (m *Manager) IsBeforeInTranslationUnit(a, b Loc) bool {
	return a < b
}
