package pptoken

// tokenWatcher appends every token the preprocessor produces into an ordered
// sequence. It holds no filtering logic of its own — the Preprocessor
// collaborator is the one that excludes annotation tokens before calling in.
type tokenWatcher struct {
	tokens []Token
}

func (w *tokenWatcher) onToken(t Token) {
	w.tokens = append(w.tokens, t)
}
