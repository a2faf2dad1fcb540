package lexer

import (
	"ppbuf/internal/diag"
	"ppbuf/internal/source"
)

// ReporterAdapter адаптирует *diag.Bag для использования лексером напрямую
// через тонкий интерфейс Reporter, восстанавливая стабильный diag.Code по
// строковому kind.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Report реализует lexer.Reporter.
func (r *ReporterAdapter) Report(kind string, span source.Span, msg string) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(diag.NewError(lexCodeForKind(kind), span, msg))
}

func lexCodeForKind(kind string) diag.Code {
	switch kind {
	case "UnknownChar":
		return diag.LexUnknownChar
	case "BadNumber":
		return diag.LexBadNumber
	case diag.LexUnterminatedString.ID():
		return diag.LexUnterminatedString
	case diag.LexUnterminatedBlockComment.ID():
		return diag.LexUnterminatedBlockComment
	case diag.LexTokenTooLong.ID():
		return diag.LexTokenTooLong
	default:
		return diag.LexInfo
	}
}
