package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005

	// Препроцессорные
	PPInfo                  Code = 2000
	PPMacroRedefined        Code = 2001
	PPUnterminatedMacroArgs Code = 2002
	PPArgCountMismatch      Code = 2003
	PPUnknownDirective      Code = 2004
	PPExpectedMacroName     Code = 2005
	PPRecursiveExpansion    Code = 2006

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexTokenTooLong:             "Token too long",
		PPInfo:                      "Preprocessor information",
		PPMacroRedefined:            "Macro redefined with a different body",
		PPUnterminatedMacroArgs:     "Unterminated macro argument list",
		PPArgCountMismatch:          "Macro invoked with wrong number of arguments",
		PPUnknownDirective:          "Unknown preprocessor directive",
		PPExpectedMacroName:         "Expected a macro name after 'macro'",
		PPRecursiveExpansion:        "Macro expansion suppressed to avoid recursion",
		IOLoadFileError:             "I/O load file error",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
