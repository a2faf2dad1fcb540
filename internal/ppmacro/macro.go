package ppmacro

import "ppbuf/internal/pptoken"

// Macro is one `macro` definition: an object-like macro has a nil Params;
// a function-like macro expands only when its name is immediately followed
// by '('.
type Macro struct {
	Name     string
	Params   []string
	Variadic bool
	Body     []pptoken.Token
}

func (m *Macro) isFunctionLike() bool { return m.Params != nil }
