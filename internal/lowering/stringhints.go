package lowering

import "github.com/algxlate/algxlate/pkg/il"

// isStringValued reports whether the lowerer can see that e produces a
// string, used to dispatch the method names Array and String share
// (`slice`, `indexOf`, `includes`) before type inference has run. An
// identifier consults the binding hints recorded when declarations with
// string-valued initialisers were lowered; anything else is judged by its
// own node kind. The check is conservative: an unknown receiver keeps the
// Array reading.
func (l *Lowerer) isStringValued(e il.Expr) bool {
	if id, ok := e.(*il.Identifier); ok {
		return l.stringVars[id.Name]
	}
	return isStringExpr(e)
}

// recordStringHint marks name as string-bound when its initialiser is
// visibly string-valued.
func (l *Lowerer) recordStringHint(name string, init il.Expr) {
	if name == "" || init == nil || !l.isStringValued(init) {
		return
	}
	if l.stringVars == nil {
		l.stringVars = map[string]bool{}
	}
	l.stringVars[name] = true
}

// isStringExpr reports whether a lowered expression's own kind guarantees
// a string result.
func isStringExpr(e il.Expr) bool {
	switch v := e.(type) {
	case *il.Literal:
		return v.Kind == il.LitString
	case *il.StringInterpolation, *il.StringTrim, *il.StringToLower, *il.StringToUpper,
		*il.StringRepeat, *il.StringReplace, *il.StringSlice, *il.StringSubstring,
		*il.StringCharAt, *il.StringConcat, *il.StringFromCharCodes, *il.StringJoinChars,
		*il.BytesToString, *il.HexEncode, *il.ArrayJoin, *il.JSONStringify:
		return true
	case *il.Binary:
		return v.Op == il.OpAdd && (isStringExpr(v.Left) || isStringExpr(v.Right))
	case *il.Parenthesised:
		return isStringExpr(v.Inner)
	case *il.Conditional:
		return isStringExpr(v.Then) && isStringExpr(v.Else)
	}
	return false
}
