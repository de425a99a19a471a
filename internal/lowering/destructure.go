package lowering

import "github.com/algxlate/algxlate/pkg/srcast"

// alias records that a bare identifier actually refers to `dep.prop`:
// `const { X, Y } = Dep` is dropped at module scope and later uses of `X`
// are rewritten to `Dep.X`.
type alias struct {
	dep  string
	prop string
}

// registerObjectDestructure records the dep.prop aliasing for every
// property in an object destructuring pattern so lowerExpr can rewrite
// later identifier references.
func (l *Lowerer) registerObjectDestructure(pattern, init *srcast.Node) {
	if l.aliases == nil {
		l.aliases = map[string]alias{}
	}
	depName := init.Str("name")
	for _, prop := range pattern.Children("properties") {
		if prop.Is("RestElement") {
			continue
		}
		key := prop.Child("key")
		value := prop.Child("value")
		localName := value.Str("name")
		if localName == "" {
			localName = key.Str("name")
		}
		l.aliases[localName] = alias{dep: depName, prop: key.Str("name")}
	}
}

// resolveAlias returns the aliased dep.prop MemberAccess for name, if any
// object destructuring registered it.
func (l *Lowerer) resolveAlias(name string) (alias, bool) {
	if l.aliases == nil {
		return alias{}, false
	}
	a, ok := l.aliases[name]
	return a, ok
}
