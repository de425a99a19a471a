package common

import (
	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
)

// CtorField is a `this.x = v` assignment observed inside a class
// constructor. Targets whose class shape needs an explicit member list
// (TypeScript field declarations, C struct fields) synthesize one member
// per entry; the Type is the assigned value's inferred type.
type CtorField struct {
	Name string // IL-side property name, naming convention not yet applied
	Type *types.Type
}

// CtorFields walks cls's constructor body and returns every this-assigned
// property, first-assignment order, deduplicated, skipping names already
// declared as explicit Field members.
func CtorFields(cls *il.Class) []CtorField {
	declared := map[string]bool{}
	var ctor *il.Method
	for _, m := range cls.Members {
		switch mem := m.(type) {
		case *il.Field:
			declared[mem.Name] = true
		case *il.Method:
			if mem.Name == "constructor" {
				ctor = mem
			}
		}
	}
	if ctor == nil || ctor.Body == nil {
		return nil
	}

	var out []CtorField
	seen := map[string]bool{}
	record := func(e il.Expr) {
		assign, ok := e.(*il.Assign)
		if !ok {
			return
		}
		prop, ok := assign.Target.(*il.ThisPropertyAccess)
		if !ok || seen[prop.PropName] || declared[prop.PropName] {
			return
		}
		seen[prop.PropName] = true
		out = append(out, CtorField{Name: prop.PropName, Type: assign.Value.Type()})
	}
	var walk func(il.Stmt)
	walk = func(s il.Stmt) {
		switch n := s.(type) {
		case *il.Block:
			for _, inner := range n.Stmts {
				walk(inner)
			}
		case *il.ExprStmt:
			record(n.X)
		case *il.If:
			walk(n.Then)
			if n.Else != nil {
				walk(n.Else)
			}
		case *il.While:
			walk(n.Body)
		case *il.DoWhile:
			walk(n.Body)
		case *il.For:
			walk(n.Body)
		case *il.ForOf:
			walk(n.Body)
		}
	}
	for _, s := range ctor.Body.Stmts {
		walk(s)
	}
	return out
}
