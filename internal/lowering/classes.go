package lowering

import (
	"github.com/algxlate/algxlate/pkg/il"
	"github.com/algxlate/algxlate/pkg/srcast"
)

// lowerClass handles both top-level class declarations and class
// declarations nested inside an unwrapped module-wrapper body.
func (l *Lowerer) lowerClass(n *srcast.Node) *il.Class {
	class := &il.Class{Name: n.Child("id").Str("name")}
	if super := n.Child("superClass"); super != nil {
		class.SuperClass = super.Str("name")
	}
	body := n.Child("body")
	for _, member := range body.Children("body") {
		switch {
		case member.Is("StaticBlock"):
			class.Members = append(class.Members, &il.StaticInit{Body: l.lowerBlock(member)})
		case member.Is("PropertyDefinition", "ClassProperty"):
			var init il.Expr
			if v := member.Child("value"); v != nil {
				init = l.lowerExpr(v)
			}
			class.Members = append(class.Members, &il.Field{
				Name: member.Child("key").Str("name"),
				Init: init,
			})
		case member.Is("MethodDefinition"):
			class.Members = append(class.Members, l.lowerMethod(member))
		}
	}
	return class
}

func (l *Lowerer) lowerMethod(n *srcast.Node) *il.Method {
	fn := n.Child("value")
	name := n.Child("key").Str("name")
	if n.Str("kind") == "constructor" {
		name = "constructor"
	}
	return &il.Method{
		Name:     name,
		Params:   l.lowerParams(fn.Children("params")),
		Body:     l.lowerFunctionBody(fn),
		IsStatic: n.Bool("static"),
		IsGetter: n.Str("kind") == "get",
		IsSetter: n.Str("kind") == "set",
	}
}
