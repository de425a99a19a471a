package lowering

import (
	"strconv"

	"github.com/algxlate/algxlate/pkg/il"
	"github.com/algxlate/algxlate/pkg/srcast"
)

func (l *Lowerer) lowerExprList(nodes []*srcast.Node) []il.Expr {
	out := make([]il.Expr, len(nodes))
	for i, n := range nodes {
		out[i] = l.lowerExpr(n)
	}
	return out
}

// lowerExpr is the central dispatch over source expression kinds.
func (l *Lowerer) lowerExpr(n *srcast.Node) il.Expr {
	if n == nil {
		return nil
	}
	switch {
	case n.Is("Literal", "NumericLiteral", "StringLiteral", "BooleanLiteral", "NullLiteral"):
		return l.lowerLiteral(n)
	case n.Is("BigIntLiteral"):
		return &il.Literal{Kind: il.LitBigInt, Raw: n.Str("value")}
	case n.Is("TemplateLiteral"):
		return l.lowerTemplateLiteral(n)
	case n.Is("Identifier"):
		return l.lowerIdentifier(n)
	case n.Is("ThisExpression"):
		return &il.This{}
	case n.Is("Super"):
		return &il.Super{}
	case n.Is("BinaryExpression", "LogicalExpression"):
		return l.lowerBinary(n)
	case n.Is("UnaryExpression"):
		return l.lowerUnary(n)
	case n.Is("UpdateExpression"):
		return &il.Unary{Op: il.UnaryOp(n.Str("operator")), Operand: l.lowerExpr(n.Child("argument")), Prefix: n.Bool("prefix")}
	case n.Is("AssignmentExpression"):
		return &il.Assign{Target: l.lowerExpr(n.Child("left")), Op: n.Str("operator"), Value: l.lowerExpr(n.Child("right"))}
	case n.Is("ConditionalExpression"):
		return &il.Conditional{Cond: l.lowerExpr(n.Child("test")), Then: l.lowerExpr(n.Child("consequent")), Else: l.lowerExpr(n.Child("alternate"))}
	case n.Is("SequenceExpression"):
		return &il.Sequence{Exprs: l.lowerExprList(n.Children("expressions"))}
	case n.Is("ParenthesizedExpression"):
		return &il.Parenthesised{Inner: l.lowerExpr(n.Child("expression"))}
	case n.Is("SpreadElement"):
		return &il.Spread{Arg: l.lowerExpr(n.Child("argument"))}
	case n.Is("AwaitExpression"):
		return &il.AwaitExpression{Value: l.lowerExpr(n.Child("argument"))}
	case n.Is("YieldExpression"):
		return &il.YieldExpression{Value: l.lowerExpr(n.Child("argument")), Delegate: n.Bool("delegate")}
	case n.Is("MemberExpression"):
		return l.lowerMember(n)
	case n.Is("CallExpression"):
		return l.lowerCall(n)
	case n.Is("NewExpression"):
		return l.lowerNew(n)
	case n.Is("ArrowFunctionExpression", "FunctionExpression"):
		return l.lowerLambda(n)
	case n.Is("ArrayExpression"):
		return &il.ArrayLit{Elems: l.lowerExprList(n.Children("elements"))}
	case n.Is("ObjectExpression"):
		return l.lowerObjectLit(n)
	default:
		l.warnUnhandled(n, "expression")
		return l.placeholder(n)
	}
}

func (l *Lowerer) lowerLiteral(n *srcast.Node) il.Expr {
	if n.Props["value"] == nil && n.Str("raw") == "null" {
		return &il.Literal{Kind: il.LitNull}
	}
	switch v := n.Props["value"].(type) {
	case int64:
		return il.NewIntLiteral(v)
	case int:
		return il.NewIntLiteral(int64(v))
	case float64:
		if v == float64(int64(v)) && n.Str("raw") != "" && !hasDecimalPoint(n.Str("raw")) {
			return il.NewIntLiteral(int64(v))
		}
		return &il.Literal{Kind: il.LitFloat, Float: v}
	case string:
		return &il.Literal{Kind: il.LitString, Str: v}
	case bool:
		return &il.Literal{Kind: il.LitBool, Bool: v}
	case nil:
		return &il.Literal{Kind: il.LitNull}
	}
	return &il.Literal{Kind: il.LitNull}
}

func hasDecimalPoint(raw string) bool {
	for _, c := range raw {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}

// lowerTemplateLiteral rewrites a template literal into a
// StringInterpolation whose parts alternate literal text and expressions.
func (l *Lowerer) lowerTemplateLiteral(n *srcast.Node) il.Expr {
	quasis := n.Children("quasis")
	exprs := n.Children("expressions")
	var parts []il.InterpPart
	for i, q := range quasis {
		cooked := q.Str("cooked")
		if cooked == "" {
			if props, ok := q.Props["value"].(map[string]any); ok {
				if c, ok := props["cooked"].(string); ok {
					cooked = c
				}
			}
		}
		parts = append(parts, il.InterpPart{Kind: il.StringPart, Str: cooked})
		if i < len(exprs) {
			parts = append(parts, il.InterpPart{Kind: il.ExpressionPart, Expr: l.lowerExpr(exprs[i])})
		}
	}
	return &il.StringInterpolation{Parts: parts}
}

// lowerIdentifier resolves destructuring aliases and maps
// `BigInt` as a call-callee is handled in lowerCall; a bare identifier here
// is either a plain binding or an aliased dependency member.
func (l *Lowerer) lowerIdentifier(n *srcast.Node) il.Expr {
	name := n.Str("name")
	if name == "undefined" {
		// The source's `undefined` identifier becomes the target's own
		// null spelling; IL models both as the Null literal.
		return &il.Literal{Kind: il.LitNull}
	}
	if a, ok := l.resolveAlias(name); ok {
		return &il.MemberAccess{Target: &il.Identifier{Name: a.dep}, Name: a.prop}
	}
	return &il.Identifier{Name: name}
}

func (l *Lowerer) lowerBinary(n *srcast.Node) il.Expr {
	op := n.Str("operator")
	if op == "instanceof" {
		return &il.InstanceOfCheck{Value: l.lowerExpr(n.Child("left")), ClassName: n.Child("right").Str("name")}
	}
	return &il.Binary{Op: il.BinaryOp(op), Left: l.lowerExpr(n.Child("left")), Right: l.lowerExpr(n.Child("right"))}
}

func (l *Lowerer) lowerUnary(n *srcast.Node) il.Expr {
	if n.Str("operator") == "typeof" {
		return &il.TypeOfExpression{Value: l.lowerExpr(n.Child("argument"))}
	}
	return &il.Unary{Op: il.UnaryOp(n.Str("operator")), Operand: l.lowerExpr(n.Child("argument")), Prefix: n.Bool("prefix")}
}

func (l *Lowerer) lowerMember(n *srcast.Node) il.Expr {
	obj := n.Child("object")
	if obj.Is("ThisExpression") && !n.Bool("computed") {
		return &il.ThisPropertyAccess{PropName: n.Child("property").Str("name")}
	}
	if obj.Is("Super") {
		return &il.Super{}
	}
	if e := l.recognizeStaticMember(n); e != nil {
		return e
	}
	target := l.lowerExpr(obj)
	if n.Bool("computed") {
		return &il.ElementAccess{Target: target, Index: l.lowerExpr(n.Child("property"))}
	}
	propName := n.Child("property").Str("name")
	if propName == "length" {
		return &il.ArrayLength{Array: target}
	}
	return &il.MemberAccess{Target: target, Name: propName}
}

func (l *Lowerer) lowerCall(n *srcast.Node) il.Expr {
	callee := n.Child("callee")
	args := n.Children("arguments")

	if callee.Is("Identifier") && callee.Str("name") == "BigInt" {
		return l.lowerBigIntCall(args)
	}

	if callee.Is("MemberExpression") {
		obj := callee.Child("object")
		if obj.Is("ThisExpression") && !callee.Bool("computed") {
			return &il.ThisMethodCall{Name: callee.Child("property").Str("name"), Args: l.lowerExprList(args)}
		}
		if obj.Is("Super") {
			return &il.ParentMethodCall{Name: callee.Child("property").Str("name"), Args: l.lowerExprList(args)}
		}
		if e := l.recognizeStaticCall(callee, n); e != nil {
			return e
		}
		if !callee.Bool("computed") {
			target := l.lowerExpr(obj)
			method := callee.Child("property").Str("name")
			if e := l.instanceMethodCall(target, method, args); e != nil {
				return e
			}
			return &il.Call{Callee: &il.MemberAccess{Target: target, Name: method}, Args: l.lowerExprList(args)}
		}
	}

	if callee.Is("Super") {
		return &il.ParentConstructorCall{Args: l.lowerExprList(args)}
	}

	return &il.Call{Callee: l.lowerExpr(callee), Args: l.lowerExprList(args)}
}

// lowerBigIntCall folds `BigInt("0x...")` /
// `BigInt(123)` becomes a literal parsed at lowering time.
func (l *Lowerer) lowerBigIntCall(args []*srcast.Node) il.Expr {
	if len(args) == 0 {
		return &il.Literal{Kind: il.LitBigInt, Raw: "0"}
	}
	arg := args[0]
	if arg.Is("Literal", "StringLiteral") {
		if s, ok := arg.Props["value"].(string); ok {
			if v, err := strconv.ParseInt(s, 0, 64); err == nil {
				return &il.Literal{Kind: il.LitBigInt, Raw: strconv.FormatInt(v, 10)}
			}
			return &il.Literal{Kind: il.LitBigInt, Raw: s}
		}
	}
	if v, ok := arg.Props["value"].(int64); ok {
		return &il.Literal{Kind: il.LitBigInt, Raw: strconv.FormatInt(v, 10)}
	}
	return &il.BigIntCast{Value: l.lowerExpr(arg)}
}

func (l *Lowerer) lowerNew(n *srcast.Node) il.Expr {
	callee := n.Child("callee")
	args := n.Children("arguments")
	name := callee.Str("name")
	switch name {
	case "Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError":
		var msg il.Expr
		if len(args) > 0 {
			msg = l.lowerExpr(args[0])
		}
		return &il.ErrorCreation{ErrKind: il.ErrorKind(name), Message: msg}
	case "Array":
		if len(args) == 1 {
			return &il.ArrayCreation{Size: l.lowerExpr(args[0])}
		}
		return &il.ArrayLit{Elems: l.lowerExprList(args)}
	case "Map":
		return &il.MapCreation{}
	case "Set":
		return &il.SetCreation{}
	case "DataView":
		return &il.DataViewCreation{Buffer: l.lowerExpr(args[0])}
	case "ArrayBuffer":
		return &il.BufferCreation{Size: l.lowerExpr(args[0])}
	case "Uint8Array", "Int8Array":
		return &il.TypedArrayCreation{Width: 8, Size: l.lowerExpr(args[0])}
	case "Uint16Array", "Int16Array":
		return &il.TypedArrayCreation{Width: 16, Size: l.lowerExpr(args[0])}
	case "Uint32Array", "Int32Array":
		return &il.TypedArrayCreation{Width: 32, Size: l.lowerExpr(args[0])}
	case "BigUint64Array", "BigInt64Array":
		return &il.TypedArrayCreation{Width: 64, Size: l.lowerExpr(args[0])}
	}
	return &il.New{TypeName: name, Args: l.lowerExprList(args)}
}

func (l *Lowerer) lowerLambda(n *srcast.Node) il.Expr {
	params := l.lowerParams(n.Children("params"))
	if n.Bool("expression") {
		return &il.Lambda{Params: params, Expr: l.lowerExpr(n.Child("body"))}
	}
	return &il.Lambda{Params: params, Body: l.lowerBlock(n.Child("body"))}
}

func (l *Lowerer) lowerObjectLit(n *srcast.Node) il.Expr {
	var entries []il.ObjectEntry
	for _, p := range n.Children("properties") {
		key := p.Child("key")
		entries = append(entries, il.ObjectEntry{Key: key.Str("name"), Value: l.lowerExpr(p.Child("value"))})
	}
	return &il.ObjectLit{Entries: entries}
}
