package lowering

import "github.com/algxlate/algxlate/pkg/srcast"

// unwrapModuleBody strips module-wrapper idioms: a module
// wrapper is an expression-statement whose callee is a function literal
// (an IIFE), or an invocation with >= 2 args whose second arg is a function
// literal (the factory-arg unwrap idiom, e.g. UMD-style
// `(function(root, factory){...})(this, function(){ ... })`). When found,
// the lowerer descends into the innermost function body that contains
// declarations and lifts them to module scope.
func (l *Lowerer) unwrapModuleBody(body []*srcast.Node) []*srcast.Node {
	for {
		if len(body) != 1 {
			return body
		}
		stmt := body[0]
		if !stmt.Is("ExpressionStatement") {
			return body
		}
		expr := stmt.Child("expression")
		inner, ok := findWrapperBody(expr)
		if !ok {
			return body
		}
		next := inner.Child("body").Children("body")
		if next == nil {
			return body
		}
		body = next
	}
}

// findWrapperBody recognises the two wrapper shapes from the table and
// returns the function literal whose body should be hoisted.
func findWrapperBody(expr *srcast.Node) (*srcast.Node, bool) {
	if expr == nil {
		return nil, false
	}
	switch {
	case expr.Is("FunctionExpression", "ArrowFunctionExpression"):
		// Directly-invoked function literal is itself the IIFE target once
		// unwrapped from its enclosing CallExpression by the caller below;
		// here we handle the case where expr *is* the call.
		return nil, false
	case expr.Is("CallExpression"):
		callee := expr.Child("callee")
		args := expr.Children("arguments")
		if callee.Is("FunctionExpression", "ArrowFunctionExpression") {
			return callee, true
		}
		if len(args) >= 2 {
			if fn := args[1]; fn.Is("FunctionExpression", "ArrowFunctionExpression") {
				return fn, true
			}
		}
	}
	return nil, false
}
