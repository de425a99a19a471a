// Package srcast defines the Source AST boundary: the shape the external
// parser (out of scope for this module) is expected to hand the lowerer.
// It follows the well-known `type`-tagged node convention shared by
// mainstream ECMAScript-family parsers, so the lowerer can stay robust to
// minor spelling variants between parser implementations.
package srcast

// Node is a parser-produced tree node. Fields are intentionally loose
// (map[string]any-shaped via Props) because the exact field layout is the
// external parser's contract, not this module's — the lowerer only reads
// the handful of fields each recognised idiom needs.
type Node struct {
	Type       string         // e.g. "Program", "CallExpression", "Literal"/"NumericLiteral"
	Loc        Position       // zero value if the parser omitted location info
	Props      map[string]any // all type-specific fields, keyed by the parser's field name
}

// Position is the parser's source-location annotation.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Child returns Props[key] as *Node, or nil if absent or not a node.
func (n *Node) Child(key string) *Node {
	if n == nil || n.Props == nil {
		return nil
	}
	c, _ := n.Props[key].(*Node)
	return c
}

// Children returns Props[key] as []*Node, or nil if absent.
func (n *Node) Children(key string) []*Node {
	if n == nil || n.Props == nil {
		return nil
	}
	c, _ := n.Props[key].([]*Node)
	return c
}

// Str returns Props[key] as a string, or "" if absent.
func (n *Node) Str(key string) string {
	if n == nil || n.Props == nil {
		return ""
	}
	s, _ := n.Props[key].(string)
	return s
}

// Bool returns Props[key] as a bool, or false if absent.
func (n *Node) Bool(key string) bool {
	if n == nil || n.Props == nil {
		return false
	}
	b, _ := n.Props[key].(bool)
	return b
}

// IsProgram reports whether n is the root "Program" node the lowerer
// requires as its entry point.
func (n *Node) IsProgram() bool { return n != nil && n.Type == "Program" }

// Is reports whether n's Type matches any of the given aliases, absorbing
// minor parser-variant spellings (e.g. "Literal" vs "NumericLiteral").
func (n *Node) Is(types ...string) bool {
	if n == nil {
		return false
	}
	for _, t := range types {
		if n.Type == t {
			return true
		}
	}
	return false
}
