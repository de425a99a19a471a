package srcast

import "encoding/json"

// Decode parses a JSON-encoded Source AST — the `type`-tagged shape this
// package's doc comment describes — into a *Node tree. This is the bridge
// between an out-of-process parser (which emits JSON, the common output
// format for mainstream ECMAScript-family parsers) and the in-process
// Source AST boundary the lowerer consumes.
func Decode(data []byte) (*Node, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return convert(raw), nil
}

func convert(raw any) *Node {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	n := &Node{Props: map[string]any{}}
	for k, v := range m {
		switch k {
		case "type":
			n.Type, _ = v.(string)
		case "loc":
			n.Loc = convertPosition(v)
		default:
			n.Props[k] = convertValue(v)
		}
	}
	return n
}

func convertPosition(raw any) Position {
	m, ok := raw.(map[string]any)
	if !ok {
		return Position{}
	}
	// Accept either a flat {line, column, offset} shape or the nested
	// {start: {line, column}} shape some parsers emit.
	if start, ok := m["start"].(map[string]any); ok {
		m = start
	}
	p := Position{}
	if v, ok := m["line"].(float64); ok {
		p.Line = int(v)
	}
	if v, ok := m["column"].(float64); ok {
		p.Column = int(v)
	}
	if v, ok := m["offset"].(float64); ok {
		p.Offset = int(v)
	}
	return p
}

func convertValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if _, hasType := x["type"]; hasType {
			return convert(x)
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = convertValue(e)
		}
		return out
	case []any:
		if allNodes(x) {
			nodes := make([]*Node, len(x))
			for i, e := range x {
				nodes[i] = convert(e)
			}
			return nodes
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = convertValue(e)
		}
		return out
	default:
		return v
	}
}

func allNodes(xs []any) bool {
	if len(xs) == 0 {
		return false
	}
	for _, x := range xs {
		m, ok := x.(map[string]any)
		if !ok {
			return false
		}
		if _, hasType := m["type"]; !hasType {
			return false
		}
	}
	return true
}
