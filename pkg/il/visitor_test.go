package il

import "testing"

type countingVisitor struct {
	seen map[Node]int
}

func (c *countingVisitor) Visit(n Node) Visitor {
	c.seen[n]++
	return c
}

// TestWalkVisitsEachNodeOnce checks that an IL tree built the way the
// lowerer builds one is a strict tree: Walk reaches every node exactly
// once, so no subtree is shared between parents.
func TestWalkVisitsEachNodeOnce(t *testing.T) {
	rot := &RotateLeft{
		Value:  &Identifier{Name: "x"},
		Amount: NewIntLiteral(7),
		Width:  32,
	}
	fn := &Function{
		Name:   "round",
		Params: []Param{{Name: "x"}},
		Body:   &Block{Stmts: []Stmt{&Return{Value: rot}}},
	}
	mod := &Module{Decls: []Decl{fn}}

	v := &countingVisitor{seen: map[Node]int{}}
	Walk(v, mod)

	if v.seen[mod] != 1 || v.seen[fn] != 1 || v.seen[rot] != 1 {
		t.Errorf("expected each node visited once, got %v", v.seen)
	}
	for n, count := range v.seen {
		if count != 1 {
			t.Errorf("node %T visited %d times; the IL must be a strict tree", n, count)
		}
	}
}

// TestWalkStopsOnNilVisitor checks the descent-pruning contract: returning
// nil from Visit stops recursion into that node's children.
func TestWalkStopsOnNilVisitor(t *testing.T) {
	inner := &Identifier{Name: "x"}
	fn := &Function{Name: "f", Body: &Block{Stmts: []Stmt{&Return{Value: inner}}}}
	mod := &Module{Decls: []Decl{fn}}

	visited := map[Node]bool{}
	var v Visitor
	v = visitorFunc(func(n Node) Visitor {
		visited[n] = true
		if _, isFn := n.(*Function); isFn {
			return nil
		}
		return v
	})
	Walk(v, mod)

	if !visited[fn] {
		t.Fatal("expected the Function node itself to be visited")
	}
	if visited[inner] {
		t.Error("descent should have stopped at the Function node")
	}
}

type visitorFunc func(Node) Visitor

func (f visitorFunc) Visit(n Node) Visitor { return f(n) }
