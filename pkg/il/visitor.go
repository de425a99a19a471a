package il

// Visitor is implemented by passes that walk an IL tree without mutating its
// shape (type inference instead mutates in place via SetType and does not
// need this interface). The per-target transformers do not use Walk; each
// traverses the tree with its own type switch.
type Visitor interface {
	// Visit is called for every node in a pre-order walk. Returning a nil
	// Visitor for a node stops descent into its children.
	Visit(n Node) Visitor
}

// Walk traverses an IL tree in pre-order, calling v.Visit at each node.
// It covers every declaration and statement variant. Among expressions it
// descends into the core operators, member/element access, calls, `new`,
// lambdas, array literals and the bit-ops domain nodes; any other expression
// variant is visited itself but its operands are not walked.
func Walk(v Visitor, n Node) {
	if n == nil || v == nil {
		return
	}
	v = v.Visit(n)
	if v == nil {
		return
	}
	switch t := n.(type) {
	case *Module:
		for _, d := range t.Decls {
			Walk(v, d)
		}
	case *Class:
		for _, m := range t.Members {
			Walk(v, m)
		}
	case *Method:
		if t.Body != nil {
			Walk(v, t.Body)
		}
	case *Field:
		if t.Init != nil {
			Walk(v, t.Init)
		}
	case *StaticInit:
		Walk(v, t.Body)
	case *Function:
		Walk(v, t.Body)
	case *Constant:
		Walk(v, t.Value)
	case *Export:
		Walk(v, t.Decl)
	case *Block:
		for _, s := range t.Stmts {
			Walk(v, s)
		}
	case *VarDecl:
		if t.Init != nil {
			Walk(v, t.Init)
		}
	case *ExprStmt:
		Walk(v, t.X)
	case *Return:
		if t.Value != nil {
			Walk(v, t.Value)
		}
	case *If:
		Walk(v, t.Cond)
		Walk(v, t.Then)
		if t.Else != nil {
			Walk(v, t.Else)
		}
	case *While:
		Walk(v, t.Cond)
		Walk(v, t.Body)
	case *DoWhile:
		Walk(v, t.Cond)
		Walk(v, t.Body)
	case *For:
		if t.Init != nil {
			Walk(v, t.Init)
		}
		if t.Cond != nil {
			Walk(v, t.Cond)
		}
		if t.Update != nil {
			Walk(v, t.Update)
		}
		Walk(v, t.Body)
	case *ForOf:
		Walk(v, t.Iterable)
		Walk(v, t.Body)
	case *Throw:
		Walk(v, t.Value)
	case *TryCatchFinally:
		Walk(v, t.Try)
		for _, c := range t.Catches {
			Walk(v, c.Body)
		}
		if t.Finally != nil {
			Walk(v, t.Finally)
		}
	case *Switch:
		Walk(v, t.Subject)
		for _, c := range t.Cases {
			for _, p := range c.Patterns {
				Walk(v, p)
			}
			Walk(v, c.Body)
		}
		if t.Default != nil {
			Walk(v, t.Default)
		}
	case *Binary:
		Walk(v, t.Left)
		Walk(v, t.Right)
	case *Unary:
		Walk(v, t.Operand)
	case *Assign:
		Walk(v, t.Target)
		Walk(v, t.Value)
	case *Conditional:
		Walk(v, t.Cond)
		Walk(v, t.Then)
		Walk(v, t.Else)
	case *Sequence:
		for _, e := range t.Exprs {
			Walk(v, e)
		}
	case *Parenthesised:
		Walk(v, t.Inner)
	case *MemberAccess:
		Walk(v, t.Target)
	case *ElementAccess:
		Walk(v, t.Target)
		Walk(v, t.Index)
	case *Call:
		Walk(v, t.Callee)
		for _, a := range t.Args {
			Walk(v, a)
		}
	case *New:
		for _, a := range t.Args {
			Walk(v, a)
		}
	case *Lambda:
		if t.Body != nil {
			Walk(v, t.Body)
		}
		if t.Expr != nil {
			Walk(v, t.Expr)
		}
	case *ArrayLit:
		for _, e := range t.Elems {
			Walk(v, e)
		}
	case *RotateLeft:
		Walk(v, t.Value)
		Walk(v, t.Amount)
	case *RotateRight:
		Walk(v, t.Value)
		Walk(v, t.Amount)
	case *PackBytes:
		for _, b := range t.Bytes {
			Walk(v, b)
		}
	case *UnpackBytes:
		Walk(v, t.Value)
	case *HexDecode:
		Walk(v, t.HexString)
	case *HexEncode:
		Walk(v, t.Bytes)
	case *ArrayXor:
		Walk(v, t.A)
		Walk(v, t.B)
	case *SecureCompare:
		Walk(v, t.A)
		Walk(v, t.B)
		if t.Len != nil {
			Walk(v, t.Len)
		}
	}
}
