package il

// MemberAccess is a generic `target.name` property read, used for anything
// that is not the special-cased `this.x` (see ThisPropertyAccess).
type MemberAccess struct {
	typedBase
	Target   Expr
	Name     string
	Optional bool // true for `target?.name`
}

// ElementAccess is `target[index]`.
type ElementAccess struct {
	typedBase
	Target Expr
	Index  Expr
}

// ThisPropertyAccess is `this.x` inside a method body, kept distinct from
// MemberAccess so back-ends can map it consistently (`@x`, `self.x`, `_x`).
type ThisPropertyAccess struct {
	typedBase
	PropName string
}

// ThisMethodCall is `this.m(args)` inside a method body.
type ThisMethodCall struct {
	typedBase
	Name string
	Args []Expr
}

// ParentConstructorCall is `super(args)` inside a constructor.
type ParentConstructorCall struct {
	typedBase
	Args []Expr
}

// ParentMethodCall is `super.m(args)`.
type ParentMethodCall struct {
	typedBase
	Name string
	Args []Expr
}

// Super references the bare `super` keyword where a target needs it
// (e.g. as a callee in contexts other than the two calls above).
type Super struct{ typedBase }

// This references the current instance.
type This struct{ typedBase }

// Spread is a `...expr` spread argument or array-literal element.
type Spread struct {
	typedBase
	Arg Expr
}
