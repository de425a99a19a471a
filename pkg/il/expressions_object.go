package il

// ObjectKeys is `Object.keys(o)`.
type ObjectKeys struct {
	typedBase
	Target Expr
}

// ObjectValues is `Object.values(o)`.
type ObjectValues struct {
	typedBase
	Target Expr
}

// ObjectEntries is `Object.entries(o)`.
type ObjectEntries struct {
	typedBase
	Target Expr
}

// ObjectFreeze is `Object.freeze(o)`.
type ObjectFreeze struct {
	typedBase
	Target Expr
}

// JSONParse is `JSON.parse(s)`.
type JSONParse struct {
	typedBase
	Source Expr
}

// JSONStringify is `JSON.stringify(v)`.
type JSONStringify struct {
	typedBase
	Value Expr
}

// ArrayFrom is `Array.from(iterable)`.
type ArrayFrom struct {
	typedBase
	Iterable Expr
}
