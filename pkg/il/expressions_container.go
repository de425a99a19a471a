package il

// ArrayLit is an array literal `[e1, e2, ...]`.
type ArrayLit struct {
	typedBase
	Elems []Expr
}

// ArrayCreation is `new Array(size)` with an optional per-element initializer.
type ArrayCreation struct {
	typedBase
	Size Expr
	Init Expr // nil if zero-valued
}

// TypedArrayCreation is `new UintNArray(size)`.
type TypedArrayCreation struct {
	typedBase
	Width int
	Size  Expr
}

// ObjectEntry is one `key: value` pair of an ObjectLit.
type ObjectEntry struct {
	Key   string
	Value Expr
}

// ObjectLit is a plain-object literal.
type ObjectLit struct {
	typedBase
	Entries []ObjectEntry
}

// MapCreation is `new Map()`.
type MapCreation struct{ typedBase }

// SetCreation is `new Set()`.
type SetCreation struct{ typedBase }

// ArrayLength is `arr.length`.
type ArrayLength struct {
	typedBase
	Array Expr
}

// ArrayAppend is `arr.push(v)`.
type ArrayAppend struct {
	typedBase
	Array Expr
	Value Expr
}

// ArrayPop is `arr.pop()`.
type ArrayPop struct {
	typedBase
	Array Expr
}

// ArrayShift is `arr.shift()`.
type ArrayShift struct {
	typedBase
	Array Expr
}

// ArrayUnshift is `arr.unshift(v)`.
type ArrayUnshift struct {
	typedBase
	Array Expr
	Value Expr
}

// ArraySplice is `arr.splice(start, deleteCount, ...items)`.
type ArraySplice struct {
	typedBase
	Array       Expr
	Start       Expr
	DeleteCount Expr
	Items       []Expr
}

// ArraySlice is `arr.slice(start, end?)`.
type ArraySlice struct {
	typedBase
	Array Expr
	Start Expr
	End   Expr // nil if omitted
}

// ArrayFill is `arr.fill(v)`.
type ArrayFill struct {
	typedBase
	Array Expr
	Value Expr
}

// ArrayClear zero-fills/empties an array in place.
type ArrayClear struct {
	typedBase
	Array Expr
}

// ArrayConcat is `a.concat(b)`.
type ArrayConcat struct {
	typedBase
	A, B Expr
}

// ArrayReverse is `arr.reverse()`.
type ArrayReverse struct {
	typedBase
	Array Expr
}

// ArrayJoin is `arr.join(sep?)`.
type ArrayJoin struct {
	typedBase
	Array Expr
	Sep   Expr // nil for default ","
}

// ArrayIndexOf is `arr.indexOf(v)`.
type ArrayIndexOf struct {
	typedBase
	Array Expr
	Value Expr
}

// ArrayIncludes is `arr.includes(v)`.
type ArrayIncludes struct {
	typedBase
	Array Expr
	Value Expr
}

// CallbackOp is embedded by the higher-order array methods that all share
// the (array, callback) shape.
type CallbackOp struct {
	Array    Expr
	Callback Expr
}

// NewCallbackOp constructs the shared (array, callback) field group used by
// ArrayMap/Filter/ForEach/Find/FindIndex/Reduce/Every/Some.
func NewCallbackOp(array, callback Expr) CallbackOp {
	return CallbackOp{Array: array, Callback: callback}
}

// ArrayMap is `arr.map(cb)`.
type ArrayMap struct {
	typedBase
	CallbackOp
}

// ArrayFilter is `arr.filter(cb)`.
type ArrayFilter struct {
	typedBase
	CallbackOp
}

// ArrayForEach is `arr.forEach(cb)`.
type ArrayForEach struct {
	typedBase
	CallbackOp
}

// ArrayFind is `arr.find(cb)`.
type ArrayFind struct {
	typedBase
	CallbackOp
}

// ArrayFindIndex is `arr.findIndex(cb)`.
type ArrayFindIndex struct {
	typedBase
	CallbackOp
}

// ArrayReduce is `arr.reduce(cb, init?)`.
type ArrayReduce struct {
	typedBase
	CallbackOp
	Init Expr // nil if omitted
}

// ArrayEvery is `arr.every(cb)`.
type ArrayEvery struct {
	typedBase
	CallbackOp
}

// ArraySome is `arr.some(cb)`.
type ArraySome struct {
	typedBase
	CallbackOp
}

// ArraySort is `arr.sort(cmp?)`.
type ArraySort struct {
	typedBase
	Array Expr
	Cmp   Expr // nil for default ordering
}

// ArrayXor is the domain-specific byte-array XOR recognised from the
// source's bit-ops library.
type ArrayXor struct {
	typedBase
	A, B Expr
}

// CopyArray duplicates an array's backing storage.
type CopyArray struct {
	typedBase
	Array Expr
}

// SecureCompare is the domain-specific constant-time byte comparison
// recognised from the source's bit-ops library. Len is nil when the source
// call site supplies only the two byte arrays (fixed-size-tag form). The C
// back end always emits one three-argument call, passing Len or, when it is
// nil, a literal 16; the Ruby and TypeScript helpers compare whole arrays
// and ignore Len.
type SecureCompare struct {
	typedBase
	A, B Expr
	Len  Expr
}
