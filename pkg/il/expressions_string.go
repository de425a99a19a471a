package il

// StringPartKind discriminates the two alternating member kinds of a
// StringInterpolation's Parts slice.
type StringPartKind int

const (
	StringPart StringPartKind = iota
	ExpressionPart
)

// InterpPart is one segment of a template literal.
type InterpPart struct {
	Kind StringPartKind
	Str  string // set when Kind == StringPart
	Expr Expr   // set when Kind == ExpressionPart
}

// StringInterpolation is the lowered form of a template literal: parts
// alternate literal text and embedded expressions.
type StringInterpolation struct {
	typedBase
	Parts []InterpPart
}

// StringUnaryOp is embedded by the many single-string-argument helpers below.
type StringUnaryOp struct {
	Target Expr
}

// NewStringUnaryOp constructs the shared Target field group used by
// StringTrim/StringToLower/StringToUpper.
func NewStringUnaryOp(target Expr) StringUnaryOp {
	return StringUnaryOp{Target: target}
}

type StringTrim struct {
	typedBase
	StringUnaryOp
}

type StringToLower struct {
	typedBase
	StringUnaryOp
}

type StringToUpper struct {
	typedBase
	StringUnaryOp
}

// StringSplit is `s.split(sep)`.
type StringSplit struct {
	typedBase
	Target Expr
	Sep    Expr
}

// StringJoinChars is `arr.join(sep)` over characters (distinct from
// ArrayJoin when the source type is known to be a char array).
type StringJoinChars struct {
	typedBase
	Array Expr
	Sep   Expr
}

// StringRepeat is `s.repeat(n)`.
type StringRepeat struct {
	typedBase
	Target Expr
	Count  Expr
}

// StringReplace is `s.replace(pattern, repl)` (all-occurrences semantics;
// the lowerer distinguishes replaceAll vs replace at the call-recognition
// step and both map to this node since IL does not model regex).
type StringReplace struct {
	typedBase
	Target  Expr
	Pattern Expr
	Repl    Expr
}

// StringSlice is `s.slice(start, end?)`.
type StringSlice struct {
	typedBase
	Target Expr
	Start  Expr
	End    Expr
}

// StringSubstring is `s.substring(start, end?)`.
type StringSubstring struct {
	typedBase
	Target Expr
	Start  Expr
	End    Expr
}

// StringCharCodeAt is `s.charCodeAt(i)`.
type StringCharCodeAt struct {
	typedBase
	Target Expr
	Index  Expr
}

// StringCharAt is `s.charAt(i)` / `s[i]`.
type StringCharAt struct {
	typedBase
	Target Expr
	Index  Expr
}

// StringIndexOf is `s.indexOf(sub)`.
type StringIndexOf struct {
	typedBase
	Target Expr
	Sub    Expr
}

// StringIncludes is `s.includes(sub)`.
type StringIncludes struct {
	typedBase
	Target Expr
	Sub    Expr
}

// StringStartsWith is `s.startsWith(sub)`.
type StringStartsWith struct {
	typedBase
	Target Expr
	Sub    Expr
}

// StringEndsWith is `s.endsWith(sub)`.
type StringEndsWith struct {
	typedBase
	Target Expr
	Sub    Expr
}

// StringConcat is `a.concat(b)` / `a + b` on two known-string operands.
type StringConcat struct {
	typedBase
	A, B Expr
}

// StringFromCharCodes is `String.fromCharCode(...codes)`.
type StringFromCharCodes struct {
	typedBase
	Codes []Expr
}

// StringToBytes decodes a string to its byte sequence using the source
// runtime's default text encoding.
type StringToBytes struct {
	typedBase
	Target Expr
}

// BytesToString encodes a byte sequence back to a string.
type BytesToString struct {
	typedBase
	Bytes Expr
}
