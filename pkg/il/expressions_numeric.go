package il

import "github.com/algxlate/algxlate/internal/types"

// Endian discriminates byte order for Pack/Unpack/DataView operations.
type Endian int

const (
	BigEndian Endian = iota
	LittleEndian
)

// RotateLeft rotates Value left by Amount bits within a Width-bit window.
// Width and Endian-adjacent fields are never inferred — the lowerer must
// supply them explicitly.
type RotateLeft struct {
	typedBase
	Value  Expr
	Amount Expr
	Width  int
}

// RotateRight is the mirror of RotateLeft.
type RotateRight struct {
	typedBase
	Value  Expr
	Amount Expr
	Width  int
}

// PackBytes packs a byte sequence into a single Width-bit integer.
type PackBytes struct {
	typedBase
	Bytes  []Expr
	Width  int
	Endian Endian
}

// UnpackBytes is the inverse of PackBytes.
type UnpackBytes struct {
	typedBase
	Value  Expr
	Width  int
	Endian Endian
}

// Cast is an explicit numeric/primitive conversion.
type Cast struct {
	typedBase
	Value      Expr
	TargetType *types.Type
}

// BigIntCast converts a value to the arbitrary-precision integer domain.
type BigIntCast struct {
	typedBase
	Value Expr
}

// MathUnaryOp enumerates the single-operand Math.* functions.
type MathUnaryOp string

const (
	MathFloor MathUnaryOp = "floor"
	MathCeil  MathUnaryOp = "ceil"
	MathRound MathUnaryOp = "round"
	MathAbs   MathUnaryOp = "abs"
	MathSqrt  MathUnaryOp = "sqrt"
	MathSign  MathUnaryOp = "sign"
	MathLog   MathUnaryOp = "log"
	MathLog2  MathUnaryOp = "log2"
	MathLog10 MathUnaryOp = "log10"
	MathExp   MathUnaryOp = "exp"
	MathSin   MathUnaryOp = "sin"
	MathCos   MathUnaryOp = "cos"
	MathTan   MathUnaryOp = "tan"
	MathAsin  MathUnaryOp = "asin"
	MathAcos  MathUnaryOp = "acos"
	MathAtan  MathUnaryOp = "atan"
)

// MathUnary is a single-argument Math function call.
type MathUnary struct {
	typedBase
	Op  MathUnaryOp
	Arg Expr
}

// Min is `Math.min(...args)`.
type Min struct {
	typedBase
	Args []Expr
}

// Max is `Math.max(...args)`.
type Max struct {
	typedBase
	Args []Expr
}

// Power is `a ** b` / `Math.pow(a,b)`.
type Power struct {
	typedBase
	Base Expr
	Exp  Expr
}

// MathConstant is a named constant such as `Math.PI`.
type MathConstant struct {
	typedBase
	Name string
}

// NumberConstant is a named constant such as `Number.MAX_SAFE_INTEGER`.
type NumberConstant struct {
	typedBase
	Name string
}

// IsInteger is `Number.isInteger(v)`.
type IsInteger struct {
	typedBase
	Value Expr
}

// IsNaN is `Number.isNaN(v)`.
type IsNaN struct {
	typedBase
	Value Expr
}

// IsFinite is `Number.isFinite(v)`.
type IsFinite struct {
	typedBase
	Value Expr
}
