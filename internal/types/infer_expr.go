package types

import "github.com/algxlate/algxlate/pkg/il"

// inferExpr assigns and returns the inferred type for e, recursing into its
// children first. It is the single switch covering every expression variant.
func inferExpr(e il.Expr, scope *Scope) *Type {
	if e == nil {
		return AnyType
	}
	var result *Type
	switch t := e.(type) {
	case *il.Literal:
		result = literalType(t)
	case *il.Identifier:
		result = scope.Lookup(t.Name)
	case *il.Binary:
		l := inferExpr(t.Left, scope)
		r := inferExpr(t.Right, scope)
		result = binaryType(t.Op, l, r)
	case *il.Unary:
		operand := inferExpr(t.Operand, scope)
		result = unaryType(t.Op, operand)
	case *il.Assign:
		inferExpr(t.Target, scope)
		v := inferExpr(t.Value, scope)
		if id, ok := t.Target.(*il.Identifier); ok {
			scope.Widen(id.Name, v)
			v = scope.Lookup(id.Name)
		}
		result = v
	case *il.Conditional:
		inferExpr(t.Cond, scope)
		a := inferExpr(t.Then, scope)
		b := inferExpr(t.Else, scope)
		result = Join(a, b)
	case *il.Sequence:
		for _, x := range t.Exprs {
			result = inferExpr(x, scope)
		}
	case *il.Parenthesised:
		result = inferExpr(t.Inner, scope)
	case *il.MemberAccess:
		inferExpr(t.Target, scope)
		if t.Name == "length" {
			result = Int
		} else {
			result = AnyType
		}
	case *il.ElementAccess:
		arrTy := inferExpr(t.Target, scope)
		inferExpr(t.Index, scope)
		if arrTy != nil && arrTy.Kind == KindArray {
			result = arrTy.Elem
		} else {
			result = AnyType
		}
	case *il.ThisPropertyAccess:
		result = AnyType
	case *il.ThisMethodCall:
		for _, a := range t.Args {
			inferExpr(a, scope)
		}
		result = AnyType
	case *il.ParentConstructorCall:
		for _, a := range t.Args {
			inferExpr(a, scope)
		}
		result = Void
	case *il.ParentMethodCall:
		for _, a := range t.Args {
			inferExpr(a, scope)
		}
		result = AnyType
	case *il.Super, *il.This:
		result = Object
	case *il.Spread:
		result = inferExpr(t.Arg, scope)
	case *il.Call:
		inferExpr(t.Callee, scope)
		for _, a := range t.Args {
			inferExpr(a, scope)
		}
		result = callReturnType(t)
	case *il.New:
		for _, a := range t.Args {
			inferExpr(a, scope)
		}
		result = NewClass(t.TypeName)
	case *il.Lambda:
		lambdaScope := NewScope(scope)
		for i := range t.Params {
			if t.Params[i].Type == nil {
				t.Params[i].Type = AnyType
			}
			lambdaScope.Declare(t.Params[i].Name, t.Params[i].Type)
		}
		if t.Body != nil {
			inferBlock(t.Body, lambdaScope)
			result = NewFunction(paramTypes(t.Params), inferReturnType(t.Body))
		} else {
			r := inferExpr(t.Expr, lambdaScope)
			result = NewFunction(paramTypes(t.Params), r)
		}
	case *il.ArrayLit:
		result = arrayLitType(t, scope)
	case *il.ArrayCreation:
		inferExpr(t.Size, scope)
		if t.Init != nil {
			inferExpr(t.Init, scope)
		}
		result = NewArray(Int)
	case *il.TypedArrayCreation:
		inferExpr(t.Size, scope)
		result = NewTypedArray(t.Width)
	case *il.ObjectLit:
		for i := range t.Entries {
			inferExpr(t.Entries[i].Value, scope)
		}
		result = Object
	case *il.MapCreation:
		result = NewMap(AnyType, AnyType)
	case *il.SetCreation:
		result = NewSet(AnyType)
	case *il.ArrayLength:
		inferExpr(t.Array, scope)
		result = Int
	case *il.ArrayAppend:
		arrTy := inferExpr(t.Array, scope)
		inferExpr(t.Value, scope)
		result = arrTy
	case *il.ArrayPop, *il.ArrayShift:
		result = elemOf(inferArrayOperand(e, scope))
	case *il.ArrayUnshift:
		result = inferArrayOperand(e, scope)
	case *il.ArraySplice:
		result = inferArrayOperand(e, scope)
	case *il.ArraySlice:
		result = inferArrayOperand(e, scope)
	case *il.ArrayFill:
		result = inferArrayOperand(e, scope)
	case *il.ArrayClear:
		result = Void
	case *il.ArrayConcat:
		a := inferExpr(t.A, scope)
		inferExpr(t.B, scope)
		result = a
	case *il.ArrayReverse:
		result = inferArrayOperand(e, scope)
	case *il.ArrayJoin:
		inferExpr(t.Array, scope)
		if t.Sep != nil {
			inferExpr(t.Sep, scope)
		}
		result = String
	case *il.ArrayIndexOf:
		inferExpr(t.Array, scope)
		inferExpr(t.Value, scope)
		result = Int
	case *il.ArrayIncludes:
		inferExpr(t.Array, scope)
		inferExpr(t.Value, scope)
		result = Bool
	case *il.ArrayMap:
		inferExpr(t.Array, scope)
		inferExpr(t.Callback, scope)
		result = NewArray(AnyType)
	case *il.ArrayFilter:
		arrTy := inferExpr(t.Array, scope)
		inferExpr(t.Callback, scope)
		result = arrTy
	case *il.ArrayForEach:
		inferExpr(t.Array, scope)
		inferExpr(t.Callback, scope)
		result = Void
	case *il.ArrayFind:
		inferExpr(t.Array, scope)
		inferExpr(t.Callback, scope)
		result = AnyType
	case *il.ArrayFindIndex:
		inferExpr(t.Array, scope)
		inferExpr(t.Callback, scope)
		result = Int
	case *il.ArrayReduce:
		inferExpr(t.Array, scope)
		inferExpr(t.Callback, scope)
		if t.Init != nil {
			result = inferExpr(t.Init, scope)
		} else {
			result = AnyType
		}
	case *il.ArrayEvery, *il.ArraySome:
		result = Bool
	case *il.ArraySort:
		result = inferArrayOperand(e, scope)
	case *il.ArrayXor:
		inferExpr(t.A, scope)
		inferExpr(t.B, scope)
		result = NewArray(UInt8)
	case *il.SecureCompare:
		inferExpr(t.A, scope)
		inferExpr(t.B, scope)
		if t.Len != nil {
			inferExpr(t.Len, scope)
		}
		result = Bool
	case *il.CopyArray:
		result = inferExpr(t.Array, scope)
	case *il.StringInterpolation:
		for i := range t.Parts {
			if t.Parts[i].Kind == il.ExpressionPart {
				inferExpr(t.Parts[i].Expr, scope)
			}
		}
		result = String
	case *il.StringSplit:
		inferExpr(t.Target, scope)
		inferExpr(t.Sep, scope)
		result = NewArray(String)
	case *il.StringJoinChars:
		inferExpr(t.Array, scope)
		inferExpr(t.Sep, scope)
		result = String
	case *il.StringRepeat:
		inferExpr(t.Target, scope)
		inferExpr(t.Count, scope)
		result = String
	case *il.StringReplace:
		inferExpr(t.Target, scope)
		inferExpr(t.Pattern, scope)
		inferExpr(t.Repl, scope)
		result = String
	case *il.StringSlice:
		inferExpr(t.Target, scope)
		result = String
	case *il.StringSubstring:
		inferExpr(t.Target, scope)
		result = String
	case *il.StringCharCodeAt:
		inferExpr(t.Target, scope)
		inferExpr(t.Index, scope)
		result = Int
	case *il.StringCharAt:
		inferExpr(t.Target, scope)
		inferExpr(t.Index, scope)
		result = String
	case *il.StringIndexOf:
		inferExpr(t.Target, scope)
		inferExpr(t.Sub, scope)
		result = Int
	case *il.StringIncludes, *il.StringStartsWith, *il.StringEndsWith:
		result = Bool
	case *il.StringConcat:
		inferExpr(t.A, scope)
		inferExpr(t.B, scope)
		result = String
	case *il.StringFromCharCodes:
		for _, c := range t.Codes {
			inferExpr(c, scope)
		}
		result = String
	case *il.StringToBytes:
		inferExpr(t.Target, scope)
		result = NewArray(UInt8)
	case *il.BytesToString:
		inferExpr(t.Bytes, scope)
		result = String
	case *il.StringTrim, *il.StringToLower, *il.StringToUpper:
		result = String
	case *il.HexDecode:
		inferExpr(t.HexString, scope)
		result = NewArray(UInt8)
	case *il.HexEncode:
		inferExpr(t.Bytes, scope)
		result = String
	case *il.TypeOfExpression:
		inferExpr(t.Value, scope)
		result = String
	case *il.InstanceOfCheck:
		inferExpr(t.Value, scope)
		result = Bool
	case *il.IsArrayCheck:
		inferExpr(t.Value, scope)
		result = Bool
	case *il.ErrorCreation:
		if t.Message != nil {
			inferExpr(t.Message, scope)
		}
		result = Object
	case *il.AwaitExpression:
		result = inferExpr(t.Value, scope)
	case *il.YieldExpression:
		if t.Value != nil {
			result = inferExpr(t.Value, scope)
		} else {
			result = Void
		}
	case *il.DataViewCreation:
		inferExpr(t.Buffer, scope)
		result = Object
	case *il.DataViewRead:
		inferExpr(t.View, scope)
		inferExpr(t.Offset, scope)
		result = widthToUInt(t.Width)
	case *il.DataViewWrite:
		inferExpr(t.View, scope)
		inferExpr(t.Offset, scope)
		inferExpr(t.Value, scope)
		result = Void
	case *il.BufferCreation:
		inferExpr(t.Size, scope)
		result = Object
	case *il.TypedArraySet:
		inferExpr(t.Dst, scope)
		inferExpr(t.Src, scope)
		result = Void
	case *il.TypedArraySubarray:
		result = inferExpr(t.Array, scope)
	case *il.DebugOutput:
		for _, a := range t.Args {
			inferExpr(a, scope)
		}
		result = Void
	case *il.RotateLeft:
		inferExpr(t.Value, scope)
		inferExpr(t.Amount, scope)
		result = widthToUInt(t.Width)
	case *il.RotateRight:
		inferExpr(t.Value, scope)
		inferExpr(t.Amount, scope)
		result = widthToUInt(t.Width)
	case *il.PackBytes:
		for _, b := range t.Bytes {
			inferExpr(b, scope)
		}
		result = widthToUInt(t.Width)
	case *il.UnpackBytes:
		inferExpr(t.Value, scope)
		result = NewArray(UInt8)
	case *il.Cast:
		inferExpr(t.Value, scope)
		result = t.TargetType
	case *il.BigIntCast:
		inferExpr(t.Value, scope)
		result = Int64
	case *il.MathUnary:
		inferExpr(t.Arg, scope)
		result = Float
	case *il.Min, *il.Max:
		result = Float
	case *il.Power:
		inferExpr(t.Base, scope)
		inferExpr(t.Exp, scope)
		result = Float
	case *il.MathConstant:
		result = Float
	case *il.NumberConstant:
		result = Int
	case *il.IsInteger, *il.IsNaN, *il.IsFinite:
		result = Bool
	case *il.ObjectKeys, *il.ObjectValues:
		result = NewArray(String)
	case *il.ObjectEntries:
		result = NewArray(NewTuple(String, AnyType))
	case *il.ObjectFreeze:
		result = inferExpr(objectFreezeTarget(t), scope)
	case *il.JSONParse:
		inferExpr(t.Source, scope)
		result = AnyType
	case *il.JSONStringify:
		inferExpr(t.Value, scope)
		result = String
	case *il.ArrayFrom:
		inferExpr(t.Iterable, scope)
		result = NewArray(AnyType)
	default:
		result = AnyType
	}
	if result == nil {
		result = AnyType
	}
	e.SetType(result)
	return result
}

func objectFreezeTarget(o *il.ObjectFreeze) il.Expr { return o.Target }

func literalType(l *il.Literal) *Type {
	switch l.Kind {
	case il.LitInt:
		return Int
	case il.LitFloat:
		return Float
	case il.LitString:
		return String
	case il.LitBool:
		return Bool
	case il.LitNull:
		return Null
	case il.LitBigInt:
		return Int64
	}
	return AnyType
}

// binaryType follows the operator table: comparison/logical produce Bool,
// arithmetic and bitwise widen to the wider operand, >>> is always UInt32.
func binaryType(op il.BinaryOp, l, r *Type) *Type {
	switch op {
	case il.OpEq, il.OpStrictEq, il.OpNe, il.OpLt, il.OpLe, il.OpGt, il.OpGe, il.OpAnd, il.OpOr:
		return Bool
	case il.OpUShr:
		return UInt32
	case il.OpAdd:
		if l != nil && l.Kind == KindString || r != nil && r.Kind == KindString {
			return String
		}
		return Join(l, r)
	case il.OpSub, il.OpMul, il.OpDiv, il.OpMod, il.OpBitAnd, il.OpBitOr, il.OpBitXor, il.OpShl, il.OpShr:
		return Join(l, r)
	case il.OpNullish:
		return Join(l, r)
	}
	return AnyType
}

func unaryType(op il.UnaryOp, operand *Type) *Type {
	switch op {
	case il.OpNot:
		return Bool
	case il.OpBitNot:
		return UInt32
	case il.OpNeg, il.OpPlus, il.OpIncr, il.OpDecr:
		if operand != nil {
			return operand
		}
		return Int
	}
	return AnyType
}

// arrayLitType joins the element types, defaulting to
// Int when empty (cryptographic bias toward byte/word arrays).
func arrayLitType(a *il.ArrayLit, scope *Scope) *Type {
	if len(a.Elems) == 0 {
		return NewArray(Int)
	}
	var elem *Type
	for _, e := range a.Elems {
		elem = Join(elem, inferExpr(e, scope))
	}
	return NewArray(elem)
}

func inferArrayOperand(e il.Expr, scope *Scope) *Type {
	switch t := e.(type) {
	case *il.ArrayPop:
		return inferExpr(t.Array, scope)
	case *il.ArrayShift:
		return inferExpr(t.Array, scope)
	case *il.ArrayUnshift:
		a := inferExpr(t.Array, scope)
		inferExpr(t.Value, scope)
		return a
	case *il.ArraySplice:
		a := inferExpr(t.Array, scope)
		inferExpr(t.Start, scope)
		if t.DeleteCount != nil {
			inferExpr(t.DeleteCount, scope)
		}
		for _, it := range t.Items {
			inferExpr(it, scope)
		}
		return a
	case *il.ArraySlice:
		a := inferExpr(t.Array, scope)
		inferExpr(t.Start, scope)
		if t.End != nil {
			inferExpr(t.End, scope)
		}
		return a
	case *il.ArrayFill:
		a := inferExpr(t.Array, scope)
		inferExpr(t.Value, scope)
		return a
	case *il.ArrayReverse:
		return inferExpr(t.Array, scope)
	case *il.ArraySort:
		a := inferExpr(t.Array, scope)
		if t.Cmp != nil {
			inferExpr(t.Cmp, scope)
		}
		return a
	}
	return AnyType
}

func elemOf(t *Type) *Type {
	if t != nil && t.Kind == KindArray {
		return t.Elem
	}
	return AnyType
}

func widthToUInt(width int) *Type {
	switch width {
	case 8:
		return UInt8
	case 16:
		return UInt16
	case 32:
		return UInt32
	case 64:
		return UInt64
	}
	return AnyType
}

func paramTypes(params []il.Param) []*Type {
	out := make([]*Type, len(params))
	for i, p := range params {
		if p.Type != nil {
			out[i] = p.Type
		} else {
			out[i] = AnyType
		}
	}
	return out
}

// callReturnType types the residual Call nodes that
// survive lowering (calls the lowerer did not specialise into a dedicated
// IL variant).
func callReturnType(c *il.Call) *Type {
	if ma, ok := c.Callee.(*il.MemberAccess); ok {
		if t, ok := wellKnownReturns[ma.Name]; ok && t != nil {
			return t
		}
		switch ma.Name {
		case "slice", "concat", "filter", "map":
			return ma.Target.Type()
		}
	}
	return AnyType
}
