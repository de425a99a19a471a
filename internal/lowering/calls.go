package lowering

import (
	"strconv"
	"strings"

	"github.com/algxlate/algxlate/pkg/il"
	"github.com/algxlate/algxlate/pkg/srcast"
)

// recognizeStaticCall recognises `Obj.method(args)` calls on the
// well-known library objects (Math, Number, Array,
// Object, JSON, String, console, and the source's bit-ops helper library,
// conventionally named `OpCodes`) and returns the dedicated IL node, or nil
// if the call does not match any recognised idiom.
func (l *Lowerer) recognizeStaticCall(callee, n *srcast.Node) il.Expr {
	obj := callee.Child("object")
	prop := callee.Child("property")
	if obj == nil || prop == nil || callee.Bool("computed") {
		return nil
	}
	objName := obj.Str("name")
	propName := prop.Str("name")
	args := n.Children("arguments")

	switch objName {
	case "OpCodes":
		if e := l.recognizeOpCodes(propName, args); e != nil {
			return e
		}
	case "Math":
		if e := l.recognizeMath(propName, args); e != nil {
			return e
		}
	case "Number":
		if e := l.recognizeNumberCall(propName, args); e != nil {
			return e
		}
	case "Array":
		switch propName {
		case "isArray":
			return &il.IsArrayCheck{Value: l.lowerExpr(args[0])}
		case "from":
			return &il.ArrayFrom{Iterable: l.lowerExpr(args[0])}
		}
	case "Object":
		switch propName {
		case "keys":
			return &il.ObjectKeys{Target: l.lowerExpr(args[0])}
		case "values":
			return &il.ObjectValues{Target: l.lowerExpr(args[0])}
		case "entries":
			return &il.ObjectEntries{Target: l.lowerExpr(args[0])}
		case "freeze":
			return &il.ObjectFreeze{Target: l.lowerExpr(args[0])}
		}
	case "JSON":
		switch propName {
		case "parse":
			return &il.JSONParse{Source: l.lowerExpr(args[0])}
		case "stringify":
			return &il.JSONStringify{Value: l.lowerExpr(args[0])}
		}
	case "String":
		if propName == "fromCharCode" {
			return &il.StringFromCharCodes{Codes: l.lowerExprList(args)}
		}
	case "console":
		if lvl, ok := debugLevel(propName); ok {
			return &il.DebugOutput{Level: lvl, Args: l.lowerExprList(args)}
		}
	}
	return nil
}

func debugLevel(name string) (il.DebugLevel, bool) {
	switch name {
	case "log":
		return il.DebugLog, true
	case "warn":
		return il.DebugWarn, true
	case "error":
		return il.DebugError, true
	case "info":
		return il.DebugInfo, true
	}
	return "", false
}

// recognizeOpCodes maps the domain-specific bit-ops library's methods to
// the dedicated IL rotate/pack/hex/xor/array variants.
func (l *Lowerer) recognizeOpCodes(name string, args []*srcast.Node) il.Expr {
	if w, ok := widthSuffix(name, "RotL"); ok {
		return &il.RotateLeft{Value: l.lowerExpr(args[0]), Amount: l.lowerExpr(args[1]), Width: w}
	}
	if w, ok := widthSuffix(name, "RotR"); ok {
		return &il.RotateRight{Value: l.lowerExpr(args[0]), Amount: l.lowerExpr(args[1]), Width: w}
	}
	if w, endian, ok := widthEndianSuffix(name, "Pack"); ok {
		return &il.PackBytes{Bytes: l.lowerExprList(args), Width: w, Endian: endian}
	}
	if w, endian, ok := widthEndianSuffix(name, "Unpack"); ok {
		return &il.UnpackBytes{Value: l.lowerExpr(args[0]), Width: w, Endian: endian}
	}
	if strings.HasPrefix(name, "Hex") && strings.HasSuffix(name, "ToBytes") {
		return &il.HexDecode{HexString: l.lowerExpr(args[0])}
	}
	if strings.HasPrefix(name, "BytesToHex") {
		return &il.HexEncode{Bytes: l.lowerExpr(args[0])}
	}
	switch name {
	case "XorArrays":
		return &il.ArrayXor{A: l.lowerExpr(args[0]), B: l.lowerExpr(args[1])}
	case "CopyArray":
		return &il.CopyArray{Array: l.lowerExpr(args[0])}
	case "ClearArray":
		return &il.ArrayClear{Array: l.lowerExpr(args[0])}
	case "SecureCompare":
		sc := &il.SecureCompare{A: l.lowerExpr(args[0]), B: l.lowerExpr(args[1])}
		if len(args) > 2 {
			sc.Len = l.lowerExpr(args[2])
		}
		return sc
	}
	return nil
}

// widthSuffix parses names like "RotL32" into (32, true).
func widthSuffix(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	rest := strings.TrimPrefix(name, prefix)
	w, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return w, true
}

// widthEndianSuffix parses names like "Pack32BE" / "Unpack64LE".
func widthEndianSuffix(name, prefix string) (int, il.Endian, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, 0, false
	}
	rest := strings.TrimPrefix(name, prefix)
	var endian il.Endian
	switch {
	case strings.HasSuffix(rest, "BE"):
		endian = il.BigEndian
		rest = strings.TrimSuffix(rest, "BE")
	case strings.HasSuffix(rest, "LE"):
		endian = il.LittleEndian
		rest = strings.TrimSuffix(rest, "LE")
	default:
		return 0, 0, false
	}
	w, err := strconv.Atoi(rest)
	if err != nil {
		return 0, 0, false
	}
	return w, endian, true
}

func (l *Lowerer) recognizeMath(name string, args []*srcast.Node) il.Expr {
	if op, ok := mathUnaryOps[name]; ok {
		return &il.MathUnary{Op: op, Arg: l.lowerExpr(args[0])}
	}
	switch name {
	case "min":
		return &il.Min{Args: l.lowerExprList(args)}
	case "max":
		return &il.Max{Args: l.lowerExprList(args)}
	case "pow":
		return &il.Power{Base: l.lowerExpr(args[0]), Exp: l.lowerExpr(args[1])}
	}
	if _, ok := mathConstants[name]; ok {
		return &il.MathConstant{Name: name}
	}
	return nil
}

var mathUnaryOps = map[string]il.MathUnaryOp{
	"floor": il.MathFloor, "ceil": il.MathCeil, "round": il.MathRound,
	"abs": il.MathAbs, "sqrt": il.MathSqrt, "sign": il.MathSign,
	"log": il.MathLog, "log2": il.MathLog2, "log10": il.MathLog10, "exp": il.MathExp,
	"sin": il.MathSin, "cos": il.MathCos, "tan": il.MathTan,
	"asin": il.MathAsin, "acos": il.MathAcos, "atan": il.MathAtan,
}

var mathConstants = map[string]bool{"PI": true, "E": true, "LN2": true, "LN10": true, "SQRT2": true}
var numberConstants = map[string]bool{
	"MAX_SAFE_INTEGER": true, "MIN_SAFE_INTEGER": true,
	"MAX_VALUE": true, "MIN_VALUE": true, "EPSILON": true, "NaN": true,
}

func (l *Lowerer) recognizeNumberCall(name string, args []*srcast.Node) il.Expr {
	switch name {
	case "isInteger":
		return &il.IsInteger{Value: l.lowerExpr(args[0])}
	case "isNaN":
		return &il.IsNaN{Value: l.lowerExpr(args[0])}
	case "isFinite":
		return &il.IsFinite{Value: l.lowerExpr(args[0])}
	}
	return nil
}

// recognizeStaticMember maps bare `Math.PI` / `Number.MAX_SAFE_INTEGER`
// member reads (no call) to their dedicated IL constant nodes.
func (l *Lowerer) recognizeStaticMember(n *srcast.Node) il.Expr {
	obj := n.Child("object")
	prop := n.Child("property")
	if obj == nil || prop == nil || n.Bool("computed") {
		return nil
	}
	switch obj.Str("name") {
	case "Math":
		if mathConstants[prop.Str("name")] {
			return &il.MathConstant{Name: prop.Str("name")}
		}
	case "Number":
		if numberConstants[prop.Str("name")] {
			return &il.NumberConstant{Name: prop.Str("name")}
		}
	}
	return nil
}

// dataViewReads / dataViewWrites map the DataView accessor spellings to
// their bit widths. The endianness flag is the trailing boolean argument;
// absent or false means big-endian, matching the source runtime.
var dataViewReads = map[string]int{
	"getUint8": 8, "getUint16": 16, "getUint32": 32, "getBigUint64": 64,
}
var dataViewWrites = map[string]int{
	"setUint8": 8, "setUint16": 16, "setUint32": 32, "setBigUint64": 64,
}

func dataViewEndian(args []*srcast.Node, idx int) il.Endian {
	if idx < len(args) && args[idx] != nil && args[idx].Props != nil {
		if v, ok := args[idx].Props["value"].(bool); ok && v {
			return il.LittleEndian
		}
	}
	return il.BigEndian
}

// instanceMethodCall maps `target.method(args)` calls recognised as Array,
// String, TypedArray, or DataView operations. Methods whose name is shared
// between Array and String (`slice`, `indexOf`, `includes`) dispatch on the
// receiver: one the lowerer can see is string-valued takes the String
// variant, everything else the Array one.
func (l *Lowerer) instanceMethodCall(target il.Expr, method string, args []*srcast.Node) il.Expr {
	a := func(i int) il.Expr {
		if i < len(args) {
			return l.lowerExpr(args[i])
		}
		return nil
	}
	if w, ok := dataViewReads[method]; ok {
		return &il.DataViewRead{View: target, Offset: a(0), Width: w, Endian: dataViewEndian(args, 1)}
	}
	if w, ok := dataViewWrites[method]; ok {
		return &il.DataViewWrite{View: target, Offset: a(0), Value: a(1), Width: w, Endian: dataViewEndian(args, 2)}
	}
	switch method {
	case "push":
		return &il.ArrayAppend{Array: target, Value: a(0)}
	case "pop":
		return &il.ArrayPop{Array: target}
	case "shift":
		return &il.ArrayShift{Array: target}
	case "unshift":
		return &il.ArrayUnshift{Array: target, Value: a(0)}
	case "splice":
		items := []il.Expr{}
		if len(args) > 2 {
			items = l.lowerExprList(args[2:])
		}
		var delCount il.Expr
		if len(args) > 1 {
			delCount = a(1)
		}
		return &il.ArraySplice{Array: target, Start: a(0), DeleteCount: delCount, Items: items}
	case "slice":
		if l.isStringValued(target) {
			return &il.StringSlice{Target: target, Start: a(0), End: a(1)}
		}
		return &il.ArraySlice{Array: target, Start: a(0), End: a(1)}
	case "fill":
		return &il.ArrayFill{Array: target, Value: a(0)}
	case "reverse":
		return &il.ArrayReverse{Array: target}
	case "indexOf":
		if l.isStringValued(target) {
			return &il.StringIndexOf{Target: target, Sub: a(0)}
		}
		return &il.ArrayIndexOf{Array: target, Value: a(0)}
	case "map":
		return &il.ArrayMap{CallbackOp: il.NewCallbackOp(target, a(0))}
	case "filter":
		return &il.ArrayFilter{CallbackOp: il.NewCallbackOp(target, a(0))}
	case "forEach":
		return &il.ArrayForEach{CallbackOp: il.NewCallbackOp(target, a(0))}
	case "find":
		return &il.ArrayFind{CallbackOp: il.NewCallbackOp(target, a(0))}
	case "findIndex":
		return &il.ArrayFindIndex{CallbackOp: il.NewCallbackOp(target, a(0))}
	case "reduce":
		return &il.ArrayReduce{CallbackOp: il.NewCallbackOp(target, a(0)), Init: a(1)}
	case "every":
		return &il.ArrayEvery{CallbackOp: il.NewCallbackOp(target, a(0))}
	case "some":
		return &il.ArraySome{CallbackOp: il.NewCallbackOp(target, a(0))}
	case "sort":
		return &il.ArraySort{Array: target, Cmp: a(0)}
	case "join":
		return &il.ArrayJoin{Array: target, Sep: a(0)}
	case "concat":
		return &il.ArrayConcat{A: target, B: a(0)}
	case "includes":
		if l.isStringValued(target) {
			return &il.StringIncludes{Target: target, Sub: a(0)}
		}
		return &il.ArrayIncludes{Array: target, Value: a(0)}
	case "trim":
		return &il.StringTrim{StringUnaryOp: il.NewStringUnaryOp(target)}
	case "toLowerCase":
		return &il.StringToLower{StringUnaryOp: il.NewStringUnaryOp(target)}
	case "toUpperCase":
		return &il.StringToUpper{StringUnaryOp: il.NewStringUnaryOp(target)}
	case "split":
		return &il.StringSplit{Target: target, Sep: a(0)}
	case "repeat":
		return &il.StringRepeat{Target: target, Count: a(0)}
	case "replace", "replaceAll":
		return &il.StringReplace{Target: target, Pattern: a(0), Repl: a(1)}
	case "substring":
		return &il.StringSubstring{Target: target, Start: a(0), End: a(1)}
	case "charCodeAt":
		return &il.StringCharCodeAt{Target: target, Index: a(0)}
	case "charAt":
		return &il.StringCharAt{Target: target, Index: a(0)}
	case "startsWith":
		return &il.StringStartsWith{Target: target, Sub: a(0)}
	case "endsWith":
		return &il.StringEndsWith{Target: target, Sub: a(0)}
	case "set":
		return &il.TypedArraySet{Dst: target, Src: a(0), Offset: a(1)}
	case "subarray":
		return &il.TypedArraySubarray{Array: target, Start: a(0), End: a(1)}
	}
	return nil
}
