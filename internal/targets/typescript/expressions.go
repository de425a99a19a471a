package typescript

import (
	"fmt"

	"github.com/algxlate/algxlate/internal/targets/common"
	"github.com/algxlate/algxlate/pkg/il"
)

func (t *Transformer) exprs(in []il.Expr) []Node {
	out := make([]Node, len(in))
	for i, e := range in {
		out[i] = t.expr(e)
	}
	return out
}

// expr is the large total function over every IL expression variant:
// TypeScript is the back end closest to the IL's own ECMAScript-family
// shape, so most variants map near 1:1; the rest register a runtime helper.
func (t *Transformer) expr(e il.Expr) Node {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *il.Literal:
		return t.literal(n)
	case *il.Identifier:
		return &Ident{Name: n.Name}
	case *il.This:
		return &ThisExpr{}
	case *il.Super:
		return &SuperExpr{}
	case *il.Binary:
		return &Binary{Op: string(n.Op), Left: t.expr(n.Left), Right: t.expr(n.Right)}
	case *il.Unary:
		return &Unary{Op: string(n.Op), Operand: t.expr(n.Operand), Prefix: n.Prefix}
	case *il.Assign:
		return &Assign{Target: t.expr(n.Target), Op: n.Op, Value: t.expr(n.Value)}
	case *il.Conditional:
		return &Conditional{Cond: t.expr(n.Cond), Then: t.expr(n.Then), Else: t.expr(n.Else)}
	case *il.Sequence:
		return &Sequence{Exprs: t.exprs(n.Exprs)}
	case *il.Parenthesised:
		return t.expr(n.Inner)
	case *il.Spread:
		return &SpreadExpr{Arg: t.expr(n.Arg)}
	case *il.MemberAccess:
		return &MemberAccess{Target: t.expr(n.Target), Name: n.Name, Optional: n.Optional}
	case *il.ElementAccess:
		return &ElementAccess{Target: t.expr(n.Target), Index: t.expr(n.Index)}
	case *il.ThisPropertyAccess:
		return &MemberAccess{Target: &ThisExpr{}, Name: fieldName(n.PropName)}
	case *il.ThisMethodCall:
		return &Call{Callee: &MemberAccess{Target: &ThisExpr{}, Name: n.Name}, Args: t.exprs(n.Args)}
	case *il.ParentConstructorCall:
		return &Call{Callee: &SuperExpr{}, Args: t.exprs(n.Args)}
	case *il.ParentMethodCall:
		return &Call{Callee: &MemberAccess{Target: &SuperExpr{}, Name: n.Name}, Args: t.exprs(n.Args)}
	case *il.Call:
		return &Call{Callee: t.expr(n.Callee), Args: t.exprs(n.Args)}
	case *il.New:
		return &NewExpr{Type: common.PascalCase(n.TypeName), Args: t.exprs(n.Args)}
	case *il.Lambda:
		return t.lambda(n)
	case *il.ArrayLit:
		return &ArrayLit{Elems: t.exprs(n.Elems)}
	case *il.ArrayCreation:
		init := Node(&IntLit{Value: 0})
		if n.Init != nil {
			init = t.expr(n.Init)
		}
		return &Call{Callee: &MemberAccess{Target: &Call{Callee: &Ident{Name: "Array"}, Args: []Node{t.expr(n.Size)}}, Name: "fill"}, Args: []Node{init}}
	case *il.TypedArrayCreation:
		return &NewExpr{Type: typedArrayName(n.Width), Args: []Node{t.expr(n.Size)}}
	case *il.ObjectLit:
		var entries []ObjectEntry
		for _, en := range n.Entries {
			entries = append(entries, ObjectEntry{Key: en.Key, Value: t.expr(en.Value)})
		}
		return &ObjectLit{Entries: entries}
	case *il.MapCreation:
		return &NewExpr{Type: "Map"}
	case *il.SetCreation:
		return &NewExpr{Type: "Set"}
	case *il.ArrayLength:
		return &MemberAccess{Target: t.expr(n.Array), Name: "length"}
	case *il.ArrayAppend:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "push"}, Args: []Node{t.expr(n.Value)}}
	case *il.ArrayPop:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "pop"}}
	case *il.ArrayShift:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "shift"}}
	case *il.ArrayUnshift:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "unshift"}, Args: []Node{t.expr(n.Value)}}
	case *il.ArraySplice:
		args := []Node{t.expr(n.Start), t.expr(n.DeleteCount)}
		args = append(args, t.exprs(n.Items)...)
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "splice"}, Args: args}
	case *il.ArraySlice:
		args := []Node{t.expr(n.Start)}
		if n.End != nil {
			args = append(args, t.expr(n.End))
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "slice"}, Args: args}
	case *il.ArrayFill:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "fill"}, Args: []Node{t.expr(n.Value)}}
	case *il.ArrayClear:
		return &Assign{Target: &MemberAccess{Target: t.expr(n.Array), Name: "length"}, Op: "=", Value: &IntLit{Value: 0}}
	case *il.ArrayConcat:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.A), Name: "concat"}, Args: []Node{t.expr(n.B)}}
	case *il.ArrayReverse:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "reverse"}}
	case *il.ArrayJoin:
		var args []Node
		if n.Sep != nil {
			args = []Node{t.expr(n.Sep)}
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "join"}, Args: args}
	case *il.ArrayIndexOf:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "indexOf"}, Args: []Node{t.expr(n.Value)}}
	case *il.ArrayIncludes:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "includes"}, Args: []Node{t.expr(n.Value)}}
	case *il.ArrayMap:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "map"}, Args: []Node{t.expr(n.Callback)}}
	case *il.ArrayFilter:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "filter"}, Args: []Node{t.expr(n.Callback)}}
	case *il.ArrayForEach:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "forEach"}, Args: []Node{t.expr(n.Callback)}}
	case *il.ArrayFind:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "find"}, Args: []Node{t.expr(n.Callback)}}
	case *il.ArrayFindIndex:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "findIndex"}, Args: []Node{t.expr(n.Callback)}}
	case *il.ArrayReduce:
		args := []Node{t.expr(n.Callback)}
		if n.Init != nil {
			args = append(args, t.expr(n.Init))
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "reduce"}, Args: args}
	case *il.ArrayEvery:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "every"}, Args: []Node{t.expr(n.Callback)}}
	case *il.ArraySome:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "some"}, Args: []Node{t.expr(n.Callback)}}
	case *il.ArraySort:
		var args []Node
		if n.Cmp != nil {
			args = []Node{t.expr(n.Cmp)}
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "sort"}, Args: args}
	case *il.ArrayXor:
		t.helpers.Require("xorArrays")
		return &Call{Callee: &Ident{Name: "xorArrays"}, Args: []Node{t.expr(n.A), t.expr(n.B)}}
	case *il.SecureCompare:
		t.helpers.Require("secureCompare")
		return &Call{Callee: &Ident{Name: "secureCompare"}, Args: []Node{t.expr(n.A), t.expr(n.B)}}
	case *il.CopyArray:
		return &ArrayLit{Elems: []Node{&SpreadExpr{Arg: t.expr(n.Array)}}}
	case *il.RotateLeft:
		fn := fmt.Sprintf("rotl%d", n.Width)
		t.helpers.Require(fn)
		return &Call{Callee: &Ident{Name: fn}, Args: []Node{t.expr(n.Value), t.expr(n.Amount)}}
	case *il.RotateRight:
		fn := fmt.Sprintf("rotr%d", n.Width)
		t.helpers.Require(fn)
		return &Call{Callee: &Ident{Name: fn}, Args: []Node{t.expr(n.Value), t.expr(n.Amount)}}
	case *il.PackBytes:
		fn := fmt.Sprintf("pack%d%s", n.Width, endianSuffix(n.Endian))
		t.helpers.Require(fn)
		return &Call{Callee: &Ident{Name: fn}, Args: t.exprs(n.Bytes)}
	case *il.UnpackBytes:
		fn := fmt.Sprintf("unpack%d%s", n.Width, endianSuffix(n.Endian))
		t.helpers.Require(fn)
		return &Call{Callee: &Ident{Name: fn}, Args: []Node{t.expr(n.Value)}}
	case *il.Cast:
		return &AsExpression{X: t.expr(n.Value), Type: tsType(n.TargetType)}
	case *il.BigIntCast:
		return &Call{Callee: &Ident{Name: "BigInt"}, Args: []Node{t.expr(n.Value)}}
	case *il.MathUnary:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Math"}, Name: string(n.Op)}, Args: []Node{t.expr(n.Arg)}}
	case *il.Min:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Math"}, Name: "min"}, Args: t.exprs(n.Args)}
	case *il.Max:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Math"}, Name: "max"}, Args: t.exprs(n.Args)}
	case *il.Power:
		return &Binary{Op: "**", Left: t.expr(n.Base), Right: t.expr(n.Exp)}
	case *il.MathConstant:
		return &MemberAccess{Target: &Ident{Name: "Math"}, Name: n.Name}
	case *il.NumberConstant:
		return &MemberAccess{Target: &Ident{Name: "Number"}, Name: n.Name}
	case *il.IsInteger:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Number"}, Name: "isInteger"}, Args: []Node{t.expr(n.Value)}}
	case *il.IsNaN:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Number"}, Name: "isNaN"}, Args: []Node{t.expr(n.Value)}}
	case *il.IsFinite:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Number"}, Name: "isFinite"}, Args: []Node{t.expr(n.Value)}}
	case *il.StringInterpolation:
		var parts []InterpPart
		for _, p := range n.Parts {
			if p.Kind == il.StringPart {
				parts = append(parts, InterpPart{Str: p.Str})
			} else {
				parts = append(parts, InterpPart{IsExpr: true, Expr: t.expr(p.Expr)})
			}
		}
		return &TemplateLiteral{Parts: parts}
	case *il.StringSplit:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "split"}, Args: []Node{t.expr(n.Sep)}}
	case *il.StringTrim:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "trim"}}
	case *il.StringToLower:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "toLowerCase"}}
	case *il.StringToUpper:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "toUpperCase"}}
	case *il.StringRepeat:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "repeat"}, Args: []Node{t.expr(n.Count)}}
	case *il.StringReplace:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "replaceAll"}, Args: []Node{t.expr(n.Pattern), t.expr(n.Repl)}}
	case *il.StringSlice:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "slice"}, Args: []Node{t.expr(n.Start), t.expr(n.End)}}
	case *il.StringSubstring:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "substring"}, Args: []Node{t.expr(n.Start), t.expr(n.End)}}
	case *il.StringCharCodeAt:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "charCodeAt"}, Args: []Node{t.expr(n.Index)}}
	case *il.StringCharAt:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "charAt"}, Args: []Node{t.expr(n.Index)}}
	case *il.StringIndexOf:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "indexOf"}, Args: []Node{t.expr(n.Sub)}}
	case *il.StringIncludes:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "includes"}, Args: []Node{t.expr(n.Sub)}}
	case *il.StringStartsWith:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "startsWith"}, Args: []Node{t.expr(n.Sub)}}
	case *il.StringEndsWith:
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Target), Name: "endsWith"}, Args: []Node{t.expr(n.Sub)}}
	case *il.StringConcat:
		return &Binary{Op: "+", Left: t.expr(n.A), Right: t.expr(n.B)}
	case *il.StringFromCharCodes:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "String"}, Name: "fromCharCode"}, Args: t.exprs(n.Codes)}
	case *il.StringToBytes:
		t.helpers.Require("stringToBytes")
		return &Call{Callee: &Ident{Name: "stringToBytes"}, Args: []Node{t.expr(n.Target)}}
	case *il.BytesToString:
		t.helpers.Require("bytesToString")
		return &Call{Callee: &Ident{Name: "bytesToString"}, Args: []Node{t.expr(n.Bytes)}}
	case *il.HexDecode:
		t.helpers.Require("hexToBytes")
		return &Call{Callee: &Ident{Name: "hexToBytes"}, Args: []Node{t.expr(n.HexString)}}
	case *il.HexEncode:
		t.helpers.Require("bytesToHex")
		return &Call{Callee: &Ident{Name: "bytesToHex"}, Args: []Node{t.expr(n.Bytes)}}
	case *il.ObjectKeys:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Object"}, Name: "keys"}, Args: []Node{t.expr(n.Target)}}
	case *il.ObjectValues:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Object"}, Name: "values"}, Args: []Node{t.expr(n.Target)}}
	case *il.ObjectEntries:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Object"}, Name: "entries"}, Args: []Node{t.expr(n.Target)}}
	case *il.ObjectFreeze:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Object"}, Name: "freeze"}, Args: []Node{t.expr(n.Target)}}
	case *il.JSONParse:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "JSON"}, Name: "parse"}, Args: []Node{t.expr(n.Source)}}
	case *il.JSONStringify:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "JSON"}, Name: "stringify"}, Args: []Node{t.expr(n.Value)}}
	case *il.ArrayFrom:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Array"}, Name: "from"}, Args: []Node{t.expr(n.Iterable)}}
	case *il.StringJoinChars:
		sep := Node(&StringLit{Value: ""})
		if n.Sep != nil {
			sep = t.expr(n.Sep)
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "join"}, Args: []Node{sep}}
	case *il.TypeOfExpression:
		return &Unary{Op: "typeof ", Operand: t.expr(n.Value), Prefix: true}
	case *il.InstanceOfCheck:
		return &Binary{Op: "instanceof", Left: t.expr(n.Value), Right: &Ident{Name: common.PascalCase(n.ClassName)}}
	case *il.IsArrayCheck:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "Array"}, Name: "isArray"}, Args: []Node{t.expr(n.Value)}}
	case *il.ErrorCreation:
		var args []Node
		if n.Message != nil {
			args = []Node{t.expr(n.Message)}
		}
		return &NewExpr{Type: string(n.ErrKind), Args: args}
	case *il.AwaitExpression:
		return &Unary{Op: "await ", Operand: t.expr(n.Value), Prefix: true}
	case *il.YieldExpression:
		op := "yield "
		if n.Delegate {
			op = "yield* "
		}
		return &Unary{Op: op, Operand: t.expr(n.Value), Prefix: true}
	case *il.DataViewCreation:
		return &NewExpr{Type: "DataView", Args: []Node{t.expr(n.Buffer)}}
	case *il.DataViewRead:
		method := fmt.Sprintf("get%s", dataViewMethod(n.Width))
		args := []Node{t.expr(n.Offset)}
		if n.Endian == il.LittleEndian {
			args = append(args, &BoolLit{Value: true})
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.View), Name: method}, Args: args}
	case *il.DataViewWrite:
		method := fmt.Sprintf("set%s", dataViewMethod(n.Width))
		args := []Node{t.expr(n.Offset), t.expr(n.Value)}
		if n.Endian == il.LittleEndian {
			args = append(args, &BoolLit{Value: true})
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.View), Name: method}, Args: args}
	case *il.BufferCreation:
		return &NewExpr{Type: "ArrayBuffer", Args: []Node{t.expr(n.Size)}}
	case *il.TypedArraySet:
		args := []Node{t.expr(n.Src)}
		if n.Offset != nil {
			args = append(args, t.expr(n.Offset))
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Dst), Name: "set"}, Args: args}
	case *il.TypedArraySubarray:
		args := []Node{t.expr(n.Start)}
		if n.End != nil {
			args = append(args, t.expr(n.End))
		}
		return &Call{Callee: &MemberAccess{Target: t.expr(n.Array), Name: "subarray"}, Args: args}
	case *il.DebugOutput:
		return &Call{Callee: &MemberAccess{Target: &Ident{Name: "console"}, Name: string(n.Level)}, Args: t.exprs(n.Args)}
	default:
		return t.unhandled(fmt.Sprintf("%T", e))
	}
}

func (t *Transformer) lambda(n *il.Lambda) Node {
	if n.Expr != nil {
		return &ArrowFunction{Params: params(n.Params), ExprBody: t.expr(n.Expr)}
	}
	return &ArrowFunction{Params: params(n.Params), Body: t.stmts(n.Body)}
}

func (t *Transformer) literal(n *il.Literal) Node {
	switch n.Kind {
	case il.LitInt:
		return &IntLit{Value: n.Int}
	case il.LitFloat:
		return &FloatLit{Value: n.Float}
	case il.LitString:
		return &StringLit{Value: n.Str}
	case il.LitBool:
		return &BoolLit{Value: n.Bool}
	case il.LitBigInt:
		return &Raw{Text: n.Raw + "n"}
	default:
		return &NullLit{}
	}
}

func endianSuffix(e il.Endian) string {
	if e == il.LittleEndian {
		return "LE"
	}
	return "BE"
}

func dataViewMethod(width int) string {
	switch width {
	case 8:
		return "Uint8"
	case 16:
		return "Uint16"
	case 32:
		return "Uint32"
	case 64:
		return "BigUint64"
	default:
		return "Uint8"
	}
}
