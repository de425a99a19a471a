package il

import (
	"fmt"
	"reflect"
	"strings"
)

// Dump renders an IL node as an indented tree, the way `algxlate inspect-il`
// shows its output. It works generically over any node's exported fields so
// it never falls out of sync with the variant list in expressions_*.go.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, reflect.ValueOf(n), 0, map[uintptr]bool{})
	return sb.String()
}

func dump(sb *strings.Builder, v reflect.Value, depth int, seen map[uintptr]bool) {
	indent := strings.Repeat("  ", depth)
	if !v.IsValid() {
		sb.WriteString(indent + "nil\n")
		return
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			sb.WriteString(indent + "nil\n")
			return
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			sb.WriteString(indent + "nil\n")
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		sb.WriteString(fmt.Sprintf("%s%v\n", indent, v.Interface()))
		return
	}
	typeName := v.Type().Name()
	sb.WriteString(fmt.Sprintf("%s%s\n", indent, typeName))
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous {
			dump(sb, v.Field(i), depth, seen)
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Slice, reflect.Array:
			if fv.Len() == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s  %s:\n", indent, f.Name))
			for j := 0; j < fv.Len(); j++ {
				dump(sb, fv.Index(j), depth+2, seen)
			}
		case reflect.Ptr, reflect.Interface:
			if fv.IsNil() {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s  %s:\n", indent, f.Name))
			dump(sb, fv, depth+2, seen)
		case reflect.Struct:
			sb.WriteString(fmt.Sprintf("%s  %s:\n", indent, f.Name))
			dump(sb, fv, depth+2, seen)
		default:
			sb.WriteString(fmt.Sprintf("%s  %s: %v\n", indent, f.Name, fv.Interface()))
		}
	}
}
