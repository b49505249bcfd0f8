package hbars

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Values flowing through the render engine are plain JSON-shaped Go
// values, the same shapes encoding/json decodes into: nil, bool,
// float64, string, []any and map[string]any. There is no reflect-based
// wrapper type; helpers and the renderer operate directly on `any`.

// isTruthy reports whether v counts as present for {{#if}}, {{#unless}}
// and the implicit truthy/each block-section fallback. Mustache/
// Handlebars lineage: nil, false, and empty arrays/maps are falsy;
// everything else (including 0 and "") is truthy.
func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// isIterable reports whether v can be walked by {{#each}}.
func isIterable(v any) bool {
	switch v.(type) {
	case []any, map[string]any:
		return true
	default:
		return false
	}
}

// lookupField navigates one path segment (a map key or array index)
// off of v. ok is false if the segment does not resolve (the caller
// decides whether that's an error, per strict mode).
func lookupField(v any, key string) (any, bool) {
	switch t := v.(type) {
	case map[string]any:
		val, ok := t[key]
		return val, ok
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(t) {
			return nil, false
		}
		return t[idx], true
	default:
		return nil, false
	}
}

// stringify renders v the way a statement's output does: natural
// scalar formatting, "" for nil/undefined, and a compact JSON-ish
// rendering of arrays/maps (matching what {{{json v}}} would print,
// since bare interpolation of a composite value is rare but must not
// panic).
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(t)
	case []any, map[string]any:
		return stringifyJSON(v)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// formatNumber prints a float64 the way JSON numbers are conventionally
// displayed: integral values without a trailing ".0", general float
// form otherwise.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// stringifyJSON renders v as compact, deterministically-ordered JSON
// text, used by the "json" helper and as a fallback for bare
// composite-value interpolation.
func stringifyJSON(v any) string {
	var b []byte
	b = appendJSON(b, v)
	return string(b)
}

func appendJSON(b []byte, v any) []byte {
	switch t := v.(type) {
	case nil:
		return append(b, "null"...)
	case bool:
		if t {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case string:
		return strconv.AppendQuote(b, t)
	case float64:
		return append(b, formatNumber(t)...)
	case []any:
		b = append(b, '[')
		for i, e := range t {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendJSON(b, e)
		}
		return append(b, ']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b = append(b, '{')
		for i, k := range keys {
			if i > 0 {
				b = append(b, ',')
			}
			b = strconv.AppendQuote(b, k)
			b = append(b, ':')
			b = appendJSON(b, t[k])
		}
		return append(b, '}')
	default:
		return append(b, fmt.Sprintf("%q", fmt.Sprintf("%v", t))...)
	}
}

// equalValues compares two JSON-shaped values for the eq/ne helpers.
// Numbers compare numerically; arrays and maps compare structurally
// (== panics on uncomparable dynamic types such as []any/map[string]any);
// everything else by ==-style equality after matching dynamic types.
func equalValues(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af == bf
	}
	if isComposite(a) || isComposite(b) {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func isComposite(v any) bool {
	switch v.(type) {
	case []any, map[string]any:
		return true
	default:
		return false
	}
}
