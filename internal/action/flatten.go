package action

import (
	"fmt"
	"iter"
)

// Flatten yields the T values found in items, in order. Nested []any and
// []T are walked recursively; nil and bool entries are skipped so lists can
// be written with When or plain conditionals. Any other value panics.
//
// The sequence holds no state of its own and can be ranged over again.
func Flatten[T any](items ...any) iter.Seq[T] {
	return func(yield func(T) bool) {
		walk(items, yield)
	}
}

func walk[T any](items []any, yield func(T) bool) bool {
	for _, item := range items {
		switch v := item.(type) {
		case nil, bool:
		case T:
			if !yield(v) {
				return false
			}
		case []T:
			for _, x := range v {
				if !yield(x) {
					return false
				}
			}
		case []any:
			if !walk(v, yield) {
				return false
			}
		default:
			var zero T
			panic(fmt.Sprintf("action: unexpected %T in a list of %T", item, zero))
		}
	}
	return true
}
