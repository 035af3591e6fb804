package reconcile

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// liveCompared props are compared against the live node instead of the old
// virtual node, since user input changes them behind the kernel's back.
var liveCompared = map[string]bool{
	"value":    true,
	"selected": true,
	"checked":  true,
}

func (r *Reconciler) patchProps(node host.Element, old, next vnode.Props, svg bool) {
	for _, k := range sortedKeys(old, next) {
		prev := old[k]
		if liveCompared[k] {
			prev = node.Property(k)
		}
		if !vnode.Same(prev, next[k]) {
			r.patchProperty(node, k, old[k], next[k], svg)
		}
	}
}

func (r *Reconciler) patchProperty(node host.Element, key string, old, next any, svg bool) {
	switch {
	case key == "key":

	case key == "style":
		patchStyle(node, styleMap(old), styleMap(next))

	case strings.HasPrefix(key, "on"):
		event := strings.ToLower(key[2:])
		table := r.actions[node]
		if table == nil {
			table = make(map[string]any)
			r.actions[node] = table
		}
		if !truthy(next) {
			delete(table, event)
			node.RemoveEventListener(event, r.listener)
		} else {
			table[event] = next
			if !truthy(old) {
				node.AddEventListener(event, r.listener)
			}
		}

	case !svg && key != "list" && node.HasProperty(key):
		if next == nil {
			next = ""
		}
		node.SetProperty(key, next)

	case next == nil || next == false:
		node.RemoveAttribute(key)

	case key == "class":
		if cls := ClassName(next); cls != "" {
			node.SetAttribute(key, cls)
		} else {
			node.RemoveAttribute(key)
		}

	default:
		node.SetAttribute(key, toString(next))
	}
}

// patchStyle sets every sub-key whose value changed; sub-keys missing from
// next are cleared with an empty value.
func patchStyle(node host.Element, old, next map[string]any) {
	for _, k := range sortedKeys(old, next) {
		v, ok := next[k]
		if ok && v != nil && vnode.Same(old[k], v) {
			continue
		}
		s := ""
		if ok && v != nil {
			s = toString(v)
		}
		if _, had := old[k]; !had && s == "" {
			continue
		}
		node.SetStyle(k, s)
	}
}

func styleMap(v any) map[string]any {
	switch v := v.(type) {
	case nil:
		return nil
	case vnode.Props:
		return v
	case map[string]any:
		return v
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out
	default:
		return cast.ToStringMap(v)
	}
}

// ClassName flattens a class value into a space-separated list. Strings are
// used as is, slices are flattened recursively and maps contribute the keys
// whose values are truthy, in sorted order.
func ClassName(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return joinNonEmpty(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, x := range v {
			parts = append(parts, ClassName(x))
		}
		return joinNonEmpty(parts)
	case map[string]bool:
		var parts []string
		for _, k := range slices.Sorted(maps.Keys(v)) {
			if v[k] {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, " ")
	case vnode.Props:
		return ClassName(map[string]any(v))
	case map[string]any:
		var parts []string
		for _, k := range slices.Sorted(maps.Keys(v)) {
			if classOn(v[k]) {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, " ")
	default:
		return toString(v)
	}
}

func joinNonEmpty(parts []string) string {
	return strings.Join(slices.DeleteFunc(parts, func(s string) bool { return s == "" }), " ")
}

func classOn(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func truthy(v any) bool {
	return v != nil && v != false
}

func toString(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

func sortedKeys(a, b vnode.Props) []string {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(keys))
}
