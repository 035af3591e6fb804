package vnode

import "reflect"

// Same reports whether a and b are the same value by identity: maps,
// slices, channels and pointers compare by address, everything else with
// ==. Functions have no stable identity, so two non-nil functions are
// never the same; values that must survive a comparison carry a pointer
// created once, as *View and *action.Transition do. Unlike ==, Same never
// panics on values that are not comparable.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	case reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return false
}
