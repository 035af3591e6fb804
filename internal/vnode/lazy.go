package vnode

// LazyView computes a subtree from its input props.
type LazyView func(props Props) *Node

// View is a named LazyView. Lazy nodes memoize against the *View, so a View
// is created once and shared by every render that uses it.
type View struct {
	name   string
	render LazyView
}

// NewView creates a View named name.
func NewView(name string, render LazyView) *View {
	if render == nil {
		panic("vnode: NewView with a nil render function")
	}
	return &View{name: name, render: render}
}

// Name returns the name the View was created with.
func (v *View) Name() string { return v.name }

type lazySpec struct {
	view  *View
	props Props
}

// Lazy wraps view so that it only runs when props change. props["key"], if
// present, becomes the node's key.
func Lazy(view *View, props Props) *Node {
	if view == nil {
		panic("vnode: Lazy with a nil view")
	}
	if props == nil {
		props = Props{}
	}
	return &Node{
		Key:  props["key"],
		Kind: KindLazy,
		lazy: &lazySpec{view: view, props: props},
	}
}

// Resolve returns the concrete node for next. Non-lazy nodes are returned
// as is. A lazy node reuses prev when prev was resolved from a lazy node
// with the same view and shallow-equal props; otherwise the view runs and
// its result replaces the lazy node from then on.
func Resolve(next, prev *Node) *Node {
	if next == nil || next.Kind != KindLazy {
		return next
	}
	spec := next.lazy
	if prev != nil && prev.lazy != nil && prev.Kind != KindLazy &&
		prev.lazy.view == spec.view && !PropsChanged(prev.lazy.props, spec.props) {
		return prev
	}
	out := spec.view.render(spec.props)
	if out.Key == nil {
		out.Key = next.Key
	}
	out.lazy = spec
	return out
}

// PropsChanged reports whether any key of a or b maps to values that are not
// the Same.
func PropsChanged(a, b Props) bool {
	for k, v := range a {
		if !Same(v, b[k]) {
			return true
		}
	}
	for k, v := range b {
		if !Same(a[k], v) {
			return true
		}
	}
	return false
}
