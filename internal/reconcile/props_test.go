package reconcile

import (
	"testing"

	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/host/memdom"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

func TestClassName(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "a b", "a b"},
		{"strings", []string{"a", "", "b"}, "a b"},
		{"nested", []any{"a", []any{"b", nil}, map[string]bool{"c": true}}, "a b c"},
		{"bool map sorted", map[string]bool{"z": true, "off": false, "a": true}, "a z"},
		{"any map truthiness", map[string]any{"a": 1, "b": 0, "c": "", "d": "yes", "e": nil}, "a d"},
		{"props", vnode.Props{"on": true}, "on"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassName(tt.in); got != tt.want {
				t.Errorf("ClassName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func element(t *testing.T, n host.Node) *memdom.Node {
	t.Helper()
	el, ok := n.(*memdom.Node)
	if !ok {
		t.Fatalf("live node is %T, want *memdom.Node", n)
	}
	return el
}

func TestPatchProps_Style(t *testing.T) {
	doc, root, r := setup()
	old := vnode.H("div", vnode.Props{"style": map[string]any{"color": "red", "margin": 1}})
	live := r.Patch(root, nil, nil, old)
	doc.Reset()

	r.Patch(root, live, old, vnode.H("div", vnode.Props{"style": map[string]any{"color": "red", "padding": "2"}}))

	got := memdom.StyleText(element(t, live).Style())
	if want := "color: red; padding: 2"; got != want {
		t.Errorf("style = %q, want %q", got, want)
	}
	// color is unchanged, so only margin and padding are touched.
	if n := doc.Count(memdom.OpStyle); n != 2 {
		t.Errorf("style ops = %d, want 2: %v", n, doc.Ops())
	}
}

func TestPatchProps_AttributesAndClass(t *testing.T) {
	_, root, r := setup()
	old := vnode.H("a", vnode.Props{"href": "/x", "class": []string{"btn", "primary"}, "data-n": 3})
	live := r.Patch(root, nil, nil, old)
	el := element(t, live)

	if v, _ := el.Attribute("class"); v != "btn primary" {
		t.Errorf("class = %q, want %q", v, "btn primary")
	}
	if v, _ := el.Attribute("data-n"); v != "3" {
		t.Errorf("data-n = %q, want 3", v)
	}

	r.Patch(root, live, old, vnode.H("a", vnode.Props{"href": false, "class": map[string]bool{"btn": false}}))

	for _, k := range []string{"href", "class", "data-n"} {
		if _, ok := el.Attribute(k); ok {
			t.Errorf("attribute %s still set", k)
		}
	}
}

func TestPatchProps_Events(t *testing.T) {
	doc, root, r := setup()
	old := vnode.H("button", vnode.Props{"onClick": "first"})
	live := r.Patch(root, nil, nil, old)
	el := element(t, live)

	if !el.Listening("click") {
		t.Fatal("click listener not registered")
	}
	if got := r.Action(live, "click"); got != "first" {
		t.Errorf("Action() = %v, want first", got)
	}

	doc.Reset()
	next := vnode.H("button", vnode.Props{"onClick": "second"})
	r.Patch(root, live, old, next)
	if got := r.Action(live, "click"); got != "second" {
		t.Errorf("Action() = %v, want second", got)
	}
	if n := doc.Count(memdom.OpListen, memdom.OpUnlisten); n != 0 {
		t.Errorf("listener ops = %d, want 0 when swapping the action", n)
	}

	r.Patch(root, live, next, vnode.H("button", nil))
	if el.Listening("click") {
		t.Error("click listener not removed")
	}
	if got := r.Action(live, "click"); got != nil {
		t.Errorf("Action() = %v, want nil", got)
	}
}

func TestPatchProps_LiveValue(t *testing.T) {
	doc, root, r := setup()
	old := vnode.H("input", vnode.Props{"value": "x"})
	live := r.Patch(root, nil, nil, old)
	el := element(t, live)

	// The user typed into the field.
	el.SetProperty("value", "typed")
	doc.Reset()

	r.Patch(root, live, old, vnode.H("input", vnode.Props{"value": "x"}))

	if got := el.Property("value"); got != "x" {
		t.Errorf("value = %v, want x", got)
	}
	if n := doc.Count(memdom.OpProp); n != 1 {
		t.Errorf("prop ops = %d, want 1", n)
	}
}

func TestPatchProps_NilPropertyBecomesEmpty(t *testing.T) {
	_, root, r := setup()
	old := vnode.H("div", vnode.Props{"title": "hi"})
	live := r.Patch(root, nil, nil, old)

	r.Patch(root, live, old, vnode.H("div", nil))

	if got := element(t, live).Property("title"); got != "" {
		t.Errorf("title = %v, want empty", got)
	}
}

func TestPatch_SVGNamespace(t *testing.T) {
	_, root, r := setup()
	v := vnode.H("div", nil, vnode.H("svg", vnode.Props{"id": "icon"}, vnode.H("circle", vnode.Props{"r": 5})))
	live := r.Patch(root, nil, nil, v)

	svg := element(t, live).Children()[0]
	circle := svg.Children()[0]
	if element(t, live).Namespace() != "" {
		t.Error("div should stay in the default namespace")
	}
	if svg.Namespace() != host.SVGNamespace || circle.Namespace() != host.SVGNamespace {
		t.Error("svg namespace not propagated")
	}
	if v, ok := svg.Attribute("id"); !ok || v != "icon" {
		t.Errorf("svg id attribute = %q, want icon", v)
	}
	if v, _ := circle.Attribute("r"); v != "5" {
		t.Errorf("r = %q, want 5", v)
	}
}
