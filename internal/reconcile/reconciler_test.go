package reconcile

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/host/memdom"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

type nopListener struct{}

func (*nopListener) HandleEvent(*host.Event) {}

func setup() (*memdom.Document, *memdom.Node, *Reconciler) {
	doc := memdom.New()
	root := doc.Element("body")
	return doc, root, New(doc, &nopListener{})
}

func list(keys ...string) *vnode.Node {
	kids := make([]any, len(keys))
	for i, k := range keys {
		kids[i] = vnode.H("li", vnode.Props{"key": k}, k)
	}
	return vnode.H("ul", nil, kids...)
}

func listHTML(keys ...string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, k := range keys {
		fmt.Fprintf(&b, "<li>%s</li>", k)
	}
	b.WriteString("</ul>")
	return b.String()
}

func TestPatch_CreatesTree(t *testing.T) {
	doc, root, r := setup()
	v := vnode.H("div", vnode.Props{"class": "box"}, vnode.H("p", nil, "hello"), "tail")

	live := r.Patch(root, nil, nil, v)

	if got, want := memdom.Outer(live), `<div class="box"><p>hello</p>tail</div>`; got != want {
		t.Errorf("Outer() = %s, want %s", got, want)
	}
	if live.ParentNode() != root {
		t.Error("created node not appended to parent")
	}
	if got := doc.Count(memdom.OpCreate); got != 4 {
		t.Errorf("creates = %d, want 4", got)
	}
	if r.Live(v) != live {
		t.Error("arena does not map the root to its live node")
	}
}

func TestPatch_IdenticalTreeIsNoop(t *testing.T) {
	doc, root, r := setup()
	v := vnode.H("div", vnode.Props{"class": "a", "onclick": "noop"}, list("a", "b"))
	live := r.Patch(root, nil, nil, v)
	doc.Reset()

	if got := r.Patch(root, live, v, v); got != live {
		t.Error("identical patch returned a different node")
	}
	if ops := doc.Ops(); len(ops) != 0 {
		t.Errorf("ops = %v, want none", ops)
	}
}

func TestPatch_EqualTreeIsNoop(t *testing.T) {
	doc, root, r := setup()
	build := func() *vnode.Node {
		return vnode.H("div", vnode.Props{"class": "a", "title": "t"}, list("a", "b"), "x")
	}
	old := build()
	live := r.Patch(root, nil, nil, old)
	doc.Reset()

	r.Patch(root, live, old, build())

	if ops := doc.Ops(); len(ops) != 0 {
		t.Errorf("ops = %v, want none", ops)
	}
}

func TestPatch_TextUpdate(t *testing.T) {
	doc, root, r := setup()
	old := vnode.H("p", nil, "a")
	live := r.Patch(root, nil, nil, old)
	doc.Reset()

	next := vnode.H("p", nil, "b")
	r.Patch(root, live, old, next)

	if got := memdom.Outer(live); got != "<p>b</p>" {
		t.Errorf("Outer() = %s, want <p>b</p>", got)
	}
	if got := doc.Count(memdom.OpText); got != 1 {
		t.Errorf("text updates = %d, want 1", got)
	}
	if got := doc.Count(memdom.OpCreate, memdom.OpRemove, memdom.OpInsert); got != 0 {
		t.Errorf("structural ops = %d, want 0", got)
	}
}

func TestPatch_KeyedReorderMovesOnce(t *testing.T) {
	doc, root, r := setup()
	old := list("A", "B", "C")
	live := r.Patch(root, nil, nil, old)
	before := make(map[string]host.Node)
	for _, c := range old.Children {
		before[c.Key.(string)] = r.Live(c)
	}
	doc.Reset()

	next := list("C", "A", "B")
	r.Patch(root, live, old, next)

	if got, want := memdom.Outer(live), listHTML("C", "A", "B"); got != want {
		t.Errorf("Outer() = %s, want %s", got, want)
	}
	if got := doc.Count(memdom.OpCreate, memdom.OpRemove); got != 0 {
		t.Errorf("create/remove = %d, want 0: %v", got, doc.Ops())
	}
	if got := doc.Count(memdom.OpInsert); got != 1 {
		t.Errorf("inserts = %d, want 1: %v", got, doc.Ops())
	}
	for _, c := range next.Children {
		if r.Live(c) != before[c.Key.(string)] {
			t.Errorf("child %v not reused", c.Key)
		}
	}
}

func TestPatch_KeyedChildren(t *testing.T) {
	tests := []struct {
		name        string
		from, to    []string
		wantCreates int
		wantRemoves int
	}{
		{"append", []string{"a", "b"}, []string{"a", "b", "c"}, 2, 0},
		{"prepend", []string{"b", "c"}, []string{"a", "b", "c"}, 2, 0},
		{"insert middle", []string{"a", "c"}, []string{"a", "b", "c"}, 2, 0},
		{"remove middle", []string{"a", "b", "c"}, []string{"a", "c"}, 0, 1},
		{"remove all", []string{"a", "b"}, nil, 0, 2},
		{"reverse", []string{"a", "b", "c", "d"}, []string{"d", "c", "b", "a"}, 0, 0},
		{"swap ends", []string{"a", "b", "c"}, []string{"c", "b", "a"}, 0, 0},
		{"replace one", []string{"a", "b"}, []string{"a", "x"}, 2, 1},
		{"shuffle with new", []string{"a", "b", "c", "d"}, []string{"b", "e", "d", "a"}, 2, 1},
		{"prepend two", []string{"c"}, []string{"a", "b", "c"}, 4, 0},
		{"insert before tail after move", []string{"a", "b", "z"}, []string{"b", "x", "a", "z"}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, root, r := setup()
			old := list(tt.from...)
			live := r.Patch(root, nil, nil, old)
			doc.Reset()

			r.Patch(root, live, old, list(tt.to...))

			if got, want := memdom.Outer(live), listHTML(tt.to...); got != want {
				t.Errorf("Outer() = %s, want %s", got, want)
			}
			// Each new li creates itself and its text node.
			if got := doc.Count(memdom.OpCreate); got != tt.wantCreates {
				t.Errorf("creates = %d, want %d", got, tt.wantCreates)
			}
			if got := doc.Count(memdom.OpRemove); got != tt.wantRemoves {
				t.Errorf("removes = %d, want %d", got, tt.wantRemoves)
			}
		})
	}
}

func TestPatch_UnkeyedReplace(t *testing.T) {
	doc, root, r := setup()
	old := vnode.H("main", nil, vnode.H("div", nil))
	live := r.Patch(root, nil, nil, old)
	doc.Reset()

	r.Patch(root, live, old, vnode.H("main", nil, vnode.H("span", nil)))

	if got := memdom.Outer(live); got != "<main><span></span></main>" {
		t.Errorf("Outer() = %s", got)
	}
	var kinds []memdom.OpKind
	for _, op := range doc.Ops() {
		kinds = append(kinds, op.Kind)
	}
	want := []memdom.OpKind{memdom.OpCreate, memdom.OpInsert, memdom.OpRemove}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestPatch_UnkeyedShrink(t *testing.T) {
	doc, root, r := setup()
	old := vnode.H("p", nil, "x", "y", "z")
	live := r.Patch(root, nil, nil, old)
	doc.Reset()

	r.Patch(root, live, old, vnode.H("p", nil, "w"))

	if got := memdom.Outer(live); got != "<p>w</p>" {
		t.Errorf("Outer() = %s", got)
	}
	if got := doc.Count(memdom.OpRemove); got != 2 {
		t.Errorf("removes = %d, want 2", got)
	}
}

func TestPatch_ReleasesRemovedNodes(t *testing.T) {
	_, root, r := setup()
	old := list("a", "b", "c")
	live := r.Patch(root, nil, nil, old)
	full := r.Len()

	next := list("a")
	r.Patch(root, live, old, next)

	// Two li elements and their text nodes were dropped.
	if got := r.Len(); got != full-4 {
		t.Errorf("arena size = %d, want %d", got, full-4)
	}
	if r.Live(old) != nil {
		t.Error("old root still in the arena")
	}
	if r.Live(next) != live {
		t.Error("new root not bound to the live node")
	}
}

func TestPatch_LazyMemoized(t *testing.T) {
	doc, root, r := setup()
	calls := 0
	row := vnode.NewView("row", func(p vnode.Props) *vnode.Node {
		calls++
		return vnode.H("li", nil, p["title"].(string))
	})
	view := func(title string) *vnode.Node {
		return vnode.H("ul", nil, vnode.Lazy(row, vnode.Props{"key": 1, "title": title}))
	}

	old := view("one")
	live := r.Patch(root, nil, nil, old)
	doc.Reset()

	next := view("one")
	r.Patch(root, live, old, next)
	if calls != 1 {
		t.Errorf("view calls = %d, want 1", calls)
	}
	if ops := doc.Ops(); len(ops) != 0 {
		t.Errorf("ops = %v, want none", ops)
	}

	r.Patch(root, live, next, view("two"))
	if calls != 2 {
		t.Errorf("view calls = %d, want 2", calls)
	}
	if got := memdom.Outer(live); got != "<ul><li>two</li></ul>" {
		t.Errorf("Outer() = %s", got)
	}
}

func TestRecycle_TakesOverExistingTree(t *testing.T) {
	doc := memdom.New()
	mount := doc.Element("main", doc.Element("p", doc.Text("hi")))
	root := doc.Element("body", mount)
	r := New(doc, &nopListener{})

	rec := r.Recycle(mount)
	if rec.Kind != vnode.KindRecycled || rec.Tag != "main" {
		t.Fatalf("Recycle() = %v %q, want recycled main", rec.Kind, rec.Tag)
	}

	live := r.Patch(root, mount, rec, vnode.H("main", nil, vnode.H("p", nil, "hi")))
	if live != mount {
		t.Error("mount node was replaced")
	}
	if got := doc.Count(memdom.OpCreate, memdom.OpRemove); got != 0 {
		t.Errorf("create/remove = %d, want 0: %v", got, doc.Ops())
	}
}

func TestRecycle_KeyedChildrenPatchPositionally(t *testing.T) {
	doc := memdom.New()
	mount := doc.Element("ul", doc.Element("li", doc.Text("a")), doc.Element("li", doc.Text("b")))
	root := doc.Element("body", mount)
	r := New(doc, &nopListener{})

	r.Patch(root, mount, r.Recycle(mount), list("a", "b"))

	if got := memdom.Outer(mount); got != listHTML("a", "b") {
		t.Errorf("Outer() = %s", got)
	}
	if got := doc.Count(memdom.OpCreate); got != 0 {
		t.Errorf("creates = %d, want 0", got)
	}
}

func TestPatch_MixedChildrenBeforeKeyedTail(t *testing.T) {
	_, root, r := setup()
	old := vnode.H("div", nil, vnode.H("p", nil, "x"), vnode.H("li", vnode.Props{"key": "t"}, "t"))
	live := r.Patch(root, nil, nil, old)

	next := vnode.H("div", nil,
		vnode.H("p", nil, "y"),
		vnode.H("span", nil, "z"),
		vnode.H("li", vnode.Props{"key": "t"}, "t"),
	)
	r.Patch(root, live, old, next)

	if got, want := memdom.Outer(live), "<div><p>y</p><span>z</span><li>t</li></div>"; got != want {
		t.Errorf("Outer() = %s, want %s", got, want)
	}
}

// shape describes a random virtual subtree; it is built twice so the
// patched tree and the freshly rendered one share no nodes.
type shape struct {
	tag  string // empty for a text node
	text string
	key  string
	attr string
	kids []shape
}

func randomShapes(rng *rand.Rand, depth int) []shape {
	keys := rng.Perm(8)
	out := make([]shape, rng.IntN(7))
	for i := range out {
		switch rng.IntN(4) {
		case 0:
			out[i] = shape{text: fmt.Sprintf("t%d", rng.IntN(3))}
			continue
		case 1:
			out[i] = shape{tag: []string{"p", "span"}[rng.IntN(2)]}
		default:
			out[i] = shape{tag: []string{"li", "dd"}[rng.IntN(2)], key: string(rune('a' + keys[i]))}
		}
		if rng.IntN(2) == 0 {
			out[i].attr = fmt.Sprintf("v%d", rng.IntN(2))
		}
		if depth > 0 {
			out[i].kids = randomShapes(rng, depth-1)
		}
	}
	return out
}

func (s shape) build() *vnode.Node {
	if s.tag == "" {
		return vnode.NewText(s.text)
	}
	props := vnode.Props{}
	if s.key != "" {
		props["key"] = s.key
	}
	if s.attr != "" {
		props["data-v"] = s.attr
	}
	return vnode.H(s.tag, props, buildAll(s.kids))
}

func buildAll(shapes []shape) []any {
	out := make([]any, len(shapes))
	for i, s := range shapes {
		out[i] = s.build()
	}
	return out
}

func countLive(n host.Node) int {
	total := 1
	for _, c := range n.ChildNodes() {
		total += countLive(c)
	}
	return total
}

func TestPatch_MatchesFreshRender(t *testing.T) {
	for seed := range uint64(400) {
		rng := rand.New(rand.NewPCG(seed, 7))
		_, root, r := setup()

		var (
			prev *vnode.Node
			live host.Node
		)
		for step := range 3 {
			shapes := randomShapes(rng, 2)
			next := vnode.H("div", nil, buildAll(shapes))
			live = r.Patch(root, live, prev, next)
			prev = next

			_, freshRoot, fresh := setup()
			want := memdom.Outer(fresh.Patch(freshRoot, nil, nil, vnode.H("div", nil, buildAll(shapes))))
			if got := memdom.Outer(live); got != want {
				t.Fatalf("seed %d step %d: Outer() = %s, want %s", seed, step, got, want)
			}
			if got, want := r.Len(), countLive(live); got != want {
				t.Fatalf("seed %d step %d: arena holds %d entries, live tree has %d nodes", seed, step, got, want)
			}
		}
	}
}
