// Package reconcile applies the difference between two virtual trees to a
// live tree.
//
// Virtual nodes do not point at their live nodes. The Reconciler keeps an
// arena mapping each committed virtual node to the live node it realized;
// patching moves an entry from the old virtual node to the new one and
// removing a subtree releases its entries.
//
// Keys must be comparable values. Duplicate keys among siblings are not
// detected; the last one wins.
package reconcile

import (
	"strings"

	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// Reconciler patches live trees created by one document.
type Reconciler struct {
	doc      host.Document
	listener host.Listener
	live     map[*vnode.Node]host.Node
	actions  map[host.Node]map[string]any
}

// New creates a Reconciler. listener is registered for every event prop;
// it finds the prop value for an event through Action.
func New(doc host.Document, listener host.Listener) *Reconciler {
	return &Reconciler{
		doc:      doc,
		listener: listener,
		live:     make(map[*vnode.Node]host.Node),
		actions:  make(map[host.Node]map[string]any),
	}
}

// Patch turns the live node realizing old into one realizing next and
// returns it. live may be nil when old is nil, in which case next is
// created and appended to parent. Host failures propagate as panics.
func (r *Reconciler) Patch(parent, live host.Node, old, next *vnode.Node) host.Node {
	return r.patch(parent, live, old, next, false)
}

// Live returns the live node realizing v, or nil.
func (r *Reconciler) Live(v *vnode.Node) host.Node {
	return r.live[v]
}

// Action returns the value of the event prop registered for event on node,
// where event is the lowercased name without the "on" prefix.
func (r *Reconciler) Action(node host.Node, event string) any {
	return r.actions[node][event]
}

// Recycle reads an existing live tree back as virtual nodes so the first
// patch can take it over instead of recreating it.
func (r *Reconciler) Recycle(n host.Node) *vnode.Node {
	var v *vnode.Node
	if n.NodeType() == host.TextNode {
		v = vnode.NewText(n.NodeValue())
	} else {
		kids := n.ChildNodes()
		children := make([]*vnode.Node, len(kids))
		for i, k := range kids {
			children[i] = r.Recycle(k)
		}
		v = vnode.NewRecycled(strings.ToLower(n.NodeName()), children)
	}
	r.live[v] = n
	return v
}

// Len returns the number of arena entries.
func (r *Reconciler) Len() int {
	return len(r.live)
}

func (r *Reconciler) patch(parent, node host.Node, old, next *vnode.Node, svg bool) host.Node {
	next = vnode.Resolve(next, old)

	switch {
	case old == next:

	case old != nil && old.Kind == vnode.KindText && next.Kind == vnode.KindText:
		if old.Text != next.Text {
			node.SetNodeValue(next.Text)
		}

	case old == nil || old.Tag != next.Tag:
		var stale host.Node
		if old != nil {
			stale = r.live[old]
			r.release(old)
		}
		node = parent.InsertBefore(r.create(next, svg), node)
		if stale != nil {
			parent.RemoveChild(stale)
		}

	default:
		el := node.(host.Element)
		svg = svg || next.Tag == "svg"
		r.patchProps(el, old.Props, next.Props, svg)
		r.patchChildren(el, old, next, svg)
	}

	if old != nil && old != next && r.live[old] == node {
		delete(r.live, old)
	}
	r.live[next] = node
	return node
}

func (r *Reconciler) create(v *vnode.Node, svg bool) host.Node {
	var n host.Node
	if v.Kind == vnode.KindText {
		n = r.doc.CreateTextNode(v.Text)
	} else {
		svg = svg || v.Tag == "svg"
		var el host.Element
		if svg {
			el = r.doc.CreateElementNS(host.SVGNamespace, v.Tag)
		} else {
			el = r.doc.CreateElement(v.Tag)
		}
		for _, k := range sortedKeys(v.Props, nil) {
			r.patchProperty(el, k, nil, v.Props[k], svg)
		}
		for i, c := range v.Children {
			c = vnode.Resolve(c, nil)
			v.Children[i] = c
			el.AppendChild(r.create(c, svg))
		}
		n = el
	}
	r.live[v] = n
	return n
}

// remove detaches the live node of v from parent and releases the subtree.
func (r *Reconciler) remove(parent host.Node, v *vnode.Node) {
	live := r.live[v]
	r.release(v)
	parent.RemoveChild(live)
}

func (r *Reconciler) release(v *vnode.Node) {
	if n, ok := r.live[v]; ok {
		delete(r.actions, n)
		delete(r.live, v)
	}
	for _, c := range v.Children {
		r.release(c)
	}
}
