// Package memdom is an in-memory live tree implementing the host
// interfaces. Every mutation is appended to the document's operation log,
// which tests use to count exactly what the reconciler did.
package memdom

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Iron-Ham/reactor/internal/host"
)

// settable lists the element keys treated as properties instead of
// attributes.
var settable = map[string]any{
	"value":    "",
	"checked":  false,
	"selected": false,
	"disabled": false,
	"hidden":   false,
	"id":       "",
	"title":    "",
	"tabIndex": 0,
}

// Document owns the nodes it creates and the operation log.
type Document struct {
	nextID    int
	ops       []Op
	listeners map[string][]host.Listener
}

// New creates an empty document.
func New() *Document {
	return &Document{listeners: make(map[string][]host.Listener)}
}

var _ host.Document = (*Document)(nil)
var _ host.EventTarget = (*Document)(nil)

// CreateElement creates an element in the default namespace.
func (d *Document) CreateElement(tag string) host.Element {
	return d.newElement("", tag)
}

// CreateElementNS creates an element in the given namespace.
func (d *Document) CreateElementNS(namespace, tag string) host.Element {
	return d.newElement(namespace, tag)
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) host.Node {
	n := d.newNode(host.TextNode)
	n.value = text
	d.record(Op{Kind: OpCreate, Node: n.id, Name: "#text", Value: text})
	return n
}

// Element creates an element without logging it. Use it to set up mount
// points before the code under test runs.
func (d *Document) Element(tag string, children ...*Node) *Node {
	n := d.newNode(host.ElementNode)
	n.name = strings.ToLower(tag)
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Text creates a text node without logging it.
func (d *Document) Text(s string) *Node {
	n := d.newNode(host.TextNode)
	n.value = s
	return n
}

func (d *Document) newElement(ns, tag string) *Node {
	n := d.newNode(host.ElementNode)
	n.name = strings.ToLower(tag)
	n.ns = ns
	d.record(Op{Kind: OpCreate, Node: n.id, Name: n.name})
	return n
}

func (d *Document) newNode(typ host.NodeType) *Node {
	d.nextID++
	return &Node{doc: d, id: d.nextID, typ: typ}
}

// AddEventListener registers a document-level listener. Events dispatched
// on any node bubble up to these after the node's ancestors.
func (d *Document) AddEventListener(eventType string, l host.Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], l)
}

// RemoveEventListener removes a document-level listener.
func (d *Document) RemoveEventListener(eventType string, l host.Listener) {
	d.listeners[eventType] = removeListener(d.listeners[eventType], l)
}

// DispatchEvent delivers e to document-level listeners only.
func (d *Document) DispatchEvent(e *host.Event) {
	d.deliver(e)
}

func (d *Document) deliver(e *host.Event) {
	e.CurrentTarget = nil
	for _, l := range slices.Clone(d.listeners[e.Type]) {
		l.HandleEvent(e)
	}
}

// Node is an element or text node.
type Node struct {
	doc       *Document
	id        int
	typ       host.NodeType
	name      string
	ns        string
	value     string
	attrs     map[string]string
	style     map[string]string
	props     map[string]any
	listeners map[string][]host.Listener
	parent    *Node
	children  []*Node
}

var _ host.Element = (*Node)(nil)

// ID returns the node's creation sequence number, as used in the op log.
func (n *Node) ID() int { return n.id }

// Namespace returns the element namespace, empty for the default one.
func (n *Node) Namespace() string { return n.ns }

func (n *Node) NodeType() host.NodeType { return n.typ }

func (n *Node) NodeName() string {
	if n.typ == host.TextNode {
		return "#text"
	}
	return n.name
}

func (n *Node) NodeValue() string { return n.value }

func (n *Node) SetNodeValue(v string) {
	n.value = v
	n.doc.record(Op{Kind: OpText, Node: n.id, Value: v})
}

func (n *Node) ParentNode() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ChildNodes() []host.Node {
	out := make([]host.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Children returns the typed child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// InsertBefore moves or inserts child before ref; a nil ref appends.
func (n *Node) InsertBefore(child, ref host.Node) host.Node {
	c := child.(*Node)
	if ref != nil && c == ref.(*Node) {
		return c
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	idx := len(n.children)
	refID := 0
	if ref != nil {
		r := ref.(*Node)
		idx = slices.Index(n.children, r)
		if idx < 0 {
			panic(fmt.Sprintf("memdom: node %d is not a child of %d", r.id, n.id))
		}
		refID = r.id
	}
	n.children = slices.Insert(n.children, idx, c)
	c.parent = n
	n.doc.record(Op{Kind: OpInsert, Node: c.id, Parent: n.id, Ref: refID})
	return c
}

func (n *Node) AppendChild(child host.Node) host.Node {
	return n.InsertBefore(child, nil)
}

func (n *Node) RemoveChild(child host.Node) host.Node {
	c := child.(*Node)
	if c.parent != n {
		panic(fmt.Sprintf("memdom: node %d is not a child of %d", c.id, n.id))
	}
	n.detach(c)
	n.doc.record(Op{Kind: OpRemove, Node: c.id, Parent: n.id})
	return c
}

func (n *Node) detach(c *Node) {
	if i := slices.Index(n.children, c); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	c.parent = nil
}

func (n *Node) HasProperty(key string) bool {
	if n.typ != host.ElementNode || n.ns != "" {
		return false
	}
	_, ok := settable[key]
	return ok
}

// Property returns the property value, or its default when unset.
func (n *Node) Property(key string) any {
	if v, ok := n.props[key]; ok {
		return v
	}
	return settable[key]
}

func (n *Node) SetProperty(key string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[key] = value
	n.doc.record(Op{Kind: OpProp, Node: n.id, Name: key, Value: fmt.Sprint(value)})
}

// Attribute returns an attribute value and whether it is set.
func (n *Node) Attribute(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

func (n *Node) SetAttribute(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	n.doc.record(Op{Kind: OpAttr, Node: n.id, Name: key, Value: value})
}

func (n *Node) RemoveAttribute(key string) {
	delete(n.attrs, key)
	n.doc.record(Op{Kind: OpRemoveAttr, Node: n.id, Name: key})
}

// SetStyle sets one style declaration; an empty value removes it.
func (n *Node) SetStyle(key, value string) {
	if value == "" {
		delete(n.style, key)
	} else {
		if n.style == nil {
			n.style = make(map[string]string)
		}
		n.style[key] = value
	}
	n.doc.record(Op{Kind: OpStyle, Node: n.id, Name: key, Value: value})
}

// Style returns a copy of the element's style declarations.
func (n *Node) Style() map[string]string {
	return maps.Clone(n.style)
}

func (n *Node) AddEventListener(eventType string, l host.Listener) {
	if n.listeners == nil {
		n.listeners = make(map[string][]host.Listener)
	}
	n.listeners[eventType] = append(n.listeners[eventType], l)
	n.doc.record(Op{Kind: OpListen, Node: n.id, Name: eventType})
}

func (n *Node) RemoveEventListener(eventType string, l host.Listener) {
	n.listeners[eventType] = removeListener(n.listeners[eventType], l)
	n.doc.record(Op{Kind: OpUnlisten, Node: n.id, Name: eventType})
}

// Listening reports whether the node has a listener for eventType.
func (n *Node) Listening(eventType string) bool {
	return len(n.listeners[eventType]) > 0
}

// DispatchEvent delivers e to n, its ancestors and then the document.
func (n *Node) DispatchEvent(e *host.Event) {
	e.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		e.CurrentTarget = cur
		for _, l := range slices.Clone(cur.listeners[e.Type]) {
			l.HandleEvent(e)
		}
	}
	n.doc.deliver(e)
}

func removeListener(ls []host.Listener, l host.Listener) []host.Listener {
	for i, x := range ls {
		if x == l {
			return slices.Delete(ls, i, i+1)
		}
	}
	return ls
}
