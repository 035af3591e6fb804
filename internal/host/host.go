// Package host defines the live-tree API the reconciler drives.
//
// The kernel decides which calls happen and in what order; a host decides
// what they mean. memdom is the in-memory implementation used by tests, the
// headless renderer and the terminal host.
package host

// SVGNamespace is the namespace used for svg elements and their descendants.
const SVGNamespace = "http://www.w3.org/2000/svg"

// NodeType identifies element and text nodes.
type NodeType int

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
)

// Event is delivered to listeners. CurrentTarget is the node whose listener
// is running while the event bubbles.
type Event struct {
	Type          string
	Target        Node
	CurrentTarget Node
	Key           string
	Value         string
}

// Listener receives events. Listeners are compared by identity when
// removed, so implementations should be pointers.
type Listener interface {
	HandleEvent(e *Event)
}

// EventTarget is anything listeners can be attached to.
type EventTarget interface {
	AddEventListener(eventType string, l Listener)
	RemoveEventListener(eventType string, l Listener)
}

// Node is a live node. InsertBefore with a nil ref appends.
type Node interface {
	NodeType() NodeType
	NodeName() string
	NodeValue() string
	SetNodeValue(v string)
	ParentNode() Node
	ChildNodes() []Node
	InsertBefore(child, ref Node) Node
	AppendChild(child Node) Node
	RemoveChild(child Node) Node
}

// Element is a live element node.
type Element interface {
	Node
	EventTarget

	// HasProperty reports whether key is a settable property of the element
	// rather than an attribute.
	HasProperty(key string) bool
	Property(key string) any
	SetProperty(key string, value any)
	SetAttribute(key, value string)
	RemoveAttribute(key string)
	SetStyle(key, value string)
}

// Document creates live nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateElementNS(namespace, tag string) Element
	CreateTextNode(text string) Node
}
