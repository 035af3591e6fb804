// Package vnode defines the virtual tree consumed by the reconciler.
//
// A Node is an immutable-in-intent description of one unit of UI. Views
// build fresh trees on every render; the reconciler diffs them against the
// previous tree and applies the difference to the live tree.
package vnode

import (
	"fmt"
	"strconv"
)

// Kind distinguishes the shapes a virtual node can take.
type Kind int

const (
	// KindElement is a regular element with a tag, props and children.
	KindElement Kind = iota
	// KindText is a text node; its content lives in Node.Text.
	KindText
	// KindLazy wraps a view function whose output is computed on demand.
	KindLazy
	// KindRecycled is an element read back from an existing live tree.
	KindRecycled
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindLazy:
		return "lazy"
	case KindRecycled:
		return "recycled"
	default:
		return "unknown"
	}
}

// Props maps property names to values. Values are primitives, actions,
// nested style maps or class lists.
type Props map[string]any

// Node is one virtual node.
type Node struct {
	Tag      string
	Text     string
	Props    Props
	Children []*Node
	Key      any
	Kind     Kind

	// lazy is the spec of a KindLazy node, or, on a resolved node, the spec it
	// was resolved from.
	lazy *lazySpec
}

// H builds an element node. Children may be *Node, []*Node, []any, strings,
// numbers or nil/bool placeholders, which are dropped. Nested slices are
// flattened in order.
func H(tag string, props Props, children ...any) *Node {
	if props == nil {
		props = Props{}
	}
	n := &Node{
		Tag:   tag,
		Props: props,
		Key:   props["key"],
		Kind:  KindElement,
	}
	n.Children = appendChildren(nil, children)
	return n
}

// Component is a view function usable as a tag. It receives its props and
// the flattened children it was called with.
type Component func(props Props, children []*Node) *Node

// C calls c with props and children flattened the way H flattens them. When
// the result has no key it takes props["key"], so components can be listed
// as keyed siblings. Text components return NewText.
func C(c Component, props Props, children ...any) *Node {
	if props == nil {
		props = Props{}
	}
	out := c(props, appendChildren(nil, children))
	if out != nil && out.Key == nil {
		out.Key = props["key"]
	}
	return out
}

// NewText builds a text node.
func NewText(s string) *Node {
	return &Node{Text: s, Kind: KindText}
}

// NewRecycled builds a recycled element node. Recycled nodes carry no props;
// the reconciler treats their children positionally.
func NewRecycled(tag string, children []*Node) *Node {
	return &Node{
		Tag:      tag,
		Props:    Props{},
		Children: children,
		Kind:     KindRecycled,
	}
}

func appendChildren(out []*Node, children []any) []*Node {
	for _, c := range children {
		switch c := c.(type) {
		case nil, bool:
		case *Node:
			if c != nil {
				out = append(out, c)
			}
		case []*Node:
			for _, n := range c {
				if n != nil {
					out = append(out, n)
				}
			}
		case []any:
			out = appendChildren(out, c)
		case string:
			out = append(out, NewText(c))
		case int:
			out = append(out, NewText(strconv.Itoa(c)))
		case int64:
			out = append(out, NewText(strconv.FormatInt(c, 10)))
		case float64:
			out = append(out, NewText(strconv.FormatFloat(c, 'f', -1, 64)))
		case fmt.Stringer:
			out = append(out, NewText(c.String()))
		default:
			out = append(out, NewText(fmt.Sprint(c)))
		}
	}
	return out
}

// KeyOf returns the key of n, or nil when n is nil.
func KeyOf(n *Node) any {
	if n == nil {
		return nil
	}
	return n.Key
}
