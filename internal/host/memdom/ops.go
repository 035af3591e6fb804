package memdom

import "fmt"

// OpKind names a host mutation.
type OpKind string

const (
	OpCreate     OpKind = "create"
	OpInsert     OpKind = "insert"
	OpRemove     OpKind = "remove"
	OpText       OpKind = "text"
	OpProp       OpKind = "prop"
	OpAttr       OpKind = "attr"
	OpRemoveAttr OpKind = "remove-attr"
	OpStyle      OpKind = "style"
	OpListen     OpKind = "listen"
	OpUnlisten   OpKind = "unlisten"
)

// Op is one logged mutation. Node, Parent and Ref are node IDs; Ref is zero
// for an append.
type Op struct {
	Kind   OpKind
	Node   int
	Parent int
	Ref    int
	Name   string
	Value  string
}

func (o Op) String() string {
	switch o.Kind {
	case OpInsert:
		return fmt.Sprintf("insert %d into %d before %d", o.Node, o.Parent, o.Ref)
	case OpRemove:
		return fmt.Sprintf("remove %d from %d", o.Node, o.Parent)
	case OpCreate, OpText:
		return fmt.Sprintf("%s %d %s%q", o.Kind, o.Node, o.Name, o.Value)
	default:
		return fmt.Sprintf("%s %d %s=%q", o.Kind, o.Node, o.Name, o.Value)
	}
}

func (d *Document) record(op Op) {
	d.ops = append(d.ops, op)
}

// Ops returns the mutations logged since the last Reset.
func (d *Document) Ops() []Op {
	out := make([]Op, len(d.ops))
	copy(out, d.ops)
	return out
}

// Count returns how many logged mutations are of the given kinds.
func (d *Document) Count(kinds ...OpKind) int {
	n := 0
	for _, op := range d.ops {
		for _, k := range kinds {
			if op.Kind == k {
				n++
				break
			}
		}
	}
	return n
}

// Reset clears the operation log.
func (d *Document) Reset() {
	d.ops = nil
}
