package reconcile

import (
	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// patchChildren runs the keyed two-pointer diff over the children of old
// and next. Resolved lazy children are written back into next.Children so
// the following patch diffs against concrete nodes.
//
// Patching a child moves its arena entry to the new virtual node, so the
// live nodes of the old children are read once up front and every
// insertion reference comes from that snapshot.
func (r *Reconciler) patchChildren(node host.Element, old, next *vnode.Node, svg bool) {
	oldKids, newKids := old.Children, next.Children
	oldLive := make([]host.Node, len(oldKids))
	for i, kid := range oldKids {
		oldLive[i] = r.live[kid]
	}

	oldHead, newHead := 0, 0
	oldTail, newTail := len(oldKids)-1, len(newKids)-1

	for newHead <= newTail && oldHead <= oldTail {
		oldKid := oldKids[oldHead]
		if oldKid.Key == nil || oldKid.Key != vnode.KeyOf(newKids[newHead]) {
			break
		}
		newKids[newHead] = vnode.Resolve(newKids[newHead], oldKid)
		r.patch(node, oldLive[oldHead], oldKid, newKids[newHead], svg)
		oldHead++
		newHead++
	}

	for newHead <= newTail && oldHead <= oldTail {
		oldKid := oldKids[oldTail]
		if oldKid.Key == nil || oldKid.Key != vnode.KeyOf(newKids[newTail]) {
			break
		}
		newKids[newTail] = vnode.Resolve(newKids[newTail], oldKid)
		r.patch(node, oldLive[oldTail], oldKid, newKids[newTail], svg)
		oldTail--
		newTail--
	}

	// Everything after newTail is the matched tail, already in place. Its
	// first live node is read from the arena since patching may have
	// replaced it.
	var tail host.Node
	if newTail+1 < len(newKids) {
		tail = r.live[newKids[newTail+1]]
	}

	switch {
	case oldHead > oldTail:
		for ; newHead <= newTail; newHead++ {
			newKids[newHead] = vnode.Resolve(newKids[newHead], nil)
			node.InsertBefore(r.create(newKids[newHead], svg), tail)
		}

	case newHead > newTail:
		for ; oldHead <= oldTail; oldHead++ {
			r.remove(node, oldKids[oldHead])
		}

	default:
		m := middle{
			node:    node,
			oldKids: oldKids[:oldTail+1],
			oldLive: oldLive[:oldTail+1],
			tail:    tail,
			recycle: old.Kind == vnode.KindRecycled,
			svg:     svg,
		}
		r.patchMiddle(&m, oldHead, newKids[newHead:newTail+1])
	}
}

// middle is the unmatched run of old children between the matched head and
// tail. New children are placed in order before the cursor's live node, or
// before the matched tail once the cursor has passed the run.
type middle struct {
	node    host.Element
	oldKids []*vnode.Node
	oldLive []host.Node
	tail    host.Node
	recycle bool
	svg     bool
}

func (m *middle) kid(i int) *vnode.Node {
	if i < len(m.oldKids) {
		return m.oldKids[i]
	}
	return nil
}

func (m *middle) ref(i int) host.Node {
	if i < len(m.oldLive) {
		return m.oldLive[i]
	}
	return m.tail
}

func (r *Reconciler) patchMiddle(m *middle, oldHead int, newKids []*vnode.Node) {
	start := oldHead

	keyed := make(map[any]int)
	newKeyed := make(map[any]bool)
	for i := oldHead; i < len(m.oldKids); i++ {
		if k := m.oldKids[i].Key; k != nil {
			keyed[k] = i
		}
	}

	for newHead := 0; newHead < len(newKids); {
		oldKid := m.kid(oldHead)
		oldKey := vnode.KeyOf(oldKid)
		newKey := vnode.KeyOf(newKids[newHead])

		// The cursor was moved earlier, or the next old child is the one
		// wanted here: step past the cursor.
		if (oldKey != nil && newKeyed[oldKey]) ||
			(newKey != nil && oldKid != nil && newKey == vnode.KeyOf(m.kid(oldHead+1))) {
			if oldKey == nil {
				r.remove(m.node, oldKid)
			}
			oldHead++
			continue
		}

		if newKey == nil || m.recycle {
			if oldKid == nil {
				newKids[newHead] = vnode.Resolve(newKids[newHead], nil)
				r.patch(m.node, m.tail, nil, newKids[newHead], m.svg)
				newHead++
				continue
			}
			if oldKey == nil {
				newKids[newHead] = vnode.Resolve(newKids[newHead], oldKid)
				r.patch(m.node, m.oldLive[oldHead], oldKid, newKids[newHead], m.svg)
				newHead++
			}
			oldHead++
			continue
		}

		i, found := keyed[newKey]
		switch {
		case found && i == oldHead:
			newKids[newHead] = vnode.Resolve(newKids[newHead], oldKid)
			r.patch(m.node, m.oldLive[i], oldKid, newKids[newHead], m.svg)
			oldHead++
		case found && !newKeyed[newKey]:
			moved := m.node.InsertBefore(m.oldLive[i], m.ref(oldHead))
			newKids[newHead] = vnode.Resolve(newKids[newHead], m.oldKids[i])
			r.patch(m.node, moved, m.oldKids[i], newKids[newHead], m.svg)
		default:
			newKids[newHead] = vnode.Resolve(newKids[newHead], nil)
			r.patch(m.node, m.ref(oldHead), nil, newKids[newHead], m.svg)
		}
		newKeyed[newKey] = true
		newHead++
	}

	for ; oldHead < len(m.oldKids); oldHead++ {
		if kid := m.oldKids[oldHead]; kid.Key == nil {
			r.remove(m.node, kid)
		}
	}

	for i := start; i < len(m.oldKids); i++ {
		kid := m.oldKids[i]
		if k := kid.Key; k != nil && !newKeyed[k] {
			r.remove(m.node, kid)
		}
	}
}
