package itc

// Event is a causal-counter tree indexed by the same binary subdivision
// of the unit interval as ID. The counter at a node is the base number
// of events witnessed across the node's whole subinterval; children
// record additional events on top of that base. The effective count at
// any point of the interval is the sum of counters along the root-to-
// leaf path covering it.
//
// A valid Event is always in normal form: in every internal node at
// least one child has a base counter of zero.
type Event struct {
	count Counter

	// For internal nodes: both children are present and distinct.
	// For leaf nodes: both are nil.
	left  *Event
	right *Event
}

// NewEvent returns a fresh Event tree that has witnessed nothing:
// a single leaf with counter zero.
func NewEvent() *Event {
	return &Event{}
}

// eventLeaf assembles a leaf with counter n.
func eventLeaf(n Counter) *Event {
	return &Event{count: n}
}

// eventNode assembles an internal node from a base counter and two
// children. The caller is responsible for normalisation.
func eventNode(n Counter, left, right *Event) *Event {
	return &Event{count: n, left: left, right: right}
}

// IsLeaf reports whether the Event is a leaf node.
func (e *Event) IsLeaf() bool {
	return e != nil && e.left == nil && e.right == nil
}

// Count returns the base counter of the node. For a leaf this is its
// full effective count.
func (e *Event) Count() Counter {
	return e.count
}

// Clone returns a deep structural copy of the Event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := &Event{count: e.count}
	if !e.IsLeaf() {
		c.left = e.left.Clone()
		c.right = e.right.Clone()
	}
	return c
}

// Destroy releases the tree by detaching every node. The Event and any
// subtree reachable from it must not be used afterwards.
func (e *Event) Destroy() {
	if e == nil {
		return
	}
	e.left.Destroy()
	e.right.Destroy()
	e.left = nil
	e.right = nil
	e.count = 0
}

// Validate checks the Event against its invariants: leaves have no
// children, internal nodes have two distinct non-nil children, and the
// tree is in normal form (every internal node has at least one child
// with a zero base counter). A nil Event yields ErrInvalidParam; any
// violation yields ErrCorruptEvent.
func (e *Event) Validate() error {
	if e == nil {
		return ErrInvalidParam
	}
	return validateEvent(e, true)
}

func validateEvent(e *Event, requireNorm bool) error {
	if e.IsLeaf() {
		return nil
	}
	if e.left == nil || e.right == nil || e.left == e.right {
		return ErrCorruptEvent
	}
	if requireNorm && e.left.count != 0 && e.right.count != 0 {
		return ErrCorruptEvent
	}
	if err := validateEvent(e.left, requireNorm); err != nil {
		return err
	}
	return validateEvent(e.right, requireNorm)
}

// addCounter adds two counters, detecting wraparound.
func addCounter(a, b Counter) (Counter, error) {
	if a+b < a {
		return 0, ErrCounterOverflow
	}
	return a + b, nil
}

// subCounter subtracts b from a, detecting wraparound.
func subCounter(a, b Counter) (Counter, error) {
	if a-b > a {
		return 0, ErrCounterUnderflow
	}
	return a - b, nil
}

// Normalise returns the normal form of the Event, rewriting bottom-up:
//
//	norm(n)         = n
//	norm((n, m, m)) = n + m                          (two equal leaves)
//	norm((n, l, r)) = (n + m, sink(l, m), sink(r, m)) with m = min(l, r)
//
// The input is not modified. Lifting a base counter past the maximum
// yields ErrCounterOverflow.
func (e *Event) Normalise() (*Event, error) {
	if e == nil {
		return nil, ErrInvalidParam
	}
	if err := validateEvent(e, false); err != nil {
		return nil, err
	}
	return normEvent(e)
}

func normEvent(e *Event) (*Event, error) {
	if e.IsLeaf() {
		return eventLeaf(e.count), nil
	}
	left, err := normEvent(e.left)
	if err != nil {
		return nil, err
	}
	right, err := normEvent(e.right)
	if err != nil {
		return nil, err
	}
	return normEventNode(e.count, left, right)
}

// normEventNode builds a normalised node from a base counter and two
// already-normalised children. The children are owned by the caller and
// may be adjusted in place.
func normEventNode(n Counter, left, right *Event) (*Event, error) {
	if left.IsLeaf() && right.IsLeaf() && left.count == right.count {
		return addCounterLeaf(n, left.count)
	}
	m := min(left.count, right.count)
	base, err := addCounter(n, m)
	if err != nil {
		return nil, err
	}
	if left.count, err = subCounter(left.count, m); err != nil {
		return nil, err
	}
	if right.count, err = subCounter(right.count, m); err != nil {
		return nil, err
	}
	return eventNode(base, left, right), nil
}

func addCounterLeaf(a, b Counter) (*Event, error) {
	n, err := addCounter(a, b)
	if err != nil {
		return nil, err
	}
	return eventLeaf(n), nil
}

// Maximise collapses the Event to a single leaf whose counter is the
// largest effective count anywhere in the tree. The input is not
// modified.
func (e *Event) Maximise() (*Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	m, err := maxEvent(e)
	if err != nil {
		return nil, err
	}
	return eventLeaf(m), nil
}

// maxEvent returns the largest root-to-leaf counter sum.
func maxEvent(e *Event) (Counter, error) {
	if e.IsLeaf() {
		return e.count, nil
	}
	ml, err := maxEvent(e.left)
	if err != nil {
		return 0, err
	}
	mr, err := maxEvent(e.right)
	if err != nil {
		return 0, err
	}
	return addCounter(e.count, max(ml, mr))
}

// equalEvent reports structural equality of two trees.
func equalEvent(a, b *Event) bool {
	if a.IsLeaf() != b.IsLeaf() || a.count != b.count {
		return false
	}
	if a.IsLeaf() {
		return true
	}
	return equalEvent(a.left, b.left) && equalEvent(a.right, b.right)
}
