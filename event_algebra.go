package itc

// Join merges two Events into their least upper bound: the point-wise
// maximum of effective counts across the interval, normalised. Neither
// input is modified. Join is commutative and idempotent.
func (e *Event) Join(other *Event) (*Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := other.Validate(); err != nil {
		return nil, err
	}
	return joinEvent(e, other)
}

// joinEvent applies the join rules:
//
//	join(n1, n2)                     = max(n1, n2)
//	join(n1, (n2, l2, r2))           = join((n1, 0, 0), (n2, l2, r2))
//	join((n1, l1, r1), n2)           = join((n1, l1, r1), (n2, 0, 0))
//	join((n1, l1, r1), (n2, l2, r2)) with n1 <= n2, d = n2 - n1:
//	    norm((n1, join(l1, lift(l2, d)), join(r1, lift(r2, d))))
//
// and symmetrically when n1 > n2.
func joinEvent(a, b *Event) (*Event, error) {
	if a.IsLeaf() && b.IsLeaf() {
		return eventLeaf(max(a.count, b.count)), nil
	}
	if a.IsLeaf() {
		return joinEvent(eventNode(a.count, eventLeaf(0), eventLeaf(0)), b)
	}
	if b.IsLeaf() {
		return joinEvent(a, eventNode(b.count, eventLeaf(0), eventLeaf(0)))
	}
	if a.count > b.count {
		return joinEvent(b, a)
	}
	d := b.count - a.count
	bl, err := liftedView(b.left, d)
	if err != nil {
		return nil, err
	}
	br, err := liftedView(b.right, d)
	if err != nil {
		return nil, err
	}
	left, err := joinEvent(a.left, bl)
	if err != nil {
		return nil, err
	}
	right, err := joinEvent(a.right, br)
	if err != nil {
		return nil, err
	}
	return normEventNode(a.count, left, right)
}

// liftedView returns a node equal to e with its base counter raised by
// d. The children are shared, not copied; the view is only ever read.
func liftedView(e *Event, d Counter) (*Event, error) {
	n, err := addCounter(e.count, d)
	if err != nil {
		return nil, err
	}
	return &Event{count: n, left: e.left, right: e.right}, nil
}

// Leq reports whether every point of the interval has witnessed at most
// as many events in e as in other. Two Events with Leq false in both
// directions are concurrent. Neither input is modified.
func (e *Event) Leq(other *Event) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}
	return leqEvent(e, 0, other, 0)
}

// leqEvent compares two trees with the counters accumulated on the path
// from each root carried in offA and offB, which stands in for the
// repeated lift() of the textbook rules.
func leqEvent(a *Event, offA Counter, b *Event, offB Counter) (bool, error) {
	na, err := addCounter(offA, a.count)
	if err != nil {
		return false, err
	}
	nb, err := addCounter(offB, b.count)
	if err != nil {
		return false, err
	}
	if a.IsLeaf() {
		return na <= nb, nil
	}
	if na > nb {
		return false, nil
	}
	// Compare each child of a against the matching child of b, or
	// against b itself when b has no more structure on this path.
	bl, br := b, b
	if !b.IsLeaf() {
		bl, br = b.left, b.right
		offB = nb
	}
	ok, err := leqEvent(a.left, na, bl, offB)
	if err != nil || !ok {
		return false, err
	}
	return leqEvent(a.right, na, br, offB)
}

// Fill inflates the Event using the ownership recorded in id without
// adding new structure: wherever id owns a whole subinterval, the
// matching Event subtree collapses to its maximum. It returns the
// inflated Event and whether anything changed. Neither input is
// modified.
func (e *Event) Fill(id *ID) (*Event, bool, error) {
	if err := e.Validate(); err != nil {
		return nil, false, err
	}
	if err := id.Validate(); err != nil {
		return nil, false, err
	}
	return fillEvent(e, id)
}

// fillEvent applies the fill rules:
//
//	fill(0, e) = e
//	fill(1, e) = max(e)
//	fill(i, n) = n
//	fill((1, ir), (n, el, er)) = norm((n, max(max(el), min(er')), er'))
//	                             with er' = fill(ir, er)
//	fill((il, 1), (n, el, er)) = norm((n, el', max(max(er), min(el'))))
//	                             with el' = fill(il, el)
//	fill((il, ir), (n, el, er)) = norm((n, fill(il, el), fill(ir, er)))
//
// When a whole side is owned, the owned subtree is raised to at least
// the minimum of its freshly filled sibling, so the ownership is used
// to absorb as much of the sibling's history as possible.
func fillEvent(e *Event, id *ID) (*Event, bool, error) {
	if id.IsNull() {
		return e.Clone(), false, nil
	}
	if id.IsSeed() {
		if e.IsLeaf() {
			return e.Clone(), false, nil
		}
		m, err := maxEvent(e)
		if err != nil {
			return nil, false, err
		}
		return eventLeaf(m), true, nil
	}
	if e.IsLeaf() {
		return e.Clone(), false, nil
	}
	if id.left.IsSeed() {
		right, changed, err := fillEvent(e.right, id.right)
		if err != nil {
			return nil, false, err
		}
		ml, err := maxEvent(e.left)
		if err != nil {
			return nil, false, err
		}
		// min of a normalised tree is its base counter.
		left := eventLeaf(max(ml, right.count))
		changed = changed || !equalEvent(left, e.left)
		res, err := normEventNode(e.count, left, right)
		if err != nil {
			return nil, false, err
		}
		return res, changed, nil
	}
	if id.right.IsSeed() {
		left, changed, err := fillEvent(e.left, id.left)
		if err != nil {
			return nil, false, err
		}
		mr, err := maxEvent(e.right)
		if err != nil {
			return nil, false, err
		}
		right := eventLeaf(max(mr, left.count))
		changed = changed || !equalEvent(right, e.right)
		res, err := normEventNode(e.count, left, right)
		if err != nil {
			return nil, false, err
		}
		return res, changed, nil
	}
	left, changedL, err := fillEvent(e.left, id.left)
	if err != nil {
		return nil, false, err
	}
	right, changedR, err := fillEvent(e.right, id.right)
	if err != nil {
		return nil, false, err
	}
	res, err := normEventNode(e.count, left, right)
	if err != nil {
		return nil, false, err
	}
	return res, changedL || changedR, nil
}

// growLeafCost is added to the cost of any growth that expands a leaf
// into an internal node, so growing within existing structure is always
// preferred over creating new structure.
const growLeafCost = 1 << 32

// Grow inflates the Event by adding one event somewhere in the region
// owned by id, creating new tree structure where necessary. It is the
// expensive fallback used when Fill reports no change. The result is
// strictly greater than e under Leq. The id must own at least part of
// the interval. Neither input is modified.
func (e *Event) Grow(id *ID) (*Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if id.IsNull() {
		return nil, ErrInvalidParam
	}
	grown, _, err := growEvent(e, id)
	if err != nil {
		return nil, err
	}
	// Growth can leave a collapsible node behind; hand back normal form.
	return normEvent(grown)
}

// growEvent returns the grown tree together with the cost of the growth
// (the depth of structure traversed, plus growLeafCost for every leaf
// expanded into a node). Ties between sides are broken towards the left.
func growEvent(e *Event, id *ID) (*Event, uint64, error) {
	if id.IsSeed() && e.IsLeaf() {
		n, err := addCounter(e.count, 1)
		if err != nil {
			return nil, 0, err
		}
		return eventLeaf(n), 0, nil
	}
	if e.IsLeaf() {
		// Expand the leaf and retry; id is internal here.
		expanded := eventNode(e.count, eventLeaf(0), eventLeaf(0))
		grown, cost, err := growEvent(expanded, id)
		if err != nil {
			return nil, 0, err
		}
		return grown, cost + growLeafCost, nil
	}
	if id.IsLeaf() {
		// A seed over an internal Event is unreachable after a no-op
		// fill, and growth into a null region is undefined.
		return nil, 0, ErrInvalidParam
	}
	if id.left.IsNull() {
		right, cost, err := growEvent(e.right, id.right)
		if err != nil {
			return nil, 0, err
		}
		return eventNode(e.count, e.left.Clone(), right), cost + 1, nil
	}
	if id.right.IsNull() {
		left, cost, err := growEvent(e.left, id.left)
		if err != nil {
			return nil, 0, err
		}
		return eventNode(e.count, left, e.right.Clone()), cost + 1, nil
	}
	left, costL, err := growEvent(e.left, id.left)
	if err != nil {
		return nil, 0, err
	}
	right, costR, err := growEvent(e.right, id.right)
	if err != nil {
		return nil, 0, err
	}
	if costL <= costR {
		return eventNode(e.count, left, e.right.Clone()), costL + 1, nil
	}
	return eventNode(e.count, e.left.Clone(), right), costR + 1, nil
}
