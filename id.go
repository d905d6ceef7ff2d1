package itc

// ID represents ownership of a subset of the unit interval [0, 1) by
// binary subdivision. A leaf either owns its whole interval (seed) or
// none of it (null). An internal node splits its interval in half
// between its two children and owns nothing itself.
//
// A valid ID is always in normal form: no internal node has two null
// children or two seed children. All operations produce normalised IDs.
type ID struct {
	isOwner bool

	// For internal nodes: both children are present and distinct.
	// For leaf nodes: both are nil.
	left  *ID
	right *ID
}

// NewSeedID returns an ID owning the entire interval.
// This is the identity a system starts from before any forking.
func NewSeedID() *ID {
	return &ID{isOwner: true}
}

// NewNullID returns an ID owning no interval at all.
func NewNullID() *ID {
	return &ID{}
}

// parentID assembles an internal node from two children.
// The caller is responsible for normalisation.
func parentID(left, right *ID) *ID {
	return &ID{left: left, right: right}
}

// IsLeaf reports whether the ID is a leaf node.
func (i *ID) IsLeaf() bool {
	return i != nil && i.left == nil && i.right == nil
}

// IsNull reports whether the ID is a null leaf, owning no interval.
func (i *ID) IsNull() bool {
	return i.IsLeaf() && !i.isOwner
}

// IsSeed reports whether the ID is a seed leaf, owning its whole interval.
func (i *ID) IsSeed() bool {
	return i.IsLeaf() && i.isOwner
}

// equalID reports structural equality of two IDs.
func equalID(a, b *ID) bool {
	if a.IsLeaf() != b.IsLeaf() || a.isOwner != b.isOwner {
		return false
	}
	if a.IsLeaf() {
		return true
	}
	return equalID(a.left, b.left) && equalID(a.right, b.right)
}

// Clone returns a deep structural copy of the ID.
func (i *ID) Clone() *ID {
	if i == nil {
		return nil
	}
	c := &ID{isOwner: i.isOwner}
	if !i.IsLeaf() {
		c.left = i.left.Clone()
		c.right = i.right.Clone()
	}
	return c
}

// Destroy releases the tree by detaching every node. The ID and any
// subtree reachable from it must not be used afterwards.
func (i *ID) Destroy() {
	if i == nil {
		return
	}
	i.left.Destroy()
	i.right.Destroy()
	i.left = nil
	i.right = nil
	i.isOwner = false
}

// Validate checks the ID against its invariants: leaves have no
// children, internal nodes have two distinct non-nil children and are
// non-owning, and the tree is in normal form (no internal node has two
// null or two seed children). A nil ID yields ErrInvalidParam; any
// violation yields ErrCorruptID.
func (i *ID) Validate() error {
	if i == nil {
		return ErrInvalidParam
	}
	return validateID(i, true)
}

// validateID walks the tree checking structural invariants. Normal form
// is only enforced when requireNorm is set, so that Normalise can accept
// structurally sound but denormalised input.
func validateID(i *ID, requireNorm bool) error {
	if i.IsLeaf() {
		return nil
	}
	if i.left == nil || i.right == nil || i.left == i.right || i.isOwner {
		return ErrCorruptID
	}
	if requireNorm {
		if i.left.IsNull() && i.right.IsNull() {
			return ErrCorruptID
		}
		if i.left.IsSeed() && i.right.IsSeed() {
			return ErrCorruptID
		}
	}
	if err := validateID(i.left, requireNorm); err != nil {
		return err
	}
	return validateID(i.right, requireNorm)
}

// Normalise returns the normal form of the ID: every (null, null)
// internal node collapsed to a null leaf and every (seed, seed) internal
// node collapsed to a seed leaf, bottom-up. The input is not modified.
func (i *ID) Normalise() (*ID, error) {
	if i == nil {
		return nil, ErrInvalidParam
	}
	if err := validateID(i, false); err != nil {
		return nil, err
	}
	return normID(i), nil
}

func normID(i *ID) *ID {
	if i.IsLeaf() {
		return &ID{isOwner: i.isOwner}
	}
	left := normID(i.left)
	right := normID(i.right)
	if left.IsNull() && right.IsNull() {
		return NewNullID()
	}
	if left.IsSeed() && right.IsSeed() {
		return NewSeedID()
	}
	return parentID(left, right)
}

// Split divides the ID's interval into two disjoint halves whose union
// is the original interval. Splitting a null ID yields two null IDs.
// The input is not modified.
func (i *ID) Split() (*ID, *ID, error) {
	if err := i.Validate(); err != nil {
		return nil, nil, err
	}
	left, right := splitID(i)
	return left, right, nil
}

// splitID applies the split rules:
//
//	split(0)        = (0, 0)
//	split(1)        = ((1, 0), (0, 1))
//	split((0, i))   = ((0, i1), (0, i2))    where (i1, i2) = split(i)
//	split((i, 0))   = ((i1, 0), (i2, 0))    where (i1, i2) = split(i)
//	split((i1, i2)) = ((i1, 0), (0, i2))
func splitID(i *ID) (*ID, *ID) {
	if i.IsNull() {
		return NewNullID(), NewNullID()
	}
	if i.IsSeed() {
		return parentID(NewSeedID(), NewNullID()),
			parentID(NewNullID(), NewSeedID())
	}
	if i.left.IsNull() {
		i1, i2 := splitID(i.right)
		return parentID(NewNullID(), i1), parentID(NewNullID(), i2)
	}
	if i.right.IsNull() {
		i1, i2 := splitID(i.left)
		return parentID(i1, NewNullID()), parentID(i2, NewNullID())
	}
	return parentID(i.left.Clone(), NewNullID()),
		parentID(NewNullID(), i.right.Clone())
}

// Sum merges two IDs with disjoint intervals into a single normalised ID
// owning their union. If the intervals overlap it returns
// ErrOverlappingInterval. Neither input is modified.
func (i *ID) Sum(other *ID) (*ID, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if err := other.Validate(); err != nil {
		return nil, err
	}
	return sumID(i, other)
}

// sumID applies the sum rules:
//
//	sum(0, i) = i
//	sum(i, 0) = i
//	sum((l1, r1), (l2, r2)) = norm((sum(l1, l2), sum(r1, r2)))
//
// Any other pairing means both sides own a common point.
func sumID(a, b *ID) (*ID, error) {
	if a.IsNull() {
		return b.Clone(), nil
	}
	if b.IsNull() {
		return a.Clone(), nil
	}
	if a.IsLeaf() || b.IsLeaf() {
		// A seed on either side overlaps anything non-null.
		return nil, ErrOverlappingInterval
	}
	left, err := sumID(a.left, b.left)
	if err != nil {
		return nil, err
	}
	right, err := sumID(a.right, b.right)
	if err != nil {
		return nil, err
	}
	// Children of valid inputs sum to normalised subtrees, so only the
	// new root can need collapsing.
	if left.IsNull() && right.IsNull() {
		return NewNullID(), nil
	}
	if left.IsSeed() && right.IsSeed() {
		return NewSeedID(), nil
	}
	return parentID(left, right), nil
}
