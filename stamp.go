package itc

// Stamp pairs an identity with the causal history witnessed under it.
// It is the user-facing handle for causality tracking: Fork to add a
// participant, Event to record an occurrence, Join to merge two
// participants, Compare to order two histories.
//
// A Stamp exclusively owns both of its trees. Distinct Stamps may be
// used from distinct goroutines; a single Stamp must not be mutated
// concurrently.
type Stamp struct {
	id    *ID
	event *Event
}

// Comparison is the outcome of ordering two Stamps.
type Comparison int

const (
	// Less means the first Stamp is causally before the second.
	Less Comparison = iota

	// Greater means the first Stamp is causally after the second.
	Greater

	// Equal means the two Stamps carry identical causal histories.
	Equal

	// Concurrent means neither Stamp is ordered before the other.
	Concurrent
)

// String returns a human-readable name for the comparison outcome.
func (c Comparison) String() string {
	switch c {
	case Less:
		return "less"
	case Greater:
		return "greater"
	case Equal:
		return "equal"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// NewSeedStamp returns the initial Stamp: a seed ID owning the whole
// interval and an empty causal history. A system starts from a single
// seed Stamp and forks it as participants appear.
func NewSeedStamp() *Stamp {
	return &Stamp{id: NewSeedID(), event: NewEvent()}
}

// NewStampFromID returns a Stamp carrying a clone of id and an empty
// causal history.
func NewStampFromID(id *ID) (*Stamp, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Stamp{id: id.Clone(), event: NewEvent()}, nil
}

// NewStampFromIDAndEvent returns a Stamp carrying clones of id and event.
func NewStampFromIDAndEvent(id *ID, event *Event) (*Stamp, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &Stamp{id: id.Clone(), event: event.Clone()}, nil
}

// NewPeekStampFromEvent returns a peek Stamp (null ID) carrying a clone
// of the given causal history.
func NewPeekStampFromEvent(event *Event) (*Stamp, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &Stamp{id: NewNullID(), event: event.Clone()}, nil
}

// validate checks that both components are present and individually
// valid. A missing component yields ErrCorruptStamp.
func (s *Stamp) validate() error {
	if s == nil {
		return ErrInvalidParam
	}
	if s.id == nil || s.event == nil {
		return ErrCorruptStamp
	}
	if err := s.id.Validate(); err != nil {
		return err
	}
	return s.event.Validate()
}

// Clone returns a deep copy of the Stamp.
func (s *Stamp) Clone() *Stamp {
	if s == nil {
		return nil
	}
	return &Stamp{id: s.id.Clone(), event: s.event.Clone()}
}

// Destroy releases both trees. The Stamp must not be used afterwards.
func (s *Stamp) Destroy() {
	if s == nil {
		return
	}
	s.id.Destroy()
	s.event.Destroy()
	s.id = nil
	s.event = nil
}

// Validate checks that the Stamp holds two individually valid trees.
func (s *Stamp) Validate() error {
	return s.validate()
}

// Peek returns a Stamp that carries the same causal history but a null
// ID: it can be compared and joined, but never records events of its
// own. The receiver is not modified.
func (s *Stamp) Peek() (*Stamp, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Stamp{id: NewNullID(), event: s.event.Clone()}, nil
}

// Fork splits the Stamp into two Stamps with disjoint ID intervals,
// each carrying the full causal history. The receiver is not modified;
// callers retire it and continue with the two children.
func (s *Stamp) Fork() (*Stamp, *Stamp, error) {
	if err := s.validate(); err != nil {
		return nil, nil, err
	}
	left, right, err := s.id.Split()
	if err != nil {
		return nil, nil, err
	}
	return &Stamp{id: left, event: s.event.Clone()},
		&Stamp{id: right, event: s.event.Clone()}, nil
}

// Event returns a Stamp whose history has advanced within the region
// the ID owns. Cheap inflation (Fill) is tried first; when it cannot
// advance the clock, new structure is grown. On a peek Stamp the
// history cannot advance and an equal Stamp is returned. The receiver
// is not modified.
func (s *Stamp) Event() (*Stamp, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	event, filled, err := fillEvent(s.event, s.id)
	if err != nil {
		return nil, err
	}
	if !filled && !s.id.IsNull() {
		event, err = s.event.Grow(s.id)
		if err != nil {
			return nil, err
		}
	}
	return &Stamp{id: s.id.Clone(), event: event}, nil
}

// Join merges two Stamps: their ID intervals are summed (they must be
// disjoint) and their histories are lattice-joined. Neither input is
// modified; callers retire both and continue with the result.
func (s *Stamp) Join(other *Stamp) (*Stamp, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := other.validate(); err != nil {
		return nil, err
	}
	id, err := sumID(s.id, other.id)
	if err != nil {
		return nil, err
	}
	event, err := joinEvent(s.event, other.event)
	if err != nil {
		return nil, err
	}
	return &Stamp{id: id, event: event}, nil
}

// Compare orders two Stamps by their causal histories. The result is
// Less, Greater, Equal, or Concurrent when neither history contains
// the other.
func (s *Stamp) Compare(other *Stamp) (Comparison, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	if err := other.validate(); err != nil {
		return 0, err
	}
	leq, err := leqEvent(s.event, 0, other.event, 0)
	if err != nil {
		return 0, err
	}
	geq, err := leqEvent(other.event, 0, s.event, 0)
	if err != nil {
		return 0, err
	}
	switch {
	case leq && geq:
		return Equal, nil
	case leq:
		return Less, nil
	case geq:
		return Greater, nil
	default:
		return Concurrent, nil
	}
}

// ID returns a clone of the Stamp's identity component.
func (s *Stamp) ID() (*ID, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s.id.Clone(), nil
}

// History returns a clone of the Stamp's causal history component.
func (s *Stamp) History() (*Event, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s.event.Clone(), nil
}

// SetID replaces the Stamp's identity with a clone of id.
func (s *Stamp) SetID(id *ID) error {
	if s == nil {
		return ErrInvalidParam
	}
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id.Clone()
	return nil
}

// SetEvent replaces the Stamp's causal history with a clone of event.
func (s *Stamp) SetEvent(event *Event) error {
	if s == nil {
		return ErrInvalidParam
	}
	if err := event.Validate(); err != nil {
		return err
	}
	s.event = event.Clone()
	return nil
}
