package itc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedStamp(t *testing.T) {
	s := NewSeedStamp()
	require.NoError(t, s.Validate())
	require.True(t, s.id.IsSeed())
	requireEventEqual(t, evL(0), s.event)
}

func TestStampPeek(t *testing.T) {
	s := NewSeedStamp()
	advanced, err := s.Event()
	require.NoError(t, err)

	peek, err := advanced.Peek()
	require.NoError(t, err)

	// A peek carries the history but no ownership.
	require.True(t, peek.id.IsNull())
	requireEventEqual(t, advanced.event, peek.event)

	// Recording an event on a peek cannot advance the history.
	after, err := peek.Event()
	require.NoError(t, err)
	requireEventEqual(t, peek.event, after.event)
	require.True(t, after.id.IsNull())
}

func TestStampClone(t *testing.T) {
	s := NewSeedStamp()
	advanced, err := s.Event()
	require.NoError(t, err)

	clone := advanced.Clone()
	require.NoError(t, clone.Validate())
	requireIDEqual(t, advanced.id, clone.id)
	requireEventEqual(t, advanced.event, clone.event)

	clone.event.count = 99
	require.NotEqual(t, Counter(99), advanced.event.count)
}

func TestStampFork(t *testing.T) {
	s := NewSeedStamp()
	left, right, err := s.Fork()
	require.NoError(t, err)

	requireIDEqual(t, idP(idSeed(), idNull()), left.id)
	requireIDEqual(t, idP(idNull(), idSeed()), right.id)
	requireEventEqual(t, s.event, left.event)
	requireEventEqual(t, s.event, right.event)

	// The parent stamp is untouched.
	require.True(t, s.id.IsSeed())
}

func TestStampEventOnSeed(t *testing.T) {
	s := NewSeedStamp()
	for i := 1; i <= 3; i++ {
		next, err := s.Event()
		require.NoError(t, err)
		requireEventEqual(t, evL(Counter(i)), next.event)
		s = next
	}
}

func TestStampEventDoesNotModifyReceiver(t *testing.T) {
	s := NewSeedStamp()
	_, err := s.Event()
	require.NoError(t, err)
	requireEventEqual(t, evL(0), s.event)
}

func TestStampJoinRequiresDisjointIDs(t *testing.T) {
	a := NewSeedStamp()
	b := NewSeedStamp()
	_, err := a.Join(b)
	assert.ErrorIs(t, err, ErrOverlappingInterval)
}

func TestStampCompare(t *testing.T) {
	seed := NewSeedStamp()
	advanced, err := seed.Event()
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b *Stamp
		want Comparison
	}{
		{"reflexive", seed, seed, Equal},
		{"ordered", seed, advanced, Less},
		{"ordered_reverse", advanced, seed, Greater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Two forked children each record one event independently; neither
// history contains the other.
func TestStampConcurrencyDetection(t *testing.T) {
	seed := NewSeedStamp()
	left, right, err := seed.Fork()
	require.NoError(t, err)

	left, err = left.Event()
	require.NoError(t, err)
	right, err = right.Event()
	require.NoError(t, err)

	got, err := left.Compare(right)
	require.NoError(t, err)
	assert.Equal(t, Concurrent, got)

	got, err = right.Compare(left)
	require.NoError(t, err)
	assert.Equal(t, Concurrent, got)
}

// Full lifecycle: fork a seed three levels deep into eight stamps,
// record one event on each, then merge back pairwise until a single
// stamp remains. The merged stamp owns the whole interval again and its
// history is the join of eight concurrent single events: a uniform
// history of depth one. Advancing it seven more times then shows the
// recovered seed witnessing its eighth causal step.
func TestStampLifecycle(t *testing.T) {
	t.Log("=== Forking three levels deep ===")
	stamps := []*Stamp{NewSeedStamp()}
	for level := 0; level < 3; level++ {
		var next []*Stamp
		for _, s := range stamps {
			left, right, err := s.Fork()
			require.NoError(t, err)
			next = append(next, left, right)
		}
		stamps = next
	}
	require.Len(t, stamps, 8)

	t.Log("=== Recording one event on each ===")
	for i, s := range stamps {
		advanced, err := s.Event()
		require.NoError(t, err)
		cmp, err := s.Compare(advanced)
		require.NoError(t, err)
		require.Equal(t, Less, cmp, "stamp %d did not advance", i)
		stamps[i] = advanced
	}

	// All eight are pairwise concurrent.
	for i := range stamps {
		for j := i + 1; j < len(stamps); j++ {
			cmp, err := stamps[i].Compare(stamps[j])
			require.NoError(t, err)
			require.Equal(t, Concurrent, cmp, "stamps %d and %d", i, j)
		}
	}

	t.Log("=== Merging pairwise: 8 -> 4 -> 2 -> 1 ===")
	for len(stamps) > 1 {
		var next []*Stamp
		for i := 0; i < len(stamps); i += 2 {
			merged, err := stamps[i].Join(stamps[i+1])
			require.NoError(t, err)
			next = append(next, merged)
		}
		stamps = next
	}
	final := stamps[0]

	// The ID intervals reassemble into the full seed.
	requireIDEqual(t, idSeed(), final.id)

	// Eight concurrent single events join to a uniform depth-one
	// history: the lattice maximum, not a sum.
	m, err := final.event.Maximise()
	require.NoError(t, err)
	requireEventEqual(t, evL(1), m)

	t.Log("=== Advancing the recovered seed to depth eight ===")
	for i := 0; i < 7; i++ {
		final, err = final.Event()
		require.NoError(t, err)
	}
	m, err = final.event.Maximise()
	require.NoError(t, err)
	requireEventEqual(t, evL(8), m)
}

func TestStampForkJoinIsIdentity(t *testing.T) {
	s := NewSeedStamp()
	s, err := s.Event()
	require.NoError(t, err)

	left, right, err := s.Fork()
	require.NoError(t, err)
	back, err := left.Join(right)
	require.NoError(t, err)

	requireIDEqual(t, s.id, back.id)
	requireEventEqual(t, s.event, back.event)
}

func TestStampExtendedConstructors(t *testing.T) {
	id := idP(idSeed(), idNull())
	ev := evP(1, evL(0), evL(2))

	s, err := NewStampFromID(id)
	require.NoError(t, err)
	requireIDEqual(t, id, s.id)
	requireEventEqual(t, evL(0), s.event)

	s, err = NewStampFromIDAndEvent(id, ev)
	require.NoError(t, err)
	requireIDEqual(t, id, s.id)
	requireEventEqual(t, ev, s.event)

	// The stamp owns clones, not the caller's trees.
	id.left.isOwner = false
	require.True(t, s.id.left.isOwner)

	peek, err := NewPeekStampFromEvent(ev)
	require.NoError(t, err)
	require.True(t, peek.id.IsNull())
	requireEventEqual(t, ev, peek.event)

	_, err = NewStampFromID(idP(idSeed(), idSeed()))
	assert.ErrorIs(t, err, ErrCorruptID)
}

func TestStampAccessors(t *testing.T) {
	s := NewSeedStamp()

	id, err := s.ID()
	require.NoError(t, err)
	requireIDEqual(t, idSeed(), id)

	ev, err := s.History()
	require.NoError(t, err)
	requireEventEqual(t, evL(0), ev)

	// Accessors hand out clones.
	id.isOwner = false
	require.True(t, s.id.IsSeed())

	require.NoError(t, s.SetID(idP(idNull(), idSeed())))
	requireIDEqual(t, idP(idNull(), idSeed()), s.id)

	require.NoError(t, s.SetEvent(evP(2, evL(0), evL(1))))
	requireEventEqual(t, evP(2, evL(0), evL(1)), s.event)

	assert.ErrorIs(t, s.SetID(idP(idNull(), idNull())), ErrCorruptID)
	assert.ErrorIs(t, s.SetEvent(evP(0, evL(1), evL(2))), ErrCorruptEvent)
}

func TestStampValidateCorrupt(t *testing.T) {
	var nilStamp *Stamp
	assert.ErrorIs(t, nilStamp.Validate(), ErrInvalidParam)

	assert.ErrorIs(t, (&Stamp{id: NewSeedID()}).Validate(), ErrCorruptStamp)
	assert.ErrorIs(t, (&Stamp{event: NewEvent()}).Validate(), ErrCorruptStamp)

	corrupt := &Stamp{id: idP(idNull(), idNull()), event: NewEvent()}
	assert.ErrorIs(t, corrupt.Validate(), ErrCorruptID)

	corrupt = &Stamp{id: NewSeedID(), event: evP(0, evL(1), evL(2))}
	assert.ErrorIs(t, corrupt.Validate(), ErrCorruptEvent)
}

func TestStampDestroy(t *testing.T) {
	s := NewSeedStamp()
	s.Destroy()
	require.Nil(t, s.id)
	require.Nil(t, s.event)
	assert.ErrorIs(t, s.Validate(), ErrCorruptStamp)
}

func TestComparisonString(t *testing.T) {
	assert.Equal(t, "less", Less.String())
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "concurrent", Concurrent.String())
	assert.Equal(t, "unknown", Comparison(42).String())
}

func TestStampString(t *testing.T) {
	s := NewSeedStamp()
	assert.Equal(t, "{1; 0}", s.String())
}
