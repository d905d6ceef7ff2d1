package itc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Tree-building shorthand used throughout the tests. IDs and Events are
// assembled structurally so that tests can pin exact shapes, including
// invalid ones.

func idSeed() *ID { return NewSeedID() }

func idNull() *ID { return NewNullID() }

func idP(left, right *ID) *ID { return parentID(left, right) }

func evL(n Counter) *Event { return eventLeaf(n) }

func evP(n Counter, left, right *Event) *Event { return eventNode(n, left, right) }

// cmp options for diffing the unexported tree fields in failure output.
var (
	idDiff    = cmp.AllowUnexported(ID{})
	eventDiff = cmp.AllowUnexported(Event{})
)

func requireIDEqual(t *testing.T, want, got *ID) {
	t.Helper()
	if !equalID(want, got) {
		t.Fatalf("ID mismatch (-want +got):\n%s", cmp.Diff(want, got, idDiff))
	}
}

func requireEventEqual(t *testing.T, want, got *Event) {
	t.Helper()
	if !equalEvent(want, got) {
		t.Fatalf("Event mismatch (-want +got):\n%s", cmp.Diff(want, got, eventDiff))
	}
}
