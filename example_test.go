package itc_test

import (
	"fmt"

	"github.com/phroun/itc"
)

// Two replicas fork from a single seed, make independent changes, and
// detect the conflict before merging back together.
func Example() {
	seed := itc.NewSeedStamp()

	replicaA, replicaB, _ := seed.Fork()

	replicaA, _ = replicaA.Event()
	replicaB, _ = replicaB.Event()

	ordering, _ := replicaA.Compare(replicaB)
	fmt.Println("after independent events:", ordering)

	merged, _ := replicaA.Join(replicaB)
	ordering, _ = merged.Compare(replicaA)
	fmt.Println("merged against replica A:", ordering)

	fmt.Println("merged stamp:", merged)
	// Output:
	// after independent events: concurrent
	// merged against replica A: greater
	// merged stamp: {1; 1}
}
