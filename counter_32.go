//go:build itc_counter32

package itc

// Counter is the unsigned integer type used for event counters.
//
// This build selects the 32-bit width. See counter.go for the default.
type Counter uint32

// counterBytes is the width of Counter in bytes. Serialised counters
// wider than this are rejected with ErrUnsupportedCounterSize.
const counterBytes = 4
