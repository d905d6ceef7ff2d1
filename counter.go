//go:build !itc_counter32

package itc

// Counter is the unsigned integer type used for event counters.
//
// The default width is 64 bits, allowing 2^64 - 1 events to be witnessed
// per node in the event tree. Building with the itc_counter32 tag selects
// a 32-bit counter instead, which saturates after 2^32 - 1 events. The
// wire form is unaffected by the width: serialised counters always
// elide leading zero bytes.
type Counter uint64

// counterBytes is the width of Counter in bytes. Serialised counters
// wider than this are rejected with ErrUnsupportedCounterSize.
const counterBytes = 8
