// Package itc implements Interval Tree Clocks, a causality-tracking
// mechanism for dynamic distributed systems in which participants may
// join, leave, retire and be recreated without coordination or a
// global registry.
package itc

import "errors"

// Parameter errors
var (
	// ErrInvalidParam indicates a nil argument or a logically impossible request.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrInsufficientResources indicates that an output buffer is too small.
	ErrInsufficientResources = errors.New("insufficient resources")
)

// ID errors
var (
	// ErrOverlappingInterval indicates that two IDs own overlapping
	// portions of the unit interval and cannot be summed.
	ErrOverlappingInterval = errors.New("overlapping ID intervals")

	// ErrCorruptID indicates an ID tree that violates its invariants.
	ErrCorruptID = errors.New("corrupt ID")
)

// Event errors
var (
	// ErrCorruptEvent indicates an Event tree that violates its invariants.
	ErrCorruptEvent = errors.New("corrupt event")

	// ErrCounterOverflow indicates that an event counter would exceed its maximum.
	ErrCounterOverflow = errors.New("event counter overflow")

	// ErrCounterUnderflow indicates that an event counter would go below zero.
	ErrCounterUnderflow = errors.New("event counter underflow")

	// ErrUnsupportedCounterSize indicates a serialised counter wider than
	// the configured Counter type.
	ErrUnsupportedCounterSize = errors.New("unsupported event counter size")
)

// Stamp errors
var (
	// ErrCorruptStamp indicates a Stamp missing a component, or a
	// malformed serialised stamp.
	ErrCorruptStamp = errors.New("corrupt stamp")
)

// Internal errors
var (
	// ErrInternal indicates an internal consistency error (should not happen).
	ErrInternal = errors.New("internal error")
)
