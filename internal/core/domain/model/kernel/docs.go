// Package kernel contains shared value objects used across the domain model.
// It provides the UUID identity type and the SizeClass capacity tag that
// packages and lockers have in common.
//
// Value objects in this package are immutable, validate themselves, and are
// safe for concurrent use.
package kernel
