// Package locker contains the Locker aggregate: a single lockable
// compartment with a fixed size class and a state machine cycling through
// Available, Reserved, and Open.
//
// A compartment is bound to at most one order at a time and the binding is
// set exactly when the state is Reserved or Open. Transitions are serialized
// by a per-compartment mutex so operations on different compartments in the
// same location never contend.
package locker
