// Package order contains the Order aggregate and the Package value object.
// An order carries a package on behalf of a customer and, while an
// allocation is live, holds the weak reference to its locker, the issued
// access code, and the reservation deadline. Binding fields are only ever
// mutated through registry operations so the bidirectional order/locker
// relation stays consistent.
package order
