// Package services contains domain services that coordinate multiple
// aggregates. The LockerRegistry drives the allocation and pickup flows
// across orders, locations, and lockers, keeping both sides of the
// order/locker binding consistent.
package services
