// Package pickupbook implements the Pick Up Book use case.
//
// A member collects the copy held for them. The latest RESERVED reservation for the member and
// the book becomes BORROWED and a loan due in 14 days is opened. A reservation whose pickup deadline
// has passed is rejected even when the pickup-deadline sweep has not cancelled it yet.
package pickupbook
