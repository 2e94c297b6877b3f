// Package reservebook implements the Reserve Book use case.
//
// A member places a hold on one copy of a book. The hold lasts seven days and takes the copy
// out of the available stock immediately; it is either picked up (see pickupbook) or cancelled
// by the pickup-deadline sweep.
//
// All eligibility checks run inside one unit of work, in a fixed order where the first failure wins:
// unknown member, active restriction, unpaid fines, unknown book, existing hold or loan for the
// same book, borrow limit, no copies left. Decide is pure and only sees a State loaded by the
// CommandHandler; the store-side decrement of copies_available is the final guard that resolves
// two members racing for the last copy.
package reservebook
