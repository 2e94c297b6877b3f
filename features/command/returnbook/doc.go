// Package returnbook implements the Return Book use case.
//
// A member brings a borrowed copy back. The open loan is closed, the copy goes back into the
// available stock and the linked reservation becomes RETURNED. A late return instead leaves the
// reservation OVERDUE for good, restricts the member for one calendar month and issues an UNPAID
// fine of 0.50 per started day past the due date.
package returnbook
