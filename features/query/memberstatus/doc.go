// Package memberstatus implements the Member Status query: a read-only snapshot of what a member
// may do right now. It reports the restriction end, the unpaid fine total, open loans with their
// overdue state and active reservations.
package memberstatus
