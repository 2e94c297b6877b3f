// Package detectoverdueloans implements the overdue sweep.
//
// For every open loan past its due date the BORROWED reservation of the member for the book is flagged
// OVERDUE and the member is restricted for one calendar month from now. The restriction is renewed on
// every run while the loan stays out. No fine is issued here: the fine reflects the actual days late
// and is assessed by returnbook.
//
// The member is notified once, when the loan is first detected: while a BORROWED reservation still
// exists or the member is not yet restricted.
package detectoverdueloans
