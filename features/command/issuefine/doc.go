// Package issuefine implements the Issue Fine use case, an administrative override outside the
// reservation state machine. The fine is recorded as UNPAID and blocks reservations until it is waived.
package issuefine
