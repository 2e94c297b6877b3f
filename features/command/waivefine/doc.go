// Package waivefine implements the Waive Fine use case: an administrator marks a member's fine as PAID.
// Waiving a fine that is already PAID is an idempotent no-op.
package waivefine
