// Package expirereservations implements the pickup-deadline sweep.
//
// Reservations that are RESERVED, notified and past their pickup deadline are cancelled and their
// copy goes back into the available stock. Every reservation is handled in its own unit of work,
// guarded on the RESERVED status, so running the sweep again right away processes nothing.
// A failing reservation does not stop the batch; the failures are returned together afterwards.
//
// The sweep is a plain command handler. The maintenance scheduler runs it daily, operators and
// tests call it directly.
package expirereservations
