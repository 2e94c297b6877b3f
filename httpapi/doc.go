// Package httpapi is a thin gin adapter over the circulation command, query and sweep handlers.
//
// It binds JSON request bodies into commands, maps rejection kinds to status codes (see StatusFor)
// and exposes POST /ops/sweeps/:name so operators can trigger a maintenance job by hand.
// Authentication is left to whatever sits in front of the daemon.
package httpapi
