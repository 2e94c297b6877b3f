// Package cleanupstalereservations implements the stale-reservation cleanup, a less frequent second
// pass over the pickup-deadline predicate. It catches reservations the daily sweep missed, for example
// because that run failed. Every reservation is cancelled in its own unit of work; failures are logged
// and skipped, and only a failure to read the candidates is returned.
package cleanupstalereservations
