// Package helper provides test tooling shared by the circulation test suites:
// an in-memory SQLite backed store per test, fixtures, a controllable clock and observability spies.
package helper
