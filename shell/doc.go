// Package shell is the imperative shell around the pure Decide functions of the feature slices.
//
// It turns domain events into persisted side records (notification content, audit
// transactions), renders the human-readable messages returned to callers, and carries
// the observability helpers shared by the command and query wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
