// Package core contains the domain events of library circulation.
//
// Events describe meaningful business occurrences, like BookReserved or LoanOverdue,
// rather than generic create/update operations. They are produced by the pure Decide
// functions of the feature slices and turned into persisted state changes and
// notification content by the handlers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
