package shell

import (
	"context"
)

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Result is implemented by every handler result through the embedded HandlerResult.
type Result interface {
	Outcome() HandlerResult
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Implementations should focus purely on business logic without observability concerns.
// This interface is designed to be wrapped with observability decorators for complete functionality.
type CoreCommandHandler[C Command, R Result] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for read-only handlers.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
