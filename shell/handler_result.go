package shell

// HandlerResult represents the outcome of a command handler execution.
// It captures the business outcome without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Idempotent indicates that the operation needed no state change.
	// This is a first-class business outcome, not an error condition.
	Idempotent bool

	// Message is the human-readable outcome, meant to be shown to the member or administrator.
	Message string
}

// Outcome returns the result itself; it makes every struct embedding HandlerResult a Result.
func (r HandlerResult) Outcome() HandlerResult {
	return r
}

// NewSuccessResult creates a HandlerResult for operations that changed state.
func NewSuccessResult(message string) HandlerResult {
	return HandlerResult{Message: message}
}

// NewIdempotentResult creates a HandlerResult for operations that found nothing to change.
func NewIdempotentResult(message string) HandlerResult {
	return HandlerResult{Idempotent: true, Message: message}
}
