// Package observable wraps command and query handlers with logging and metrics,
// so the handlers themselves contain only the circulation workflow.
//
// The wrappers are applied at wiring time:
//
//	core := reservebook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[reservebook.Command, reservebook.Result](
//		core,
//		observable.WithCommandMetrics[reservebook.Command, reservebook.Result](metricsCollector),
//		observable.WithCommandContextualLogging[reservebook.Command, reservebook.Result](logger),
//	)
//
//	result, err := handler.Handle(ctx, command)
//
// Every call records a duration and a call counter labeled with the command type and a status:
// success, idempotent, rejected, error, canceled or timeout. Rejections (NOT_FOUND, FORBIDDEN,
// BAD_REQUEST) are expected business outcomes and are logged at info level with their kind.
package observable
