package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/observable"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

type stubCommand struct{}

func (stubCommand) CommandType() string {
	return "StubCommand"
}

type stubResult struct {
	shell.HandlerResult
	Value string
}

type stubHandler struct {
	result stubResult
	err    error
	calls  int
}

func (h *stubHandler) Handle(_ context.Context, _ stubCommand) (stubResult, error) {
	h.calls++
	return h.result, h.err
}

func newWrapper(
	t *testing.T,
	handler *stubHandler,
	opts ...observable.CommandOption[stubCommand, stubResult],
) *observable.CommandWrapper[stubCommand, stubResult] {
	t.Helper()

	wrapper, err := observable.NewCommandWrapper[stubCommand, stubResult](handler, opts...)
	require.NoError(t, err)

	return wrapper
}

func Test_CommandWrapper_ExtractsCommandType(t *testing.T) {
	// arrange
	wrapper := newWrapper(t, &stubHandler{})

	// act
	commandType := wrapper.CommandType()

	// assert
	assert.Equal(t, "StubCommand", commandType)
}

func Test_CommandWrapper_Handle_Success_RecordsMetricsAndLogs(t *testing.T) {
	// arrange
	expected := stubResult{HandlerResult: shell.NewSuccessResult("done"), Value: "x"}
	handler := &stubHandler{result: expected}
	metrics := NewMetricsCollectorSpy()
	logger, logSpy := NewSpyLogger()

	wrapper := newWrapper(t, handler,
		observable.WithCommandMetrics[stubCommand, stubResult](metrics),
		observable.WithCommandContextualLogging[stubCommand, stubResult](logger),
	)

	// act
	result, err := wrapper.Handle(context.Background(), stubCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expected, result, "should return the core result unchanged")
	assert.Equal(t, 1, handler.calls)
	assert.True(t, metrics.HasDurationRecord(shell.CommandHandlerDurationMetric,
		map[string]string{"command_type": "StubCommand", "status": shell.StatusSuccess}))
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerCallsMetric,
		map[string]string{"command_type": "StubCommand", "status": shell.StatusSuccess}))
	assert.True(t, logSpy.HasLog(slog.LevelInfo, shell.LogMsgCommandStarted))
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelInfo, shell.LogMsgCommandCompleted).
		WithAttrValue(shell.LogAttrBusinessOutcome, shell.StatusSuccess).
		WithDurationMS().
		Assert())
}

func Test_CommandWrapper_Handle_Idempotent_RecordsIdempotentMetric(t *testing.T) {
	// arrange
	handler := &stubHandler{result: stubResult{HandlerResult: shell.NewIdempotentResult("nothing to do")}}
	metrics := NewMetricsCollectorSpy()

	wrapper := newWrapper(t, handler, observable.WithCommandMetrics[stubCommand, stubResult](metrics))

	// act
	result, err := wrapper.Handle(context.Background(), stubCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerIdempotentMetric,
		map[string]string{"command_type": "StubCommand"}))
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerCallsMetric,
		map[string]string{"status": shell.StatusIdempotent}))
}

func Test_CommandWrapper_Handle_Rejection_LogsAtInfoWithKind(t *testing.T) {
	// arrange
	rejection := circulation.Forbidden("You have unpaid fines.")
	handler := &stubHandler{err: rejection}
	metrics := NewMetricsCollectorSpy()
	logger, logSpy := NewSpyLogger()

	wrapper := newWrapper(t, handler,
		observable.WithCommandMetrics[stubCommand, stubResult](metrics),
		observable.WithCommandLogging[stubCommand, stubResult](logger),
	)

	// act
	_, err := wrapper.Handle(context.Background(), stubCommand{})

	// assert
	assert.Same(t, rejection, err, "should return the core error unchanged")
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelInfo, shell.LogMsgCommandRejected).
		WithAttrValue(shell.LogAttrRejectionKind, string(circulation.KindForbidden)).
		Assert())
	assert.False(t, logSpy.HasLog(slog.LevelError, shell.LogMsgCommandFailed))
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerRejectionsMetric,
		map[string]string{"command_type": "StubCommand", "rejection_kind": "FORBIDDEN"}))
}

func Test_CommandWrapper_Handle_InfrastructureError_LogsAtError(t *testing.T) {
	// arrange
	failure := errors.Join(circulation.ErrWriteFailed, errors.New("disk full"))
	handler := &stubHandler{err: failure}
	metrics := NewMetricsCollectorSpy()
	logger, logSpy := NewSpyLogger()

	wrapper := newWrapper(t, handler,
		observable.WithCommandMetrics[stubCommand, stubResult](metrics),
		observable.WithCommandContextualLogging[stubCommand, stubResult](logger),
	)

	// act
	_, err := wrapper.Handle(context.Background(), stubCommand{})

	// assert
	assert.ErrorIs(t, err, circulation.ErrWriteFailed)
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelError, shell.LogMsgCommandFailed).
		WithAttrValue(shell.LogAttrStatus, shell.StatusError).
		Assert())
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerCallsMetric,
		map[string]string{"status": shell.StatusError}))
}

func Test_CommandWrapper_Handle_ContextErrors_AreClassified(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status string
	}{
		{name: "canceled", err: context.Canceled, status: shell.StatusCanceled},
		{name: "deadline exceeded", err: context.DeadlineExceeded, status: shell.StatusTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metrics := NewMetricsCollectorSpy()
			wrapper := newWrapper(t, &stubHandler{err: tc.err},
				observable.WithCommandMetrics[stubCommand, stubResult](metrics),
			)

			// act
			_, err := wrapper.Handle(context.Background(), stubCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerCallsMetric,
				map[string]string{"status": tc.status}))
		})
	}
}

func Test_CommandWrapper_Handle_WithoutObservability_OnlyDelegates(t *testing.T) {
	// arrange
	handler := &stubHandler{result: stubResult{Value: "plain"}}
	wrapper := newWrapper(t, handler)

	// act
	result, err := wrapper.Handle(context.Background(), stubCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "plain", result.Value)
	assert.Equal(t, 1, handler.calls)
}
