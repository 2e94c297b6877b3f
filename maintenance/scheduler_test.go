package maintenance_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/sweep/expirereservations"
	"github.com/AntonStoeckl/library-circulation-go/maintenance"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func succeeding(message string) maintenance.RunFunc {
	return func(_ context.Context) (shell.HandlerResult, error) {
		return shell.NewSuccessResult(message), nil
	}
}

func Test_NewScheduler_RejectsInvalidJobs(t *testing.T) {
	testCases := []struct {
		description string
		jobs        []maintenance.Job
		expectedErr error
	}{
		{
			description: "missing name",
			jobs:        []maintenance.Job{{At: "00:00", Run: succeeding("ok")}},
			expectedErr: maintenance.ErrInvalidJob,
		},
		{
			description: "missing run function",
			jobs:        []maintenance.Job{{Name: "sweep", At: "00:00"}},
			expectedErr: maintenance.ErrInvalidJob,
		},
		{
			description: "bad time of day",
			jobs:        []maintenance.Job{{Name: "sweep", At: "25:00", Run: succeeding("ok")}},
			expectedErr: maintenance.ErrInvalidTimeOfDay,
		},
		{
			description: "duplicate name",
			jobs: []maintenance.Job{
				{Name: "sweep", At: "00:00", Run: succeeding("ok")},
				{Name: "sweep", At: "01:00", Run: succeeding("ok")},
			},
			expectedErr: maintenance.ErrDuplicateJob,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			scheduler, err := maintenance.NewScheduler(tc.jobs)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, scheduler)
		})
	}
}

func Test_Scheduler_Jobs_KeepsRegistrationOrder(t *testing.T) {
	// arrange
	scheduler, err := maintenance.NewScheduler([]maintenance.Job{
		{Name: "expire", At: "00:00", Run: succeeding("ok")},
		{Name: "overdue", At: "01:00", Run: succeeding("ok")},
		{Name: "cleanup", At: "03:00", Run: succeeding("ok")},
	})
	require.NoError(t, err, "error in arranging test data")

	// act
	names := scheduler.Jobs()

	// assert
	assert.Equal(t, []string{"expire", "overdue", "cleanup"}, names)
}

func Test_Scheduler_RunNow_RunsJobAndLogsOutcome(t *testing.T) {
	// arrange
	ctx := context.Background()
	logger, logSpy := NewSpyLogger()
	scheduler, err := maintenance.NewScheduler(
		[]maintenance.Job{{Name: "expire", At: "00:00", Run: succeeding("Cancelled 2 expired reservation(s).")}},
		maintenance.WithContextualLogger(logger),
	)
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := scheduler.RunNow(ctx, "expire")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Cancelled 2 expired reservation(s).", result.Message)
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelInfo, "maintenance job completed").
		WithAttrValue("job", "expire").
		WithDurationMS().
		Assert())
}

func Test_Scheduler_RunNow_ReturnsAndLogsJobError(t *testing.T) {
	// arrange
	ctx := context.Background()
	logger, logSpy := NewSpyLogger()
	failure := errors.New("database gone")
	scheduler, err := maintenance.NewScheduler(
		[]maintenance.Job{{
			Name: "overdue",
			At:   "01:00",
			Run: func(_ context.Context) (shell.HandlerResult, error) {
				return shell.HandlerResult{}, failure
			},
		}},
		maintenance.WithLogger(logger),
	)
	require.NoError(t, err, "error in arranging test data")

	// act
	_, err = scheduler.RunNow(ctx, "overdue")

	// assert
	assert.ErrorIs(t, err, failure)
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelError, "maintenance job failed").
		WithAttrValue("job", "overdue").
		WithAttrValue("error", "database gone").
		Assert())
}

func Test_Scheduler_RunNow_UnknownJob(t *testing.T) {
	// arrange
	scheduler, err := maintenance.NewScheduler(nil)
	require.NoError(t, err, "error in arranging test data")

	// act
	_, err = scheduler.RunNow(context.Background(), "nope")

	// assert
	assert.ErrorIs(t, err, maintenance.ErrUnknownJob)
}

func Test_Scheduler_RunNow_DrivesSweepHandler(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	handler := expirereservations.NewCommandHandler(store)
	scheduler, err := maintenance.NewScheduler([]maintenance.Job{{
		Name: "expire-reservations",
		At:   "00:00",
		Run:  maintenance.SweepRunner[expirereservations.Command, expirereservations.Result](handler, expirereservations.BuildCommand()),
	}})
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := scheduler.RunNow(ctx, "expire-reservations")

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
}

func Test_Scheduler_StartTwice(t *testing.T) {
	// arrange
	scheduler, err := maintenance.NewScheduler([]maintenance.Job{{Name: "expire", At: "00:00", Run: succeeding("ok")}})
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, scheduler.Start(context.Background()), "error in arranging test data")
	defer scheduler.Stop()

	// act
	err = scheduler.Start(context.Background())

	// assert
	assert.ErrorIs(t, err, maintenance.ErrAlreadyStarted)
}

func Test_Scheduler_Stop_WithoutStart(t *testing.T) {
	// arrange
	scheduler, err := maintenance.NewScheduler([]maintenance.Job{{Name: "expire", At: "00:00", Run: succeeding("ok")}})
	require.NoError(t, err, "error in arranging test data")

	// act & assert
	assert.NotPanics(t, scheduler.Stop)
}
