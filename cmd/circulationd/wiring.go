package main

import (
	"errors"
	"log/slog"

	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine"
	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/features/command/addbookcopies"
	"github.com/AntonStoeckl/library-circulation-go/features/command/issuefine"
	"github.com/AntonStoeckl/library-circulation-go/features/command/pickupbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/waivefine"
	"github.com/AntonStoeckl/library-circulation-go/features/query/memberstatus"
	"github.com/AntonStoeckl/library-circulation-go/features/sweep/cleanupstalereservations"
	"github.com/AntonStoeckl/library-circulation-go/features/sweep/detectoverdueloans"
	"github.com/AntonStoeckl/library-circulation-go/features/sweep/expirereservations"
	"github.com/AntonStoeckl/library-circulation-go/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/maintenance"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/observable"
)

// Maintenance job names, also used by POST /ops/sweeps/:name.
const (
	jobExpireReservations       = "expire-reservations"
	jobDetectOverdueLoans       = "detect-overdue-loans"
	jobCleanupStaleReservations = "cleanup-stale-reservations"
)

// wire builds the observable handlers and the scheduler on top of store.
func wire(store *sqlengine.Store, cfg config.Config, logger *slog.Logger) (httpapi.Handlers, *maintenance.Scheduler, error) {
	messages := shell.NewMessages(cfg.Messages.Locale)
	var errs []error

	reserve, err := observeCommand[reservebook.Command, reservebook.Result](
		reservebook.NewCommandHandler(store, reservebook.WithMessages(messages)), logger)
	errs = append(errs, err)

	pickUp, err := observeCommand[pickupbook.Command, pickupbook.Result](
		pickupbook.NewCommandHandler(store, pickupbook.WithMessages(messages)), logger)
	errs = append(errs, err)

	giveBack, err := observeCommand[returnbook.Command, returnbook.Result](
		returnbook.NewCommandHandler(store, returnbook.WithMessages(messages)), logger)
	errs = append(errs, err)

	fine, err := observeCommand[issuefine.Command, issuefine.Result](
		issuefine.NewCommandHandler(store, issuefine.WithMessages(messages)), logger)
	errs = append(errs, err)

	waive, err := observeCommand[waivefine.Command, waivefine.Result](
		waivefine.NewCommandHandler(store, waivefine.WithMessages(messages)), logger)
	errs = append(errs, err)

	provision, err := observeCommand[addbookcopies.Command, addbookcopies.Result](
		addbookcopies.NewCommandHandler(store), logger)
	errs = append(errs, err)

	register, err := observeCommand[registermember.Command, registermember.Result](
		registermember.NewCommandHandler(store), logger)
	errs = append(errs, err)

	status, err := observable.NewQueryWrapper[memberstatus.Query, memberstatus.MemberStatus](
		memberstatus.NewQueryHandler(store),
		observable.WithQueryContextualLogging[memberstatus.Query, memberstatus.MemberStatus](logger))
	errs = append(errs, err)

	expire, err := observeCommand[expirereservations.Command, expirereservations.Result](
		expirereservations.NewCommandHandler(store,
			expirereservations.WithMessages(messages),
			expirereservations.WithContextualLogger(logger)), logger)
	errs = append(errs, err)

	overdue, err := observeCommand[detectoverdueloans.Command, detectoverdueloans.Result](
		detectoverdueloans.NewCommandHandler(store,
			detectoverdueloans.WithMessages(messages),
			detectoverdueloans.WithContextualLogger(logger)), logger)
	errs = append(errs, err)

	cleanup, err := observeCommand[cleanupstalereservations.Command, cleanupstalereservations.Result](
		cleanupstalereservations.NewCommandHandler(store,
			cleanupstalereservations.WithMessages(messages),
			cleanupstalereservations.WithContextualLogger(logger)), logger)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return httpapi.Handlers{}, nil, err
	}

	location, err := cfg.Scheduler.TimeLocation()
	if err != nil {
		return httpapi.Handlers{}, nil, err
	}

	scheduler, err := maintenance.NewScheduler(
		[]maintenance.Job{
			{
				Name: jobExpireReservations,
				At:   cfg.Scheduler.ExpireReservationsAt,
				Run:  maintenance.SweepRunner(expire, expirereservations.BuildCommand()),
			},
			{
				Name: jobDetectOverdueLoans,
				At:   cfg.Scheduler.DetectOverdueLoansAt,
				Run:  maintenance.SweepRunner(overdue, detectoverdueloans.BuildCommand()),
			},
			{
				Name: jobCleanupStaleReservations,
				At:   cfg.Scheduler.CleanupStaleReservationsAt,
				Run:  maintenance.SweepRunner(cleanup, cleanupstalereservations.BuildCommand()),
			},
		},
		maintenance.WithLocation(location),
		maintenance.WithContextualLogger(logger),
	)
	if err != nil {
		return httpapi.Handlers{}, nil, err
	}

	handlers := httpapi.Handlers{
		ReserveBook:    reserve,
		PickUpBook:     pickUp,
		ReturnBook:     giveBack,
		IssueFine:      fine,
		WaiveFine:      waive,
		AddBookCopies:  provision,
		RegisterMember: register,
		MemberStatus:   status,
		Sweeps:         scheduler,
		Health:         store.Ping,
	}

	return handlers, scheduler, nil
}

func observeCommand[C shell.Command, R shell.Result](
	handler shell.CoreCommandHandler[C, R],
	logger *slog.Logger,
) (shell.CoreCommandHandler[C, R], error) {

	return observable.NewCommandWrapper(handler, observable.WithCommandContextualLogging[C, R](logger))
}
