package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/addbookcopies"
	"github.com/AntonStoeckl/library-circulation-go/features/command/issuefine"
	"github.com/AntonStoeckl/library-circulation-go/features/command/pickupbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/waivefine"
	"github.com/AntonStoeckl/library-circulation-go/features/query/memberstatus"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

const (
	logMsgRequestHandled = "http request handled"
	logAttrMethod        = "method"
	logAttrRoute         = "route"
	logAttrStatus        = "status"
	logAttrDurationMS    = "duration_ms"
	logAttrError         = "error"
)

// SweepTrigger runs a maintenance job by name. *maintenance.Scheduler implements it.
type SweepTrigger interface {
	RunNow(ctx context.Context, name string) (shell.HandlerResult, error)
}

// Handlers bundles everything the API delegates to. Plain or observable handlers both fit.
type Handlers struct {
	ReserveBook    shell.CoreCommandHandler[reservebook.Command, reservebook.Result]
	PickUpBook     shell.CoreCommandHandler[pickupbook.Command, pickupbook.Result]
	ReturnBook     shell.CoreCommandHandler[returnbook.Command, returnbook.Result]
	IssueFine      shell.CoreCommandHandler[issuefine.Command, issuefine.Result]
	WaiveFine      shell.CoreCommandHandler[waivefine.Command, waivefine.Result]
	AddBookCopies  shell.CoreCommandHandler[addbookcopies.Command, addbookcopies.Result]
	RegisterMember shell.CoreCommandHandler[registermember.Command, registermember.Result]
	MemberStatus   shell.CoreQueryHandler[memberstatus.Query, memberstatus.MemberStatus]
	Sweeps         SweepTrigger
	Health         func(ctx context.Context) error
}

type routerConfig struct {
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
}

// Option configures the router.
type Option func(*routerConfig)

// WithLogger logs every request.
func WithLogger(logger circulation.Logger) Option {
	return func(c *routerConfig) {
		c.logger = logger
	}
}

// WithContextualLogger logs every request with the request context. It takes precedence over WithLogger.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(c *routerConfig) {
		c.contextualLogger = logger
	}
}

// NewRouter registers all routes on a fresh gin engine.
func NewRouter(handlers Handlers, opts ...Option) *gin.Engine {
	cfg := routerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	_ = router.SetTrustedProxies(nil) // never fails for nil

	if cfg.logger != nil || cfg.contextualLogger != nil {
		router.Use(requestLogging(cfg))
	}

	RegisterRoutes(router, handlers)

	return router
}

// RegisterRoutes registers all routes on r.
func RegisterRoutes(r gin.IRoutes, handlers Handlers) {
	h := &handler{handlers: handlers}

	r.GET("/healthz", h.health)

	r.POST("/members", h.registerMember)
	r.GET("/members/:userID/status", h.memberStatus)
	r.POST("/members/:userID/reservations", h.reserveBook)
	r.POST("/members/:userID/pickups", h.pickUpBook)
	r.POST("/members/:userID/returns", h.returnBook)
	r.POST("/members/:userID/fines", h.issueFine)
	r.POST("/members/:userID/fines/:fineID/waive", h.waiveFine)

	r.POST("/books/:bookID/copies", h.addBookCopies)

	r.POST("/ops/sweeps/:name", h.runSweep)
}

func requestLogging(cfg routerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			logAttrMethod, c.Request.Method,
			logAttrRoute, c.FullPath(),
			logAttrStatus, c.Writer.Status(),
			logAttrDurationMS, shell.ToMilliseconds(time.Since(start)),
		}

		if len(c.Errors) > 0 {
			args = append(args, logAttrError, c.Errors.Last().Error())
		}

		if cfg.contextualLogger != nil {
			cfg.contextualLogger.InfoContext(c.Request.Context(), logMsgRequestHandled, args...)
			return
		}

		cfg.logger.Info(logMsgRequestHandled, args...)
	}
}

type handler struct {
	handlers Handlers
}

// GET /healthz
func (h *handler) health(c *gin.Context) {
	if h.handlers.Health != nil {
		if err := h.handlers.Health(c.Request.Context()); err != nil {
			_ = c.Error(err) // visible to the request logger
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
	}

	c.String(http.StatusOK, "ok")
}

// POST /members
func (h *handler) registerMember(c *gin.Context) {
	var req registerMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	result, err := h.handlers.RegisterMember.Handle(c.Request.Context(), registermember.BuildCommand(req.UserID, req.Name))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/members/"+result.User.ID+"/status")
	c.JSON(http.StatusCreated, memberResult{outcomeResponse: toOutcome(result.HandlerResult), Member: toMember(result.User)})
}

// GET /members/:userID/status
func (h *handler) memberStatus(c *gin.Context) {
	status, err := h.handlers.MemberStatus.Handle(c.Request.Context(), memberstatus.BuildQuery(c.Param("userID")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberStatus(status))
}

// POST /members/:userID/reservations
func (h *handler) reserveBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	result, err := h.handlers.ReserveBook.Handle(c.Request.Context(), reservebook.BuildCommand(c.Param("userID"), req.BookID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservationResult{
		outcomeResponse: toOutcome(result.HandlerResult),
		Reservation:     toReservation(result.Reservation),
	})
}

// POST /members/:userID/pickups
func (h *handler) pickUpBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	result, err := h.handlers.PickUpBook.Handle(c.Request.Context(), pickupbook.BuildCommand(c.Param("userID"), req.BookID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loanResult{outcomeResponse: toOutcome(result.HandlerResult), Loan: toLoan(result.Loan)})
}

// POST /members/:userID/returns
func (h *handler) returnBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	result, err := h.handlers.ReturnBook.Handle(c.Request.Context(), returnbook.BuildCommand(c.Param("userID"), req.BookID))
	if err != nil {
		respondError(c, err)
		return
	}

	response := loanResult{outcomeResponse: toOutcome(result.HandlerResult), Loan: toLoan(result.Loan)}
	if result.Fine != nil {
		fine := toFine(*result.Fine)
		response.Fine = &fine
	}

	c.JSON(http.StatusOK, response)
}

// POST /members/:userID/fines
func (h *handler) issueFine(c *gin.Context) {
	var req issueFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	command := issuefine.BuildCommand(c.Param("userID"), req.BookID, req.Amount, req.Reason)

	result, err := h.handlers.IssueFine.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fineResult{outcomeResponse: toOutcome(result.HandlerResult), Fine: toFine(result.Fine)})
}

// POST /members/:userID/fines/:fineID/waive
func (h *handler) waiveFine(c *gin.Context) {
	command := waivefine.BuildCommand(c.Param("userID"), c.Param("fineID"))

	result, err := h.handlers.WaiveFine.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fineResult{outcomeResponse: toOutcome(result.HandlerResult), Fine: toFine(result.Fine)})
}

// POST /books/:bookID/copies
func (h *handler) addBookCopies(c *gin.Context) {
	var req addBookCopiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	command := addbookcopies.BuildCommand(c.Param("bookID"), req.ISBN, req.Title, req.Copies)

	result, err := h.handlers.AddBookCopies.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookResult{outcomeResponse: toOutcome(result.HandlerResult), Book: toBook(result.Book)})
}

// POST /ops/sweeps/:name
func (h *handler) runSweep(c *gin.Context) {
	name := c.Param("name")

	result, err := h.handlers.Sweeps.RunNow(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sweepResponse{outcomeResponse: toOutcome(result), Job: name})
}
