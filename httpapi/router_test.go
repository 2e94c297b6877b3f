package httpapi_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine"
	"github.com/AntonStoeckl/library-circulation-go/features/command/addbookcopies"
	"github.com/AntonStoeckl/library-circulation-go/features/command/issuefine"
	"github.com/AntonStoeckl/library-circulation-go/features/command/pickupbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/waivefine"
	"github.com/AntonStoeckl/library-circulation-go/features/query/memberstatus"
	"github.com/AntonStoeckl/library-circulation-go/features/sweep/expirereservations"
	"github.com/AntonStoeckl/library-circulation-go/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/maintenance"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	store  *sqlengine.Store
	clock  *FakeClock
}

func newTestAPI(t *testing.T, opts ...httpapi.Option) testAPI {
	t.Helper()

	store := NewTestStore(t)
	clock := NewFakeClock(FixedStart())

	scheduler, err := maintenance.NewScheduler([]maintenance.Job{{
		Name: "expire-reservations",
		At:   "00:00",
		Run: maintenance.SweepRunner[expirereservations.Command, expirereservations.Result](
			expirereservations.NewCommandHandler(store, expirereservations.WithClock(clock)),
			expirereservations.BuildCommand()),
	}})
	require.NoError(t, err, "error in arranging test data")

	handlers := httpapi.Handlers{
		ReserveBook:    reservebook.NewCommandHandler(store, reservebook.WithClock(clock)),
		PickUpBook:     pickupbook.NewCommandHandler(store, pickupbook.WithClock(clock)),
		ReturnBook:     returnbook.NewCommandHandler(store, returnbook.WithClock(clock)),
		IssueFine:      issuefine.NewCommandHandler(store, issuefine.WithClock(clock)),
		WaiveFine:      waivefine.NewCommandHandler(store, waivefine.WithClock(clock)),
		AddBookCopies:  addbookcopies.NewCommandHandler(store, addbookcopies.WithClock(clock)),
		RegisterMember: registermember.NewCommandHandler(store, registermember.WithClock(clock)),
		MemberStatus:   memberstatus.NewQueryHandler(store, memberstatus.WithClock(clock)),
		Sweeps:         scheduler,
		Health:         store.Ping,
	}

	return testAPI{router: httpapi.NewRouter(handlers, opts...), store: store, clock: clock}
}

func (a testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "response is not a JSON object: %s", rec.Body.String())

	return body
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()

	detail, ok := decode(t, rec)["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", rec.Body.String())

	return detail["kind"].(string), detail["message"].(string) //nolint:forcetypeassert // asserted by the API contract
}

func Test_Router_CirculationRoundTrip(t *testing.T) {
	// arrange
	api := newTestAPI(t)

	// act & assert: register
	rec := api.do(t, http.MethodPost, "/members", `{"user_id":"member-1","name":"Ada"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Welcome, Ada!", decode(t, rec)["message"])
	assert.Equal(t, "/members/member-1/status", rec.Header().Get("Location"))

	// act & assert: provision
	rec = api.do(t, http.MethodPost, "/books/book-1/copies", `{"isbn":"978-0-13-468599-1","title":"The Go Programming Language","copies":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	book := decode(t, rec)["book"].(map[string]any) //nolint:forcetypeassert // asserted by the API contract
	assert.EqualValues(t, 2, book["copies_available"])

	// act & assert: reserve
	rec = api.do(t, http.MethodPost, "/members/member-1/reservations", `{"book_id":"book-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, `You reserved "The Go Programming Language". Please pick it up by 2025-03-10.`, decode(t, rec)["message"])

	// act & assert: pick up
	rec = api.do(t, http.MethodPost, "/members/member-1/pickups", `{"book_id":"book-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	loan := decode(t, rec)["loan"].(map[string]any) //nolint:forcetypeassert // asserted by the API contract
	assert.Equal(t, "2025-03-17T10:00:00Z", loan["due_date"])

	// act & assert: status while borrowed
	rec = api.do(t, http.MethodGet, "/members/member-1/status", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	status := decode(t, rec)
	assert.Len(t, status["open_loans"], 1)
	assert.Len(t, status["active_reservations"], 1)
	assert.Equal(t, true, status["can_reserve"])

	// act & assert: late return
	api.clock.Advance(20 * 24 * time.Hour)
	rec = api.do(t, http.MethodPost, "/members/member-1/returns", `{"book_id":"book-1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fine := decode(t, rec)["fine"].(map[string]any) //nolint:forcetypeassert // asserted by the API contract
	assert.Equal(t, "3.00", fine["amount"])

	// act & assert: restricted now
	rec = api.do(t, http.MethodPost, "/members/member-1/reservations", `{"book_id":"book-1"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	kind, _ := errorOf(t, rec)
	assert.Equal(t, "FORBIDDEN", kind)
}

func Test_Router_Reserve_UnknownMember(t *testing.T) {
	// arrange
	api := newTestAPI(t)
	book := GivenBook(t, context.Background(), api.store, 1)

	// act
	rec := api.do(t, http.MethodPost, "/members/nobody/reservations", `{"book_id":"`+book.ID+`"}`)

	// assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	kind, message := errorOf(t, rec)
	assert.Equal(t, "NOT_FOUND", kind)
	assert.Equal(t, "User not found.", message)
}

func Test_Router_Reserve_NoCopiesLeft(t *testing.T) {
	// arrange
	ctx := context.Background()
	api := newTestAPI(t)
	member := GivenMember(t, ctx, api.store)
	book := GivenBook(t, ctx, api.store, 0)

	// act
	rec := api.do(t, http.MethodPost, "/members/"+member.ID+"/reservations", `{"book_id":"`+book.ID+`"}`)

	// assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	kind, message := errorOf(t, rec)
	assert.Equal(t, "BAD_REQUEST", kind)
	assert.Contains(t, message, "currently unavailable")
}

func Test_Router_InvalidBody(t *testing.T) {
	testCases := []struct {
		description string
		path        string
		body        string
	}{
		{description: "register without name", path: "/members", body: `{"user_id":"member-1"}`},
		{description: "reserve without book", path: "/members/member-1/reservations", body: `{}`},
		{description: "malformed json", path: "/members/member-1/returns", body: `{"book_id":`},
		{description: "fine with bad amount", path: "/members/member-1/fines", body: `{"amount":"lots"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			api := newTestAPI(t)

			// act
			rec := api.do(t, http.MethodPost, tc.path, tc.body)

			// assert
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			kind, _ := errorOf(t, rec)
			assert.Equal(t, "BAD_REQUEST", kind)
		})
	}
}

func Test_Router_IssueAndWaiveFine(t *testing.T) {
	// arrange
	ctx := context.Background()
	api := newTestAPI(t)
	member := GivenMember(t, ctx, api.store)

	// act
	issued := api.do(t, http.MethodPost, "/members/"+member.ID+"/fines", `{"amount":"2.5","reason":"damaged cover"}`)

	// assert
	require.Equal(t, http.StatusCreated, issued.Code, issued.Body.String())
	fine := decode(t, issued)["fine"].(map[string]any) //nolint:forcetypeassert // asserted by the API contract
	assert.Equal(t, "2.50", fine["amount"])
	assert.Equal(t, "UNPAID", fine["status"])

	// act
	waived := api.do(t, http.MethodPost, "/members/"+member.ID+"/fines/"+fine["fine_id"].(string)+"/waive", "")

	// assert
	require.Equal(t, http.StatusOK, waived.Code, waived.Body.String())
	body := decode(t, waived)
	assert.Equal(t, "The fine of 2.50 has been waived.", body["message"])
	assert.Equal(t, "PAID", body["fine"].(map[string]any)["status"]) //nolint:forcetypeassert // asserted by the API contract

	// act
	again := api.do(t, http.MethodPost, "/members/"+member.ID+"/fines/"+fine["fine_id"].(string)+"/waive", "")

	// assert
	require.Equal(t, http.StatusOK, again.Code, again.Body.String())
	assert.Equal(t, true, decode(t, again)["idempotent"])
}

func Test_Router_MemberStatus_UnknownMember(t *testing.T) {
	// arrange
	api := newTestAPI(t)

	// act
	rec := api.do(t, http.MethodGet, "/members/nobody/status", "")

	// assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_Router_RunSweep(t *testing.T) {
	// arrange
	ctx := context.Background()
	api := newTestAPI(t)
	member := GivenMember(t, ctx, api.store)
	book := GivenBook(t, ctx, api.store, 1)
	reserved := api.do(t, http.MethodPost, "/members/"+member.ID+"/reservations", `{"book_id":"`+book.ID+`"}`)
	require.Equal(t, http.StatusCreated, reserved.Code, "error in arranging test data")
	api.clock.Advance(8 * 24 * time.Hour)

	// act
	rec := api.do(t, http.MethodPost, "/ops/sweeps/expire-reservations", "")

	// assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "expire-reservations", body["job"])
	assert.Equal(t, "Cancelled 1 expired reservation(s).", body["message"])
	assert.Equal(t, 1, LoadBook(t, ctx, api.store, book.ID).CopiesAvailable)
}

func Test_Router_RunSweep_ReportsSkippedItems(t *testing.T) {
	// arrange
	ctx := context.Background()
	api := newTestAPI(t)
	orphanOwner := GivenMember(t, ctx, api.store)
	GivenReservation(t, ctx, api.store, orphanOwner.ID, GivenUniqueID(t), circulation.ReservationReserved, api.clock.Now())
	member := GivenMember(t, ctx, api.store)
	book := GivenBook(t, ctx, api.store, 1)
	reserved := api.do(t, http.MethodPost, "/members/"+member.ID+"/reservations", `{"book_id":"`+book.ID+`"}`)
	require.Equal(t, http.StatusCreated, reserved.Code, "error in arranging test data")
	api.clock.Advance(8 * 24 * time.Hour)

	for _, run := range []string{"first run", "second run"} {
		t.Run(run, func(t *testing.T) {
			// act
			rec := api.do(t, http.MethodPost, "/ops/sweeps/expire-reservations", "")

			// assert
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, decode(t, rec)["message"], "1 skipped")
			assert.Equal(t, 1, LoadBook(t, ctx, api.store, book.ID).CopiesAvailable)
		})
	}
}

func Test_Router_RunSweep_UnknownJob(t *testing.T) {
	// arrange
	api := newTestAPI(t)

	// act
	rec := api.do(t, http.MethodPost, "/ops/sweeps/defragment", "")

	// assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	kind, message := errorOf(t, rec)
	assert.Equal(t, "NOT_FOUND", kind)
	assert.Equal(t, "Unknown maintenance job.", message)
}

type failingReserve struct{}

func (failingReserve) Handle(_ context.Context, _ reservebook.Command) (reservebook.Result, error) {
	return reservebook.Result{}, errors.Join(circulation.ErrTransactionFailed, errors.New("connection reset by peer"))
}

func Test_Router_InfrastructureErrorIsNotLeaked(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	router := httpapi.NewRouter(httpapi.Handlers{ReserveBook: failingReserve{}}, httpapi.WithContextualLogger(logger))
	req := httptest.NewRequest(http.MethodPost, "/members/member-1/reservations", bytes.NewReader([]byte(`{"book_id":"b"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// act
	router.ServeHTTP(rec, req)

	// assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	kind, message := errorOf(t, rec)
	assert.Equal(t, "INTERNAL", kind)
	assert.NotContains(t, message, "connection reset")
	assert.True(t, logSpy.HasLogWithMessage(slog.LevelInfo, "http request handled").
		WithAttrValue("route", "/members/:userID/reservations").
		WithAttrValue("status", "500").
		WithAttr("error").
		WithDurationMS().
		Assert())
}

func Test_Router_Health(t *testing.T) {
	// arrange
	healthy := newTestAPI(t)
	unhealthy := httpapi.NewRouter(httpapi.Handlers{Health: func(context.Context) error { return errors.New("down") }})

	// act
	ok := healthy.do(t, http.MethodGet, "/healthz", "")
	rec := httptest.NewRecorder()
	unhealthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// assert
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
