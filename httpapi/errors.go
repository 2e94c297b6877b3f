package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/maintenance"
)

const (
	kindInternal = "INTERNAL"

	internalErrorMessage = "Something went wrong. Please try again later."
	invalidBodyMessage   = "The request body is invalid or misses required fields."
)

// StatusFor maps an error returned by a handler to an HTTP status code.
// NotFound, Forbidden and BadRequest rejections map to 404, 403 and 400, everything else is a 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, circulation.ErrNotFound), errors.Is(err, maintenance.ErrUnknownJob):
		return http.StatusNotFound
	case errors.Is(err, circulation.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, circulation.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// respondError writes the rejection message as is; infrastructure failures get a generic message.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err) // visible to the request logger

	status := StatusFor(err)

	kind := string(circulation.KindOf(err))
	message := err.Error()

	switch {
	case errors.Is(err, maintenance.ErrUnknownJob):
		kind = string(circulation.KindNotFound)
		message = "Unknown maintenance job."
	case kind == "":
		kind = kindInternal
		message = internalErrorMessage
	}

	c.JSON(status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

func respondInvalidBody(c *gin.Context, err error) {
	_ = c.Error(err) // visible to the request logger

	c.JSON(http.StatusBadRequest, errorBody{Error: errorDetail{
		Kind:    string(circulation.KindBadRequest),
		Message: invalidBodyMessage,
	}})
}
