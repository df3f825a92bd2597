package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/faults"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondFault translates the error taxonomy into HTTP. Indeterminate
// validation maps to 503: the client did nothing wrong, the check could not
// run.
func RespondFault(c *gin.Context, err error) {
	switch {
	case faults.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation", err)
	case faults.IsAuth(err):
		RespondError(c, http.StatusUnauthorized, "auth", err)
	case faults.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case faults.IsConflict(err):
		RespondError(c, http.StatusConflict, "conflict", err)
	case faults.IsIndeterminate(err):
		RespondError(c, http.StatusServiceUnavailable, "indeterminate", err)
	case faults.IsUpload(err):
		RespondError(c, http.StatusBadGateway, "upload", err)
	case faults.IsWrite(err):
		RespondError(c, http.StatusInternalServerError, "write", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
