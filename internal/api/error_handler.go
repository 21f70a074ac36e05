package api

import (
	"net/http"
	"strings"

	"github.com/vytor/userdirectory/internal/errors"
	"github.com/vytor/userdirectory/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	switch {
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Status >= 400:
		log.Warn("client error: %v", appErr)
	default:
		log.Debug("error: %v", appErr)
	}

	if strings.HasPrefix(r.URL.Path, "/api/") || r.Header.Get("Accept") == "application/json" {
		writeJSON(w, r, appErr.Status, errorBody{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	http.Error(w, appErr.Message, appErr.Status)
}
