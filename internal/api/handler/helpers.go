package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lws/gateway/internal/api/response"
	"github.com/lws/gateway/internal/core"
)

// statusForError maps a service error onto an HTTP status. Platform
// failures, unknown node failures and registry errors are all 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownWorkloadType):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrAuthRejected):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError logs err on the request logger and writes the mapped
// error response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")
	response.WriteError(w, status, err.Error())
}
