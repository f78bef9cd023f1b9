package http

import (
	"net/http"

	"github.com/AlibekovAA/task-manager/internal/common/constants"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

func MaxRequestSizeMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxRequest
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteErrorEnvelope(
					w,
					http.StatusRequestEntityTooLarge,
					commonerrors.ErrRequestTooLarge.Code(),
					commonerrors.ErrRequestTooLarge.Message(),
					nil,
					TraceIDFromContext(r.Context()),
				)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
