package http

import (
	"net/http"

	"github.com/AlibekovAA/task-manager/internal/common/constants"
	"github.com/AlibekovAA/task-manager/internal/common/httpmetrics"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequest)

	return SecurityHeadersMiddleware(TraceIDMiddleware(recovery(maxRequestSize(metrics.Wrap(handler)))))
}
