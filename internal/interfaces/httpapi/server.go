package httpapi

import (
	"net/http"

	"github.com/riskibarqy/no-draw-tracker/internal/platform/id"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerStandingsRoutes(mux, handler)

	chain := RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux)))
	return RequestTracing(RequestID(id.NewRandomGenerator(0), chain))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				requestID, _ := requestIDFromContext(ctx)
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path, "request_id", requestID)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
