package httpapi

import (
	"net/http"

	"github.com/riskibarqy/volleyball-feed/internal/platform/id"
	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
)

// RouterConfig carries the optional pieces of the HTTP stack.
type RouterConfig struct {
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler
	Observer           RequestObserver
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerFeedRoutes(mux, handler)
	registerSEORoutes(mux, handler)

	ids := id.NewRandomGenerator("req-")
	return RequestTracing(RequestID(ids, RequestLogging(logger, cfg.Observer, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, captureRoute(mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
