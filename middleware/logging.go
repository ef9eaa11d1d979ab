package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}
type ctxKeyRequestID struct{}

// LoggingMiddleware attaches a request-scoped logger and request ID to the context and
// logs each completed request.
func LoggingMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()

			reqLog := log.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     requestID,
			})

			ctx := context.WithValue(r.Context(), ctxKeyLog{}, reqLog)
			ctx = context.WithValue(ctx, ctxKeyRequestID{}, requestID)

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLog.WithFields(logrus.Fields{
				"http.resp.took_ms": time.Since(start).Milliseconds(),
				"http.resp.status":  ww.statusCode,
			}).Debug("request complete")
		})
	}
}

// Logger returns the request logger, or the standard logger outside a request.
func Logger(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return l
	}
	return logrus.StandardLogger()
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}
