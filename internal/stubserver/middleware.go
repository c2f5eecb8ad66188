package stubserver

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	requestIDKey    contextKey = "requestID"
	requestIDHeader            = "X-Request-Id"
)

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.statusCode = code
		rw.headerWritten = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// accessLogMiddleware logs one line per request and recovers from handler
// panics with a 500 envelope.
func accessLogMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			defer func() {
				if err := recover(); err != nil {
					log.WithFields(logrus.Fields{
						"request_id": RequestIDFrom(r),
						"error":      err,
						"stack":      string(debug.Stack()),
					}).Error("panic recovered")
					if !rw.headerWritten {
						writeError(rw, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
					}
				}

				log.WithFields(logrus.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      rw.statusCode,
					"duration_ms": time.Since(start).Milliseconds(),
					"request_id":  RequestIDFrom(r),
				}).Info("access")
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
