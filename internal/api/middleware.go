package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/userdirectory/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder remembers the status and body size a handler produced.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.size += n
	return n, err
}

// loggingMiddleware puts a request-scoped logger in the context and logs one
// line per completed request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		r = r.WithContext(logger.NewContext(r.Context(), log))
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log.Debug("request started")
		next.ServeHTTP(rec, r)

		log = log.WithFields(map[string]any{
			"status":      rec.status,
			"size":        rec.size,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case rec.status >= 500:
			log.Error("request completed with server error")
		case rec.status >= 400:
			log.Warn("request completed with client error")
		default:
			log.Info("request completed")
		}
	})
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(r.Context()).Error("panic recovered: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware bounds how long a request may run; zero disables it.
func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}
