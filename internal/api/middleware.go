package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/logger"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const ownerContextKey contextKey = "owner"

// ownerHeader carries the authenticated owner of the request. Authentication
// itself belongs to the surrounding application.
const ownerHeader = "X-Owner-ID"

func ownerFromContext(ctx context.Context) (int64, bool) {
	if v := ctx.Value(ownerContextKey); v != nil {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

func ownerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		raw := r.Header.Get(ownerHeader)
		if raw == "" {
			log.Debug("missing %s header", ownerHeader)
			handleError(w, r, &errors.AppError{
				Code:    errors.ErrCodeBadRequest,
				Message: "missing " + ownerHeader + " header",
				Status:  http.StatusUnauthorized,
			})
			return
		}

		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			log.Warn("invalid %s header: %q", ownerHeader, raw)
			handleError(w, r, errors.NewBadRequestError("invalid "+ownerHeader+" header"))
			return
		}

		ctx := context.WithValue(r.Context(), ownerContextKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := generateRequestID()

		log := logger.Default().WithField("request_id", reqID)
		ctx := logger.NewContext(r.Context(), log)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r.WithContext(ctx))

		log.Debug("%s %s -> %d (%d bytes, %v)", r.Method, r.URL.Path, rw.status, rw.size, time.Since(start))
	})
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// generateRequestID creates a random request ID.
func generateRequestID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
