package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"SalesIngest/internal/logger"
)

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	return r.RemoteAddr
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// AccessLog logs every request with its status and duration. Writes (POST,
// PUT, DELETE) also go to the audit log.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		msg := fmt.Sprintf("[HTTP] %s %s from %s status %d in %s", r.Method, r.URL.Path, extractClientIP(r), rw.statusCode, time.Since(start).Round(time.Millisecond))
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			logger.GlobalLogger.LogAudit(msg)
			return
		}
		log.Println(msg)
	})
}

// Recover turns a handler panic into a 500 instead of a dropped connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				log.Printf("[ERROR] panic serving %s %s: %v", r.Method, r.URL.Path, p)
				RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
