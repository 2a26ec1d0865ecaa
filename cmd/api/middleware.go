// cmd/api/middleware.go
// HTTP middleware used to wrap the router.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// recoverPanic turns a panic in any downstream handler into a 500 response
// and closes the connection.
func (app *applicationDependencies) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type traceIDKey struct{}

func traceIDFromRequest(r *http.Request) string {
	id, _ := r.Context().Value(traceIDKey{}).(string)
	return id
}

// logRequest tags the request with a trace id, echoing a valid incoming
// X-Trace-ID, and logs the request once it has been served.
func (app *applicationDependencies) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if uuid.Validate(traceID) != nil {
			traceID = uuid.NewString()
		}
		w.Header().Set("X-Trace-ID", traceID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), traceIDKey{}, traceID)))

		app.logger.Info("request served",
			slog.String("trace_id", traceID),
			slog.String("http_method", r.Method),
			slog.String("http_path", r.URL.Path),
			slog.Int("status_code", ww.Status()),
			slog.Int("bytes_written", ww.BytesWritten()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

// client holds a per-IP rate limiter and the time it was last seen.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimit implements per-IP token-bucket rate limiting. The bucket size
// and refill rate come from the limiter flags. Trusted IPs bypass the
// limiter: the web front end calls the API on behalf of every visitor from
// one address. Entries idle for three minutes are evicted by a background
// goroutine.
func (app *applicationDependencies) rateLimit(next http.Handler) http.Handler {
	if !app.config.limiter.enabled {
		return next
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		if slices.Contains(app.config.limiter.trustedIPs, ip) {
			next.ServeHTTP(w, r)
			return
		}

		mu.Lock()
		if _, found := clients[ip]; !found {
			clients[ip] = &client{
				limiter: rate.NewLimiter(rate.Limit(app.config.limiter.rps), app.config.limiter.burst),
			}
		}
		clients[ip].lastSeen = time.Now()

		if !clients[ip].limiter.Allow() {
			mu.Unlock()
			app.rateLimitExceededResponse(w, r)
			return
		}
		mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// enableCORS lets the trusted origins call the API from a browser. With no
// trusted origins configured, cross-origin requests get no CORS headers.
func (app *applicationDependencies) enableCORS(next http.Handler) http.Handler {
	if len(app.config.cors.trustedOrigins) == 0 {
		return next
	}
	return cors.New(cors.Options{
		AllowedOrigins: app.config.cors.trustedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
	}).Handler(next)
}
