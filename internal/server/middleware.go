package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// statusWriter captures status code and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Logging logs one line per request.
func Logging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// Recover turns a panicking handler into a 500 response.
func Recover(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					logger.Error("handler panicked", "path", r.URL.Path, "panic", v)
					writeError(w, http.StatusInternalServerError, "Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS sets CORS headers for the configured origin.
//
// An empty origin disables CORS headers and "*" allows any origin. Preflight requests are
// answered with 204 without reaching the handler.
func CORS(allowedOrigin string) Middleware {
	origin := strings.TrimSpace(allowedOrigin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case origin == "":
			case origin == "*":
				w.Header().Set("Access-Control-Allow-Origin", "*")
				setCORSHeaders(w)
			default:
				if requested := r.Header.Get("Origin"); requested != "" && strings.EqualFold(requested, origin) {
					w.Header().Set("Access-Control-Allow-Origin", requested)
					w.Header().Set("Vary", "Origin")
					setCORSHeaders(w)
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

const (
	limiterIdleTTL       = 15 * time.Minute
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

// clientLimiters hands out one token bucket per client address. Buckets idle for longer
// than idleTTL are dropped at most once per sweepInterval.
type clientLimiters struct {
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	idleTTL       time.Duration
	sweepInterval time.Duration
	lastSweep     time.Time
	limiters      map[string]*clientLimiter
}

func newClientLimiters(limit rate.Limit, burst int, now time.Time) *clientLimiters {
	return &clientLimiters{
		limit:         limit,
		burst:         burst,
		idleTTL:       limiterIdleTTL,
		sweepInterval: limiterSweepInterval,
		lastSweep:     now,
		limiters:      make(map[string]*clientLimiter),
	}
}

func (c *clientLimiters) get(key string, now time.Time) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) >= c.sweepInterval {
		c.sweepLocked(now)
	}

	l, ok := c.limiters[key]
	if !ok {
		l = &clientLimiter{Limiter: rate.NewLimiter(c.limit, c.burst)}
		c.limiters[key] = l
	}
	l.lastSeen = now
	return l.Limiter
}

func (c *clientLimiters) sweepLocked(now time.Time) {
	for key, l := range c.limiters {
		if now.Sub(l.lastSeen) > c.idleTTL {
			delete(c.limiters, key)
		}
	}
	c.lastSweep = now
}

// RateLimit allows each client rps requests per second with the given burst.
// Requests over the limit get 429 with a JSON error. A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) Middleware {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}

	clients := newClientLimiters(rate.Limit(rps), burst, time.Now())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			if !clients.get(clientIP(r), now).AllowN(now, 1) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
