package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osse101/QuestForge_Go/internal/logger"
)

// AuthMiddleware requires the API key on every non-public path. The key may
// arrive as X-API-Key or as an Authorization bearer token. An empty apiKey
// disables authentication.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			if wait := detector.LockedOut(ip); wait > 0 {
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(wait.Seconds())+1))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			providedKey := presentedKey(r)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func presentedKey(r *http.Request) string {
	if k := r.Header.Get(HeaderAPIKey); k != "" {
		return k
	}
	if auth := r.Header.Get(HeaderAuthorization); strings.HasPrefix(auth, BearerPrefix) {
		return strings.TrimPrefix(auth, BearerPrefix)
	}
	return ""
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// DetectorLimits tunes the per-IP abuse counters
type DetectorLimits struct {
	Window          time.Duration
	MaxRequests     int // per window, then 429 until the window rolls
	FailedAuthAlert int // failures before a security alert is logged
	MaxFailedAuth   int // failures before the IP is locked out for the window
}

// DefaultDetectorLimits allows 1000 requests and 10 bad keys per 5 minutes
var DefaultDetectorLimits = DetectorLimits{
	Window:          5 * time.Minute,
	MaxRequests:     1000,
	FailedAuthAlert: 5,
	MaxFailedAuth:   10,
}

type ipWindow struct {
	start      time.Time
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per client IP
// in fixed windows that start at each IP's first request
type SuspiciousActivityDetector struct {
	limits DetectorLimits
	now    func() time.Time

	mu    sync.Mutex
	byIP  map[string]*ipWindow
	swept time.Time
}

// NewSuspiciousActivityDetector uses DefaultDetectorLimits
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return NewSuspiciousActivityDetectorWithLimits(DefaultDetectorLimits)
}

// NewSuspiciousActivityDetectorWithLimits builds a detector with custom limits
func NewSuspiciousActivityDetectorWithLimits(limits DetectorLimits) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		limits: limits,
		now:    time.Now,
		byIP:   make(map[string]*ipWindow),
	}
}

// window returns the live window for ip. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) window(ip string) *ipWindow {
	now := s.now()
	if now.Sub(s.swept) > s.limits.Window {
		for k, w := range s.byIP {
			if now.Sub(w.start) > s.limits.Window {
				delete(s.byIP, k)
			}
		}
		s.swept = now
	}

	w, ok := s.byIP[ip]
	if !ok || now.Sub(w.start) > s.limits.Window {
		w = &ipWindow{start: now}
		s.byIP[ip] = w
	}
	return w
}

func (s *SuspiciousActivityDetector) remaining(w *ipWindow) time.Duration {
	return w.start.Add(s.limits.Window).Sub(s.now())
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.failedAuth++
	if w.failedAuth >= s.limits.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.failedAuth)
	}
}

// LockedOut returns how long ip must wait after too many failed logins, or 0
func (s *SuspiciousActivityDetector) LockedOut(ip string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	if s.limits.MaxFailedAuth > 0 && w.failedAuth >= s.limits.MaxFailedAuth {
		return s.remaining(w)
	}
	return 0
}

// RecordRequest counts a request and reports whether it is within the rate
// limit, plus how long until the window resets when it is not
func (s *SuspiciousActivityDetector) RecordRequest(ip string) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.requests++
	if w.requests <= s.limits.MaxRequests {
		return true, 0
	}
	// one log line per hundred blocked requests
	if (w.requests-s.limits.MaxRequests)%100 == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", w.requests)
	}
	return false, s.remaining(w)
}

// SecurityLoggingMiddleware enforces the per-IP request rate
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if ok, wait := detector.RecordRequest(ip); !ok {
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(wait.Seconds())+1))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	for _, proxy := range trustedProxies {
		if proxy != remoteIP {
			continue
		}
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// rightmost hop is the one our proxy saw
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
		break
	}
	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			if strings.HasPrefix(r.URL.Path, SwaggerPrefix) {
				h.Set(HeaderContentSecurity, HeaderValueCSPSwagger)
			} else {
				h.Set(HeaderContentSecurity, HeaderValueCSPNone)
			}
			h.Set(HeaderReferrerPolicy, HeaderValueNoReferrer)
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}
			next.ServeHTTP(w, r)
		})
	}
}
