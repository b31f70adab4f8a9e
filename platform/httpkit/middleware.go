// Package httpkit holds the gin middleware and response helpers shared by
// every module.
package httpkit

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// ContextActorKey holds the JWT subject of the caller.
	ContextActorKey = "actor"
	// ContextActorNameKey holds the optional name claim.
	ContextActorNameKey = "actorName"
	// ContextRequestIDKey holds the request id.
	ContextRequestIDKey = "requestID"

	// RequestIDHeader is read from the client when present and always echoed.
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128

	errMissingToken = "missing token"
	errInvalidToken = "invalid token"
)

// RequestID assigns every request an id, reusing the caller's when it sends a
// sane one, and threads it through the request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.RequestIDKey, id))
		c.Next()
	}
}

// RequestLogger logs every request once it completes, along with any cause
// HandleError attached for a 500.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		requestID := c.GetString(ContextRequestIDKey)
		latency := float64(time.Since(start).Microseconds()) / 1000
		log.HTTPRequest(c.Request.Method, path, c.Writer.Status(), latency, c.ClientIP(), requestID)
		if last := c.Errors.Last(); last != nil {
			log.WithContext(c.Request.Context()).Error("request failed", "path", path, "error", last.Err)
		}
	}
}

// SecurityHeaders sets the headers appropriate for a JSON-only API.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than idleTTL are evicted so the table stays bounded.
type IPRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastPrune time.Time
	now       func() time.Time
	log       *logger.Logger
}

func NewIPRateLimiter(r rate.Limit, burst int, idleTTL time.Duration, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
		log:      log,
	}
}

func (i *IPRateLimiter) allow(ip string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if i.idleTTL > 0 && now.Sub(i.lastPrune) > i.idleTTL {
		for key, v := range i.visitors {
			if now.Sub(v.lastSeen) > i.idleTTL {
				delete(i.visitors, key)
			}
		}
		i.lastPrune = now
	}

	v, ok := i.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (i *IPRateLimiter) tracked() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.visitors)
}

// RateLimit rejects requests beyond the per-IP budget with 429.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !i.allow(ip) {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// AuthRequired validates HS256 access tokens. The sub claim becomes the actor
// recorded in the audit trail; tokens typed as anything other than "access"
// are refused.
func AuthRequired(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, errMissingToken)
			return
		}

		claims, err := parseAccessClaims(rawToken, cfg)
		if err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		subject, _ := claims.GetSubject()
		subject = strings.TrimSpace(subject)
		if subject == "" {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		name, _ := claims["name"].(string)
		c.Set(ContextActorKey, subject)
		c.Set(ContextActorNameKey, strings.TrimSpace(name))
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.ActorKey, subject))
		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, bool) {
	const prefix = "Bearer "
	if len(authHeader) < len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return "", false
	}
	rawToken := strings.TrimSpace(authHeader[len(prefix):])
	return rawToken, rawToken != ""
}

func parseAccessClaims(rawToken string, cfg config.JWTConfig) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.GetJWTAccessSecret()), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, errors.New(errInvalidToken)
	}

	if tokenType, ok := claims["type"].(string); ok && tokenType != "access" {
		return nil, errors.New(errInvalidToken)
	}
	return claims, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}
