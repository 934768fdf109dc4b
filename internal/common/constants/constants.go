package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 20
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	TitleMinLength     = 1
	TitleMaxLength     = 200
	ContentMinLength   = 1
	ContentMaxLength   = 5000
	JWTSecretMinLength = 32

	DefaultBcryptCost = 12

	DefaultPage      = 1
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	DefaultMaxRequestSize = 1 << 20

	DefaultAccessTokenTTL = 24 * time.Hour
	DefaultRequestTimeout = 5 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort = "8080"

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitLoginRequestsPerSecond  = 1
	RateLimitLoginBurst              = 5
	RateLimitSignupRequestsPerSecond = 0.5
	RateLimitSignupBurst             = 3
	RateLimitWriteRequestsPerSecond  = 5
	RateLimitWriteBurst              = 10
	RateLimitReadRequestsPerSecond   = 20
	RateLimitReadBurst               = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
