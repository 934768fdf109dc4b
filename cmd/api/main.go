package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/postboard/internal/auth/http"
	authservice "github.com/AlibekovAA/postboard/internal/auth/service"
	"github.com/AlibekovAA/postboard/internal/common/clock"
	"github.com/AlibekovAA/postboard/internal/common/config"
	commoncrypto "github.com/AlibekovAA/postboard/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/postboard/internal/common/http"
	"github.com/AlibekovAA/postboard/internal/common/jwtverify"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	srv "github.com/AlibekovAA/postboard/internal/common/server"
	posthttp "github.com/AlibekovAA/postboard/internal/post/http"
	postrepo "github.com/AlibekovAA/postboard/internal/post/repository"
	postservice "github.com/AlibekovAA/postboard/internal/post/service"
	userhttp "github.com/AlibekovAA/postboard/internal/user/http"
	userrepo "github.com/AlibekovAA/postboard/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	realClock := clock.NewRealClock()
	hasher := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	idGenerator := commoncrypto.NewUUIDGenerator()

	users := userrepo.NewMemoryRepository()
	posts := postrepo.NewMemoryRepository()

	tokenIssuer := authservice.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.AccessTokenTTL, realClock)
	authService := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        users,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Tokens:      tokenIssuer,
		Clock:       realClock,
		Log:         log,
	})
	postService := postservice.NewPostService(posts, idGenerator, realClock, log)

	authMW := jwtverify.Middleware(cfg.JWTSecret, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	authhttp.NewHandler(authService, cfg, log).Register(mux)
	userhttp.NewHandler(authService, cfg, log).Register(mux, authMW)
	posthttp.NewHandler(postService, authMW, cfg, log).Register(mux)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler("api", log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForRequest(r)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "api")
}
