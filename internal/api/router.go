package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/planora/planora-api/internal/api/handler"
	customMiddleware "github.com/planora/planora-api/internal/api/middleware"
	"github.com/planora/planora-api/internal/config"
	"github.com/planora/planora-api/internal/repository/postgres"
	"github.com/planora/planora-api/internal/repository/redis"
	"github.com/planora/planora-api/internal/security"
	"github.com/planora/planora-api/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	tokenHasher := security.NewBcryptHasher(cfg.Invitation.BcryptCost)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Redis-backed components
	apiLimiter := redis.NewRateLimiter(redisClient, "ratelimit:api:",
		cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	acceptLimiter := redis.NewRateLimiter(redisClient, "ratelimit:accept:",
		cfg.RateLimit.AcceptPerMinute, 0)
	memberCache := redis.NewMemberCache(redisClient)

	// Services
	audit := service.NewAuditTrail(auditRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	workspaceService := service.NewWorkspaceService(workspaceRepo, membershipRepo, auditRepo)
	lifecycleService := service.NewLifecycleService(workspaceRepo, audit)
	membershipService := service.NewMembershipService(workspaceRepo, membershipRepo, audit, memberCache)
	invitationService := service.NewInvitationService(
		workspaceRepo, invitationRepo, membershipService, audit, tokenHasher, cfg.Invitation.TTL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, lifecycleService)
	memberHandler := handler.NewMemberHandler(membershipService)
	invitationHandler := handler.NewInvitationHandler(invitationService, memberHandler)

	// Middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(apiLimiter)
	acceptRateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(acceptLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			// Token redemption: not workspace-scoped, extra brute-force
			// protection on top of the per-user limit
			r.With(acceptRateLimitMiddleware.LimitByIP).
				Post("/invitations/accept", invitationHandler.Accept)

			// Workspace routes
			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", workspaceHandler.List)
				r.Post("/", workspaceHandler.Create)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.Use(customMiddleware.WorkspaceContext)

					r.Get("/", workspaceHandler.Get)
					r.Patch("/", workspaceHandler.Update)
					r.Delete("/", workspaceHandler.Delete)
					r.Post("/archive", workspaceHandler.Archive)
					r.Post("/restore", workspaceHandler.Restore)
					r.Get("/audit", workspaceHandler.AuditLog)

					r.Route("/members", func(r chi.Router) {
						r.Get("/", memberHandler.List)
						r.Post("/", memberHandler.Add)
						r.Delete("/{userID}", memberHandler.Remove)
					})

					r.Route("/invitations", func(r chi.Router) {
						r.Get("/", invitationHandler.List)
						r.Post("/", invitationHandler.Create)
					})
				})
			})
		})
	})

	return r
}
