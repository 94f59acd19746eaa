package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/LuiFig19/TaskChrono-sub001/internal/config"
	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/handlers"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
	"github.com/LuiFig19/TaskChrono-sub001/internal/services"
)

func New(cfg *config.Config, queries *db.Queries, registry *realtime.Registry) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewRealIPMiddleware(cfg.TrustedProxies).Handler)
	r.Use(middleware.RequestContextMiddleware)
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// Services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.TokenDuration)
	inviteKeyService := services.NewInviteKeyService(queries)

	// Handlers
	authHandler := handlers.NewAuthHandler(queries, authService)
	orgHandler := handlers.NewOrgHandler(queries, inviteKeyService, registry)
	channelHandler := handlers.NewChannelHandler(queries)
	messageHandler := handlers.NewMessageHandler(queries, registry, cfg.BacklogLimit)
	timerHandler := handlers.NewTimerHandler(queries, registry)
	taskHandler := handlers.NewTaskHandler(queries, registry)
	activityHandler := handlers.NewActivityHandler(queries, cfg.BacklogLimit)
	streamHandler := handlers.NewStreamHandler(queries, registry, cfg)
	sentryTunnelHandler := handlers.NewSentryTunnelHandler(cfg)

	// Rate limiter for credential endpoints
	authRateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	auth := middleware.AuthMiddleware(authService)

	// Routes
	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Browser Sentry envelopes are relayed through the backend so the
		// frontend never needs the DSN
		r.Post("/sentry-tunnel", sentryTunnelHandler.Tunnel)

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.With(authRateLimiter.Middleware).Post("/register", authHandler.Register)
			r.With(authRateLimiter.Middleware).Post("/login", authHandler.Login)
			r.With(auth).Get("/me", authHandler.Me)
		})

		// Organizations and everything scoped under one
		r.Route("/orgs", func(r chi.Router) {
			r.Use(auth)
			r.Use(middleware.UpdateRequestContextMiddleware)

			r.Post("/", orgHandler.Create)
			r.Post("/join", orgHandler.Join)
			r.Get("/", orgHandler.ListMine)

			r.Route("/{orgId}", func(r chi.Router) {
				r.Get("/", orgHandler.Get)
				r.Get("/members", orgHandler.ListMembers)

				r.Route("/channels", func(r chi.Router) {
					r.Get("/", channelHandler.List)
					r.Post("/", channelHandler.Create)

					r.Route("/{channelId}", func(r chi.Router) {
						r.Get("/messages", messageHandler.List)
						r.Post("/messages", messageHandler.Send)
						r.Delete("/messages/{messageId}", messageHandler.Delete)
						r.Post("/messages/{messageId}/like", messageHandler.Like)
						r.Get("/stream", streamHandler.Chat)
					})
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Get("/", taskHandler.List)
					r.Post("/", taskHandler.Create)
					r.Put("/{taskId}/status", taskHandler.UpdateStatus)
					r.Delete("/{taskId}", taskHandler.Delete)
				})
			})
		})

		// Timers are per-user, not per-organization
		r.Route("/timers", func(r chi.Router) {
			r.Use(auth)
			r.Use(middleware.UpdateRequestContextMiddleware)

			r.Post("/", timerHandler.Start)
			r.Get("/", timerHandler.ListRunning)
			r.Put("/{timerId}/stop", timerHandler.Stop)
			r.Put("/{timerId}/finalize", timerHandler.Finalize)
			r.Get("/stream", streamHandler.Timer)
		})

		// Global activity feed
		r.Route("/activity", func(r chi.Router) {
			r.Use(auth)
			r.Use(middleware.UpdateRequestContextMiddleware)

			r.Get("/", activityHandler.List)
			r.Get("/stream", streamHandler.Activity)
		})
	})

	return r
}
