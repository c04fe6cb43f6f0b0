package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/reseau-alumni/alumni-be/internal/api/handlers"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/config"
	"github.com/reseau-alumni/alumni-be/internal/services"
	"github.com/reseau-alumni/alumni-be/internal/storage"
	"github.com/reseau-alumni/alumni-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	hub *websocket.Hub,
	codec *auth.TokenCodec,
	mw *auth.Middleware,
	userService services.UserServiceProvider,
	alumniService services.AlumniServiceProvider,
	linkService services.LinkServiceProvider,
	resourceService services.ResourceServiceProvider,
	bookmarkService services.BookmarkServiceProvider,
	announcementService services.AnnouncementServiceProvider,
	store storage.Store,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, codec)
	userHandler := handlers.NewUserHandler(userService)
	alumniHandler := handlers.NewAlumniHandler(alumniService)
	linkHandler := handlers.NewLinkHandler(linkService)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	uploadHandler := handlers.NewUploadHandler(store, cfg.MaxUploadSize)
	wsHandler := handlers.NewWebSocketHandler(hub)

	loginLimiter := newIPRateLimiter(5)

	r.Route("/api", func(r chi.Router) {
		// Live announcements feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", authHandler.Login)
			r.With(mw.RequireAuth).Get("/me", authHandler.Me)
			r.With(mw.RequireAuth).Put("/password", authHandler.ChangePassword)
		})

		// Account management is admin-only; self-registration is disabled.
		r.Route("/users", func(r chi.Router) {
			r.Use(mw.RequireAdmin)
			r.Get("/", userHandler.GetAll)
			r.Post("/", userHandler.Create)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/alumni", func(r chi.Router) {
			r.With(mw.OptionalAuth).Get("/", alumniHandler.GetAll)
			r.With(mw.RequireAdmin).Post("/", alumniHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.With(mw.OptionalAuth).Get("/", alumniHandler.Get)
				r.With(mw.RequireAuth).Put("/", alumniHandler.Update)
				r.With(mw.RequireAuth).Patch("/", alumniHandler.Patch)
				r.With(mw.RequireAdmin).Delete("/", alumniHandler.Delete)
			})
		})

		r.Route("/links", func(r chi.Router) {
			r.Get("/", linkHandler.GetAll)
			r.With(mw.RequireAuth).Post("/", linkHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", linkHandler.Get)
				r.With(mw.RequireAuth).Put("/", linkHandler.Update)
				r.With(mw.RequireAuth).Delete("/", linkHandler.Delete)
			})
		})

		// Historical route name, kept for frontend compatibility.
		r.Route("/ressources", func(r chi.Router) {
			r.Get("/", resourceHandler.GetAll)
			r.With(mw.RequireAuth).Post("/", resourceHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", resourceHandler.Get)
				r.With(mw.RequireAuth).Put("/", resourceHandler.Update)
				r.With(mw.RequireAuth).Delete("/", resourceHandler.Delete)
			})
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/count/{itemId}", bookmarkHandler.Count)
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth)
				r.Post("/", bookmarkHandler.Create)
				r.Delete("/{itemId}", bookmarkHandler.Delete)
				r.Get("/user/{userId}", bookmarkHandler.ListForUser)
				r.Get("/check/{itemId}", bookmarkHandler.Check)
			})
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", announcementHandler.GetRecent)
			r.With(mw.RequireAdmin).Post("/", announcementHandler.Create)
			r.With(mw.RequireAdmin).Delete("/{id}", announcementHandler.Delete)
		})

		r.With(mw.RequireAuth).Post("/upload", uploadHandler.Upload)
		r.With(mw.RequireAdmin).Delete("/upload/*", uploadHandler.Delete)
	})

	// Locally stored uploads are served straight off disk.
	if cfg.S3Bucket == "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
