package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"rental-bff/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/sessions"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Server - REST API сервер BFF.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает роутер со всеми middleware и маршрутами.
func NewRouter(cfg ServerConfig, h *Handlers, auth *AuthMiddleware, visitors sessions.Store, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(VisitorMiddleware(visitors))
			r.Use(auth.OptionalAuth)

			r.Route("/currency", func(r chi.Router) {
				r.Get("/", h.GetCurrency)
				r.Put("/", h.SelectCurrency)
				r.Get("/rates", h.GetRates)
				r.Post("/rates/refresh", h.RefreshRates)
				r.Get("/convert", h.Convert)
			})

			r.Get("/preferences/theme", h.GetTheme)
			r.Put("/preferences/theme", h.SetTheme)

			r.Route("/search-draft", func(r chi.Router) {
				r.Get("/", h.GetSearchDraft)
				r.Put("/", h.SaveSearchDraft)
				r.Delete("/", h.ClearSearchDraft)
			})

			r.Route("/properties", func(r chi.Router) {
				r.Get("/", h.ListProperties)
				r.Get("/{propertyID}", h.GetProperty)
				r.Get("/{propertyID}/relevant", h.GetRelevantProperties)
			})
			r.Get("/hosts/{hostID}", h.GetHost)
			r.Get("/hosts/{hostID}/properties", h.GetHostProperties)
			r.Get("/events", h.ListEvents)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", h.Login)
				r.Post("/register", h.Register)
				r.Post("/logout", h.Logout)
				r.Get("/session", h.GetSession)
				r.Get("/otp", h.GetOTPState)
				r.Post("/otp/verify", h.VerifyOTP)
				r.Post("/otp/resend", h.ResendOTP)
				r.Post("/complete-registration", h.CompleteRegistration)
			})

			// избранное работает и для анонима (локально), sync - только с сессией
			r.Route("/wishlists", func(r chi.Router) {
				r.Get("/", h.ListWishlists)
				r.Post("/", h.CreateWishlist)
				r.Post("/toggle", h.ToggleWishlist)
				r.Get("/contains/{propertyID}", h.IsSaved)
				r.With(auth.RequireSession).Post("/sync", h.SyncWishlists)
				r.Delete("/{wishlistID}", h.DeleteWishlist)
				r.Post("/{wishlistID}/properties", h.AddToWishlist)
				r.Delete("/{wishlistID}/properties/{propertyID}", h.RemoveFromWishlist)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSession)

				r.Get("/profile", h.GetProfile)
				r.Put("/profile", h.UpdateProfile)

				r.Get("/bookings", h.ListBookings)
				r.Get("/bookings/{bookingID}", h.GetBooking)
				r.Post("/bookings", h.CreateBooking)
			})
		})
	})

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg ServerConfig, handler http.Handler, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
