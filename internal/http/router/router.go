package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/propmart/catalog-backend/internal/health"
	"github.com/propmart/catalog-backend/internal/http/handler"
	"github.com/propmart/catalog-backend/internal/http/middleware"
	"github.com/propmart/catalog-backend/internal/http/response"
	"github.com/propmart/catalog-backend/internal/security"
)

type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	PropertyHandler *handler.PropertyHandler
	JWTManager      *security.JWTManager
	CORSOrigins     []string
	APIRateLimiter  func(http.Handler) http.Handler
	AuthRateLimiter func(http.Handler) http.Handler
	Readiness       *health.ProbeRunner
	EnableOTelHTTP  bool
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	apiLimiter := dep.APIRateLimiter
	if apiLimiter == nil {
		apiLimiter = middleware.NewRateLimiter(middleware.NewLocalFixedWindowLimiter(), 120, time.Minute, middleware.FailOpen, "api").Middleware()
	}
	authLimiter := dep.AuthRateLimiter
	if authLimiter == nil {
		authLimiter = middleware.NewRateLimiter(middleware.NewLocalFixedWindowLimiter(), 30, time.Minute, middleware.FailClosed, "auth").Middleware()
	}
	r.Use(apiLimiter)

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if dep.Readiness == nil {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": []any{}})
			return
		}
		ready, results := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "dependencies are not ready", map[string]any{"checks": results})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(authLimiter).Post("/register", dep.AuthHandler.Register)
			r.With(authLimiter).Post("/login", dep.AuthHandler.Login)
		})

		// Everything past this point is scoped to the authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(dep.JWTManager))

			r.Get("/search", dep.ProductHandler.Search)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", dep.ProductHandler.Search)
				r.Post("/", dep.ProductHandler.Create)
				r.Get("/{id}", dep.ProductHandler.Get)
				r.Put("/{id}", dep.ProductHandler.Update)
				r.Delete("/{id}", dep.ProductHandler.Delete)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", dep.CartHandler.View)
				r.Post("/", dep.CartHandler.Add)
				r.Put("/", dep.CartHandler.UpdateQuantity)
				r.Delete("/", dep.CartHandler.Remove)
			})

			r.Route("/todo", func(r chi.Router) {
				r.Get("/", dep.PropertyHandler.List)
				r.Post("/", dep.PropertyHandler.Create)
				r.Get("/{id}", dep.PropertyHandler.Get)
				r.Put("/{id}", dep.PropertyHandler.Update)
				r.Delete("/{id}", dep.PropertyHandler.Delete)
			})
			r.Get("/today", dep.PropertyHandler.DueToday)
			r.Get("/next7days", dep.PropertyHandler.DueNext7Days)
		})
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}
