// Package server provides the HTTP server for the OldNotice API.
//
// Routes are grouped into the unprotected system endpoints, the public notice
// endpoints that a content site calls while rendering pages, and the admin
// endpoints that manage settings and per-item opt-outs behind a bearer token.
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/middleware"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Accept, Authorization, Content-Type, X-Request-ID"
	corsMaxAge       = "300"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check, version and route documentation (unprotected)
// - Notice rendering and the notice stylesheet (public, rate limited)
// - Settings, preview and per-item opt-out management (admin token required)
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	allowedOrigins := s.Config.CORS.AllowedOrigins
	log.Info().Strs("allowed_origins", allowedOrigins).Msg("Using CORS allowed origins")

	r.Use(corsMiddleware(allowedOrigins, s.Config.CORS.AllowCredentials))

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogging())
	}

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			if err := s.Db.HealthCheck(r.Context()); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.ServiceUnavailable(w, constants.MsgServiceUnhealthy)
				return
			}

			utils.JSON(w, http.StatusOK, map[string]any{
				"status":   "healthy",
				"version":  s.Config.App.Version,
				"database": s.Db.Stats(),
			})
		})

		r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"name":        s.Config.App.Name,
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})

		r.Get("/api/routes", s.GetAPIRoutes)
	})

	r.Route(constants.APIBasePath, func(r chi.Router) {
		// Public notice endpoints
		r.Route("/notices", func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiter, constants.RateCategoryPublic, s.retryAfter()))

			r.Post("/render", s.Handlers.NoticeHandler.Render)
			r.Get("/stylesheet", s.Handlers.NoticeHandler.Stylesheet)
		})

		// Admin endpoints (all protected)
		r.Route("/admin", func(r chi.Router) {
			r.Use(chimiddleware.NoCache)
			r.Use(middleware.JWTAuth(s.authProviders.JWTService))

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", s.Handlers.SettingsHandler.GetSettings)
				r.Put("/", s.Handlers.SettingsHandler.UpdateSettings)
				r.Delete("/", s.Handlers.SettingsHandler.ResetSettings)

				r.Get("/preview", s.Handlers.SettingsHandler.GetPreview)
				r.Post("/preview", s.Handlers.SettingsHandler.PreviewDraft)
			})

			r.Route("/items/{"+constants.ParamItemID+"}/disable", func(r chi.Router) {
				r.Get("/", s.Handlers.SettingsHandler.GetItemStatus)
				r.Put("/", s.Handlers.SettingsHandler.DisableItem)
				r.Delete("/", s.Handlers.SettingsHandler.EnableItem)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	s.router = r
}

// GetRouter returns the router for the server.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// retryAfter is the time one token takes to refill at the configured rate.
func (s *Server) retryAfter() time.Duration {
	if s.Config.Server.RateLimitRPS <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / s.Config.Server.RateLimitRPS)
}

// corsMiddleware creates a CORS middleware for the given allowed origins.
// A "*" entry allows any origin. Preflight requests from an allowed origin are
// answered directly with 204 No Content.
func corsMiddleware(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" || !originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// Handle OPTIONS preflight requests
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			utils.NoContent(w)
		})
	}
}

// originAllowed reports whether origin matches one of the allowed origins.
func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowed := range allowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// GetAPIRoutes returns documentation about all API routes.
// Each entry lists the method and path, a description, whether an admin token
// is required and an example request body where one is expected.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	routes := map[string]any{}

	routes["system"] = map[string]any{
		"GET /health": map[string]any{
			"description": "Check service and database health",
			"auth":        false,
		},
		"GET /version": map[string]any{
			"description": "Report the application name, version and environment",
			"auth":        false,
		},
		"GET /api/routes": map[string]any{
			"description": "This route documentation",
			"auth":        false,
		},
	}

	routes["notices"] = map[string]any{
		"POST " + constants.NoticeRenderPath: map[string]any{
			"description": "Decide whether an item shows the old content notice and render it",
			"auth":        false,
			"headers": map[string]string{
				constants.HeaderContentType: constants.ContentTypeJSON,
			},
			"body": map[string]any{
				"item": map[string]any{
					"id":           42,
					"post_type":    "post",
					"published_at": "2022-01-10T09:00:00Z",
					"modified_at":  "2023-05-01T12:00:00Z",
					"disabled":     false,
					"category_ids": []int{3},
					"terms": map[string]any{
						"category": []map[string]any{{"id": 3, "name": "Politics", "url": "https://example.test/politics"}},
					},
				},
				"content": "string - Optional item body to insert the notice into",
			},
			"response": map[string]any{
				"success": true,
				"data": map[string]any{
					"show":     true,
					"reason":   "eligible",
					"position": "before",
					"html":     "<div class=\"opn-notice\" role=\"note\" aria-label=\"Old article notice\">...</div>",
				},
				"meta": map[string]any{"reason": "eligible"},
			},
		},
		"GET " + constants.NoticeStylesheetPath: map[string]any{
			"description": "Stylesheet for the notice box built from the current settings",
			"auth":        false,
			"response":    "text/css",
		},
	}

	routes["admin"] = map[string]any{
		"GET " + constants.AdminSettingsPath: map[string]any{
			"description": "Get the resolved settings",
			"auth":        true,
		},
		"PUT " + constants.AdminSettingsPath: map[string]any{
			"description": "Merge the given fields into the settings, then sanitize and resolve them",
			"auth":        true,
			"body": map[string]any{
				"threshold_value": 2,
				"threshold_unit":  "years",
				"message":         "This article is {time_ago} old.",
			},
		},
		"DELETE " + constants.AdminSettingsPath: map[string]any{
			"description": "Reset the settings to their defaults",
			"auth":        true,
		},
		"GET " + constants.AdminPreviewPath: map[string]any{
			"description": "Preview the notice using the stored settings and sample values",
			"auth":        true,
		},
		"POST " + constants.AdminPreviewPath: map[string]any{
			"description": "Preview unsaved settings without storing them",
			"auth":        true,
		},
		"GET " + constants.AdminItemDisablePath: map[string]any{
			"description": "Report whether the notice is disabled for one item",
			"auth":        true,
		},
		"PUT " + constants.AdminItemDisablePath: map[string]any{
			"description": "Disable the notice for one item",
			"auth":        true,
		},
		"DELETE " + constants.AdminItemDisablePath: map[string]any{
			"description": "Enable the notice for one item again",
			"auth":        true,
		},
	}

	utils.JSON(w, http.StatusOK, routes)
}
