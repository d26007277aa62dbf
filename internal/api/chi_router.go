// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package api serves the CineMatch page, its assets, the WebSocket and the
// REST fallback for UI sessions, using the chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	// registers the session API description served under /swagger
	_ "github.com/tomtom215/cinematch/internal/api/apidocs"
	"github.com/tomtom215/cinematch/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Setup builds the HTTP handler with every route.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)

	// ========================
	// Page and Assets
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(PageSecurityHeaders())
		r.Use(chimiddleware.Compress(5, "text/html", "text/css", "text/javascript"))

		r.Get("/", h.Page)
		r.Handle("/static/*", h.Static())
		r.Get("/sw.js", h.ServiceWorker)
	})

	// ========================
	// WebSocket
	// ========================
	r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/ws", h.WebSocket)

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// ========================
	// UI Session Endpoints
	// ========================
	r.Route("/api/v1/ui/sessions", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.With(router.chiMiddleware.RateLimitSessions()).Post("/", h.CreateSession)
		r.Post("/{id}/events", h.DispatchEvent)
		r.Get("/{id}/patches", h.PendingPatches)
		r.Delete("/{id}", h.CloseSession)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.With(router.chiMiddleware.RateLimit()).Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("not found")
	})
	return r
}
