// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ofolio-go/internal/middleware"
)

// Route paths.
const (
	RouteHealth     = "/health"
	RouteAPI        = "/api"
	RouteAdmin      = "/admin"
	RouteSuffixID   = "/{id}"
	RouteSuffixSlug = "/{slug}"
	RouteSuffixLike = "/like"
)

// RouteOptions carries the middleware that differs between production and tests.
type RouteOptions struct {
	// PublicLimit wraps the public read and form routes. Nil disables it.
	PublicLimit func(http.Handler) http.Handler

	// CSRF wraps the admin routes. Nil disables it.
	CSRF func(http.Handler) http.Handler
}

// crudHandlers defines the standard CRUD handler methods.
// Nil handlers are not registered.
type crudHandlers struct {
	List   http.HandlerFunc
	Get    http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, POST /, GET /{id}, PUT /{id}, DELETE /{id}
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	baseID := base + RouteSuffixID
	if h.List != nil {
		r.Get(base, h.List)
	}
	if h.Create != nil {
		r.Post(base, h.Create)
	}
	if h.Get != nil {
		r.Get(baseID, h.Get)
	}
	if h.Update != nil {
		r.Put(baseID, h.Update)
	}
	if h.Delete != nil {
		r.Delete(baseID, h.Delete)
	}
}

// Mount registers the health, public and admin routes on r.
func (h *Handler) Mount(r chi.Router, opts RouteOptions) {
	r.NotFound(middleware.StatusHandler(http.StatusNotFound))
	r.MethodNotAllowed(middleware.StatusHandler(http.StatusMethodNotAllowed))

	r.Get(RouteHealth, h.Health)
	r.Get(RouteHealth+"/live", h.Liveness)

	r.Route(RouteAPI, func(r chi.Router) {
		// Public site: cached reads, likes and forms
		r.Group(func(r chi.Router) {
			if opts.PublicLimit != nil {
				r.Use(opts.PublicLimit)
			}
			r.Get("/services", h.PublicServices)
			r.Get("/services"+RouteSuffixSlug, h.PublicService)
			r.Get("/portfolio", h.PublicPortfolio)
			r.Get("/portfolio"+RouteSuffixID, h.PublicPortfolioItem)
			r.Post("/portfolio"+RouteSuffixID+RouteSuffixLike, h.LikePortfolio)
			r.Get("/blog", h.PublicBlog)
			r.Get("/blog"+RouteSuffixSlug, h.PublicBlogPost)
			r.Post("/blog"+RouteSuffixSlug+RouteSuffixLike, h.LikeBlogPost)
			r.Post("/contact", h.SubmitContact)
			r.Post("/reviews", h.SubmitReview)
		})

		r.Route(RouteAdmin, func(r chi.Router) {
			r.Use(middleware.NoStore)
			if opts.CSRF != nil {
				r.Use(opts.CSRF)
			}

			r.Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(h.tokens))

				r.Post("/logout", h.Logout)
				r.Get("/verify", h.Verify)
				r.Get("/dashboard-stats", h.DashboardStats)
				r.Get("/recent-activity", h.RecentActivity)
				r.Get("/export/{kind}", h.Export)

				registerCRUD(r, "/services", crudHandlers{
					List: h.ListServices, Get: h.GetService, Create: h.CreateService,
					Update: h.UpdateService, Delete: h.DeleteService,
				})
				registerCRUD(r, "/portfolio", crudHandlers{
					List: h.ListPortfolio, Get: h.GetPortfolio, Create: h.CreatePortfolio,
					Update: h.UpdatePortfolio, Delete: h.DeletePortfolio,
				})
				registerCRUD(r, "/blog", crudHandlers{
					List: h.ListBlogPosts, Get: h.GetBlogPost, Create: h.CreateBlogPost,
					Update: h.UpdateBlogPost, Delete: h.DeleteBlogPost,
				})
				registerCRUD(r, "/contacts", crudHandlers{
					List: h.ListContacts, Get: h.GetContact, Delete: h.DeleteContact,
				})
				registerCRUD(r, "/orders", crudHandlers{
					List: h.ListOrders, Get: h.GetOrder, Delete: h.DeleteOrder,
				})
				registerCRUD(r, "/subscriptions", crudHandlers{
					List: h.ListSubscriptions, Get: h.GetSubscription, Delete: h.DeleteSubscription,
				})
				registerCRUD(r, "/reviews", crudHandlers{
					List: h.ListReviews, Get: h.GetReview, Delete: h.DeleteReview,
				})
			})
		})
	})
}
