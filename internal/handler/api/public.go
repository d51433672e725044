// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ofolio-go/internal/cache"
	"github.com/olegiv/ofolio-go/internal/store"
	"github.com/olegiv/ofolio-go/internal/util"
)

// LikesResponse is returned by the like endpoints.
type LikesResponse struct {
	Likes int64 `json:"likes"`
}

// writeCachedRead answers a public read through the cache. Missing rows are 404.
func writeCachedRead[T any](w http.ResponseWriter, r *http.Request, h *Handler, key, entityName string, load func(context.Context) (T, error)) {
	v, err := cache.Fetch(r.Context(), h.cache, key, load)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
			return
		}
		slog.Error("failed to load "+entityName, "key", key, "error", err)
		WriteInternalError(w, "Failed to load "+entityName)
		return
	}
	WriteSuccess(w, v, nil)
}

// PublicServices handles GET /api/services. Only active services are listed.
func (h *Handler) PublicServices(w http.ResponseWriter, r *http.Request) {
	writeCachedRead(w, r, h, "services", "services", h.content.ListActiveServices)
}

// PublicService handles GET /api/services/{slug}.
func (h *Handler) PublicService(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Service not found")
		return
	}
	writeCachedRead(w, r, h, "service:"+slug, "service", func(ctx context.Context) (store.Service, error) {
		return h.content.GetActiveServiceBySlug(ctx, slug)
	})
}

// PublicPortfolio handles GET /api/portfolio.
func (h *Handler) PublicPortfolio(w http.ResponseWriter, r *http.Request) {
	writeCachedRead(w, r, h, "portfolio", "portfolio items", h.content.ListPortfolioItems)
}

// PublicPortfolioItem handles GET /api/portfolio/{id}.
func (h *Handler) PublicPortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "portfolio item")
	if !ok {
		return
	}
	writeCachedRead(w, r, h, "portfolio:"+strconv.FormatInt(id, 10), "portfolio item", func(ctx context.Context) (store.PortfolioItem, error) {
		return h.content.GetPortfolioItem(ctx, id)
	})
}

// PublicBlog handles GET /api/blog with optional ?category= and ?featured=true.
func (h *Handler) PublicBlog(w http.ResponseWriter, r *http.Request) {
	filter := store.BlogFilter{
		Category:     strings.TrimSpace(r.URL.Query().Get("category")),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
	}
	key := "blog:" + strconv.FormatBool(filter.FeaturedOnly) + ":" + filter.Category
	writeCachedRead(w, r, h, key, "blog posts", func(ctx context.Context) ([]store.BlogPost, error) {
		return h.content.ListPublishedBlogPosts(ctx, filter)
	})
}

// PublicBlogPost handles GET /api/blog/{slug}. Drafts are not found.
func (h *Handler) PublicBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Blog post not found")
		return
	}
	writeCachedRead(w, r, h, "blog:post:"+slug, "blog post", func(ctx context.Context) (store.BlogPost, error) {
		return h.content.GetPublishedBlogPostBySlug(ctx, slug)
	})
}

// LikePortfolio handles POST /api/portfolio/{id}/like.
func (h *Handler) LikePortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "portfolio item")
	if !ok {
		return
	}
	likes, err := h.content.IncrementPortfolioLikes(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "portfolio item", "like", id)
		return
	}
	h.cache.Invalidate(r.Context())
	WriteSuccess(w, LikesResponse{Likes: likes}, nil)
}

// LikeBlogPost handles POST /api/blog/{slug}/like. Only published posts count.
func (h *Handler) LikeBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Blog post not found")
		return
	}
	likes, err := h.content.IncrementBlogPostLikes(r.Context(), slug)
	if err != nil {
		writeStoreError(w, err, "blog post", "like", 0)
		return
	}
	h.cache.Invalidate(r.Context())
	WriteSuccess(w, LikesResponse{Likes: likes}, nil)
}
