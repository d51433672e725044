// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/ofolio-go/internal/model"
	"github.com/olegiv/ofolio-go/internal/store"
	"github.com/olegiv/ofolio-go/internal/util"
)

// wordsPerMinute is the reading speed used to estimate read_time.
const wordsPerMinute = 200

// BlogPostRequest is the body of blog post create and update requests.
type BlogPostRequest struct {
	Slug            string                 `json:"slug"`
	Title           string                 `json:"title"`
	Excerpt         string                 `json:"excerpt"`
	Content         string                 `json:"content"`
	Image           string                 `json:"image"`
	Category        string                 `json:"category"`
	Author          string                 `json:"author"`
	Date            string                 `json:"date"`
	ReadTime        string                 `json:"read_time"`
	Tags            model.JSONList[string] `json:"tags"`
	Featured        bool                   `json:"featured"`
	MetaDescription string                 `json:"meta_description"`
	Published       bool                   `json:"published"`
}

func (req BlogPostRequest) params(policy *bluemonday.Policy) (store.BlogPostParams, fieldErrors) {
	fe := fieldErrors{}
	fe.require("title", req.Title)

	slug := util.ResolveSlug(req.Slug, req.Title)
	if req.Title != "" && !util.IsValidSlug(slug) {
		fe["slug"] = "Slug must contain only lowercase letters, numbers and hyphens"
	}
	if len(fe) > 0 {
		return store.BlogPostParams{}, fe
	}

	content := policy.Sanitize(req.Content)
	readTime := strings.TrimSpace(req.ReadTime)
	if readTime == "" {
		readTime = estimateReadTime(content)
	}

	return store.BlogPostParams{
		Slug:            slug,
		Title:           strings.TrimSpace(req.Title),
		Excerpt:         req.Excerpt,
		Content:         content,
		Image:           req.Image,
		Category:        strings.TrimSpace(req.Category),
		Author:          req.Author,
		PostDate:        req.Date,
		ReadTime:        readTime,
		Tags:            req.Tags.OrEmpty(),
		Featured:        req.Featured,
		MetaDescription: req.MetaDescription,
		Published:       req.Published,
	}, nil
}

// textOnly strips every tag, leaving the words used for read time estimates.
var textOnly = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// estimateReadTime returns a label such as "4 min read".
func estimateReadTime(html string) string {
	words := len(strings.Fields(textOnly.Sanitize(html)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// ListBlogPosts handles GET /api/admin/blog. Drafts are included.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListBlogPosts(r.Context())
	if err != nil {
		slog.Error("failed to list blog posts", "error", err)
		WriteInternalError(w, "Failed to list blog posts")
		return
	}
	WriteList(w, posts)
}

// GetBlogPost handles GET /api/admin/blog/{id}.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "blog post", h.content.GetBlogPost)
	if !ok {
		return
	}
	WriteSuccess(w, post, nil)
}

// CreateBlogPost handles POST /api/admin/blog.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req BlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, fe := req.params(h.sanitizer)
	if fe != nil {
		WriteValidationError(w, fe)
		return
	}

	ctx := r.Context()
	if !checkSlugUnique(w, func() (bool, error) { return h.content.BlogSlugExists(ctx, params.Slug, 0) }) {
		return
	}

	post, err := h.content.CreateBlogPost(ctx, params)
	if err != nil {
		writeStoreError(w, err, "blog post", "create", 0)
		return
	}

	h.cache.Invalidate(ctx)
	slog.Info("blog post created", "id", post.ID, "slug", post.Slug, "published", post.Published)
	WriteCreated(w, post)
}

// UpdateBlogPost handles PUT /api/admin/blog/{id}.
func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "blog post")
	if !ok {
		return
	}

	var req BlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, fe := req.params(h.sanitizer)
	if fe != nil {
		WriteValidationError(w, fe)
		return
	}

	ctx := r.Context()
	if !checkSlugUnique(w, func() (bool, error) { return h.content.BlogSlugExists(ctx, params.Slug, id) }) {
		return
	}

	post, err := h.content.UpdateBlogPost(ctx, id, params)
	if err != nil {
		writeStoreError(w, err, "blog post", "update", id)
		return
	}

	h.cache.Invalidate(ctx)
	slog.Info("blog post updated", "id", id)
	WriteSuccess(w, post, nil)
}

// DeleteBlogPost handles DELETE /api/admin/blog/{id}.
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if handleDelete(w, r, "blog post", h.content.DeleteBlogPost) {
		h.cache.Invalidate(r.Context())
	}
}
