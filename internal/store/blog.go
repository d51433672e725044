// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
)

const blogColumns = `id, slug, title, excerpt, content, image, category, author, post_date, read_time,
	likes, tags, featured, meta_description, published, created_at, updated_at`

func scanBlogPost(row scanner) (BlogPost, error) {
	var b BlogPost
	err := row.Scan(
		&b.ID, &b.Slug, &b.Title, &b.Excerpt, &b.Content, &b.Image, &b.Category,
		&b.Author, &b.PostDate, &b.ReadTime, &b.Likes, &b.Tags, &b.Featured,
		&b.MetaDescription, &b.Published, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// ListBlogPosts returns every post including drafts, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	rows, err := q.db.query(ctx, `SELECT `+blogColumns+` FROM blog_posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBlogPost)
}

// ListPublishedBlogPosts returns published posts matching filter, newest first.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context, filter BlogFilter) ([]BlogPost, error) {
	where := []string{"published = ?"}
	args := []any{true}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.FeaturedOnly {
		where = append(where, "featured = ?")
		args = append(args, true)
	}

	rows, err := q.db.query(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE `+
		strings.Join(where, " AND ")+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBlogPost)
}

// GetBlogPost returns the post with id or sql.ErrNoRows.
func (q *Queries) GetBlogPost(ctx context.Context, id int64) (BlogPost, error) {
	return scanBlogPost(q.db.queryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = ?`, id))
}

// GetPublishedBlogPostBySlug returns a published post by slug or sql.ErrNoRows.
func (q *Queries) GetPublishedBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.queryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = ? AND published = ?`, slug, true))
}

// BlogSlugExists reports whether slug is taken by a post other than excludeID.
func (q *Queries) BlogSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return q.exists(ctx, `SELECT 1 FROM blog_posts WHERE slug = ? AND id <> ?`, slug, excludeID)
}

// CreateBlogPost inserts a post with zero likes and returns the stored row.
func (q *Queries) CreateBlogPost(ctx context.Context, arg BlogPostParams) (BlogPost, error) {
	ts := now()
	id, err := q.db.insert(ctx, `INSERT INTO blog_posts (slug, title, excerpt, content, image, category,
		author, post_date, read_time, likes, tags, featured, meta_description, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?)`,
		arg.Slug, arg.Title, arg.Excerpt, arg.Content, arg.Image, arg.Category, arg.Author,
		arg.PostDate, arg.ReadTime, arg.Tags, arg.Featured, arg.MetaDescription, arg.Published, ts, ts,
	)
	if err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPost(ctx, id)
}

// UpdateBlogPost replaces the mutable columns of a post and bumps updated_at.
// It returns sql.ErrNoRows when id does not exist.
func (q *Queries) UpdateBlogPost(ctx context.Context, id int64, arg BlogPostParams) (BlogPost, error) {
	err := q.db.execAffecting(ctx, `UPDATE blog_posts SET slug = ?, title = ?, excerpt = ?, content = ?,
		image = ?, category = ?, author = ?, post_date = ?, read_time = ?, tags = ?, featured = ?,
		meta_description = ?, published = ?, updated_at = ? WHERE id = ?`,
		arg.Slug, arg.Title, arg.Excerpt, arg.Content, arg.Image, arg.Category, arg.Author,
		arg.PostDate, arg.ReadTime, arg.Tags, arg.Featured, arg.MetaDescription, arg.Published, now(), id,
	)
	if err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPost(ctx, id)
}

// DeleteBlogPost removes a post. It returns sql.ErrNoRows when id does not exist.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	return q.db.execAffecting(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
}

// IncrementBlogPostLikes adds one like to a published post and returns the new total.
func (q *Queries) IncrementBlogPostLikes(ctx context.Context, slug string) (int64, error) {
	if err := q.db.execAffecting(ctx, `UPDATE blog_posts SET likes = likes + 1 WHERE slug = ? AND published = ?`, slug, true); err != nil {
		return 0, err
	}
	var likes int64
	err := q.db.queryRow(ctx, `SELECT likes FROM blog_posts WHERE slug = ?`, slug).Scan(&likes)
	return likes, err
}
