// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"time"

	"github.com/olegiv/ofolio-go/internal/model"
)

// AdminUser is a back-office account.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Service is a public service offering.
type Service struct {
	ID              int64                             `json:"id"`
	Slug            string                            `json:"slug"`
	Title           string                            `json:"title"`
	Subtitle        string                            `json:"subtitle"`
	Image           string                            `json:"image"`
	Description     string                            `json:"description"`
	LongDescription string                            `json:"long_description"`
	ProcessText     string                            `json:"process_text"`
	Pricing         model.JSONList[model.PricingPlan] `json:"pricing"`
	Features        model.JSONList[model.Feature]     `json:"features"`
	Testimonials    model.JSONList[model.Testimonial] `json:"testimonials"`
	FAQs            model.JSONList[model.FAQ]         `json:"faqs"`
	IsActive        bool                              `json:"is_active"`
	CreatedAt       time.Time                         `json:"created_at"`
	UpdatedAt       time.Time                         `json:"updated_at"`
}

// ServiceParams holds the mutable columns of a service.
type ServiceParams struct {
	Slug            string
	Title           string
	Subtitle        string
	Image           string
	Description     string
	LongDescription string
	ProcessText     string
	Pricing         model.JSONList[model.PricingPlan]
	Features        model.JSONList[model.Feature]
	Testimonials    model.JSONList[model.Testimonial]
	FAQs            model.JSONList[model.FAQ]
	IsActive        bool
}

// PortfolioItem is a showcased project.
type PortfolioItem struct {
	ID              int64                  `json:"id"`
	Images          model.JSONList[string] `json:"images"`
	Category        string                 `json:"category"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	LongDescription string                 `json:"long_description"`
	Client          string                 `json:"client"`
	ProjectDate     string                 `json:"date"`
	Services        model.JSONList[string] `json:"services"`
	Budget          string                 `json:"budget"`
	Likes           int64                  `json:"likes"`
	Link            string                 `json:"link"`
	Features        model.JSONList[string] `json:"features"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// PortfolioParams holds the mutable columns of a portfolio item.
// Likes is only changed through IncrementPortfolioLikes.
type PortfolioParams struct {
	Images          model.JSONList[string]
	Category        string
	Title           string
	Description     string
	LongDescription string
	Client          string
	ProjectDate     string
	Services        model.JSONList[string]
	Budget          string
	Link            string
	Features        model.JSONList[string]
}

// BlogPost is an article.
type BlogPost struct {
	ID              int64                  `json:"id"`
	Slug            string                 `json:"slug"`
	Title           string                 `json:"title"`
	Excerpt         string                 `json:"excerpt"`
	Content         string                 `json:"content"`
	Image           string                 `json:"image"`
	Category        string                 `json:"category"`
	Author          string                 `json:"author"`
	PostDate        string                 `json:"date"`
	ReadTime        string                 `json:"read_time"`
	Likes           int64                  `json:"likes"`
	Tags            model.JSONList[string] `json:"tags"`
	Featured        bool                   `json:"featured"`
	MetaDescription string                 `json:"meta_description"`
	Published       bool                   `json:"published"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// BlogPostParams holds the mutable columns of a blog post.
type BlogPostParams struct {
	Slug            string
	Title           string
	Excerpt         string
	Content         string
	Image           string
	Category        string
	Author          string
	PostDate        string
	ReadTime        string
	Tags            model.JSONList[string]
	Featured        bool
	MetaDescription string
	Published       bool
}

// BlogFilter narrows the public blog listing.
type BlogFilter struct {
	Category     string
	FeaturedOnly bool
}

// Review is a client review left on the site.
type Review struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContactParams holds the columns of a new contact submission.
type CreateContactParams struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// CreateOrderParams holds the columns of a new order submission.
type CreateOrderParams struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
	Price   string
	Service string
}

// CreateReviewParams holds the columns of a new review.
type CreateReviewParams struct {
	Name    string
	Email   string
	Rating  int
	Comment string
}
