// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "errors"

// PricingPlan is one pricing tier shown on a service page.
type PricingPlan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Popular     bool     `json:"popular,omitempty"`
}

// Validate implements Validator.
func (p PricingPlan) Validate() error {
	if p.Name == "" {
		return errors.New("pricing plan name is required")
	}
	if p.Price == "" {
		return errors.New("pricing plan price is required")
	}
	return nil
}

// Feature is a highlighted capability of a service.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Validate implements Validator.
func (f Feature) Validate() error {
	if f.Title == "" {
		return errors.New("feature title is required")
	}
	return nil
}

// Testimonial is a client quote attached to a service.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
	Rating  int    `json:"rating,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Validate implements Validator.
func (t Testimonial) Validate() error {
	if t.Name == "" || t.Content == "" {
		return errors.New("testimonial name and content are required")
	}
	if t.Rating < 0 || t.Rating > 5 {
		return errors.New("testimonial rating must be between 0 and 5")
	}
	return nil
}

// FAQ is a question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate implements Validator.
func (f FAQ) Validate() error {
	if f.Question == "" || f.Answer == "" {
		return errors.New("faq question and answer are required")
	}
	return nil
}
