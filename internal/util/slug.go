// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides URL slug generation and validation plus coarse
// relative time formatting for the admin activity feed.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds generated slugs and the slugs accepted from admins.
const MaxSlugLength = 200

// slugPattern is one or more [a-z0-9] runs joined by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// stripMarks drops combining accents so "é" becomes "e" before the
// transliteration step sees it.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a service or post title into its URL form. Non-Latin
// scripts are transliterated, so "Привет мир" gives "privet-mir".
func Slugify(title string) string {
	ascii, _, _ := transform.String(stripMarks, title)
	ascii = strings.ToLower(unidecode.Unidecode(ascii))

	var b strings.Builder
	b.Grow(len(ascii))
	pendingHyphen := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// ResolveSlug returns the admin-supplied slug when present and otherwise
// derives one from title.
func ResolveSlug(explicit, title string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	return Slugify(title)
}

// IsValidSlug reports whether s may be stored or looked up as a slug.
func IsValidSlug(s string) bool {
	return len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}
