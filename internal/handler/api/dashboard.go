// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/olegiv/ofolio-go/internal/model"
	"github.com/olegiv/ofolio-go/internal/util"
)

// activitySourceLimit bounds each of the queries merged into recent activity.
const activitySourceLimit = 5

// DashboardStats handles GET /api/admin/dashboard-stats.
// Each counter is independent: a failing query is logged and reported as zero.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	WriteJSON(w, http.StatusOK, model.DashboardStats{
		TotalContacts:    countOrZero(ctx, "contacts", h.forms.CountContacts),
		TotalReviews:     countOrZero(ctx, "reviews", h.forms.CountReviews),
		TotalSubscribers: countOrZero(ctx, "subscriptions", h.forms.CountSubscriptions),
		TotalPortfolios:  countOrZero(ctx, "portfolio_items", h.content.CountPortfolioItems),
	})
}

func countOrZero(ctx context.Context, table string, count func(context.Context) (int64, error)) int64 {
	n, err := count(ctx)
	if err != nil {
		slog.Warn("dashboard count failed, reporting zero", "table", table, "error", err)
		return 0
	}
	return n
}

// RecentActivity handles GET /api/admin/recent-activity.
// Sources that fail are logged and left out; nothing is invented in their place.
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var items []model.Activity

	if contacts, err := h.forms.ListRecentContacts(ctx, activitySourceLimit); err != nil {
		slog.Warn("recent contacts unavailable", "error", err)
	} else {
		for _, c := range contacts {
			items = append(items, model.Activity{
				Type:      model.ActivityTypeContact,
				Message:   fmt.Sprintf("New contact from %s: %s", c.Name, c.Subject),
				Timestamp: c.CreatedAt,
			})
		}
	}

	if reviews, err := h.forms.ListRecentReviews(ctx, activitySourceLimit); err != nil {
		slog.Warn("recent reviews unavailable", "error", err)
	} else {
		for _, rv := range reviews {
			items = append(items, model.Activity{
				Type:      model.ActivityTypeReview,
				Message:   fmt.Sprintf("New %d-star review from %s", rv.Rating, rv.Name),
				Timestamp: rv.CreatedAt,
			})
		}
	}

	if subs, err := h.forms.ListRecentSubscriptions(ctx, activitySourceLimit); err != nil {
		slog.Warn("recent subscriptions unavailable", "error", err)
	} else {
		for _, s := range subs {
			items = append(items, model.Activity{
				Type:      model.ActivityTypeSubscription,
				Message:   "New subscriber: " + s.Email,
				Timestamp: s.CreatedAt,
			})
		}
	}

	WriteJSON(w, http.StatusOK, mergeActivity(items, h.now()))
}

// mergeActivity sorts newest first, caps the feed and fills in relative times.
func mergeActivity(items []model.Activity, now time.Time) []model.Activity {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > model.MaxRecentActivity {
		items = items[:model.MaxRecentActivity]
	}
	for i := range items {
		items[i].Time = util.TimeAgo(items[i].Timestamp, now)
	}
	if items == nil {
		items = []model.Activity{}
	}
	return items
}
