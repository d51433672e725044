// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Activity types shown in the dashboard feed.
const (
	ActivityTypeContact      = "contact"
	ActivityTypeReview       = "review"
	ActivityTypeSubscription = "subscription"
)

// MaxRecentActivity caps the merged activity feed.
const MaxRecentActivity = 10

// Activity is one entry of the dashboard activity feed.
type Activity struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Time      string    `json:"time"`
}

// DashboardStats holds the dashboard counters. A counter whose query failed is zero.
type DashboardStats struct {
	TotalContacts    int64 `json:"totalContacts"`
	TotalReviews     int64 `json:"totalReviews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalPortfolios  int64 `json:"totalPortfolios"`
}
