// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"same instant", 0, "just now"},
		{"future", -time.Hour, "just now"},
		{"seconds", 30 * time.Second, "just now"},
		{"one minute", 90 * time.Second, "1 minute ago"},
		{"minutes", 5 * time.Minute, "5 minutes ago"},
		{"almost an hour", 59 * time.Minute, "59 minutes ago"},
		{"one hour", time.Hour, "1 hour ago"},
		{"hours", 3 * time.Hour, "3 hours ago"},
		{"one day", 30 * time.Hour, "1 day ago"},
		{"days", 3 * 24 * time.Hour, "3 days ago"},
		{"six days", 6*24*time.Hour + 23*time.Hour, "6 days ago"},
		{"a week", 7 * 24 * time.Hour, "Mar 8, 2026"},
		{"months", 60 * 24 * time.Hour, "Jan 14, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}
