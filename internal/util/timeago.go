// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TimeAgoDateFormat is used for events older than a week.
const TimeAgoDateFormat = "Jan 2, 2006"

const day = 24 * time.Hour

var relTimeMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "just now", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: time.Minute},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: time.Hour},
	{D: day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day %s", DivBy: day},
	{D: 7 * day, Format: "%d days %s", DivBy: day},
}

// TimeAgo renders t relative to now: "just now", "N minute(s) ago",
// "N hour(s) ago", "N day(s) ago", or the date once a week has passed.
// Times in the future are treated as "just now".
func TimeAgo(t, now time.Time) string {
	if !t.Before(now) {
		return "just now"
	}
	if now.Sub(t) >= 7*day {
		return t.Format(TimeAgoDateFormat)
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", relTimeMagnitudes)
}
