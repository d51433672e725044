// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfo(t *testing.T) {
	tests := []struct {
		name        string
		info        Info
		wantRelease string
		wantString  string
	}{
		{
			name:        "injected",
			info:        Info{Version: "v1.4.0", GitCommit: "abc1234", BuildTime: "2026-03-14T09:00:00Z"},
			wantRelease: "v1.4.0",
			wantString:  "ofolio v1.4.0 (commit: abc1234, built: 2026-03-14T09:00:00Z)",
		},
		{
			name:        "zero value",
			wantRelease: "dev",
			wantString:  "ofolio dev (commit: unknown, built: unknown)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Release(); got != tt.wantRelease {
				t.Errorf("Release() = %q, want %q", got, tt.wantRelease)
			}
			if got := tt.info.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}
