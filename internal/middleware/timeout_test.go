// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeout_FastHandlerPassesThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", "/api/admin/services/7")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":7}}`))
	})

	rr := executeRequest(Timeout(time.Second)(handler), http.MethodPost, "/api/admin/services")

	if rr.Code != http.StatusCreated {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if got := rr.Header().Get("Location"); got != "/api/admin/services/7" {
		t.Errorf("Location = %q", got)
	}
	if got := rr.Body.String(); got != `{"data":{"id":7}}` {
		t.Errorf("Body = %q", got)
	}
}

func TestTimeout_SlowHandlerGets503(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte("late"))
	})

	rr := executeRequest(Timeout(20*time.Millisecond)(handler), http.MethodGet, "/api/admin/export/contacts")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if got := decodeAPIError(t, rr).Error.Code; got != CodeTimeout {
		t.Errorf("code = %q, want %q", got, CodeTimeout)
	}
}

func TestTimeout_RepanicsOnRequestGoroutine(t *testing.T) {
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	defer func() {
		if p := recover(); p != "boom" {
			t.Errorf("recovered %v, want boom", p)
		}
	}()
	executeRequest(Timeout(time.Second)(handler), http.MethodGet, "/")
	t.Error("expected panic")
}

func TestDeadlineWriter_HoldsHeadersUntilCommit(t *testing.T) {
	rr := httptest.NewRecorder()
	dw := newDeadlineWriter(rr)

	dw.Header().Set("Content-Type", "text/csv")
	if rr.Header().Get("Content-Type") != "" {
		t.Fatal("headers leaked before commit")
	}

	dw.WriteHeader(http.StatusOK)
	dw.WriteHeader(http.StatusNotFound)

	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d (second WriteHeader ignored)", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", got)
	}
}

func TestDeadlineWriter_WriteImpliesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	dw := newDeadlineWriter(rr)

	n, err := dw.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestDeadlineWriter_Expire(t *testing.T) {
	t.Run("before commit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		dw := newDeadlineWriter(rr)

		if !dw.expire() {
			t.Fatal("expire() = false, want true when nothing was written")
		}
		if _, err := dw.Write([]byte("late")); !errors.Is(err, http.ErrHandlerTimeout) {
			t.Errorf("Write() error = %v, want ErrHandlerTimeout", err)
		}
		dw.WriteHeader(http.StatusTeapot)
		dw.Flush()
		if rr.Body.Len() != 0 || rr.Code == http.StatusTeapot {
			t.Errorf("writes after expiry reached the client: %d %q", rr.Code, rr.Body.String())
		}
	})

	t.Run("after commit", func(t *testing.T) {
		dw := newDeadlineWriter(httptest.NewRecorder())
		dw.WriteHeader(http.StatusOK)
		if dw.expire() {
			t.Error("expire() = true, want false once the response started")
		}
	})
}
