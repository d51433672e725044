// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ofolio-go/internal/auth"
	"github.com/olegiv/ofolio-go/internal/cache"
	"github.com/olegiv/ofolio-go/internal/middleware"
	"github.com/olegiv/ofolio-go/internal/store"
	"github.com/olegiv/ofolio-go/internal/testutil"
)

const (
	testSecret        = "test-secret-key-that-is-long-enough"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse battery"
	testAdminName     = "Site Admin"
)

// testEnv bundles a handler with its databases, mail recorder and router.
type testEnv struct {
	h       *Handler
	content *store.Queries
	forms   *store.Queries
	mail    *testutil.RecordingProvider
	tokens  *auth.TokenIssuer
	cache   cache.Cache
	router  chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	content := testutil.TestContentDB(t)
	forms := testutil.TestFormsDB(t)
	mail, recorder := testutil.TestMailer(t)
	tokens := auth.NewTokenIssuer(testSecret)

	mem := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	h := NewHandler(Deps{
		Content: content,
		Forms:   forms,
		Tokens:  tokens,
		Mailer:  mail,
		Cache:   cache.NewPublic(mem, time.Minute),
		Version: "test",
	})

	r := chi.NewRouter()
	h.Mount(r, RouteOptions{})

	return &testEnv{
		h:       h,
		content: content,
		forms:   forms,
		mail:    recorder,
		tokens:  tokens,
		cache:   mem,
		router:  r,
	}
}

// seedAdmin creates the test admin account.
func (e *testEnv) seedAdmin(t *testing.T) store.AdminUser {
	t.Helper()
	user, _, err := store.SeedAdmin(context.Background(), e.content, store.AdminSeed{
		Email: testAdminEmail, Password: testAdminPassword, Name: testAdminName,
	})
	require.NoError(t, err)
	return user
}

// adminCookie returns a valid session cookie for a fresh admin.
func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	user := e.seedAdmin(t)
	token, err := e.tokens.Issue(user.ID, user.Email, user.Name)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.AdminCookieName, Value: token}
}

// serve runs req through the full router.
func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// admin runs req through the router with an admin cookie attached.
func (e *testEnv) admin(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req.AddCookie(e.adminCookie(t))
	return e.serve(req)
}

// requestWithURLParams attaches chi URL params to a request so handlers can
// be called directly.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest builds a request whose body is body marshaled as JSON.
// A string body is sent verbatim.
func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf *bytes.Reader
	switch b := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// unmarshalData decodes the data field of a wrapped response.
func unmarshalData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Data
}

// unmarshalList decodes a list response and checks meta.total against its length.
func unmarshalList[T any](t *testing.T, rec *httptest.ResponseRecorder) []T {
	t.Helper()
	var resp struct {
		Data []T  `json:"data"`
		Meta Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	require.NotNil(t, resp.Data, "list data must not be null")
	require.Equal(t, len(resp.Data), resp.Meta.Total)
	return resp.Data
}

// unmarshalError decodes an error response.
func unmarshalError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func unmarshalJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// withID formats "/base/<id>".
func withID(base string, id int64) string {
	return strings.TrimSuffix(base, "/") + "/" + strconv.FormatInt(id, 10)
}
