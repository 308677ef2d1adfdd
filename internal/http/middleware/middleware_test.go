package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/platform/ctxutil"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type stubVerifier struct {
	userID uuid.UUID
	err    error
}

func (s stubVerifier) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token != "good" {
		return nil, errors.New("token rejected")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: s.userID}), nil
}

func serveAuth(t *testing.T, v stubVerifier, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	am := NewAuthMiddleware(logger.Nop(), v)
	r.GET("/me", am.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()).String())
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	setup(req)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	user := uuid.New()

	cases := []struct {
		name   string
		v      stubVerifier
		setup  func(*http.Request)
		status int
		code   string
	}{
		{"bearer header", stubVerifier{userID: user}, func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK, ""},
		{"query token", stubVerifier{userID: user}, func(r *http.Request) { r.URL.RawQuery = "token=good" }, http.StatusOK, ""},
		{"missing", stubVerifier{userID: user}, func(*http.Request) {}, http.StatusUnauthorized, "unauthorized"},
		{"rejected", stubVerifier{userID: user}, func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, http.StatusUnauthorized, "unauthorized"},
		{"no subject", stubVerifier{userID: uuid.Nil}, func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusForbidden, "forbidden"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveAuth(t, tc.v, tc.setup)
			if rec.Code != tc.status {
				t.Fatalf("status: want=%d got=%d body=%s", tc.status, rec.Code, rec.Body.String())
			}
			if tc.status == http.StatusOK {
				if rec.Body.String() != user.String() {
					t.Fatalf("user id: want=%s got=%s", user, rec.Body.String())
				}
				return
			}
			var env response.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.code || env.Error.Message == "" {
				t.Fatalf("envelope: %+v", env)
			}
		})
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(0.001, 2).Limit())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	for i, want := range []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests} {
		if got := hit("10.0.0.1"); got != want {
			t.Fatalf("request %d: want=%d got=%d", i, want, got)
		}
	}
	if got := hit("10.0.0.2"); got != http.StatusNoContent {
		t.Fatalf("second client should have its own bucket, got %d", got)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(0, 0).Limit())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d limited with rate disabled", i)
		}
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen == nil || seen.RequestID != "req-1" || seen.TraceID == "" {
		t.Fatalf("trace data: %+v", seen)
	}
	if rec.Header().Get("X-Request-Id") != "req-1" || rec.Header().Get("X-Trace-Id") != seen.TraceID {
		t.Fatalf("headers: %v", rec.Header())
	}
}

func TestSanitizeID(t *testing.T) {
	cases := map[string]string{
		" abc-123_x.y ":          "abc-123_x.y",
		"":                       "",
		"has space":              "",
		"evil\r\nSet-Cookie: x":  "",
		strings.Repeat("a", 129): "",
	}
	for in, want := range cases {
		if got := sanitizeID(in); got != want {
			t.Fatalf("sanitizeID(%q): want=%q got=%q", in, want, got)
		}
	}
}
