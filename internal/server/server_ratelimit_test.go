package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"codeforge/internal/app"
	"codeforge/internal/ratelimit"
)

func TestLoginRateLimit(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(redis.Addr(), "", "codeforge:ratelimit:login", 1, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	appCore, err := app.New(app.Config{JWTSecret: testJWTSecret})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(New(Config{App: appCore, LoginLimiter: limiter}).Router())
	defer srv.Close()

	_, _ = signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")

	resp := postJSON(t, srv.URL+"/api/auth/login", "", loginRequest{
		Email:    "ada@example.com",
		Password: "secret1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first login expected 200, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/auth/login", "", loginRequest{
		Email:    "ada@example.com",
		Password: "secret1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second login expected 429, got %d", resp.StatusCode)
	}
}

func TestSignupRateLimitIndependentOfLogin(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(redis.Addr(), "", "codeforge:ratelimit:signup", 1, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	appCore, err := app.New(app.Config{JWTSecret: testJWTSecret})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(New(Config{App: appCore, SignupLimiter: limiter}).Router())
	defer srv.Close()

	_, _ = signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")

	resp := postJSON(t, srv.URL+"/api/auth/signup", "", signupRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second signup expected 429, got %d", resp.StatusCode)
	}

	// Login stays unlimited when only the signup limiter is configured.
	resp = postJSON(t, srv.URL+"/api/auth/login", "", loginRequest{
		Email:    "ada@example.com",
		Password: "secret1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login expected 200, got %d", resp.StatusCode)
	}
}
