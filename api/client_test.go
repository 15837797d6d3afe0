// ABOUTME: Tests for the HTTP client, session teardown, and error conversion
// ABOUTME: Uses httptest servers standing in for the marketplace API
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

func TestBearerHeaderInjected(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Partner{})
	}))
	defer srv.Close()

	session := NewSession("tok-123", uuid.New(), nil)
	client := NewClient(srv.URL, session)

	res := NewCollection[models.Partner](client, "/partners")
	if _, err := res.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestRequestWithoutTokenFailsFast(t *testing.T) {
	reached := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewSession("", uuid.Nil, nil))
	res := NewCollection[models.Partner](client, "/partners")

	_, err := res.List(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("List error = %v, want ErrNotLoggedIn", err)
	}
	if reached {
		t.Error("request should never reach the server without a token")
	}
}

func TestUnauthorizedTearsDownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookFired := 0
	session := NewSession("stale-token", uuid.New(), func() { hookFired++ })
	client := NewClient(srv.URL, session)
	res := NewCollection[models.Partner](client, "/partners")

	_, err := res.List(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("List error = %v, want ErrUnauthorized", err)
	}
	if session.Bearer() != "" {
		t.Error("credential should be cleared after a 401")
	}
	if hookFired != 1 {
		t.Errorf("teardown hook fired %d times, want 1", hookFired)
	}

	// A second 401 on the already-dead session must not fire the hook again.
	session.Unauthorized()
	if hookFired != 1 {
		t.Errorf("teardown hook fired %d times after repeat, want 1", hookFired)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "name is required"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewSession("tok", uuid.New(), nil))
	res := NewCollection[models.Partner](client, "/partners")

	_, err := res.Create(context.Background(), models.Partner{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", apiErr.Status)
	}
	if apiErr.Message != "name is required" {
		t.Errorf("Message = %q, want the server's message", apiErr.Message)
	}
}

func TestIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewSession("tok", uuid.New(), nil))
	res := NewCollection[models.Partner](client, "/partners")

	err := res.Delete(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestCollectionPaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]models.Event{})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode(models.Event{ID: uuid.New()})
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewSession("tok", uuid.New(), nil))
	res := NewCollection[models.Event](client, "/events")
	ctx := context.Background()

	_, _ = res.List(ctx)
	_, _ = res.Create(ctx, models.Event{Title: "Tasting"})
	_, _ = res.Update(ctx, "abc", models.Event{Title: "Tasting"})
	_ = res.Delete(ctx, "abc")

	want := []call{
		{http.MethodGet, "/events"},
		{http.MethodPost, "/events"},
		{http.MethodPut, "/events/abc"},
		{http.MethodDelete, "/events/abc"},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s, want /auth/login", r.URL.Path)
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(LoginResult{Token: "fresh", UserID: userID, DisplayName: "Pat"})
	}))
	defer srv.Close()

	result, err := Login(context.Background(), srv.URL, "pat@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token != "fresh" || result.UserID != userID {
		t.Errorf("result = %+v", result)
	}

	_, err = Login(context.Background(), srv.URL, "pat@example.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Errorf("bad-password error = %v, want 401 APIError", err)
	}
}

func TestLogoutToleratesDeadSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewSession("stale", uuid.New(), nil))
	if err := client.Logout(context.Background()); err != nil {
		t.Errorf("Logout = %v, want nil for an already-dead session", err)
	}

	// Logged out locally already: no token at all is also fine.
	client = NewClient(srv.URL, NewSession("", uuid.Nil, nil))
	if err := client.Logout(context.Background()); err != nil {
		t.Errorf("Logout without token = %v, want nil", err)
	}
}
