package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(t, NewHealthHandler().Liveness)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	rec := serve(t, NewHealthDependenciesHandler(Check{Name: "sessions", Pinger: ok}).Readiness)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Dependencies["sessions"].Status != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReadiness_OneDown(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })
	rec := serve(t, NewHealthDependenciesHandler(
		Check{Name: "sessions", Pinger: ok},
		Check{Name: "mongodb", Pinger: down},
	).Readiness)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" {
		t.Fatalf("expected degraded, got %q", body.Status)
	}
	if got := body.Dependencies["mongodb"]; got.Status != "unhealthy" || got.Error != "connection refused" {
		t.Fatalf("unexpected mongodb status: %+v", got)
	}
	if body.Dependencies["sessions"].Status != "ok" {
		t.Fatalf("healthy dependency reported as %+v", body.Dependencies["sessions"])
	}
}
