package handler

import (
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	e := newEcho()

	c, rec := jsonContext(e, http.MethodGet, "/health", "")
	if err := NewHealthHandler(&stubStorage{}).Liveness(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("liveness: err=%v code=%d", err, rec.Code)
	}

	c, rec = jsonContext(e, http.MethodGet, "/health/ready", "")
	if err := NewHealthHandler(&stubStorage{}).Readiness(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("readiness: err=%v code=%d", err, rec.Code)
	}

	c, rec = jsonContext(e, http.MethodGet, "/health/ready", "")
	if err := NewHealthHandler(&stubStorage{pingErr: errors.New("redis down")}).Readiness(c); err != nil {
		t.Fatalf("readiness error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
