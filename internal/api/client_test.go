package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
	"github.com/SumukhPhulari10/apptbot/internal/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer runs the real notification server behind httptest so the
// client is exercised against the actual wire contract.
func newTestServer(t *testing.T) *Client {
	t.Helper()
	h := server.NewHandler(&server.Config{Port: "0", Origin: "*"})
	t.Cleanup(func() { h.Registry().Stop() })

	ts := httptest.NewServer(server.SetupRoutes(h))
	t.Cleanup(ts.Close)
	return NewClient(ts.URL)
}

func TestScheduleAndCancelBooking(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	id, err := client.ScheduleBooking(ctx, lifecycle.BookingRequest{
		DateTime: time.Now().Add(time.Hour),
		Subject:  "Dentist",
		Email:    "a@example.com",
	})
	if err != nil {
		t.Fatalf("ScheduleBooking failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a booking id")
	}

	if err := client.CancelBooking(ctx, id); err != nil {
		t.Fatalf("CancelBooking failed: %v", err)
	}

	// The server already forgot the booking; a repeat cancel is a no-op.
	if err := client.CancelBooking(ctx, id); err != nil {
		t.Errorf("cancelling a gone booking must not error: %v", err)
	}
}

func TestScheduleBooking_ServerRejection(t *testing.T) {
	client := newTestServer(t)

	_, err := client.ScheduleBooking(context.Background(), lifecycle.BookingRequest{
		DateTime: time.Now().Add(-time.Hour),
		Subject:  "Dentist",
		Email:    "a@example.com",
	})
	if err == nil {
		t.Fatal("expected a past booking to be rejected")
	}
	if !strings.Contains(err.Error(), "future") {
		t.Errorf("expected the server's reason to surface, got %v", err)
	}
}

func TestExtract_FallbackSurfacesAsError(t *testing.T) {
	client := newTestServer(t)

	_, err := client.Extract(context.Background(), "dentist tomorrow at 3pm")
	if err == nil {
		t.Fatal("expected an error when the server has no extractor")
	}
}

func TestHealth(t *testing.T) {
	client := newTestServer(t)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}

	down := NewClient("http://127.0.0.1:1")
	if err := down.Health(context.Background()); err == nil {
		t.Error("expected health check against a dead server to fail")
	}
}
