// Package api is the client for the notification server. Every call is a
// narrow collaborator contract: failures are returned to the caller, which
// degrades to local-only operation rather than aborting.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SumukhPhulari10/apptbot/internal/intake"
	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
)

// Client talks to the apptbotd REST surface.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type scheduleRequest struct {
	DateTime string `json:"dateTime"`
	Subject  string `json:"subject"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type scheduleResponse struct {
	Success       bool   `json:"success"`
	AppointmentID string `json:"appointmentId"`
	Error         string `json:"error"`
}

// ScheduleBooking creates a server-side booking and returns its id.
func (c *Client) ScheduleBooking(ctx context.Context, req lifecycle.BookingRequest) (string, error) {
	body := scheduleRequest{
		DateTime: req.DateTime.Format(time.RFC3339),
		Subject:  req.Subject,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	var res scheduleResponse
	if err := c.post(ctx, "/api/appointments/schedule", body, &res); err != nil {
		return "", err
	}
	if !res.Success {
		return "", fmt.Errorf("server rejected booking: %s", res.Error)
	}
	return res.AppointmentID, nil
}

// CancelBooking removes a server-side booking. Best-effort: a 404 means the
// server already forgot the booking (e.g. it restarted) and is not an error
// worth surfacing differently.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.BaseURL+"/api/appointments/"+bookingID, nil)
	if err != nil {
		return err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK || res.StatusCode == http.StatusNotFound {
		return nil
	}
	b, _ := io.ReadAll(res.Body)
	return fmt.Errorf("cancel booking failed with status %d: %s", res.StatusCode, string(b))
}

type parseRequest struct {
	Message string `json:"message"`
}

type parseResponse struct {
	Success        bool              `json:"success"`
	Extraction     intake.Extraction `json:"extraction"`
	Error          string            `json:"error"`
	FallbackToForm bool              `json:"fallback_to_form"`
}

// Extract satisfies intake.Extractor by delegating to the server's
// parse-message endpoint, where the LLM credentials live.
func (c *Client) Extract(ctx context.Context, message string) (intake.Extraction, error) {
	var res parseResponse
	if err := c.post(ctx, "/api/parse-message", parseRequest{Message: message}, &res); err != nil {
		return intake.Extraction{}, err
	}
	if res.FallbackToForm {
		return intake.Extraction{}, fmt.Errorf("natural language processing unavailable: %s", res.Error)
	}
	return res.Extraction, nil
}

// Health reports whether the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", res.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// The server answers every status with a JSON envelope; surface the
	// status only when the body is not one.
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("server returned status %d: %s", res.StatusCode, string(b))
	}
	return nil
}
