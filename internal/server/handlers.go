// Package server is the notification backend: it accepts bookings from the
// client, keeps its own reminder timers for them, and delivers email and SMS
// through whichever channels are configured.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SumukhPhulari10/apptbot/internal/intake"
	"github.com/SumukhPhulari10/apptbot/internal/logger"
	"github.com/SumukhPhulari10/apptbot/internal/models"
	"github.com/SumukhPhulari10/apptbot/internal/notify"
	"github.com/SumukhPhulari10/apptbot/internal/schedule"
	"github.com/SumukhPhulari10/apptbot/internal/validation"
)

// Handler carries the server's collaborators and its in-memory booking set.
// Bookings live only for the process lifetime; the client's local store is
// the durable copy and re-registers on reconnect.
type Handler struct {
	cfg        *Config
	dispatcher *notify.Dispatcher
	extractor  intake.Extractor
	registry   *schedule.Registry

	mu       sync.Mutex
	bookings map[string]models.AppointmentRecord
}

// NewHandler wires the notification channels, the extraction collaborator,
// and the timer registry from the loaded configuration.
func NewHandler(cfg *Config) *Handler {
	h := &Handler{
		cfg:      cfg,
		bookings: make(map[string]models.AppointmentRecord),
	}

	h.dispatcher = &notify.Dispatcher{}
	if cfg.EmailEnabled() {
		h.dispatcher.Email = &notify.EmailSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.EmailUser,
			Username: cfg.EmailUser,
			Password: cfg.EmailPassword,
		}
	}
	if cfg.SMSEnabled() {
		h.dispatcher.SMS = notify.NewSMSSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	}
	if cfg.LLMEnabled() {
		h.extractor = intake.NewGeminiExtractor(cfg.GeminiKey, cfg.GeminiModel)
	}

	h.registry = schedule.New(schedule.Hooks{
		Reminder: h.onReminder,
		FollowUp: h.onFollowUp,
	})
	return h
}

// Registry exposes the timer registry so main can stop it on shutdown.
func (h *Handler) Registry() *schedule.Registry { return h.registry }

func (h *Handler) onReminder(rec models.AppointmentRecord) {
	logger.Info("firing reminder", "id", rec.ID, "subject", rec.Subject)
	h.dispatcher.SendReminder(rec)
	h.advanceBooking(rec.ID, models.ReminderStateReminded)
}

func (h *Handler) onFollowUp(rec models.AppointmentRecord) {
	logger.Info("firing follow-up", "id", rec.ID, "subject", rec.Subject)
	h.dispatcher.SendFollowUp(rec)
	h.advanceBooking(rec.ID, models.ReminderStateFollowedUp)
}

func (h *Handler) advanceBooking(id string, next models.ReminderState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rec, ok := h.bookings[id]
	if !ok {
		return
	}
	if err := rec.AdvanceReminder(next); err != nil {
		logger.Warn("skipping reminder advance", "id", id, "error", err)
		return
	}
	h.bookings[id] = rec
}

// Health reports server status and which channels are configured.
func (h *Handler) Health(c *gin.Context) {
	OK(c, gin.H{
		"status":           "healthy",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"email_configured": h.cfg.EmailEnabled(),
		"sms_enabled":      h.cfg.SMSEnabled(),
		"llm_enabled":      h.cfg.LLMEnabled(),
	})
}

type parseMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// ParseMessage extracts appointment details from a natural-language message.
// When extraction is unavailable or fails, the response tells the caller to
// fall back to the step-by-step form.
func (h *Handler) ParseMessage(c *gin.Context) {
	var req parseMessageRequest
	if !BindAndValidate(c, &req) {
		return
	}

	if h.extractor == nil {
		ServiceUnavailable(c, "Message parsing is not configured")
		return
	}

	message := validation.SanitizeMessage(req.Message)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	ext, err := h.extractor.Extract(ctx, message)
	if err != nil {
		logger.Warn("extraction failed", "error", err)
		ServiceUnavailable(c, "Message parsing is temporarily unavailable")
		return
	}

	OK(c, gin.H{"extraction": ext})
}

type scheduleRequest struct {
	DateTime string `json:"dateTime" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty"`
}

func (h *Handler) buildRecord(c *gin.Context, req scheduleRequest) (models.AppointmentRecord, bool) {
	when, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		BadRequest(c, "Invalid dateTime, expected RFC 3339")
		return models.AppointmentRecord{}, false
	}
	if !when.After(time.Now()) {
		BadRequest(c, "Appointment time must be in the future")
		return models.AppointmentRecord{}, false
	}

	phone := req.Phone
	if phone != "" {
		phone, err = validation.NormalizePhone(phone)
		if err != nil {
			BadRequest(c, err.Error())
			return models.AppointmentRecord{}, false
		}
	}
	if req.Email == "" && phone == "" {
		BadRequest(c, "At least one of email or phone is required")
		return models.AppointmentRecord{}, false
	}

	return models.AppointmentRecord{
		DateTime:      when,
		Subject:       req.Subject,
		Email:         req.Email,
		Phone:         phone,
		CreatedAt:     time.Now(),
		ReminderState: models.ReminderStatePending,
	}, true
}

// ScheduleAppointment books an appointment, sends the confirmation, and arms
// the reminder timers.
func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req scheduleRequest
	if !BindAndValidate(c, &req) {
		return
	}

	rec, ok := h.buildRecord(c, req)
	if !ok {
		return
	}
	rec.ID = uuid.New().String()

	h.mu.Lock()
	h.bookings[rec.ID] = rec
	h.mu.Unlock()

	if err := h.registry.Arm(rec); err != nil {
		h.mu.Lock()
		delete(h.bookings, rec.ID)
		h.mu.Unlock()
		BadRequest(c, "Appointment time must be in the future")
		return
	}

	h.dispatcher.SendConfirmation(rec)
	logger.Info("appointment scheduled", "id", rec.ID, "at", rec.FormatDateTime())
	OK(c, gin.H{"appointmentId": rec.ID})
}

// UpdateAppointment replaces a booking's details under the same id. The old
// timers are cancelled and fresh ones are armed for the new instant.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id := c.Param("id")

	var req scheduleRequest
	if !BindAndValidate(c, &req) {
		return
	}

	h.mu.Lock()
	old, exists := h.bookings[id]
	h.mu.Unlock()
	if !exists {
		NotFound(c, "Appointment not found")
		return
	}

	rec, ok := h.buildRecord(c, req)
	if !ok {
		return
	}
	rec.ID = id
	rec.CreatedAt = old.CreatedAt

	h.registry.Cancel(id)
	h.mu.Lock()
	h.bookings[id] = rec
	h.mu.Unlock()

	if err := h.registry.Arm(rec); err != nil {
		BadRequest(c, "Appointment time must be in the future")
		return
	}

	h.dispatcher.SendConfirmation(rec)
	logger.Info("appointment updated", "id", id, "at", rec.FormatDateTime())
	OK(c, gin.H{"appointmentId": id})
}

// CancelAppointment cancels a booking and its timers.
func (h *Handler) CancelAppointment(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	_, exists := h.bookings[id]
	if exists {
		delete(h.bookings, id)
	}
	h.mu.Unlock()

	if !exists {
		NotFound(c, "Appointment not found")
		return
	}

	h.registry.Cancel(id)
	logger.Info("appointment cancelled", "id", id)
	OK(c, gin.H{"cancelled": id})
}
