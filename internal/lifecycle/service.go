package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SumukhPhulari10/apptbot/internal/logger"
	"github.com/SumukhPhulari10/apptbot/internal/models"
	"github.com/SumukhPhulari10/apptbot/internal/schedule"
	"github.com/SumukhPhulari10/apptbot/internal/storage"
	"github.com/SumukhPhulari10/apptbot/internal/validation"
)

// BookingRequest is what the notification server needs to create its copy
// of an appointment.
type BookingRequest struct {
	DateTime time.Time
	Subject  string
	Email    string
	Phone    string
}

// Backend is the notification-server collaborator. Failures never block
// the local commit or local timer arming; they only cost the server-side
// channels.
type Backend interface {
	ScheduleBooking(ctx context.Context, req BookingRequest) (bookingID string, err error)
	CancelBooking(ctx context.Context, bookingID string) error
}

// Service owns the record lifecycle: confirmation, in-place edits,
// deletion, and restart reconciliation. It is the only way records enter or
// leave the store, which keeps the store and the timer registry agreeing
// about what is pending. Mutations are serialized so timer hooks firing on
// their own goroutines cannot interleave with a rescan.
type Service struct {
	store    storage.Provider
	registry *schedule.Registry
	backend  Backend
	clock    func() time.Time
	loc      *time.Location

	mu sync.Mutex
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceClock substitutes the wall clock, for tests.
func WithServiceClock(clock func() time.Time) ServiceOption {
	return func(s *Service) { s.clock = clock }
}

// WithLocation sets the timezone drafts resolve in. Defaults to local time;
// the system assumes one timezone for both sides.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) { s.loc = loc }
}

// NewService builds a Service. registry may be nil for short-lived commands
// that have no timer domain of their own; backend may be nil when the
// notification server is unreachable by configuration.
func NewService(store storage.Provider, registry *schedule.Registry, backend Backend, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		registry: registry,
		backend:  backend,
		clock:    time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the timezone drafts resolve in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Confirm validates a complete draft and commits it. For a new appointment
// (editID == "") a record is appended with a fresh id; for an edit the
// prior record is mutated in place: its timers are cancelled, its
// server-side booking is deleted, and its reminder state resets to pending
// with the new instant. Either way a replacement booking is requested and
// the local timer is re-armed. Validation failure commits nothing.
func (s *Service) Confirm(ctx context.Context, draft models.Draft, editID string) (models.AppointmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	draft, dt, err := validation.ValidateDraft(draft, now, s.loc)
	if err != nil {
		return models.AppointmentRecord{}, err
	}

	var rec models.AppointmentRecord
	if editID != "" {
		rec, err = s.store.GetAppointment(editID)
		if err != nil {
			return models.AppointmentRecord{}, err
		}
		if s.registry != nil {
			s.registry.Cancel(rec.ID)
		}
		if rec.BackendReference != "" {
			s.cancelBooking(ctx, rec.BackendReference)
			rec.BackendReference = ""
		}
		rec.DateTime = dt
		rec.Subject = draft.Subject
		rec.Email = draft.Email
		rec.Phone = draft.Phone
		rec.ResetReminder()
	} else {
		rec = models.AppointmentRecord{
			ID:            uuid.New().String(),
			DateTime:      dt,
			Subject:       draft.Subject,
			Email:         draft.Email,
			Phone:         draft.Phone,
			CreatedAt:     now,
			ReminderState: models.ReminderStatePending,
		}
	}

	rec.BackendReference = s.scheduleBooking(ctx, rec)

	if editID != "" {
		err = s.store.UpdateAppointment(rec)
	} else {
		err = s.store.AddAppointment(rec)
	}
	if err != nil {
		return models.AppointmentRecord{}, err
	}

	if s.registry != nil {
		if err := s.registry.Rearm(rec); err != nil {
			// Cannot happen for a validated future instant, but never let
			// the store and registry disagree silently.
			logger.Warn("failed to arm reminder", "id", rec.ID, "error", err)
		}
	}
	return rec, nil
}

// Delete removes a record, cancels its timers, and best-effort cancels the
// server-side booking.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.GetAppointment(id)
	if err != nil {
		return err
	}
	if s.registry != nil {
		s.registry.Cancel(id)
	}
	if rec.BackendReference != "" {
		s.cancelBooking(ctx, rec.BackendReference)
	}
	return s.store.DeleteAppointment(id)
}

// MarkReminded advances a record to reminded after its reminder fired. The
// record is re-read so a concurrent edit is not clobbered.
func (s *Service) MarkReminded(id string) error {
	return s.advance(id, models.ReminderStateReminded)
}

// MarkFollowedUp advances a record to followedUp after its follow-up fired.
func (s *Service) MarkFollowedUp(id string) error {
	return s.advance(id, models.ReminderStateFollowedUp)
}

func (s *Service) advance(id string, next models.ReminderState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.GetAppointment(id)
	if err != nil {
		return err
	}
	if err := rec.AdvanceReminder(next); err != nil {
		return err
	}
	return s.store.UpdateAppointment(rec)
}

// Reconcile re-derives the timer registry from persisted records and the
// current time. Pending records in the future are (re)armed; pending
// records whose time has passed are marked missed and never fired; records
// already reminded, followed up, missed, or cancelled are left untouched.
// Timers for records another process has deleted or moved out of pending
// are cancelled, so an external delete never produces a late fire. The
// registry's single-timer-per-id invariant makes repeated calls safe.
func (s *Service) Reconcile() (armed, missed int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.store.GetAllAppointments()
	if err != nil {
		return 0, 0, err
	}

	// A reminded record may still have its follow-up timer outstanding, so
	// it keeps its registry entry alongside the pending ones.
	keep := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if rec.ReminderState == models.ReminderStateReminded {
			keep[rec.ID] = true
		}
		if rec.ReminderState != models.ReminderStatePending {
			continue
		}
		keep[rec.ID] = true
		if armErr := s.registry.Rearm(rec); armErr != nil {
			if armErr != schedule.ErrMissed {
				return armed, missed, armErr
			}
			delete(keep, rec.ID)
			if err := rec.AdvanceReminder(models.ReminderStateMissed); err != nil {
				return armed, missed, err
			}
			if err := s.store.UpdateAppointment(rec); err != nil {
				return armed, missed, err
			}
			missed++
			continue
		}
		armed++
	}

	for _, id := range s.registry.IDs() {
		if !keep[id] {
			s.registry.Cancel(id)
		}
	}
	return armed, missed, nil
}

func (s *Service) scheduleBooking(ctx context.Context, rec models.AppointmentRecord) string {
	if s.backend == nil {
		return ""
	}
	bookingID, err := s.backend.ScheduleBooking(ctx, BookingRequest{
		DateTime: rec.DateTime,
		Subject:  rec.Subject,
		Email:    rec.Email,
		Phone:    rec.Phone,
	})
	if err != nil {
		logger.Warn("notification server unavailable, reminder is local-only", "error", err)
		return ""
	}
	return bookingID
}

func (s *Service) cancelBooking(ctx context.Context, bookingID string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.CancelBooking(ctx, bookingID); err != nil {
		logger.Warn("failed to cancel server-side booking", "booking_id", bookingID, "error", err)
	}
}
