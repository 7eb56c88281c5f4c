package schedule

import (
	"errors"
	"sync"
	"time"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
	"github.com/SumukhPhulari10/apptbot/internal/models"
)

// ErrMissed is returned by Arm when the record's time has already passed.
// The policy is to never fire a stale reminder: callers mark the record
// missed instead.
var ErrMissed = errors.New("appointment time has already passed")

// Timer is a cancelable one-shot timer. time.AfterFunc satisfies it through
// the afterFunc default below; tests substitute their own.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

// Hooks receive fired actions. Reminder fires at the record's instant;
// FollowUp fires a fixed offset later. Hooks run on the timer goroutine and
// must not call back into the registry for the same record.
type Hooks struct {
	Reminder func(models.AppointmentRecord)
	FollowUp func(models.AppointmentRecord)
}

type entry struct {
	reminder Timer
	followUp Timer
}

// Registry owns every pending reminder and follow-up timer and is the only
// component allowed to create them, so no orphaned timer can exist. At most
// one reminder and one follow-up are outstanding per record id: arming
// first cancels whatever was there.
type Registry struct {
	mu      sync.Mutex
	hooks   Hooks
	clock   func() time.Time
	after   AfterFunc
	offset  time.Duration
	entries map[string]*entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock substitutes the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) { r.clock = clock }
}

// WithAfterFunc substitutes the timer source, for tests.
func WithAfterFunc(after AfterFunc) Option {
	return func(r *Registry) { r.after = after }
}

// WithFollowUpOffset overrides the fixed reminder-to-follow-up delay.
func WithFollowUpOffset(d time.Duration) Option {
	return func(r *Registry) { r.offset = d }
}

func New(hooks Hooks, opts ...Option) *Registry {
	r := &Registry{
		hooks:   hooks,
		clock:   time.Now,
		offset:  constants.FollowUpOffset,
		entries: make(map[string]*entry),
	}
	r.after = func(d time.Duration, f func()) Timer {
		return time.AfterFunc(d, f)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Arm schedules the reminder for rec at rec.DateTime. Any timers already
// outstanding for rec.ID are cancelled first. If the instant has passed,
// nothing is scheduled and ErrMissed is returned.
func (r *Registry) Arm(rec models.AppointmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelLocked(rec.ID)

	delay := rec.DateTime.Sub(r.clock())
	if delay <= 0 {
		return ErrMissed
	}

	e := &entry{}
	e.reminder = r.after(delay, func() { r.fireReminder(rec) })
	r.entries[rec.ID] = e
	return nil
}

// Cancel stops any outstanding reminder and follow-up timers for id. Safe
// to call when none exist.
func (r *Registry) Cancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLocked(id)
}

// Rearm cancels and re-creates the timers for rec; used on edit and on
// restart reconciliation.
func (r *Registry) Rearm(rec models.AppointmentRecord) error {
	r.Cancel(rec.ID)
	return r.Arm(rec)
}

// Armed reports whether a timer is outstanding for id.
func (r *Registry) Armed(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// IDs returns the record ids with outstanding timers.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of records with outstanding timers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Stop cancels every outstanding timer.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.entries {
		r.cancelLocked(id)
	}
}

func (r *Registry) cancelLocked(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	if e.reminder != nil {
		e.reminder.Stop()
	}
	if e.followUp != nil {
		e.followUp.Stop()
	}
	delete(r.entries, id)
}

func (r *Registry) fireReminder(rec models.AppointmentRecord) {
	r.mu.Lock()
	e, ok := r.entries[rec.ID]
	if !ok {
		// Cancelled between fire and lock acquisition.
		r.mu.Unlock()
		return
	}
	e.reminder = nil

	// The follow-up is anchored to the appointment instant, not to when the
	// reminder actually ran.
	delay := rec.DateTime.Add(r.offset).Sub(r.clock())
	if delay < 0 {
		delay = 0
	}
	e.followUp = r.after(delay, func() { r.fireFollowUp(rec) })
	r.mu.Unlock()

	if r.hooks.Reminder != nil {
		r.hooks.Reminder(rec)
	}
}

func (r *Registry) fireFollowUp(rec models.AppointmentRecord) {
	r.mu.Lock()
	if _, ok := r.entries[rec.ID]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.entries, rec.ID)
	r.mu.Unlock()

	if r.hooks.FollowUp != nil {
		r.hooks.FollowUp(rec)
	}
}
