package storage

import (
	"errors"

	"github.com/SumukhPhulari10/apptbot/internal/models"
)

// ErrNotFound is returned when an operation references a record id that no
// longer exists in the store.
var ErrNotFound = errors.New("appointment not found")

// Provider is the persisted record store. Exactly one record exists per
// logical appointment; UpdateAppointment mutates in place under the same id.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Appointments
	AddAppointment(models.AppointmentRecord) error
	GetAppointment(id string) (models.AppointmentRecord, error)
	// GetAllAppointments returns records ordered by their scheduled instant.
	GetAllAppointments() ([]models.AppointmentRecord, error)
	UpdateAppointment(models.AppointmentRecord) error
	DeleteAppointment(id string) error

	// Utils
	Path() string
}
