package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SumukhPhulari10/apptbot/internal/models"
)

func newTestProviders(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "appointments.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "appointments.db")),
	}
}

func sampleRecord(id string, at time.Time) models.AppointmentRecord {
	return models.AppointmentRecord{
		ID:            id,
		DateTime:      at,
		Subject:       "Dentist",
		Email:         "a@example.com",
		Phone:         "+919876543210",
		CreatedAt:     at.Add(-24 * time.Hour),
		ReminderState: models.ReminderStatePending,
	}
}

func TestProvider_CRUDRoundTrip(t *testing.T) {
	base := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if err := store.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer store.Close()

			rec := sampleRecord("one", base)
			if err := store.AddAppointment(rec); err != nil {
				t.Fatalf("AddAppointment failed: %v", err)
			}

			got, err := store.GetAppointment("one")
			if err != nil {
				t.Fatalf("GetAppointment failed: %v", err)
			}
			if !got.DateTime.Equal(rec.DateTime) || got.Subject != rec.Subject ||
				got.Phone != rec.Phone || got.ReminderState != rec.ReminderState {
				t.Errorf("round-trip mismatch: %+v vs %+v", got, rec)
			}

			got.Subject = "Dentist (moved)"
			got.ReminderState = models.ReminderStateReminded
			if err := store.UpdateAppointment(got); err != nil {
				t.Fatalf("UpdateAppointment failed: %v", err)
			}
			updated, err := store.GetAppointment("one")
			if err != nil {
				t.Fatalf("GetAppointment after update failed: %v", err)
			}
			if updated.Subject != "Dentist (moved)" || updated.ReminderState != models.ReminderStateReminded {
				t.Errorf("update not persisted: %+v", updated)
			}

			if err := store.DeleteAppointment("one"); err != nil {
				t.Fatalf("DeleteAppointment failed: %v", err)
			}
			if _, err := store.GetAppointment("one"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestProvider_GetAllOrdersByInstant(t *testing.T) {
	base := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if err := store.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer store.Close()

			// Inserted out of order on purpose.
			for _, rec := range []models.AppointmentRecord{
				sampleRecord("late", base.Add(48 * time.Hour)),
				sampleRecord("early", base),
				sampleRecord("middle", base.Add(24 * time.Hour)),
			} {
				if err := store.AddAppointment(rec); err != nil {
					t.Fatalf("AddAppointment failed: %v", err)
				}
			}

			recs, err := store.GetAllAppointments()
			if err != nil {
				t.Fatalf("GetAllAppointments failed: %v", err)
			}
			if len(recs) != 3 {
				t.Fatalf("expected 3 records, got %d", len(recs))
			}
			for i, want := range []string{"early", "middle", "late"} {
				if recs[i].ID != want {
					t.Errorf("position %d: expected %s, got %s", i, want, recs[i].ID)
				}
			}
		})
	}
}

func TestProvider_NotFoundOperations(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if err := store.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer store.Close()

			if _, err := store.GetAppointment("nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetAppointment: expected ErrNotFound, got %v", err)
			}
			if err := store.UpdateAppointment(sampleRecord("nope", time.Now())); !errors.Is(err, ErrNotFound) {
				t.Errorf("UpdateAppointment: expected ErrNotFound, got %v", err)
			}
			if err := store.DeleteAppointment("nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("DeleteAppointment: expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestJSONStore_LoadWithoutInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "appointments.json"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail before Init")
	}
}

func TestJSONStore_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec := sampleRecord("one", time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC))
	if err := store.AddAppointment(rec); err != nil {
		t.Fatalf("AddAppointment failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, err := reopened.GetAppointment("one")
	if err != nil {
		t.Fatalf("GetAppointment after reload failed: %v", err)
	}
	if got.Subject != rec.Subject || !got.DateTime.Equal(rec.DateTime) {
		t.Errorf("reload mismatch: %+v", got)
	}
}
