package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/SumukhPhulari10/apptbot/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS appointments (
	id TEXT PRIMARY KEY,
	date_time TEXT NOT NULL,
	subject TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	backend_reference TEXT NOT NULL DEFAULT '',
	reminder_state TEXT NOT NULL DEFAULT 'pending'
);
`

// SQLiteStore persists the appointment list in a local SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'apptbot init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema bootstrap is idempotent; older files pick up new columns-free
	// revisions without a migration step.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AddAppointment(rec models.AppointmentRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO appointments (id, date_time, subject, email, phone, created_at, backend_reference, reminder_state)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.DateTime.Format(time.RFC3339),
		rec.Subject,
		rec.Email,
		rec.Phone,
		rec.CreatedAt.Format(time.RFC3339),
		rec.BackendReference,
		string(rec.ReminderState),
	)
	if err != nil {
		return fmt.Errorf("failed to add appointment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAppointment(id string) (models.AppointmentRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, date_time, subject, email, phone, created_at, backend_reference, reminder_state
		 FROM appointments WHERE id = ?`, id)
	rec, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return models.AppointmentRecord{}, ErrNotFound
	}
	return rec, err
}

func (s *SQLiteStore) GetAllAppointments() ([]models.AppointmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, date_time, subject, email, phone, created_at, backend_reference, reminder_state
		 FROM appointments ORDER BY date_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var recs []models.AppointmentRecord
	for rows.Next() {
		rec, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *SQLiteStore) UpdateAppointment(rec models.AppointmentRecord) error {
	res, err := s.db.Exec(
		`UPDATE appointments
		 SET date_time = ?, subject = ?, email = ?, phone = ?, backend_reference = ?, reminder_state = ?
		 WHERE id = ?`,
		rec.DateTime.Format(time.RFC3339),
		rec.Subject,
		rec.Email,
		rec.Phone,
		rec.BackendReference,
		string(rec.ReminderState),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteAppointment(id string) error {
	res, err := s.db.Exec(`DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (models.AppointmentRecord, error) {
	var rec models.AppointmentRecord
	var dateTime, createdAt, state string
	err := row.Scan(&rec.ID, &dateTime, &rec.Subject, &rec.Email, &rec.Phone, &createdAt, &rec.BackendReference, &state)
	if err != nil {
		return rec, err
	}
	rec.DateTime, err = time.Parse(time.RFC3339, dateTime)
	if err != nil {
		return rec, fmt.Errorf("corrupt date_time for %s: %w", rec.ID, err)
	}
	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return rec, fmt.Errorf("corrupt created_at for %s: %w", rec.ID, err)
	}
	rec.ReminderState = models.ReminderState(state)
	return rec, nil
}
