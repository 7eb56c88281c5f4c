package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/SumukhPhulari10/apptbot/internal/models"
)

type jsonFile struct {
	Version      int                                 `json:"version"`
	Appointments map[string]models.AppointmentRecord `json:"appointments"`
}

// JSONStore keeps the appointment list in a single JSON file, read on load
// and rewritten after every mutation. The mutex makes it safe to share
// between timer goroutines and the watch UI.
type JSONStore struct {
	path string

	mu   sync.RWMutex
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = &jsonFile{
		Version:      1,
		Appointments: make(map[string]models.AppointmentRecord),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	// The read happens under the write lock so a reload never observes a
	// file mid-rewrite.
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'apptbot init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	file := &jsonFile{}
	if err := json.Unmarshal(data, file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if file.Appointments == nil {
		file.Appointments = make(map[string]models.AppointmentRecord)
	}
	s.file = file
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save rewrites the file. Callers must hold mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) AddAppointment(rec models.AppointmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.file.Appointments[rec.ID]; exists {
		return fmt.Errorf("appointment %s already exists", rec.ID)
	}
	s.file.Appointments[rec.ID] = rec
	return s.save()
}

func (s *JSONStore) GetAppointment(id string) (models.AppointmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.file.Appointments[id]
	if !ok {
		return models.AppointmentRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *JSONStore) GetAllAppointments() ([]models.AppointmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]models.AppointmentRecord, 0, len(s.file.Appointments))
	for _, rec := range s.file.Appointments {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].DateTime.Before(recs[j].DateTime)
	})
	return recs, nil
}

func (s *JSONStore) UpdateAppointment(rec models.AppointmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.file.Appointments[rec.ID]; !ok {
		return ErrNotFound
	}
	s.file.Appointments[rec.ID] = rec
	return s.save()
}

func (s *JSONStore) DeleteAppointment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.file.Appointments[id]; !ok {
		return ErrNotFound
	}
	delete(s.file.Appointments, id)
	return s.save()
}

func (s *JSONStore) Path() string {
	return s.path
}
