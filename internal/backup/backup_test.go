package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func setupSQLiteStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE appointments (id TEXT PRIMARY KEY, subject TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO appointments (id, subject) VALUES ('a', 'Dentist')`); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}
	return path
}

func setupJSONStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"appointments":{}}`), 0600); err != nil {
		t.Fatalf("failed to write test store: %v", err)
	}
	return path
}

func TestCreate_SQLiteSnapshotIsReadable(t *testing.T) {
	path := setupSQLiteStore(t)
	mgr := NewManager(path)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		t.Fatalf("failed to open snapshot: %v", err)
	}
	defer db.Close()

	var subject string
	if err := db.QueryRow(`SELECT subject FROM appointments WHERE id = 'a'`).Scan(&subject); err != nil {
		t.Fatalf("snapshot query failed: %v", err)
	}
	if subject != "Dentist" {
		t.Errorf("expected snapshot data, got %q", subject)
	}
}

func TestCreate_JSONSnapshotCopiesFile(t *testing.T) {
	path := setupJSONStore(t)
	mgr := NewManager(path)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("snapshot should keep the store extension, got %s", backupPath)
	}

	original, _ := os.ReadFile(path)
	copied, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(original) != string(copied) {
		t.Error("snapshot content differs from the store")
	}
}

func TestCreate_MissingStoreFails(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected Create to fail for a missing store")
	}
}

func TestList_NewestFirst(t *testing.T) {
	path := setupJSONStore(t)
	mgr := NewManager(path)

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].Path != second && backups[0].Path != first {
		t.Errorf("unexpected backup path %s", backups[0].Path)
	}
}

func TestRestore_RevertsTheStore(t *testing.T) {
	path := setupJSONStore(t)
	mgr := NewManager(path)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`corrupted`), 0600); err != nil {
		t.Fatalf("failed to overwrite store: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if string(data) != `{"version":1,"appointments":{}}` {
		t.Errorf("restore did not revert the store: %s", data)
	}

	// The pre-restore state is itself preserved as a snapshot.
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, b := range backups {
		data, _ := os.ReadFile(b.Path)
		if string(data) == "corrupted" {
			found = true
		}
	}
	if !found {
		t.Error("expected the pre-restore store to be preserved")
	}
}

func TestRestore_MissingBackupFails(t *testing.T) {
	mgr := NewManager(setupJSONStore(t))
	if err := mgr.Restore(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected Restore to fail for a missing backup")
	}
}
