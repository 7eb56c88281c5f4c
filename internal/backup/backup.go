// Package backup keeps timestamped snapshots of the appointment store so a
// bad edit or a corrupted file can be rolled back. Snapshots live next to
// the store in a backups/ directory and old ones are rotated out.
package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is how many snapshots are kept before rotation.
	MaxBackups = 14

	backupDirName    = "backups"
	backupFilePrefix = "apptbot-"
)

// Info describes one snapshot.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots a single store file. The file's extension is preserved
// so a JSON store and a SQLite store backup the same way.
type Manager struct {
	storePath string
	backupDir string
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), backupDirName),
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create snapshots the store and rotates old backups. A rotation failure
// is reported but does not fail the snapshot.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	ext := filepath.Ext(m.storePath)
	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(m.backupDir, backupFilePrefix+timestamp+ext)

	counter := 1
	for {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		backupPath = filepath.Join(m.backupDir,
			fmt.Sprintf("%s%s-%d%s", backupFilePrefix, timestamp, counter, ext))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}

	if err := m.snapshot(backupPath, ext); err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}

	if err := m.rotate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}
	return backupPath, nil
}

// snapshot copies the store. SQLite stores go through VACUUM INTO so a
// half-written page can never land in the snapshot; anything else is a
// plain file copy.
func (m *Manager) snapshot(destPath, ext string) error {
	if ext != ".db" {
		return copyFile(m.storePath, destPath)
	}

	src, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("store appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		src.Close()
		return copyFile(m.storePath, destPath)
	}
	return nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupFilePrefix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: fi.ModTime(),
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Restore replaces the store with the given snapshot. The current store is
// snapshotted first so a restore is itself reversible.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup does not exist: %s", backupPath)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		ext := filepath.Ext(m.storePath)
		preRestore := filepath.Join(m.backupDir,
			backupFilePrefix+"pre-restore-"+time.Now().Format("20060102-150405")+ext)
		if err := copyFile(m.storePath, preRestore); err != nil {
			return fmt.Errorf("failed to preserve current store: %w", err)
		}
	}

	return copyFile(backupPath, m.storePath)
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, old := range backups[min(len(backups), MaxBackups):] {
		if err := os.Remove(old.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", old.Path, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
