package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"picshare/app/repositories"
)

// ErrCancelled is returned when the operator declines a destructive prompt.
var ErrCancelled = errors.New("operation cancelled")

// Maintenance runs the offline database commands. Prompts read from In and
// all output goes to Out.
type Maintenance struct {
	DataDir   string
	BackupDir string
	In        io.Reader
	Out       io.Writer

	// Force skips confirmation prompts.
	Force bool

	now func() time.Time
}

func (m *Maintenance) confirm(prompt string) bool {
	if m.Force {
		return true
	}
	return confirm(m.In, m.Out, prompt)
}

func (m *Maintenance) exists() bool {
	_, err := os.Stat(m.DataDir)
	return err == nil
}

// Init creates an empty database. It refuses to touch an existing one.
func (m *Maintenance) Init() error {
	if m.exists() {
		return fmt.Errorf("database already exists at %s; run clean first to reinitialize", m.DataDir)
	}
	store, err := repositories.NewRepository(m.DataDir, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := store.Close(); err != nil {
		return err
	}
	fmt.Fprintf(m.Out, "Database initialized at %s\n", m.DataDir)
	return nil
}

// Clean removes the database directory.
func (m *Maintenance) Clean() error {
	if !m.exists() {
		fmt.Fprintln(m.Out, "Database is already clean (does not exist)")
		return nil
	}
	if !m.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		return ErrCancelled
	}
	if err := os.RemoveAll(m.DataDir); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(m.Out, "Database cleaned successfully")
	return nil
}

// Backup writes a full badger backup. An empty file name picks a
// timestamped one inside BackupDir. The written path is returned.
func (m *Maintenance) Backup(file string) (string, error) {
	if !m.exists() {
		return "", fmt.Errorf("no database exists at %s", m.DataDir)
	}
	if file == "" {
		if err := os.MkdirAll(m.BackupDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		now := time.Now
		if m.now != nil {
			now = m.now
		}
		file = filepath.Join(m.BackupDir, fmt.Sprintf("backup_%d.db", now().Unix()))
	}

	store, err := repositories.NewRepository(m.DataDir, nil)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	if _, err := store.DB().Backup(f, 0); err != nil {
		f.Close()
		os.Remove(file)
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	fmt.Fprintf(m.Out, "Database backed up to %s\n", file)
	return file, nil
}

// Restore replaces the database with the contents of a backup file.
func (m *Maintenance) Restore(file string) (err error) {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", file)
	}

	if m.exists() {
		if !m.confirm("Existing database found. Do you want to replace it?") {
			return ErrCancelled
		}
		if err := os.RemoveAll(m.DataDir); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	store, err := repositories.NewRepository(m.DataDir, nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	// badger panics on some malformed inputs instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to restore database: %v", r)
		}
	}()
	if err := store.DB().Load(f, 16); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}

	fmt.Fprintln(m.Out, "Database restored successfully")
	return nil
}
