package repositories

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")

	ErrDuplicateEmail    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrDuplicateUsername = fmt.Errorf("%w: username", ErrDuplicate)
)

// Repository owns the badger handle and the per-entity repositories built on it.
type Repository struct {
	db            *badger.DB
	Users         *BadgerUserRepository
	Posts         *BadgerPostRepository
	Comments      *BadgerCommentRepository
	Notifications *BadgerNotificationRepository
}

// NewRepository opens the badger database at path. An empty path opens an
// in-memory database, which is what tests use.
func NewRepository(path string, logger *slog.Logger) (*Repository, error) {
	opts := badger.DefaultOptions(path).
		WithNumVersionsToKeep(1).
		WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger.With("component", "badger")})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return Wrap(db), nil
}

// Wrap builds a Repository around an already open database.
func Wrap(db *badger.DB) *Repository {
	return &Repository{
		db:            db,
		Users:         NewBadgerUserRepository(db),
		Posts:         NewBadgerPostRepository(db),
		Comments:      NewBadgerCommentRepository(db),
		Notifications: NewBadgerNotificationRepository(db),
	}
}

// DB exposes the underlying handle for maintenance commands.
func (r *Repository) DB() *badger.DB {
	return r.db
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Clear drops every key in the database.
func (r *Repository) Clear() error {
	return r.db.DropAll()
}

// badgerLogger routes badger's printf-style logging into slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
