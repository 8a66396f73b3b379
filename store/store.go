// Package store persists saved templates and recipient lists. Each
// collection is kept as one JSON array under a well-known key and rewritten
// whole on every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	TemplatesKey = "billLayneAiEmailTemplates_v1"
	ListsKey     = "billLayneAiRecipientLists_v1"

	// Default file names for exported collections.
	TemplatesExportFile = "email-templates-backup.json"
	ListsExportFile     = "recipient-lists-backup.json"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrInvalidImport = errors.New("store: invalid import file")
)

// Repository reads and writes raw collection blobs. Get returns nil, nil
// for a key that was never written.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Store manages templates and recipient lists on top of a Repository.
type Store struct {
	repo        Repository
	agencyShort string
	logoURL     string
	log         *zap.Logger
	now         func() time.Time

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, used for savedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a Store. agencyShort and logoURL are used for the seeded
// default templates and for subjects of stripped templates.
func New(repo Repository, agencyShort, logoURL string, opts ...Option) *Store {
	s := &Store{
		repo:        repo,
		agencyShort: agencyShort,
		logoURL:     logoURL,
		log:         zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) stamp() int64 {
	return s.now().UnixMilli()
}

// readCollection decodes the array stored under key into out. found is
// false when nothing was ever stored.
func (s *Store) readCollection(ctx context.Context, key string, out any) (found bool, err error) {
	data, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) writeCollection(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.repo.Put(ctx, key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// header is the part of an imported record that must be present.
type header struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// checkImport requires a top-level array whose objects all carry an id and
// a name.
func checkImport(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for i, raw := range items {
		var h header
		if err := json.Unmarshal(raw, &h); err != nil {
			return fmt.Errorf("%w: item %d: %v", ErrInvalidImport, i, err)
		}
		if h.ID == "" || h.Name == "" {
			return fmt.Errorf("%w: item %d has no id or name", ErrInvalidImport, i)
		}
	}
	return nil
}
