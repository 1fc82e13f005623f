// Package memstore keeps everything in process memory. It backs dry runs of
// the CLI and the orchestrator tests.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"SalesIngest/internal/dedup"
	"SalesIngest/internal/ingest"
	"SalesIngest/internal/sales"
)

type masterKey struct {
	companyID int64
	name      string
}

type Store struct {
	mu       sync.Mutex
	nextID   int64
	clients  map[masterKey]int64
	products map[masterKey]int64
	uploads  map[int64]*sales.UploadRecord
	rows     []ingest.TransactionRecord
	keys     map[string]struct{}
	now      func() time.Time
}

func New() *Store {
	return &Store{
		clients:  map[masterKey]int64{},
		products: map[masterKey]int64{},
		uploads:  map[int64]*sales.UploadRecord{},
		keys:     map[string]struct{}{},
		now:      time.Now,
	}
}

var _ ingest.Store = (*Store)(nil)

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func scopedKey(companyID int64, submodule, key string) string {
	return fmt.Sprintf("%d|%s|%s", companyID, submodule, key)
}

func (s *Store) ExistingDedupKeys(_ context.Context, scope ingest.Scope) (dedup.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	years := map[int]bool{}
	for _, y := range scope.Years {
		years[y] = true
	}
	set := dedup.Set{}
	for _, r := range s.rows {
		if r.CompanyID != scope.CompanyID || r.Submodule != scope.Submodule {
			continue
		}
		if len(years) > 0 && !years[r.SourceYear] {
			continue
		}
		set[dedup.Key(r.Transaction)] = struct{}{}
	}
	return set, nil
}

func (s *Store) FindOrCreateClient(_ context.Context, companyID int64, name string) (int64, error) {
	return s.findOrCreate(s.clients, companyID, name)
}

func (s *Store) FindOrCreateProduct(_ context.Context, companyID int64, name string) (int64, error) {
	return s.findOrCreate(s.products, companyID, name)
}

func (s *Store) findOrCreate(m map[masterKey]int64, companyID int64, name string) (int64, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return 0, fmt.Errorf("empty name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := masterKey{companyID, n}
	if id, ok := m[k]; ok {
		return id, nil
	}
	id := s.id()
	m[k] = id
	return id, nil
}

// InsertTransaction rejects a second row with the same key in the same
// company and submodule, like the unique index in PostgreSQL.
func (s *Store) InsertTransaction(_ context.Context, rec ingest.TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.uploads[rec.UploadID]; !ok {
		return fmt.Errorf("upload %d does not exist", rec.UploadID)
	}
	k := scopedKey(rec.CompanyID, rec.Submodule, dedup.Key(rec.Transaction))
	if _, dup := s.keys[k]; dup {
		return fmt.Errorf("duplicate transaction %s", k)
	}
	s.keys[k] = struct{}{}
	s.rows = append(s.rows, rec)
	return nil
}

func (s *Store) CreateUpload(_ context.Context, meta sales.UploadMeta) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	now := s.now()
	s.uploads[id] = &sales.UploadRecord{
		ID:         id,
		UploadMeta: meta,
		Status:     sales.UploadProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return id, nil
}

func (s *Store) UpdateUpload(_ context.Context, id int64, status sales.UploadStatus, counts sales.UploadCounts, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return fmt.Errorf("upload %d does not exist", id)
	}
	u.Status = status
	u.UploadCounts = counts
	u.Notes = notes
	u.UpdatedAt = s.now()
	return nil
}

// Uploads returns copies of every upload record, oldest first.
func (s *Store) Uploads() []sales.UploadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sales.UploadRecord, 0, len(s.uploads))
	for id := int64(1); id <= s.nextID; id++ {
		if u, ok := s.uploads[id]; ok {
			out = append(out, *u)
		}
	}
	return out
}

// Transactions returns the stored rows in insertion order.
func (s *Store) Transactions() []ingest.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ingest.TransactionRecord(nil), s.rows...)
}
