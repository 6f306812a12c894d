// Package valuations keeps a history of valuation runs in a write-ahead log.
package valuations

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/earnwatch/internal/domain"
)

const (
	segmentLimit = 1000
	maxSegments  = 100
	keyPrefix    = "valuation_"
)

// WALStore persists valuation snapshots in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore opens (or creates) the snapshot WAL under dir.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		return nil, errors.New("valuation history dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create valuation history dir")
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "valuation_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init valuation WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends the snapshot. Callers must set snapshot.RunID.
func (s *WALStore) Save(snapshot domain.ValuationSnapshot) error {
	if s == nil || s.wal == nil {
		return errors.New("valuation store is not initialized")
	}
	if snapshot.RunID == "" {
		return errors.New("valuation snapshot run id is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "marshal valuation snapshot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, keyPrefix+snapshot.RunID, payload)
}

// SnapshotsAfter returns all snapshots written after the provided WAL index.
func (s *WALStore) SnapshotsAfter(index uint64) ([]domain.ValuationSnapshotRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("valuation store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.ValuationSnapshotRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil || !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		var snapshot domain.ValuationSnapshot
		if err := json.Unmarshal(payload, &snapshot); err != nil {
			return nil, errors.Wrap(err, "decode valuation snapshot")
		}
		records = append(records, domain.ValuationSnapshotRecord{
			Index:    idx,
			Snapshot: snapshot,
		})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("valuation store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
