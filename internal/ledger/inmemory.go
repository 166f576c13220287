package ledger

import (
	"context"
	"sort"
	"sync"
	"time"
)

type inMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []Record
}

// NewInMemory creates a concurrency-safe in-memory ledger store useful for
// unit tests.
func NewInMemory() Store {
	return &inMemoryStore{}
}

func (s *inMemoryStore) Save(_ context.Context, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	rec.Timestamp = time.Now().UTC()
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *inMemoryStore) FindByTransactionID(_ context.Context, transactionID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.TransactionID == transactionID {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

func (s *inMemoryStore) FindByWallet(_ context.Context, walletID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Record, 0)
	for _, rec := range s.records {
		if rec.FromWalletID == walletID || rec.ToWalletID == walletID {
			matches = append(matches, rec)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Timestamp.Equal(matches[j].Timestamp) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Timestamp.Before(matches[j].Timestamp)
	})
	return matches, nil
}
