package memory

import (
	"sync"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
)

var _ application.Ledger = (*Ledger)(nil)

// Ledger is an append-only, in-order list of application records
type Ledger struct {
	mu      sync.Mutex
	records []domain.ApplicationRecord
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(rec domain.ApplicationRecord) {
	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()
}

// Head returns up to limit of the oldest records and the full ledger size
func (l *Ledger) Head(limit int) ([]domain.ApplicationRecord, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := len(l.records)
	if limit < 0 {
		limit = 0
	}
	if limit > total {
		limit = total
	}

	out := make([]domain.ApplicationRecord, limit)
	copy(out, l.records[:limit])
	return out, total
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
