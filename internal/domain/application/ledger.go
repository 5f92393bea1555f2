package application

import "github.com/honeycarbs/jobapply-gateway/internal/domain"

// Ledger stores submitted applications in submission order
type Ledger interface {
	Append(rec domain.ApplicationRecord)

	// Head returns up to limit of the earliest records plus the ledger size
	Head(limit int) ([]domain.ApplicationRecord, int)
}
