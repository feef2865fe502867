package pool

import (
	"time"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusOpen   Status = "open"
	StatusLocked Status = "locked"
	StatusClosed Status = "closed"
)

// forward holds the only legal edges: draft→open→locked→closed. No
// reversals, no skips, no same-state moves.
var forward = map[Status]Status{
	StatusDraft:  StatusOpen,
	StatusOpen:   StatusLocked,
	StatusLocked: StatusClosed,
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusOpen, StatusLocked, StatusClosed:
		return true
	}
	return false
}

func CanTransition(from, to Status) bool {
	next, ok := forward[from]
	return ok && next == to
}

// Mutable reports whether the loan membership set may still change.
func (s Status) Mutable() bool { return s == StatusDraft || s == StatusOpen }

// Pool is a named grouping of externally-sourced loans used for aggregate
// reporting.
type Pool struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	Name         string     `gorm:"size:128;column:name" json:"name"`
	TargetAmount float64    `gorm:"type:decimal(18,2);column:target_amount" json:"target_amount"`
	Status       Status     `gorm:"size:16;column:status;default:'draft'" json:"status"`
	LockedAt     *time.Time `gorm:"column:locked_at" json:"locked_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Pool) TableName() string { return "abs_pools" }

// PoolLoan links an externally-sourced loan to a pool. Pure edge table;
// the loan record itself lives in the synced snapshot.
type PoolLoan struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	PoolID      uint64    `gorm:"column:pool_id;index:idx_pool_loans_pool" json:"pool_id"`
	MifosLoanID int64     `gorm:"column:mifos_loan_id;index:idx_pool_loans_loan" json:"mifos_loan_id"`
	AddedAt     time.Time `gorm:"autoCreateTime;column:added_at" json:"added_at"`
}

func (PoolLoan) TableName() string { return "pool_loans" }

// Metrics are the on-demand sums over a pool's snapshot rows.
type Metrics struct {
	LoanCount        int     `json:"loan_count"`
	TotalPrincipal   float64 `json:"total_principal"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalRepaid      float64 `json:"total_repaid"`
}
