package sync

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"investorhub/internal/domain/mifos"
	"investorhub/internal/mifosx"
)

// Source is what the sync pulls from; satisfied by *mifosx.Client.
type Source interface {
	FetchLoans(ctx context.Context) ([]mifosx.LoanRecord, error)
}

// Usecase copies MifosX loan data into the local snapshot table. One run
// at a time; a second trigger while a run is in flight is refused.
type Usecase struct {
	source Source
	loans  mifos.Repository

	mu       sync.Mutex
	running  bool
	lastRun  time.Time
	lastErr  string
	lastSeen int
}

func NewUsecase(source Source, loans mifos.Repository) *Usecase {
	return &Usecase{source: source, loans: loans}
}

// ErrAlreadyRunning is surfaced to a manual trigger that races the cron.
var ErrAlreadyRunning = fmt.Errorf("sync already in progress")

type Status struct {
	Running   bool      `json:"running"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
	LoanCount int       `json:"loan_count"`
}

func (u *Usecase) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Status{Running: u.running, LastRun: u.lastRun, LastError: u.lastErr, LoanCount: u.lastSeen}
}

// Run fetches every loan and upserts the snapshot rows sequentially.
// No retries: a failed run records its error and waits for the next tick.
func (u *Usecase) Run(ctx context.Context) error {
	u.mu.Lock()
	if u.running {
		u.mu.Unlock()
		return ErrAlreadyRunning
	}
	u.running = true
	u.mu.Unlock()

	err := u.run(ctx)

	u.mu.Lock()
	u.running = false
	u.lastRun = time.Now().UTC()
	if err != nil {
		u.lastErr = err.Error()
	} else {
		u.lastErr = ""
	}
	u.mu.Unlock()
	return err
}

func (u *Usecase) run(ctx context.Context) error {
	records, err := u.source.FetchLoans(ctx)
	if err != nil {
		return fmt.Errorf("sync: fetch loans: %w", err)
	}

	now := time.Now().UTC()
	for _, rec := range records {
		l := &mifos.Loan{
			MifosLoanID:      rec.ID,
			AccountNo:        rec.AccountNo,
			ClientName:       rec.ClientName,
			Principal:        rec.Principal,
			TotalOutstanding: rec.TotalOutstanding,
			TotalRepaid:      rec.TotalRepaid,
			Status:           rec.Status,
			SyncedAt:         now,
		}
		if err := u.loans.Upsert(ctx, l); err != nil {
			return fmt.Errorf("sync: upsert loan %d: %w", rec.ID, err)
		}
	}

	u.mu.Lock()
	u.lastSeen = len(records)
	u.mu.Unlock()
	log.Printf("sync: refreshed %d loans", len(records))
	return nil
}
