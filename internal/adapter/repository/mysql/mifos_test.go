package mysql

import (
	"context"
	"testing"
	"time"

	mifosDomain "investorhub/internal/domain/mifos"
)

func snapshot(id int64, principal float64) *mifosDomain.Loan {
	return &mifosDomain.Loan{
		MifosLoanID: id,
		AccountNo:   "000001",
		ClientName:  "Client",
		Principal:   principal,
		Status:      "Active",
		SyncedAt:    time.Now().UTC(),
	}
}

func TestMifosLoanRepository_UpsertInsertsThenUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewMifosLoanRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, snapshot(7, 1000)); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	refreshed := snapshot(7, 1000)
	refreshed.TotalOutstanding = 400
	refreshed.TotalRepaid = 600
	if err := repo.Upsert(ctx, refreshed); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	var n int64
	db.Model(&mifosDomain.Loan{}).Count(&n)
	if n != 1 {
		t.Fatalf("rows = %d, want 1 (keyed by external id)", n)
	}

	rows, err := repo.GetByMifosIDs(ctx, []int64{7})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByMifosIDs = %v, %v", rows, err)
	}
	if rows[0].TotalOutstanding != 400 || rows[0].TotalRepaid != 600 {
		t.Fatalf("row not refreshed: %+v", rows[0])
	}
}

func TestMifosLoanRepository_BatchedLookup(t *testing.T) {
	db := openTestDB(t)
	repo := NewMifosLoanRepository(db)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if err := repo.Upsert(ctx, snapshot(id, float64(id)*100)); err != nil {
			t.Fatalf("Upsert(%d): %v", id, err)
		}
	}

	// missing id 99 simply yields no row
	rows, err := repo.GetByMifosIDs(ctx, []int64{1, 3, 99})
	if err != nil {
		t.Fatalf("GetByMifosIDs: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	rows, err = repo.GetByMifosIDs(ctx, nil)
	if err != nil || rows != nil {
		t.Fatalf("empty id set = %v, %v", rows, err)
	}
}

func TestMifosLoanRepository_ListExcluding(t *testing.T) {
	db := openTestDB(t)
	repo := NewMifosLoanRepository(db)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if err := repo.Upsert(ctx, snapshot(id, 100)); err != nil {
			t.Fatalf("Upsert(%d): %v", id, err)
		}
	}

	rows, err := repo.ListExcluding(ctx, []int64{2})
	if err != nil {
		t.Fatalf("ListExcluding: %v", err)
	}
	if len(rows) != 2 || rows[0].MifosLoanID != 1 || rows[1].MifosLoanID != 3 {
		t.Fatalf("rows = %+v", rows)
	}

	// no exclusions falls back to the full list
	rows, err = repo.ListExcluding(ctx, nil)
	if err != nil || len(rows) != 3 {
		t.Fatalf("ListExcluding(nil) = %v, %v", rows, err)
	}
}
