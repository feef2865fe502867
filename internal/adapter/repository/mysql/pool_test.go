package mysql

import (
	"context"
	"errors"
	"testing"

	poolDomain "investorhub/internal/domain/pool"
	"investorhub/internal/domain/uow"

	"gorm.io/gorm"
)

func TestPoolRepository_CreateGetList(t *testing.T) {
	db := openTestDB(t)
	repo := NewPoolRepository(db)
	ctx := context.Background()

	p := &poolDomain.Pool{Name: "Q1", Status: poolDomain.StatusDraft}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("id not assigned")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Q1" || got.Status != poolDomain.StatusDraft {
		t.Fatalf("pool = %+v", got)
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing pool err = %v", err)
	}

	rows, err := repo.List(ctx)
	if err != nil || len(rows) != 1 {
		t.Fatalf("List = %v, %v", rows, err)
	}
}

func TestPoolRepository_DeleteRemovesEdges(t *testing.T) {
	db := openTestDB(t)
	repo := NewPoolRepository(db)
	ctx := context.Background()

	p := &poolDomain.Pool{Name: "p", Status: poolDomain.StatusDraft}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.AddLoan(ctx, &poolDomain.PoolLoan{PoolID: p.ID, MifosLoanID: 7}); err != nil {
		t.Fatalf("AddLoan: %v", err)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("pool survived delete: %v", err)
	}
	edges, err := repo.LoansFor(ctx, p.ID)
	if err != nil {
		t.Fatalf("LoansFor: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("edges survived delete: %+v", edges)
	}
}

func TestPoolRepository_LoanEdges(t *testing.T) {
	db := openTestDB(t)
	repo := NewPoolRepository(db)
	ctx := context.Background()

	p := &poolDomain.Pool{Name: "p", Status: poolDomain.StatusOpen}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, id := range []int64{7, 8} {
		if err := repo.AddLoan(ctx, &poolDomain.PoolLoan{PoolID: p.ID, MifosLoanID: id}); err != nil {
			t.Fatalf("AddLoan(%d): %v", id, err)
		}
	}
	edges, err := repo.LoansFor(ctx, p.ID)
	if err != nil || len(edges) != 2 {
		t.Fatalf("LoansFor = %v, %v", edges, err)
	}

	if err := repo.RemoveLoan(ctx, p.ID, 7); err != nil {
		t.Fatalf("RemoveLoan: %v", err)
	}
	// absent edge: silent no-op
	if err := repo.RemoveLoan(ctx, p.ID, 7); err != nil {
		t.Fatalf("RemoveLoan absent edge: %v", err)
	}
	edges, _ = repo.LoansFor(ctx, p.ID)
	if len(edges) != 1 || edges[0].MifosLoanID != 8 {
		t.Fatalf("edges = %+v", edges)
	}
}

func TestGormUoW_WithinPoolTx_LocksAndPasses(t *testing.T) {
	db := openTestDB(t)
	repo := NewPoolRepository(db)
	u := NewGormUoW(db)
	ctx := context.Background()

	p := &poolDomain.Pool{Name: "p", Status: poolDomain.StatusDraft}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := u.WithinPoolTx(ctx, p.ID, func(r uow.Repos, locked *poolDomain.Pool) error {
		if locked.ID != p.ID || locked.Status != poolDomain.StatusDraft {
			t.Fatalf("locked pool = %+v", locked)
		}
		locked.Status = poolDomain.StatusOpen
		return r.Pools.Save(ctx, locked)
	})
	if err != nil {
		t.Fatalf("WithinPoolTx: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != poolDomain.StatusOpen {
		t.Fatalf("status = %s, want open", got.Status)
	}
}

func TestGormUoW_WithinPoolTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	repo := NewPoolRepository(db)
	u := NewGormUoW(db)
	ctx := context.Background()

	p := &poolDomain.Pool{Name: "p", Status: poolDomain.StatusDraft}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	err := u.WithinPoolTx(ctx, p.ID, func(r uow.Repos, locked *poolDomain.Pool) error {
		locked.Status = poolDomain.StatusOpen
		if err := r.Pools.Save(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	got, _ := repo.GetByID(ctx, p.ID)
	if got.Status != poolDomain.StatusDraft {
		t.Fatalf("status = %s, write was not rolled back", got.Status)
	}
}
