// Package mifosmock is an in-memory mifos.Repository keyed by the
// external loan id.
package mifosmock

import (
	"context"
	"sort"

	"investorhub/internal/domain/mifos"
)

type Repo struct {
	Loans map[int64]mifos.Loan
}

func New(loans ...mifos.Loan) *Repo {
	m := &Repo{Loans: make(map[int64]mifos.Loan)}
	for _, l := range loans {
		m.Loans[l.MifosLoanID] = l
	}
	return m
}

func (m *Repo) Upsert(ctx context.Context, l *mifos.Loan) error {
	m.Loans[l.MifosLoanID] = *l
	return nil
}

func (m *Repo) GetByMifosIDs(ctx context.Context, ids []int64) ([]mifos.Loan, error) {
	var out []mifos.Loan
	for _, id := range ids {
		if l, ok := m.Loans[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *Repo) List(ctx context.Context) ([]mifos.Loan, error) {
	ids := make([]int64, 0, len(m.Loans))
	for id := range m.Loans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]mifos.Loan, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.Loans[id])
	}
	return out, nil
}

func (m *Repo) ListExcluding(ctx context.Context, ids []int64) ([]mifos.Loan, error) {
	skip := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}
	all, _ := m.List(ctx)
	out := all[:0]
	for _, l := range all {
		if _, hidden := skip[l.MifosLoanID]; !hidden {
			out = append(out, l)
		}
	}
	return out, nil
}
