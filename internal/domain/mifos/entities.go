// Package mifos holds the local snapshot of loan data synced from the
// MifosX platform. The snapshot is read-only to everything except the
// sync job.
package mifos

import "time"

type Loan struct {
	ID               uint64    `gorm:"primaryKey;column:id" json:"-"`
	MifosLoanID      int64     `gorm:"column:mifos_loan_id;uniqueIndex:ux_mifos_loans_loan_id" json:"mifos_loan_id"`
	AccountNo        string    `gorm:"size:64;column:account_no" json:"account_no"`
	ClientName       string    `gorm:"size:128;column:client_name" json:"client_name"`
	Principal        float64   `gorm:"type:decimal(18,2);column:principal" json:"principal"`
	TotalOutstanding float64   `gorm:"type:decimal(18,2);column:total_outstanding" json:"total_outstanding"`
	TotalRepaid      float64   `gorm:"type:decimal(18,2);column:total_repaid" json:"total_repaid"`
	Status           string    `gorm:"size:32;column:status" json:"status"`
	SyncedAt         time.Time `gorm:"column:synced_at" json:"synced_at"`
}

func (Loan) TableName() string { return "mifos_loans" }
