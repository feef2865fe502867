package investment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

type PayoutKind string

const (
	PayoutMonthly   PayoutKind = "monthly"
	PayoutPrincipal PayoutKind = "principal"
)

type Investment struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"id"`
	UserID           uint64         `gorm:"column:user_id;index:idx_investments_user" json:"user_id"`
	Amount           float64        `gorm:"type:decimal(18,2)" json:"amount"`
	AnnualROIPercent float64        `gorm:"type:decimal(5,2);column:annual_roi_percent" json:"annual_roi_percent"`
	StartDate        time.Time      `gorm:"type:date;column:start_date" json:"start_date"`
	Status           Status         `gorm:"size:16;default:'active'" json:"status"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Investment) TableName() string { return "investments" }

type Payout struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	InvestmentID uint64     `gorm:"column:investment_id;index:idx_payouts_investment" json:"investment_id"`
	Amount       float64    `gorm:"type:decimal(18,2)" json:"amount"`
	Kind         PayoutKind `gorm:"size:16;default:'monthly'" json:"kind"`
	PaidAt       time.Time  `gorm:"type:date;column:paid_at" json:"paid_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Payout) TableName() string { return "payouts" }

// Agreement captures the e-signature on an investment agreement plus the
// path of the rendered PDF.
type Agreement struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	InvestmentID  uint64    `gorm:"column:investment_id;uniqueIndex:ux_agreements_investment" json:"investment_id"`
	SignerName    string    `gorm:"size:128;column:signer_name" json:"signer_name"`
	SignatureData string    `gorm:"type:text;column:signature_data" json:"-"`
	PDFPath       string    `gorm:"type:text;column:pdf_path" json:"pdf_path"`
	SignedAt      time.Time `gorm:"column:signed_at" json:"signed_at"`
}

func (Agreement) TableName() string { return "agreements" }
