package models

import "time"

const (
	TransactionStatusPending     = "PENDING"
	TransactionStatusInitialized = "INITIALIZED"
	TransactionStatusAccepted    = "ACCEPTED"
	TransactionStatusRefused     = "REFUSED"
)

// TransactionExpiry is advisory only. No reaper enforces it; the checkout
// page simply stops working once the provider-side session lapses.
const TransactionExpiry = 45 * time.Minute

// Transaction is the append/mutate-only ledger record for a checkout attempt.
// The ID is provider-facing and globally unique. Rows are never deleted.
type Transaction struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"transaction_id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Amount      int        `gorm:"not null" json:"amount"`
	Currency    string     `gorm:"type:varchar(3);not null;default:'XOF'" json:"currency"`
	Status      string     `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	PaymentURL  string     `gorm:"type:text" json:"payment_url,omitempty"`
	ProviderRaw string     `gorm:"type:longtext" json:"-"`
	ExpiresAt   *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"-"`
}

// IsTerminal reports whether the status admits no further transitions.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusAccepted || t.Status == TransactionStatusRefused
}
