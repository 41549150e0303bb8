package models

import "time"

// SubscriptionTerm is the fixed length of the single premium product.
const SubscriptionTerm = 365 * 24 * time.Hour

// Subscription is immutable once created. "Expired" is never written as a
// state; it is computed from ExpiresAt at read time.
type Subscription struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	// TransactionID back-references the ledger row that paid for this term.
	// The unique index doubles as the idempotency backstop for duplicate
	// webhook deliveries.
	TransactionID string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"transaction_id"`
	Amount        int       `gorm:"not null" json:"amount"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ActiveAt reports whether the subscription still entitles at the given time.
func (s *Subscription) ActiveAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
