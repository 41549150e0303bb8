package payment

import (
	"time"

	"github.com/alloservices/alloci/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the payment service. All writes
// are single-row and atomic; there is no application-level locking.
type Repository interface {
	GetUser(id uint) (*models.User, error)
	SetUserPremium(id uint, premium bool) error

	CreateTransaction(tx *models.Transaction) error
	GetTransaction(id string) (*models.Transaction, error)
	SaveTransaction(tx *models.Transaction) error

	GetSubscriptionByTransactionID(transactionID string) (*models.Subscription, error)
	CreateSubscriptionIfNotExists(sub *models.Subscription) (bool, error)
	LatestSubscriptionByUser(userID uint) (*models.Subscription, error)

	CreateWebhookEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetUser(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) SetUserPremium(id uint, premium bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("is_premium", premium).Error
}

func (r *gormRepository) CreateTransaction(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *gormRepository) GetTransaction(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *gormRepository) SaveTransaction(tx *models.Transaction) error {
	return r.db.Save(tx).Error
}

func (r *gormRepository) GetSubscriptionByTransactionID(transactionID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("transaction_id = ?", transactionID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubscriptionIfNotExists inserts the subscription unless one already
// references the same transaction. The unique index on transaction_id makes
// the insert side of check-then-insert safe under concurrent deliveries.
func (r *gormRepository) CreateSubscriptionIfNotExists(sub *models.Subscription) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).Create(sub)
	if tx.Error != nil {
		return false, tx.Error
	}

	created := tx.RowsAffected > 0
	if err := r.db.Where("transaction_id = ?", sub.TransactionID).First(sub).Error; err != nil {
		return false, err
	}
	return created, nil
}

func (r *gormRepository) LatestSubscriptionByUser(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ?", userID).
		Order("expires_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.PaymentWebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.PaymentWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
