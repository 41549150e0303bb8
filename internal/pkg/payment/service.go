package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/alloservices/alloci/app/models"
	"github.com/alloservices/alloci/internal/pkg/env"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultDescription = "Abonnement premium Allô Services CI (365 jours)"

// Service is the entitlement and payment-reconciliation engine: it turns a
// checkout into a ledgered transaction, reconciles asynchronous provider
// callbacks idempotently, and materializes subscriptions.
type Service struct {
	repo          Repository
	gateway       GatewayClient
	webhookSecret string
	now           func() time.Time
}

// NewService creates a payment service from injected collaborators.
func NewService(repo Repository, gateway GatewayClient, webhookSecret string) *Service {
	return &Service{
		repo:          repo,
		gateway:       gateway,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

// NewServiceFromDB wires the service against the real gateway and env config.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), NewClientFromEnv(), env.GetEnv("CINETPAY_SECRET_KEY", ""))
}

// WithClock overrides the time source, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Initiate starts a checkout attempt. It creates exactly one ledger row and
// always hands back a usable payment URL: when the gateway misbehaves the
// failure is logged and a deterministic stub URL takes its place, never an
// error to the caller.
func (s *Service) Initiate(ctx context.Context, userID uint, amount int) (*models.Transaction, error) {
	if userID == 0 {
		return nil, ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.repo.GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	expiresAt := s.now().Add(models.TransactionExpiry)
	tx := &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Currency:  "XOF",
		Status:    models.TransactionStatusPending,
		ExpiresAt: &expiresAt,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, err
	}

	paymentURL, raw, err := s.gateway.CreatePayment(ctx, tx, defaultDescription)
	if err != nil {
		log.Printf("payment initiate: gateway unavailable for tx %s, falling back to stub url: %v", tx.ID, err)
		paymentURL = StubPaymentURL(tx.ID)
	}

	tx.Status = models.TransactionStatusInitialized
	tx.PaymentURL = paymentURL
	tx.ProviderRaw = raw
	if err := s.repo.SaveTransaction(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Status returns the ledgered state of a checkout attempt.
func (s *Service) Status(ctx context.Context, transactionID string) (*models.Transaction, error) {
	_ = ctx
	tx, err := s.repo.GetTransaction(strings.TrimSpace(transactionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// Reconcile applies a confirmed payment outcome to the ledger. Transitions
// are monotonic: a terminal transaction is never rewritten, so duplicate
// deliveries and conflicting retries collapse into no-ops. On acceptance the
// subscription existence check plus the unique transaction_id index guarantee
// at most one subscription per transaction.
func (s *Service) Reconcile(ctx context.Context, transactionID string, accepted bool) (*models.Transaction, error) {
	_ = ctx
	tx, err := s.repo.GetTransaction(strings.TrimSpace(transactionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if tx.IsTerminal() {
		wanted := models.TransactionStatusRefused
		if accepted {
			wanted = models.TransactionStatusAccepted
		}
		if tx.Status != wanted {
			log.Printf("payment reconcile: ignoring conflicting outcome %s for terminal tx %s (status %s)", wanted, tx.ID, tx.Status)
		}
		if tx.Status == models.TransactionStatusAccepted {
			// Re-run the entitlement side effect; it is a no-op when the
			// subscription already exists.
			if err := s.grantSubscription(tx); err != nil {
				return nil, err
			}
		}
		return tx, nil
	}

	if accepted {
		tx.Status = models.TransactionStatusAccepted
	} else {
		tx.Status = models.TransactionStatusRefused
	}
	if err := s.repo.SaveTransaction(tx); err != nil {
		return nil, err
	}

	if accepted {
		if err := s.grantSubscription(tx); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func (s *Service) grantSubscription(tx *models.Transaction) error {
	// Existence check first; the unique index is the backstop for the race
	// window between check and insert.
	if _, err := s.repo.GetSubscriptionByTransactionID(tx.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sub := &models.Subscription{
		UserID:        tx.UserID,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		ExpiresAt:     s.now().Add(models.SubscriptionTerm),
	}
	created, err := s.repo.CreateSubscriptionIfNotExists(sub)
	if err != nil {
		return err
	}
	if !created {
		// Lost the race to a concurrent delivery; the winner already granted.
		return nil
	}
	return s.repo.SetUserPremium(tx.UserID, true)
}

// CallbackResult reports what HandleCallback did, for logging and counters.
type CallbackResult struct {
	Event          *models.PaymentWebhookEvent
	SignatureValid bool
	UsedCheck      bool
	Transaction    *models.Transaction
}

// HandleCallback processes one provider notify delivery. The payload is
// always persisted for audit before anything else. A verified token lets the
// callback's own outcome be trusted; otherwise the provider's status-check
// endpoint is consulted and its answer wins. Errors are returned for logging
// only; the HTTP layer answers 200 regardless to stop provider retry storms.
func (s *Service) HandleCallback(ctx context.Context, fields CallbackFields, token string) (*CallbackResult, error) {
	res := &CallbackResult{}

	eventID := fields.TransactionID + ":" + fields.TransDate
	payload := fields.Raw.Encode()
	if fields.TransactionID == "" {
		sum := sha256.Sum256([]byte(payload))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	res.SignatureValid = VerifyWebhookToken(fields, token, s.webhookSecret)
	_, stored, err := s.repo.CreateWebhookEventIfNotExists(&models.PaymentWebhookEvent{
		Provider:        ProviderCinetPay,
		ProviderEventID: eventID,
		TransactionID:   fields.TransactionID,
		PayloadRaw:      payload,
		SignatureValid:  res.SignatureValid,
	})
	if err != nil {
		return res, err
	}
	res.Event = stored

	if fields.TransactionID == "" {
		err := errors.New("callback payload missing cpm_trans_id")
		_ = s.repo.MarkWebhookProcessed(stored.ID, err.Error())
		return res, err
	}

	accepted := fields.Accepted()
	if !res.SignatureValid {
		// The exact signing convention varies by provider account setup, so
		// an unverified token is not a security incident by itself. The
		// synchronous status check is authoritative instead.
		res.UsedCheck = true
		status, _, checkErr := s.gateway.CheckPayment(ctx, fields.TransactionID)
		if checkErr != nil {
			_ = s.repo.MarkWebhookProcessed(stored.ID, checkErr.Error())
			return res, checkErr
		}
		switch status {
		case models.TransactionStatusAccepted:
			accepted = true
		case models.TransactionStatusRefused:
			accepted = false
		default:
			// Still pending or waiting on the provider side; leave the
			// ledger untouched and let the next delivery settle it.
			_ = s.repo.MarkWebhookProcessed(stored.ID, "")
			return res, nil
		}
	}

	tx, err := s.Reconcile(ctx, fields.TransactionID, accepted)
	if err != nil {
		_ = s.repo.MarkWebhookProcessed(stored.ID, err.Error())
		return res, err
	}
	res.Transaction = tx
	_ = s.repo.MarkWebhookProcessed(stored.ID, "")
	return res, nil
}
