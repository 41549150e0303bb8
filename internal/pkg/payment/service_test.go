package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alloservices/alloci/app/models"
	"gorm.io/gorm"
)

type fakeRepository struct {
	users         map[uint]*models.User
	transactions  map[string]*models.Transaction
	subscriptions map[string]*models.Subscription
	events        map[string]*models.PaymentWebhookEvent
	nextEventID   uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:         make(map[uint]*models.User),
		transactions:  make(map[string]*models.Transaction),
		subscriptions: make(map[string]*models.Subscription),
		events:        make(map[string]*models.PaymentWebhookEvent),
	}
}

func (r *fakeRepository) GetUser(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepository) SetUserPremium(id uint, premium bool) error {
	if u, ok := r.users[id]; ok {
		u.IsPremium = premium
	}
	return nil
}

func (r *fakeRepository) CreateTransaction(tx *models.Transaction) error {
	cp := *tx
	r.transactions[tx.ID] = &cp
	return nil
}

func (r *fakeRepository) GetTransaction(id string) (*models.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeRepository) SaveTransaction(tx *models.Transaction) error {
	cp := *tx
	r.transactions[tx.ID] = &cp
	return nil
}

func (r *fakeRepository) GetSubscriptionByTransactionID(transactionID string) (*models.Subscription, error) {
	sub, ok := r.subscriptions[transactionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeRepository) CreateSubscriptionIfNotExists(sub *models.Subscription) (bool, error) {
	if existing, ok := r.subscriptions[sub.TransactionID]; ok {
		*sub = *existing
		return false, nil
	}
	sub.ID = uint(len(r.subscriptions) + 1)
	cp := *sub
	r.subscriptions[sub.TransactionID] = &cp
	return true, nil
}

func (r *fakeRepository) LatestSubscriptionByUser(userID uint) (*models.Subscription, error) {
	var latest *models.Subscription
	for _, sub := range r.subscriptions {
		if sub.UserID != userID {
			continue
		}
		if latest == nil || sub.ExpiresAt.After(latest.ExpiresAt) {
			latest = sub
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if existing, ok := r.events[key]; ok {
		cp := *existing
		return false, &cp, nil
	}
	r.nextEventID++
	event.ID = r.nextEventID
	cp := *event
	r.events[key] = &cp
	out := cp
	return true, &out, nil
}

func (r *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	for _, ev := range r.events {
		if ev.ID == id {
			ev.ProcessedAt = &now
			ev.ProcessingError = processingError
		}
	}
	return nil
}

type fakeGateway struct {
	paymentURL  string
	createErr   error
	checkStatus string
	checkErr    error

	createCalls int
	checkCalls  int
}

func (g *fakeGateway) CreatePayment(ctx context.Context, tx *models.Transaction, description string) (string, string, error) {
	g.createCalls++
	if g.createErr != nil {
		return "", "", g.createErr
	}
	return g.paymentURL, `{"code":"201"}`, nil
}

func (g *fakeGateway) CheckPayment(ctx context.Context, transactionID string) (string, string, error) {
	g.checkCalls++
	if g.checkErr != nil {
		return "", "", g.checkErr
	}
	return g.checkStatus, `{"code":"00"}`, nil
}

func newTestService(repo *fakeRepository, gw *fakeGateway, secret string) *Service {
	return NewService(repo, gw, secret).WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestInitiate_CreatesInitializedTransaction(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	gw := &fakeGateway{paymentURL: "https://checkout.cinetpay.com/payment/abc"}
	svc := newTestService(repo, gw, "secret")

	tx, err := svc.Initiate(context.Background(), 7, 1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Status != models.TransactionStatusInitialized {
		t.Fatalf("expected INITIALIZED, got %s", tx.Status)
	}
	if tx.PaymentURL != "https://checkout.cinetpay.com/payment/abc" {
		t.Fatalf("unexpected payment url %q", tx.PaymentURL)
	}
	if tx.Currency != "XOF" {
		t.Fatalf("expected XOF currency, got %q", tx.Currency)
	}
	if tx.ExpiresAt == nil {
		t.Fatalf("expected expiry to be set")
	}
	if got := tx.ExpiresAt.Sub(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)); got != models.TransactionExpiry {
		t.Fatalf("expected %v expiry window, got %v", models.TransactionExpiry, got)
	}

	stored, err := repo.GetTransaction(tx.ID)
	if err != nil {
		t.Fatalf("transaction not persisted: %v", err)
	}
	if stored.Status != models.TransactionStatusInitialized {
		t.Fatalf("persisted status %s, want INITIALIZED", stored.Status)
	}
}

func TestInitiate_GatewayDownFallsBackToStubURL(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	gw := &fakeGateway{createErr: errors.New("connection refused")}
	svc := newTestService(repo, gw, "secret")

	tx, err := svc.Initiate(context.Background(), 7, 1200)
	if err != nil {
		t.Fatalf("gateway failure must not surface as an error, got %v", err)
	}
	if tx.Status != models.TransactionStatusInitialized {
		t.Fatalf("expected INITIALIZED despite gateway failure, got %s", tx.Status)
	}
	want := "https://checkout.cinetpay.com/stub/" + tx.ID
	if tx.PaymentURL != want {
		t.Fatalf("expected stub url %q, got %q", want, tx.PaymentURL)
	}
}

func TestInitiate_InputValidation(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	svc := newTestService(repo, &fakeGateway{}, "secret")

	if _, err := svc.Initiate(context.Background(), 0, 1200); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := svc.Initiate(context.Background(), 7, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.Initiate(context.Background(), 99, 1200); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.transactions) != 0 {
		t.Fatalf("no ledger rows expected after rejected initiations, got %d", len(repo.transactions))
	}
}

func TestReconcile_AcceptedGrantsSubscriptionOnce(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	svc := newTestService(repo, &fakeGateway{paymentURL: "https://pay"}, "secret")

	tx, err := svc.Initiate(context.Background(), 7, 1200)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Reconcile(context.Background(), tx.ID, true); err != nil {
			t.Fatalf("reconcile #%d: %v", i+1, err)
		}
	}

	if len(repo.subscriptions) != 1 {
		t.Fatalf("expected exactly one subscription, got %d", len(repo.subscriptions))
	}
	sub := repo.subscriptions[tx.ID]
	if sub.UserID != 7 {
		t.Fatalf("subscription belongs to user %d, want 7", sub.UserID)
	}
	wantExpiry := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(models.SubscriptionTerm)
	if !sub.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("subscription expires %v, want %v", sub.ExpiresAt, wantExpiry)
	}
	if !repo.users[7].IsPremium {
		t.Fatalf("expected user to be flagged premium")
	}
}

func TestReconcile_TerminalStatusIsNeverRewritten(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	svc := newTestService(repo, &fakeGateway{paymentURL: "https://pay"}, "secret")

	tx, _ := svc.Initiate(context.Background(), 7, 1200)
	if _, err := svc.Reconcile(context.Background(), tx.ID, true); err != nil {
		t.Fatalf("reconcile accepted: %v", err)
	}

	// A late REFUSED delivery must not undo the acceptance.
	got, err := svc.Reconcile(context.Background(), tx.ID, false)
	if err != nil {
		t.Fatalf("conflicting reconcile: %v", err)
	}
	if got.Status != models.TransactionStatusAccepted {
		t.Fatalf("terminal status rewritten to %s", got.Status)
	}
	if len(repo.subscriptions) != 1 {
		t.Fatalf("expected one subscription, got %d", len(repo.subscriptions))
	}
}

func TestReconcile_RefusedHasNoSideEffects(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	svc := newTestService(repo, &fakeGateway{paymentURL: "https://pay"}, "secret")

	tx, _ := svc.Initiate(context.Background(), 7, 1200)
	got, err := svc.Reconcile(context.Background(), tx.ID, false)
	if err != nil {
		t.Fatalf("reconcile refused: %v", err)
	}
	if got.Status != models.TransactionStatusRefused {
		t.Fatalf("expected REFUSED, got %s", got.Status)
	}
	if len(repo.subscriptions) != 0 {
		t.Fatalf("refused payment must not create a subscription")
	}
	if repo.users[7].IsPremium {
		t.Fatalf("refused payment must not flag the user premium")
	}
}

func TestReconcile_UnknownTransaction(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeGateway{}, "secret")
	if _, err := svc.Reconcile(context.Background(), "nope", true); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func signedToken(fields CallbackFields, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fields.signedConcat()))
	return hex.EncodeToString(mac.Sum(nil))
}

func notifyForm(txID string) url.Values {
	return url.Values{
		"cpm_site_id":       {"123456"},
		"cpm_trans_id":      {txID},
		"cpm_trans_date":    {"2025-06-01 12:30:00"},
		"cpm_amount":        {"1200"},
		"cpm_currency":      {"XOF"},
		"cpm_error_message": {"SUCCES"},
	}
}

func TestHandleCallback_ValidTokenReconcilesWithoutCheck(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	gw := &fakeGateway{paymentURL: "https://pay"}
	svc := newTestService(repo, gw, "hmac-secret")

	tx, _ := svc.Initiate(context.Background(), 7, 1200)
	fields := ParseCallback(notifyForm(tx.ID))
	token := signedToken(fields, "hmac-secret")

	res, err := svc.HandleCallback(context.Background(), fields, token)
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	if !res.SignatureValid {
		t.Fatalf("expected signature to verify")
	}
	if res.UsedCheck {
		t.Fatalf("verified token must not trigger the status check")
	}
	if gw.checkCalls != 0 {
		t.Fatalf("status check called %d times, want 0", gw.checkCalls)
	}
	if res.Transaction.Status != models.TransactionStatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", res.Transaction.Status)
	}
	if len(repo.subscriptions) != 1 {
		t.Fatalf("expected one subscription, got %d", len(repo.subscriptions))
	}
}

func TestHandleCallback_InvalidTokenFallsBackToCheck(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	gw := &fakeGateway{paymentURL: "https://pay", checkStatus: models.TransactionStatusAccepted}
	svc := newTestService(repo, gw, "hmac-secret")

	tx, _ := svc.Initiate(context.Background(), 7, 1200)
	fields := ParseCallback(notifyForm(tx.ID))

	res, err := svc.HandleCallback(context.Background(), fields, "deadbeef")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	if res.SignatureValid {
		t.Fatalf("expected signature to fail")
	}
	if !res.UsedCheck || gw.checkCalls != 1 {
		t.Fatalf("expected exactly one status check, got %d", gw.checkCalls)
	}
	if res.Transaction.Status != models.TransactionStatusAccepted {
		t.Fatalf("expected ACCEPTED from the status check, got %s", res.Transaction.Status)
	}
	if len(repo.subscriptions) != 1 {
		t.Fatalf("expected one subscription, got %d", len(repo.subscriptions))
	}
}

func TestHandleCallback_CheckPendingLeavesLedgerUntouched(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	gw := &fakeGateway{paymentURL: "https://pay", checkStatus: models.TransactionStatusPending}
	svc := newTestService(repo, gw, "hmac-secret")

	tx, _ := svc.Initiate(context.Background(), 7, 1200)
	fields := ParseCallback(notifyForm(tx.ID))

	res, err := svc.HandleCallback(context.Background(), fields, "deadbeef")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	if res.Transaction != nil {
		t.Fatalf("pending check must not reconcile")
	}

	stored, _ := repo.GetTransaction(tx.ID)
	if stored.Status != models.TransactionStatusInitialized {
		t.Fatalf("ledger moved to %s on a pending check", stored.Status)
	}
}

func TestHandleCallback_DuplicateDeliveryGrantsOnce(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	gw := &fakeGateway{paymentURL: "https://pay"}
	svc := newTestService(repo, gw, "hmac-secret")

	tx, _ := svc.Initiate(context.Background(), 7, 1200)
	fields := ParseCallback(notifyForm(tx.ID))
	token := signedToken(fields, "hmac-secret")

	for i := 0; i < 3; i++ {
		if _, err := svc.HandleCallback(context.Background(), fields, token); err != nil {
			t.Fatalf("delivery #%d: %v", i+1, err)
		}
	}

	if len(repo.subscriptions) != 1 {
		t.Fatalf("expected one subscription after duplicate deliveries, got %d", len(repo.subscriptions))
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected one deduplicated webhook event, got %d", len(repo.events))
	}
}

func TestHandleCallback_MissingTransactionIDIsAuditedAndRejected(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeGateway{}, "hmac-secret")

	form := notifyForm("")
	res, err := svc.HandleCallback(context.Background(), ParseCallback(form), "deadbeef")
	if err == nil {
		t.Fatalf("expected an error for a payload without cpm_trans_id")
	}
	if res.Event == nil {
		t.Fatalf("payload must still be persisted for audit")
	}
	if !strings.HasPrefix(res.Event.ProviderEventID, "hash:") {
		t.Fatalf("expected hash-derived event id, got %q", res.Event.ProviderEventID)
	}
}

func TestHandleCallback_CheckErrorSurfacesForLogging(t *testing.T) {
	repo := newFakeRepository()
	repo.users[7] = &models.User{ID: 7}
	gw := &fakeGateway{paymentURL: "https://pay", checkErr: errors.New("timeout")}
	svc := newTestService(repo, gw, "hmac-secret")

	tx, _ := svc.Initiate(context.Background(), 7, 1200)
	fields := ParseCallback(notifyForm(tx.ID))

	if _, err := svc.HandleCallback(context.Background(), fields, "deadbeef"); err == nil {
		t.Fatalf("expected the status-check failure to surface")
	}
	stored, _ := repo.GetTransaction(tx.ID)
	if stored.Status != models.TransactionStatusInitialized {
		t.Fatalf("failed check must leave the ledger at INITIALIZED, got %s", stored.Status)
	}
}
