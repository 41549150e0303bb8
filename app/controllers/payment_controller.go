package controllers

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alloservices/alloci/app/models"
	"github.com/alloservices/alloci/internal/pkg/database"
	"github.com/alloservices/alloci/internal/pkg/metrics/counter"
	"github.com/alloservices/alloci/internal/pkg/payment"
)

// DefaultSubscriptionAmount is the single fixed-price product, in FCFA.
const DefaultSubscriptionAmount = 1200

// newPaymentService is a variable so tests can substitute the DB-backed engine.
var newPaymentService = func() *payment.Service {
	return payment.NewServiceFromDB(database.GetDB())
}

type paymentInitiateInput struct {
	UserID string `json:"user_id"`
	Amount int    `json:"amount"`
}

type paymentValidateInput struct {
	TransactionID string `json:"transaction_id"`
	Success       bool   `json:"success"`
}

// HandlePaymentInitiate starts a checkout and always answers with a payment
// URL, even when the gateway is down. Only a malformed or unknown user fails.
func HandlePaymentInitiate(c *fiber.Ctx) error {
	if !knownProvider(c) {
		return notFound(c, "Unknown payment provider")
	}

	var in paymentInitiateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	userID, ok := parseUserID(in.UserID)
	if !ok {
		return badRequest(c, "Invalid user_id")
	}
	amount := in.Amount
	if amount == 0 {
		amount = DefaultSubscriptionAmount
	}

	svc := newPaymentService()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tx, err := svc.Initiate(ctx, userID, amount)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidUserID), errors.Is(err, payment.ErrInvalidAmount):
			return badRequest(c, err.Error())
		case errors.Is(err, payment.ErrUserNotFound):
			return notFound(c, "User not found")
		default:
			log.Printf("payment initiate failed: %v", err)
			return internalError(c, "Payment initiation failed")
		}
	}

	_ = counter.Add(counter.FieldInitiated)
	if strings.HasPrefix(tx.PaymentURL, payment.StubPaymentURL("")) {
		_ = counter.Add(counter.FieldInitiateFallback)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"transaction_id": tx.ID,
		"provider":       payment.ProviderCinetPay,
		"payment_url":    tx.PaymentURL,
	})
}

// HandlePaymentWebhook ingests provider notify callbacks. It answers 200 no
// matter what happened internally: providers retry non-200 responses forever
// and a retry storm is worse than a logged failure.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	if !knownProvider(c) {
		return notFound(c, "Unknown payment provider")
	}

	form, err := url.ParseQuery(string(c.BodyRaw()))
	if err != nil {
		log.Printf("payment webhook: unparseable payload: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	}

	fields := payment.ParseCallback(form)
	token := strings.TrimSpace(c.Get("X-TOKEN"))

	svc := newPaymentService()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_ = counter.Add(counter.FieldWebhooksReceived)
	res, err := svc.HandleCallback(ctx, fields, token)
	if err != nil {
		log.Printf("payment webhook: processing failed for tx %q: %v", fields.TransactionID, err)
	}
	if res != nil {
		if res.SignatureValid {
			_ = counter.Add(counter.FieldSignatureValid)
		}
		if res.UsedCheck {
			_ = counter.Add(counter.FieldSignatureFallback)
		}
		if res.Transaction != nil {
			switch res.Transaction.Status {
			case models.TransactionStatusAccepted:
				_ = counter.Add(counter.FieldAccepted)
			case models.TransactionStatusRefused:
				_ = counter.Add(counter.FieldRefused)
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// HandlePaymentStatus returns the ledgered state of one checkout attempt.
func HandlePaymentStatus(c *fiber.Ctx) error {
	if !knownProvider(c) {
		return notFound(c, "Unknown payment provider")
	}

	svc := newPaymentService()
	tx, err := svc.Status(c.Context(), c.Params("transaction_id"))
	if err != nil {
		if errors.Is(err, payment.ErrTransactionNotFound) {
			return notFound(c, "Transaction not found")
		}
		log.Printf("payment status lookup failed: %v", err)
		return internalError(c, "Status lookup failed")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"transaction_id": tx.ID,
		"status":         tx.Status,
		"payment_url":    tx.PaymentURL,
	})
}

// HandlePaymentValidate is the manual reconciliation path for operators and
// test environments. Same engine as the webhook, no provider involved.
func HandlePaymentValidate(c *fiber.Ctx) error {
	if !knownProvider(c) {
		return notFound(c, "Unknown payment provider")
	}

	var in paymentValidateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(in.TransactionID) == "" {
		return badRequest(c, "transaction_id is required")
	}

	svc := newPaymentService()
	tx, err := svc.Reconcile(c.Context(), in.TransactionID, in.Success)
	if err != nil {
		if errors.Is(err, payment.ErrTransactionNotFound) {
			return notFound(c, "Transaction not found")
		}
		log.Printf("payment validate failed: %v", err)
		return internalError(c, "Validation failed")
	}

	status := "failed"
	if tx.Status == models.TransactionStatusAccepted {
		status = "paid"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": status})
}

// HandlePaymentStats exposes the Redis operational counters.
func HandlePaymentStats(c *fiber.Ctx) error {
	stats, err := counter.Snapshot()
	if err != nil {
		log.Printf("payment stats unavailable: %v", err)
		return internalError(c, "Stats unavailable")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func knownProvider(c *fiber.Ctx) bool {
	return c.Params("provider") == payment.ProviderCinetPay
}
