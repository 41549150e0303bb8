package middleware

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alloservices/alloci/internal/pkg/database"
	"github.com/alloservices/alloci/internal/pkg/entitlements"
	"github.com/alloservices/alloci/internal/pkg/payment"
)

// RequirePremium gates a directory category behind an active subscription.
// Free categories pass untouched. For premium categories a missing or
// malformed user_id denies access. The gate fails closed, never open.
// The decision is recomputed on every request; nothing is cached.
func RequirePremium(category string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !entitlements.RequiresPremium(category) {
			return c.Next()
		}

		userID, ok := parseUserID(c.Query("user_id"))
		if !ok {
			return paymentRequired(c)
		}

		premium, err := lookupPremium(userID, time.Now())
		if err != nil {
			log.Printf("premium gate: entitlement lookup failed for user %d: %v", userID, err)
			return paymentRequired(c)
		}
		if !premium {
			return paymentRequired(c)
		}
		return c.Next()
	}
}

// lookupPremium is a variable so tests can substitute the DB read.
var lookupPremium = func(userID uint, now time.Time) (bool, error) {
	db := database.GetDB()
	if db == nil {
		return false, errors.New("database unavailable")
	}
	premium, _, err := entitlements.IsPremium(payment.NewRepository(db), userID, now)
	return premium, err
}

func parseUserID(raw string) (uint, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func paymentRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
		"error":   "payment_required",
		"message": "Un abonnement premium est requis pour cette rubrique",
	})
}
