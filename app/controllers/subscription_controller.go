package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/alloservices/alloci/app/repository"
	"github.com/alloservices/alloci/internal/pkg/database"
	"github.com/alloservices/alloci/internal/pkg/entitlements"
	"github.com/alloservices/alloci/internal/pkg/payment"
)

// HandleSubscriptionCheck answers "is this user premium right now". The
// expiry is recomputed from stored subscriptions on every call.
func HandleSubscriptionCheck(c *fiber.Ctx) error {
	userID, ok := parseUserID(c.Query("user_id"))
	if !ok {
		return badRequest(c, "Invalid user_id")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "User not found")
		}
		log.Printf("subscription check: user lookup failed: %v", err)
		return internalError(c, "Subscription check failed")
	}

	premium, expiresAt, err := entitlements.IsPremium(payment.NewRepository(database.GetDB()), userID, time.Now())
	if err != nil {
		log.Printf("subscription check: entitlement lookup failed: %v", err)
		return internalError(c, "Subscription check failed")
	}

	resp := fiber.Map{"is_premium": premium, "expires_at": nil}
	if expiresAt != nil {
		resp["expires_at"] = expiresAt.UTC().Format(time.RFC3339)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
