package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/alloservices/alloci/app/models"
)

func gateApp(category string) *fiber.App {
	app := fiber.New()
	app.Get("/resource", RequirePremium(category), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func withPremiumLookup(t *testing.T, fn func(userID uint, now time.Time) (bool, error)) {
	t.Helper()
	orig := lookupPremium
	lookupPremium = fn
	t.Cleanup(func() { lookupPremium = orig })
}

func TestRequirePremium_FreeCategoryPasses(t *testing.T) {
	withPremiumLookup(t, func(userID uint, now time.Time) (bool, error) {
		t.Errorf("free category must not hit the entitlement lookup")
		return false, nil
	})

	app := gateApp(models.CategoryAlertes)
	resp, err := app.Test(httptest.NewRequest("GET", "/resource", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePremium_MissingUserIDFailsClosed(t *testing.T) {
	withPremiumLookup(t, func(userID uint, now time.Time) (bool, error) {
		t.Errorf("malformed user_id must not hit the entitlement lookup")
		return false, nil
	})

	app := gateApp(models.CategorySante)

	for _, target := range []string{"/resource", "/resource?user_id=", "/resource?user_id=abc", "/resource?user_id=0"} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode, target)
	}
}

func TestRequirePremium_NonPremiumUserBlocked(t *testing.T) {
	withPremiumLookup(t, func(userID uint, now time.Time) (bool, error) {
		assert.Equal(t, uint(7), userID)
		return false, nil
	})

	app := gateApp(models.CategorySante)
	resp, err := app.Test(httptest.NewRequest("GET", "/resource?user_id=7", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
}

func TestRequirePremium_PremiumUserPasses(t *testing.T) {
	withPremiumLookup(t, func(userID uint, now time.Time) (bool, error) {
		return true, nil
	})

	app := gateApp(models.CategoryEmplois)
	resp, err := app.Test(httptest.NewRequest("GET", "/resource?user_id=7", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePremium_LookupErrorFailsClosed(t *testing.T) {
	withPremiumLookup(t, func(userID uint, now time.Time) (bool, error) {
		return false, errors.New("connection reset")
	})

	app := gateApp(models.CategorySante)
	resp, err := app.Test(httptest.NewRequest("GET", "/resource?user_id=7", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
}
