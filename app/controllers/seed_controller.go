package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/alloservices/alloci/internal/pkg/database"
	"github.com/alloservices/alloci/internal/pkg/seed"
)

// HandleSeed loads the base directory data set. Collections that already
// contain rows are left untouched, so the endpoint can be called repeatedly.
func HandleSeed(c *fiber.Ctx) error {
	if err := seed.Run(database.GetDB()); err != nil {
		log.Printf("[Seed] Seeding failed: %v", err)
		return internalError(c, "Seeding failed")
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Seed data loaded",
	})
}
