package controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alloservices/alloci/app/repository"
)

// HandlePharmaciesNearby lists pharmacies around a point, closest first.
// duty_only=true keeps only pharmacies on duty today ("pharmacies de garde").
func HandlePharmaciesNearby(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		return badRequest(c, "lat and lng are required")
	}

	maxKM := 10.0
	if raw := c.Query("max_km"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			maxKM = v
		}
	}

	var dutyDay *int
	if c.QueryBool("duty_only") {
		// Weekday numbering matches the stored duty_days: 0=Monday.
		d := (int(time.Now().UTC().Weekday()) + 6) % 7
		dutyDay = &d
	}

	pharmacies, err := repository.GetGlobalFactory().GetPharmacyRepository().Nearby(lat, lng, maxKM, dutyDay, 50)
	if err != nil {
		log.Printf("pharmacy nearby query failed: %v", err)
		return internalError(c, "Pharmacy lookup failed")
	}
	return c.Status(fiber.StatusOK).JSON(pharmacies)
}
