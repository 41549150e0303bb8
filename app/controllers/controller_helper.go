package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseUserID parses an external user reference. Malformed references are a
// validation failure, never a lookup; callers branch on the bool.
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

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": message})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": message})
}
