package controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alloservices/alloci/app/models"
	"github.com/alloservices/alloci/app/repository"
)

type registerInput struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CityID        string `json:"city_id"`
	AcceptTerms   bool   `json:"accept_terms"`
	PreferredLang string `json:"preferred_lang"`
	PhotoBase64   string `json:"photo_base64"`
}

// HandleRegister creates a user account. New accounts always start without
// premium; entitlement only ever comes from a reconciled payment.
func HandleRegister(c *fiber.Ctx) error {
	var in registerInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lang := strings.TrimSpace(in.PreferredLang)
	if lang == "" {
		lang = models.LangFR
	}

	user := &models.User{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		CityID:        strings.TrimSpace(in.CityID),
		PreferredLang: lang,
		PhotoBase64:   in.PhotoBase64,
		IsPremium:     false,
	}
	if err := user.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Create(user); err != nil {
		log.Printf("user registration failed: %v", err)
		return internalError(c, "Registration failed")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
