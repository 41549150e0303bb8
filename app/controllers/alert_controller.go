package controllers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/alloservices/alloci/app/models"
	"github.com/alloservices/alloci/app/repository"
)

type alertCreateInput struct {
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	City         string   `json:"city"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	ImagesBase64 []string `json:"images_base64"`
	PostedBy     string   `json:"posted_by"`
}

// HandleCreateAlert publishes a community alert (flood, missing person, ...).
func HandleCreateAlert(c *fiber.Ctx) error {
	var in alertCreateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	alert := &models.Alert{
		Title:        strings.TrimSpace(in.Title),
		Type:         strings.TrimSpace(in.Type),
		Description:  strings.TrimSpace(in.Description),
		City:         strings.TrimSpace(in.City),
		Lat:          in.Lat,
		Lng:          in.Lng,
		ImagesBase64: in.ImagesBase64,
		Status:       models.AlertStatusActive,
	}
	if alert.ImagesBase64 == nil {
		alert.ImagesBase64 = []string{}
	}
	// An unparseable poster reference is dropped rather than rejected; the
	// alert itself is still worth keeping.
	if id, ok := parseUserID(in.PostedBy); ok {
		alert.PostedBy = &id
	}

	if err := alert.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalFactory().GetAlertRepository().Create(alert); err != nil {
		log.Printf("alert creation failed: %v", err)
		return internalError(c, "Alert creation failed")
	}
	return c.Status(fiber.StatusOK).JSON(alert)
}

// HandleListAlerts lists alerts, optionally filtered by status and type.
func HandleListAlerts(c *fiber.Ctx) error {
	alerts, err := repository.GetGlobalFactory().GetAlertRepository().List(c.Query("status"), c.Query("type"), 200)
	if err != nil {
		log.Printf("alert listing failed: %v", err)
		return internalError(c, "Alert listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(alerts)
}

// HandleResolveAlert marks an alert as resolved.
func HandleResolveAlert(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return badRequest(c, "Invalid alert id")
	}

	alerts := repository.GetGlobalFactory().GetAlertRepository()
	alert, err := alerts.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Alert not found")
		}
		log.Printf("alert lookup failed: %v", err)
		return internalError(c, "Alert resolve failed")
	}

	if err := alerts.Resolve(alert.ID); err != nil {
		log.Printf("alert resolve failed: %v", err)
		return internalError(c, "Alert resolve failed")
	}
	alert.Status = models.AlertStatusResolved
	return c.Status(fiber.StatusOK).JSON(alert)
}
