package controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alloservices/alloci/app/models"
	"github.com/alloservices/alloci/app/repository"
)

type jobCreateInput struct {
	PostingType   string `json:"posting_type"`
	Title         string `json:"title"`
	CompanyOrName string `json:"company_or_name"`
	Description   string `json:"description"`
	City          string `json:"city"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email"`
}

// HandleListJobs lists job offers and seeker postings.
func HandleListJobs(c *fiber.Ctx) error {
	jobs, err := repository.GetGlobalFactory().GetDirectoryRepository().ListJobs(c.Query("posting_type"), c.Query("city"))
	if err != nil {
		log.Printf("job listing failed: %v", err)
		return internalError(c, "Job listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(jobs)
}

// HandleCreateJob publishes a job offer or a seeker profile.
func HandleCreateJob(c *fiber.Ctx) error {
	var in jobCreateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	job := &models.Job{
		PostingType:   strings.TrimSpace(in.PostingType),
		Title:         strings.TrimSpace(in.Title),
		CompanyOrName: strings.TrimSpace(in.CompanyOrName),
		Description:   strings.TrimSpace(in.Description),
		City:          strings.TrimSpace(in.City),
		ContactPhone:  strings.TrimSpace(in.ContactPhone),
		ContactEmail:  strings.TrimSpace(in.ContactEmail),
	}
	if err := job.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetDirectoryRepository().CreateJob(job); err != nil {
		log.Printf("job creation failed: %v", err)
		return internalError(c, "Job creation failed")
	}
	return c.Status(fiber.StatusOK).JSON(job)
}
