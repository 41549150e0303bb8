package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/alloservices/alloci/app/repository"
)

// Read-only directory listings. These are thin glue over the directory
// repository; premium gating happens in the router, not here.

func HandleListCategories(c *fiber.Ctx) error {
	categories, err := repository.GetGlobalFactory().GetDirectoryRepository().ListCategories()
	if err != nil {
		log.Printf("category listing failed: %v", err)
		return internalError(c, "Category listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

func HandleListHospitals(c *fiber.Ctx) error {
	hospitals, err := repository.GetGlobalFactory().GetDirectoryRepository().ListHospitals(c.Query("city"), c.Query("type"))
	if err != nil {
		log.Printf("hospital listing failed: %v", err)
		return internalError(c, "Hospital listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(hospitals)
}

func HandleListExams(c *fiber.Ctx) error {
	exams, err := repository.GetGlobalFactory().GetDirectoryRepository().ListExams()
	if err != nil {
		log.Printf("exam listing failed: %v", err)
		return internalError(c, "Exam listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(exams)
}

func HandleListPublicServices(c *fiber.Ctx) error {
	services, err := repository.GetGlobalFactory().GetDirectoryRepository().ListPublicServices(c.Query("type"))
	if err != nil {
		log.Printf("public service listing failed: %v", err)
		return internalError(c, "Public service listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(services)
}

func HandleListLaws(c *fiber.Ctx) error {
	laws, err := repository.GetGlobalFactory().GetDirectoryRepository().ListLaws()
	if err != nil {
		log.Printf("law listing failed: %v", err)
		return internalError(c, "Law listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(laws)
}

func HandleListUtilities(c *fiber.Ctx) error {
	utilities, err := repository.GetGlobalFactory().GetDirectoryRepository().ListUtilities()
	if err != nil {
		log.Printf("utility listing failed: %v", err)
		return internalError(c, "Utility listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(utilities)
}

func HandleListCommodityPrices(c *fiber.Ctx) error {
	prices, err := repository.GetGlobalFactory().GetDirectoryRepository().ListCommodityPrices()
	if err != nil {
		log.Printf("commodity price listing failed: %v", err)
		return internalError(c, "Commodity price listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(prices)
}

func HandleListAgriTips(c *fiber.Ctx) error {
	tips, err := repository.GetGlobalFactory().GetDirectoryRepository().ListAgriTips()
	if err != nil {
		log.Printf("agri tip listing failed: %v", err)
		return internalError(c, "Agri tip listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(tips)
}

func HandleListPlaces(c *fiber.Ctx) error {
	places, err := repository.GetGlobalFactory().GetDirectoryRepository().ListPlaces(c.Query("type"), c.Query("city"))
	if err != nil {
		log.Printf("place listing failed: %v", err)
		return internalError(c, "Place listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(places)
}

func HandleListTransportInfo(c *fiber.Ctx) error {
	infos, err := repository.GetGlobalFactory().GetDirectoryRepository().ListTransportInfo(c.Query("topic"))
	if err != nil {
		log.Printf("transport info listing failed: %v", err)
		return internalError(c, "Transport info listing failed")
	}
	return c.Status(fiber.StatusOK).JSON(infos)
}
