package router

import (
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/alloservices/alloci/app/controllers"
	"github.com/alloservices/alloci/app/models"
	"github.com/alloservices/alloci/internal/pkg/cache"
	"github.com/alloservices/alloci/internal/pkg/env"
	"github.com/alloservices/alloci/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:     120,
		Storage: limiterStorage(),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Allô Services CI API",
		})
	})

	api.Post("/auth/register", controllers.HandleRegister)
	api.Get("/categories", controllers.HandleListCategories)
	api.Post("/seed", controllers.HandleSeed)

	// Alerts are part of the free tier together with emergency numbers.
	api.Get("/alerts", controllers.HandleListAlerts)
	api.Post("/alerts", controllers.HandleCreateAlert)
	api.Post("/alerts/:id/resolve", controllers.HandleResolveAlert)

	// Premium-gated directory endpoints, one gate per category.
	sante := api.Group("/", middleware.RequirePremium(models.CategorySante))
	sante.Get("/pharmacies/nearby", controllers.HandlePharmaciesNearby)
	sante.Get("/hospitals", controllers.HandleListHospitals)

	api.Get("/exams", middleware.RequirePremium(models.CategoryExamensConcours), controllers.HandleListExams)

	publics := api.Group("/", middleware.RequirePremium(models.CategoryServicesPublics))
	publics.Get("/public-services", controllers.HandleListPublicServices)
	publics.Get("/laws", controllers.HandleListLaws)

	jobs := api.Group("/jobs", middleware.RequirePremium(models.CategoryEmplois))
	jobs.Get("/", controllers.HandleListJobs)
	jobs.Post("/", controllers.HandleCreateJob)

	api.Get("/utilities", middleware.RequirePremium(models.CategoryServicesUtiles), controllers.HandleListUtilities)

	agri := api.Group("/agriculture", middleware.RequirePremium(models.CategoryAgriculture))
	agri.Get("/prices", controllers.HandleListCommodityPrices)
	agri.Get("/tips", controllers.HandleListAgriTips)

	api.Get("/places", middleware.RequirePremium(models.CategoryLoisirsTourisme), controllers.HandleListPlaces)
	api.Get("/transport", middleware.RequirePremium(models.CategoryTransport), controllers.HandleListTransportInfo)

	// Payment and subscription endpoints are never premium-gated, otherwise
	// nobody could ever become premium.
	payments := api.Group("/payments")
	payments.Get("/stats", controllers.HandlePaymentStats)
	payments.Post("/:provider/initiate", controllers.HandlePaymentInitiate)
	payments.Post("/:provider/webhook", controllers.HandlePaymentWebhook)
	payments.Get("/:provider/status/:transaction_id", controllers.HandlePaymentStatus)
	payments.Post("/:provider/validate", controllers.HandlePaymentValidate)

	api.Get("/subscriptions/check", controllers.HandleSubscriptionCheck)
}

// limiterStorage backs the rate limiter with Redis so limits hold across
// replicas. Falls back to the limiter's in-memory storage when the cache
// client is not configured (tests).
func limiterStorage() fiber.Storage {
	client := cache.GetClient()
	if client == nil {
		return nil
	}

	host := "localhost"
	port := 6379
	if h, p, err := net.SplitHostPort(client.Options().Addr); err == nil {
		host = h
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: 1, // rate limiter state is kept apart from the cache (DB 0)
		Reset:    false,
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
