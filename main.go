package main

import (
	"log"
	"time"

	"ieltsprep/ai"
	"ieltsprep/config"
	contentController "ieltsprep/controllers/content"
	evaluationController "ieltsprep/controllers/evaluation"
	examController "ieltsprep/controllers/exam"
	practiceController "ieltsprep/controllers/practice"
	premiumController "ieltsprep/controllers/premium"
	profileController "ieltsprep/controllers/profile"
	"ieltsprep/database"
	"ieltsprep/middleware"
	contentRoutes "ieltsprep/routers/contentRoutes"
	evaluationRoutes "ieltsprep/routers/evaluationRoutes"
	examRoutes "ieltsprep/routers/examRoutes"
	practiceRoutes "ieltsprep/routers/practiceRoutes"
	premiumRoutes "ieltsprep/routers/premiumRoutes"
	profileRoutes "ieltsprep/routers/profileRoutes"
	"ieltsprep/services"
	"ieltsprep/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()

	db := database.ConnectDb()

	store := services.NewGormStore(db)
	profileService := services.NewProfileService(store)
	entitlementService := services.NewEntitlementService(profileService)
	aggregator := services.NewAggregator(store)
	sessionService := services.NewSessionService(store, entitlementService, aggregator)
	premiumService := services.NewPremiumService(store, profileService)

	bridge := ai.New(
		config.AppConfig.AIBaseURL,
		config.AppConfig.AIAPIKey,
		config.AppConfig.AIModel,
		config.AppConfig.AITranscribeModel,
		time.Duration(config.AppConfig.AIEvalTimeoutSec)*time.Second,
	)
	audio := utils.NewAudioClient(config.AppConfig.AudioBaseURL)
	evaluationService := services.NewEvaluationService(store, bridge, audio)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-User-Id",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK!", fiber.Map{"status": "healthy"})
	})

	// JWT identity first, X-User-Id as a fallback for trusted gateways
	identity := middleware.Identity(middleware.ChainResolver{
		middleware.JWTResolver{},
		middleware.HeaderResolver{},
	})

	contentRoutes.SetupContentRoutes(app, contentController.NewContentController(db))
	practiceRoutes.SetupPracticeRoutes(app, practiceController.NewPracticeController(sessionService), identity)
	examRoutes.SetupExamRoutes(app, examController.NewExamController(sessionService), identity)
	evaluationRoutes.SetupEvaluationRoutes(app, evaluationController.NewEvaluationController(evaluationService), identity)
	profileRoutes.SetupProfileRoutes(app, profileController.NewProfileController(profileService, db), identity)
	premiumRoutes.SetupPremiumRoutes(app, premiumController.NewPremiumController(premiumService), identity)

	utils.InitializeSubscriptionScheduler(db)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
