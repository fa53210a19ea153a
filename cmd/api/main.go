package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/config"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/db"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/handlers"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/middleware"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/realtime"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/services/safety"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal("DB connect error: ", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.WorkerProfile{},
		&models.Job{},
		&models.SafetyPolicy{},
		&models.SOSAlert{},
		&models.Rating{},
		&models.Scheme{},
	); err != nil {
		log.Fatal("Migration error: ", err)
	}

	if err := db.SeedSchemes(gdb); err != nil {
		log.Fatal("Seed error: ", err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis connect error: ", err)
	}

	hub := realtime.NewHub()
	go hub.Run()
	go hub.BridgeRedis(context.Background(), rdb)

	safetyService := safety.NewSafetyService(gdb)

	authH := &handlers.AuthHandler{
		DB:        gdb,
		RDB:       rdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	onboardingH := handlers.NewOnboardingHandler(gdb, cfg.UploadDir, cfg.PublicBaseURL)
	jobH := handlers.NewJobHandler(gdb, safetyService)
	safetyH := handlers.NewSafetyHandler(safetyService)
	sosH := handlers.NewSOSHandler(gdb, hub, rdb, cfg.JWTSecret)
	dashboardH := handlers.NewDashboardHandler(gdb)
	ratingH := handlers.NewRatingHandler(gdb)
	schemeH := handlers.NewSchemeHandler(gdb)
	adminH := handlers.NewAdminHandler(gdb)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// ---- public ----
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Get("/auth/google", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	api.Get("/schemes", schemeH.List)
	api.Get("/schemes/:id", schemeH.Get)
	api.Get("/impact", adminH.ImpactStats)

	// ---- authenticated ----
	auth := api.Group("/",
		middleware.JWTFromHeader(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
		middleware.CheckRevoked(rdb),
	)

	auth.Post("/auth/logout", authH.Logout)
	auth.Get("/auth/me", authH.Me)

	// worker onboarding
	onboarding := auth.Group("/onboarding", middleware.RequireRoles("worker"))
	onboarding.Get("/status", onboardingH.Status)
	onboarding.Post("/resume", onboardingH.UploadResume)
	onboarding.Post("/work-mode", onboardingH.SetWorkMode)
	onboarding.Post("/verify", onboardingH.Verify)
	onboarding.Post("/step", onboardingH.AdvanceStep)

	// jobs; the fixed-segment routes must register before /jobs/:id
	auth.Post("/jobs", middleware.RequireRoles("employer"), jobH.PostJob)
	auth.Get("/jobs", jobH.ListOpen)
	auth.Get("/jobs/employer/:id", middleware.RequireRoles("employer", "admin"), jobH.EmployerJobs)
	auth.Get("/jobs/worker/:id",
		middleware.RequireRoles("worker", "admin"),
		middleware.RequireOnboardingComplete(gdb),
		jobH.WorkerJobs)
	auth.Get("/jobs/:id", jobH.GetJob)
	auth.Post("/jobs/:id/apply",
		middleware.RequireRoles("worker"),
		middleware.RequireOnboardingComplete(gdb),
		jobH.Apply)
	auth.Post("/jobs/:id/complete", jobH.Complete)
	auth.Get("/jobs/:id/rated", ratingH.JobRated)

	// dashboards; the employer route must register before /dashboard/:email
	workerDash := middleware.RequireRoles("worker", "admin")
	onboarded := middleware.RequireOnboardingComplete(gdb)
	auth.Get("/dashboard/employer/:id",
		middleware.RequireRoles("employer", "admin"),
		dashboardH.EmployerDashboard)
	auth.Get("/dashboard/:email", workerDash, onboarded, dashboardH.WorkerDashboard)
	auth.Get("/trust-score/:email", workerDash, onboarded, dashboardH.TrustScore)
	auth.Get("/weekly-jobs/:email", workerDash, onboarded, dashboardH.WeeklyJobs)
	auth.Get("/safety/policies/:worker_id", workerDash, onboarded, safetyH.WorkerPolicies)

	// SOS
	auth.Post("/sos",
		middleware.RequireRoles("worker"),
		middleware.RequireOnboardingComplete(gdb),
		sosH.Trigger)
	auth.Get("/sos/alerts", middleware.RequireRoles("admin"), sosH.List)
	auth.Patch("/sos/alerts/:id/acknowledge", middleware.RequireRoles("admin"), sosH.Acknowledge)

	// ratings
	auth.Post("/ratings", ratingH.Create)
	auth.Get("/ratings/user/:id", ratingH.ListForUser)

	// admin console
	admin := auth.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/users", adminH.ListUsers)
	admin.Patch("/users/:id/verify", adminH.VerifyUser)
	admin.Patch("/users/:id/deactivate", adminH.DeactivateUser)
	admin.Delete("/users/:id", adminH.DeleteUser)
	admin.Get("/stats", adminH.Stats)

	// live SOS feed for the admin console; auth happens inside the handler
	// because browsers cannot set headers on a WebSocket upgrade
	app.Get("/ws/sos", websocket.New(sosH.WebSocketHandler))

	app.Static("/uploads", cfg.UploadDir)

	log.Printf("[SWAYAM] listening on :%s\n", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}
