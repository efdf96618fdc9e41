package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/jd-resume-matcher/internal/config"
	"alfredoptarigan/jd-resume-matcher/internal/handlers"
	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/repositories"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	sessionRepo := repositories.NewSessionRepository()
	log.Println("✅ Session repository initialized")

	// Initialize services
	validator := services.NewFileValidator()
	pdfParser := services.NewPDFParserService()
	loader := services.NewCandidateLoader()
	analyzer := services.NewAnalyzerClient(cfg.Analyzer.URL, cfg.Analyzer.Timeout)
	log.Printf("✅ Analyzer client targeting %s\n", cfg.Analyzer.URL)

	newSession := func() services.UploadController {
		return services.NewUploadSession(services.SessionDeps{
			Validator: validator,
			Inspector: pdfParser,
			Analyzer:  analyzer,
		})
	}

	// Initialize worker
	worker := services.NewWorker(sessionRepo, services.WorkerOptions{
		Concurrency:   cfg.Worker.Concurrency,
		QueueSize:     cfg.Worker.QueueSize,
		SessionTTL:    cfg.Session.TTL,
		SweepInterval: cfg.Session.SweepInterval,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	// Initialize Handlers
	h := handlers.Handlers{
		Session:    handlers.NewSessionHandler(sessionRepo, newSession),
		Upload:     handlers.NewUploadHandler(sessionRepo, loader),
		Evaluation: handlers.NewEvaluationHandler(sessionRepo, worker),
		Result:     handlers.NewResultHandler(sessionRepo),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:           "JD Resume Match Analyzer API",
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		EnablePrintRoutes: cfg.IsDevelopment(),
		// one file per request, with room for the multipart envelope
		BodyLimit:    int(2 * models.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	handlers.RegisterRoutes(app.Group("/api/v1"), h)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "JD Resume Match Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"PUT /api/v1/sessions/:id/files/:slot",
				"POST /api/v1/sessions/:id/submit",
				"POST /api/v1/sessions/:id/reset",
				"DELETE /api/v1/sessions/:id",
				"POST /api/v1/normalize",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		cancel()
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
