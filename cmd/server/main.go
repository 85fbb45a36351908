package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocamaster/internal/audio"
	"vocamaster/internal/config"
	"vocamaster/internal/database"
	"vocamaster/internal/handlers"
	"vocamaster/internal/live"
	"vocamaster/internal/repository"
	"vocamaster/internal/security"
	"vocamaster/internal/service"
	"vocamaster/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Ensure the audio cache directory exists
	if err := os.MkdirAll(cfg.AudioFilesPath, 0755); err != nil {
		log.Fatalf("Failed to create audio directory: %v", err)
	}

	// Initialize repositories
	studentRepo := repository.NewStudentRepository(db)
	wordbookRepo := repository.NewWordbookRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	resultRepo := repository.NewResultRepository(db)

	// The store is the single write path; every mutation goes through it
	// so subscribers always see changes.
	dataStore := store.NewSQLStore(studentRepo, wordbookRepo, notificationRepo, resultRepo)

	// Initialize services
	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.SessionDuration)
	authService := service.NewAuthService(dataStore, tokens, cfg.AdminPassword, cfg.AdminPasswordHash)
	rosterService := service.NewRosterService(dataStore)
	ttsService := audio.NewTTSService(cfg.AudioFilesPath)
	wordbookService := service.NewWordbookService(dataStore, ttsService)
	quizService := service.NewQuizService(dataStore)
	reviewService := service.NewReviewService(dataStore)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.NotifyEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	notificationService := service.NewNotificationService(dataStore, emailService)

	hub := live.NewHub(dataStore)

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(tokens, limiter)
	authHandler := handlers.NewAuthHandler(authService, cfg.SessionDuration)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	wordbookHandler := handlers.NewWordbookHandler(wordbookService, dataStore)
	quizHandler := handlers.NewQuizHandler(quizService)
	resultsHandler := handlers.NewResultsHandler(reviewService, dataStore)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	speechHandler := handlers.NewSpeechHandler(ttsService)
	syncHandler := handlers.NewSyncHandler(hub)

	// Setup routes
	mux := http.NewServeMux()

	// Session routes
	mux.HandleFunc("POST /api/session", middleware.RateLimit(authHandler.Bootstrap))
	mux.HandleFunc("GET /api/session", middleware.RequireIdentity(authHandler.Session))
	mux.HandleFunc("POST /api/login/student", middleware.RateLimit(middleware.RequireIdentity(authHandler.StudentLogin)))
	mux.HandleFunc("POST /api/login/admin", middleware.RateLimit(middleware.RequireIdentity(authHandler.AdminLogin)))
	mux.HandleFunc("POST /api/logout", middleware.RequireIdentity(authHandler.Logout))

	// Collection routes
	mux.HandleFunc("GET /api/wordbooks", middleware.RequireIdentity(wordbookHandler.List))
	mux.HandleFunc("GET /api/wordbooks/{id}", middleware.RequireIdentity(wordbookHandler.Get))
	mux.HandleFunc("POST /api/wordbooks", middleware.RequireIdentity(wordbookHandler.Create))
	mux.HandleFunc("DELETE /api/wordbooks/{id}", middleware.RequireAdmin(wordbookHandler.Delete))
	mux.HandleFunc("GET /api/notifications", middleware.RequireIdentity(notificationHandler.List))

	// Student routes
	mux.HandleFunc("POST /api/quiz/start", middleware.RequireStudent(quizHandler.Start))
	mux.HandleFunc("POST /api/quiz/answer", middleware.RequireStudent(quizHandler.Submit))
	mux.HandleFunc("POST /api/quiz/reset", middleware.RequireStudent(quizHandler.Reset))
	mux.HandleFunc("GET /api/results", middleware.RequireStudent(resultsHandler.Mine))
	mux.HandleFunc("GET /api/review", middleware.RequireStudent(resultsHandler.Review))

	// Admin routes
	mux.HandleFunc("GET /api/admin/students", middleware.RequireAdmin(rosterHandler.List))
	mux.HandleFunc("POST /api/admin/students", middleware.RequireAdmin(rosterHandler.Add))
	mux.HandleFunc("DELETE /api/admin/students/{id}", middleware.RequireAdmin(rosterHandler.Remove))
	mux.HandleFunc("POST /api/admin/notifications", middleware.RequireAdmin(notificationHandler.Broadcast))
	mux.HandleFunc("GET /api/admin/results", middleware.RequireAdmin(resultsHandler.All))

	// Speech and live sync
	mux.HandleFunc("GET /api/speech", middleware.RequireIdentity(speechHandler.Speak))
	mux.HandleFunc("GET /ws", middleware.RequireIdentity(syncHandler.Stream))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server. WriteTimeout stays unset so long-lived websocket
	// connections are not cut off.
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
