package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/config"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/database"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/handlers"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/repository"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/routes"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/service"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Connect to MongoDB. The server still comes up on the file store
	// when the database is unreachable.
	databaseMode := "mongodb"
	var studentPrimary repository.StudentRepository
	var contactPrimary repository.ContactRepository

	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Printf("⚠️  MongoDB unavailable, falling back to file storage: %v", err)
		databaseMode = "file"
	} else {
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("Failed to disconnect from MongoDB: %v", err)
			}
		}()

		db := client.Database(cfg.DatabaseName)
		indexCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		if err := database.EnsureIndexes(indexCtx, db); err != nil {
			log.Printf("Failed to create indexes: %v", err)
		}
		cancel()

		studentPrimary = repository.NewMongoStudentRepository(db)
		contactPrimary = repository.NewMongoContactRepository(db)
	}

	// Repositories: MongoDB primary with file fallback and CSV audit trail
	studentRepo := repository.NewFailoverStudentRepository(
		studentPrimary,
		repository.NewFileStudentStore(filepath.Join(cfg.DataDir, "applications.json")),
		repository.NewAdmissionsAuditor(filepath.Join(cfg.DataDir, "admissions.csv")),
	)
	contactRepo := repository.NewFailoverContactRepository(
		contactPrimary,
		repository.NewFileContactStore(filepath.Join(cfg.DataDir, "contacts.json")),
		repository.NewInquiriesAuditor(filepath.Join(cfg.DataDir, "inquiries.csv")),
	)

	// Services and handlers
	mailer := utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	studentService := service.NewStudentService(studentRepo, mailer)
	contactService := service.NewContactService(contactRepo)

	studentHandler := handlers.NewStudentHandler(studentService, cfg.IsDevelopment())
	contactHandler := handlers.NewContactHandler(contactService, cfg.IsDevelopment())

	// Initialize router
	router := routes.SetupRouter(studentHandler, contactHandler, databaseMode)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: c.Handler(router),
	}

	go func() {
		log.Printf("🚀 Server running on port %s (database: %s)", cfg.Port, databaseMode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
