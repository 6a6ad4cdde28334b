package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/emailjs"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/router"
	"portfolio-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Portfolio Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Invalid configuration: %v", err)
	}
	log.Println("✓ Environment variables loaded")
	if cfg.GeminiKey() == "" {
		log.Println("⚠ GEMINI_API_KEY is not set; chat requests will fail until it is")
	}

	// ──── Step 2: Load Assistant Knowledge ────
	persona, err := services.LoadPersona(cfg.KnowledgePath)
	if err != nil {
		log.Fatalf("✗ Knowledge load failed: %v", err)
	}
	if cfg.KnowledgePath != "" {
		log.Printf("✓ Knowledge loaded from %s", cfg.KnowledgePath)
	} else {
		log.Println("✓ Built-in knowledge loaded")
	}

	// ──── Step 3: Initialize Gemini Gateway ────
	geminiService := services.NewGeminiService(
		cfg.GeminiKey,
		cfg.GeminiModel,
		cfg.GeminiRequestsPerMin,
		cfg.GeminiConcurrentReqs,
	)
	chatService := services.NewChatService(services.NewPromptBuilder(persona), geminiService)
	log.Printf("✓ Gemini gateway ready (%s)", cfg.GeminiModel)

	// ──── Step 4: Optional Contact Archive ────
	var archive services.ContactArchive
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()
		log.Println("✓ PostgreSQL connected")

		if err := database.RunMigrations(pool, cfg.MigrationsPath); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")
		archive = repository.NewContactRepo(pool)
	} else {
		log.Println("⚠ DATABASE_URL not set; contact submissions are not archived")
	}

	// ──── Step 5: Contact Delivery ────
	var relay *emailjs.Client
	creds := emailjs.Credentials{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
		PrivateKey: cfg.EmailJSPrivateKey,
	}
	if creds.Complete(true) {
		relay = emailjs.NewClient(creds, "")
		log.Println("✓ EmailJS relay configured")
	}
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.OwnerEmail)

	contactService := services.NewContactService(relay, emailService, archive)

	// ──── Step 6: Rate Limiters ────
	chatLimiter, contactLimiter, rdb := newLimiters(cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(chatService)
	contactHandler := handlers.NewContactHandler(contactService)
	cvHandler := handlers.NewCVHandler(cfg.CVPath)
	if cfg.CVPath == "" {
		log.Println("⚠ CV_PATH not set; /api/cv will return 404")
	}

	// ──── Step 7: Start HTTP Server ────
	r := router.New(chatHandler, contactHandler, cvHandler, chatLimiter, contactLimiter, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Portfolio Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// newLimiters counts in Redis when REDIS_URL is set and reachable, in memory
// otherwise.
func newLimiters(cfg *config.Config) (chat, contact *middleware.RateLimiter, rdb *redis.Client) {
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err == nil {
			log.Println("✓ Redis connected (shared rate limits)")
			return middleware.NewRedisRateLimiter(client, "chat", cfg.ChatRateLimitPerMin, time.Minute),
				middleware.NewRedisRateLimiter(client, "contact", cfg.ContactRateLimitPerMin, time.Minute),
				client
		}
		log.Printf("⚠ Redis unavailable, using in-memory rate limits: %v", err)
	}
	return middleware.NewRateLimiter("chat", cfg.ChatRateLimitPerMin, time.Minute),
		middleware.NewRateLimiter("contact", cfg.ContactRateLimitPerMin, time.Minute),
		nil
}
