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

	"planpilot-backend/internal/config"
	"planpilot-backend/internal/handlers"
	"planpilot-backend/internal/middleware"
	"planpilot-backend/internal/router"
	"planpilot-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting PlanPilot Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠ OPENAI_API_KEY is not set; chat and analysis requests will fail until it is configured")
	}

	// ──── Step 2: Initialize Upstream Clients ────
	completions := services.NewCompletionClient(cfg.OpenAIAPIKey)
	speech := services.NewSpeechClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID)
	if speech.Configured() {
		log.Println("✓ Speech synthesis enabled")
	} else {
		log.Println("✓ Speech synthesis disabled (no ElevenLabs credentials)")
	}

	// ──── Step 3: Initialize Services ────
	chatService := services.NewChatService(completions, speech)
	scheduleService := services.NewScheduleService(completions)

	// ──── Step 4: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(chatService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, cfg.MaxUploadMB)

	// ──── Step 5: Start HTTP Server ────
	originGuard := middleware.NewOriginGuard(cfg.AllowedOrigins)
	r := router.New(originGuard, chatHandler, scheduleHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	log.Printf("✓ PlanPilot Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
