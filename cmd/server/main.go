// @title         LAR University Advisor API
// @version       1.0
// @description   Servicio que analiza CVs y perfiles de LinkedIn para recomendar la especialización ideal de LAR University, con un chat asesor impulsado por IA.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Token de autorización. Formatos soportados: "Bearer <JWT>" o "<JWT>".
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	_ "github.com/lar-university/advisor/docs"

	// internal imports
	"github.com/lar-university/advisor/api/http"
	"github.com/lar-university/advisor/api/http/handlers"
	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/chat"
	"github.com/lar-university/advisor/pkg/config"
	"github.com/lar-university/advisor/pkg/health"
	"github.com/lar-university/advisor/pkg/health/checkers"
	"github.com/lar-university/advisor/pkg/llm/openai"
	"github.com/lar-university/advisor/pkg/repository/memory"
	"github.com/lar-university/advisor/pkg/security/jwt"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 12 << 20,
	})

	// Load configuration from env/.env
	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set, analysis and chat will fail")
	}

	// Session store: everything lives in memory and is lost on restart.
	store := memory.NewStore()

	// Token generator and auth middleware
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer, store.Accounts())

	// Model client
	llmClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	// Wire dependencies (Clean Architecture)
	accountUC := account.NewService(store.Accounts(), jwtGen)
	analysisUC := analysis.NewService(store.Analyses(), store.Accounts(), llmClient)
	chatUC := chat.NewService(store.Chats(), store.Analyses(), llmClient)

	authHandler := handlers.NewAuthHandler(accountUC)
	userHandler := handlers.NewUserHandler(accountUC, store.Chats(), store.Analyses())
	chatHandler := handlers.NewChatHandler(chatUC)
	cvHandler := handlers.NewCVHandler(analysisUC, cfg.MaxUploadMB, cfg.UploadDir)
	recHandler := handlers.NewRecommendationHandler(analysisUC)

	// Health service: compose checkers
	readiness := health.NewService(
		checkers.NewStoreChecker(func() error {
			_ = store.Stats()
			return nil
		}),
		checkers.NewModelChecker(cfg.OpenAIAPIKey),
	)
	healthHandler := handlers.NewHealthHandler(readiness)

	// Register middleware and routes
	http.Register(app, http.MiddlewareConfig{
		FrontendURL:     cfg.FrontendURL,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: time.Duration(cfg.RateLimitWindowMins) * time.Minute,
	}, authMW, authHandler, userHandler, chatHandler, cvHandler, recHandler, healthHandler)

	// Start server
	port := cfg.Port
	log.Printf("HTTP server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
