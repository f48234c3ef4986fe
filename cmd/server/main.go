package main

import (
	"log"
	"math/rand"
	"time"

	"howyouknow-backend/internal/config"
	"howyouknow-backend/internal/database"
	"howyouknow-backend/internal/handlers"
	"howyouknow-backend/internal/middleware"
	"howyouknow-backend/internal/services"
	"howyouknow-backend/internal/stores"
	"howyouknow-backend/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	userStore := stores.NewGormUserStore(db)
	questionStore := stores.NewGormQuestionStore(db)
	sessionStore := stores.NewGormSessionStore(db)
	answeredStore := stores.NewGormAnsweredQuestionStore(db)

	rules := services.GameRules{
		ScoringMode:         cfg.ScoringMode,
		TimingMode:          cfg.TimingMode,
		SessionSeconds:      cfg.SessionSeconds,
		QuestionsPerSession: cfg.QuestionsPerSession,
		HintBudget:          cfg.HintBudget,
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	selectionService := services.NewSelectionService(rng, cfg.QuestionsPerSession)
	evaluatorService := services.NewEvaluatorService()
	scoringService := services.NewScoringService(cfg.ScoringMode)
	authService := services.NewAuthService(userStore, cfg.JWTSecret)
	pairingService := services.NewPairingService(userStore)
	questionService := services.NewQuestionService(userStore, questionStore)
	gameService := services.NewGameService(
		userStore, questionStore, sessionStore, answeredStore,
		selectionService, evaluatorService, scoringService, rules, hub,
	)

	authHandler := handlers.NewAuthHandler(authService)
	pairingHandler := handlers.NewPairingHandler(pairingService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	gameHandler := handlers.NewGameHandler(gameService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws/game/:id", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(middleware.JWTAuth(authService))
		{
			users.GET("/me", pairingHandler.Me)
		}

		pairing := api.Group("/pairing")
		pairing.Use(middleware.JWTAuth(authService))
		{
			pairing.POST("/connect", pairingHandler.Connect)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.POST("", questionHandler.CreateQuestion)
			questions.GET("", questionHandler.ListMyQuestions)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
		}

		game := api.Group("/game")
		game.Use(middleware.JWTAuth(authService))
		{
			game.POST("/sessions", gameHandler.StartGame)
			game.GET("/sessions", gameHandler.ListSessions)
			game.GET("/sessions/:id", gameHandler.GetState)
			game.POST("/sessions/:id/select", gameHandler.SelectAnswer)
			game.POST("/sessions/:id/hint", gameHandler.UseHint)
			game.POST("/sessions/:id/answer", gameHandler.SubmitAnswer)
			game.POST("/sessions/:id/retry", gameHandler.ResolveRetry)
			game.POST("/sessions/:id/abandon", gameHandler.Abandon)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
