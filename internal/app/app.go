package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/CsnCaio/SROA-challenge/internal/config"
	"github.com/CsnCaio/SROA-challenge/internal/handlers"
	"github.com/CsnCaio/SROA-challenge/internal/repositories"
	"github.com/CsnCaio/SROA-challenge/internal/routes"
	"github.com/CsnCaio/SROA-challenge/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	notifiers := []services.ResetNotifier{emailService}
	if cfg.Telegram.BotToken != "" {
		tg, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("Telegram-канал недоступен, продолжаем без него: %v", err)
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	accountService := services.NewAccountService(
		userRepo,
		authService,
		tokenService,
		emailService,
		notifiers,
		cfg.Auth.TokenTTL.Std(),
		cfg.Auth.ResetTokenTTL.Std(),
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService)
	userHandler := handlers.NewUserHandler(accountService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	routes.SetupRoutes(router, authHandler, userHandler, tokenService)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
