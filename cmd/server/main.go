package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Shubham-2704/AgriNova/internal/auth"
	"github.com/Shubham-2704/AgriNova/internal/authflow"
	"github.com/Shubham-2704/AgriNova/internal/backend"
	"github.com/Shubham-2704/AgriNova/internal/cache"
	"github.com/Shubham-2704/AgriNova/internal/config"
	"github.com/Shubham-2704/AgriNova/internal/contact"
	"github.com/Shubham-2704/AgriNova/internal/dashboard"
	"github.com/Shubham-2704/AgriNova/internal/handler"
	"github.com/Shubham-2704/AgriNova/internal/locales"
	"github.com/Shubham-2704/AgriNova/internal/router"
	"github.com/Shubham-2704/AgriNova/internal/session"
	"github.com/Shubham-2704/AgriNova/internal/toast"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	strings, err := locales.Load()
	if err != nil {
		log.Fatalf("locales init: %v", err)
	}
	tr := strings.Translator(cfg.DefaultLocale)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Printf("Warning: redis unreachable, client state will not persist: %v", err)
	}
	cancel()

	api := backend.New(cfg.BackendBaseURL, cfg.RequestTimeout)

	// Initialize client identity and per-client storage
	identity := auth.NewIdentityService(cfg.JWTSecret)
	clientStore := auth.NewClientStore(cacheClient)

	// Initialize core state
	toasts := toast.NewQueue(cfg.ToastTTL)
	sessions := session.New(clientStore, api)
	flows := authflow.New(api, sessions, clientStore, toasts, tr, cfg.OTPResendDefault, cfg.ResetRedirectDelay)
	orchestrator := dashboard.New(api, clientStore, tr)
	contactService := contact.NewService(api, toasts, tr)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(flows)
	sessionHandler := handler.NewSessionHandler(sessions, orchestrator, toasts, tr)
	dashboardHandler := handler.NewDashboardHandler(orchestrator)
	contactHandler := handler.NewContactHandler(contactService)
	preferencesHandler := handler.NewPreferencesHandler(clientStore)
	notificationHandler := handler.NewNotificationHandler(toasts)

	// Register routes
	router.Register(
		e,
		cfg,
		identity,
		sessions,
		authHandler,
		sessionHandler,
		dashboardHandler,
		contactHandler,
		preferencesHandler,
		notificationHandler,
	)

	log.Printf("AgriNova gateway proxying %s", cfg.BackendBaseURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
