package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Shubham-2704/AgriNova/internal/auth"
	"github.com/Shubham-2704/AgriNova/internal/config"
	"github.com/Shubham-2704/AgriNova/internal/handler"
	"github.com/Shubham-2704/AgriNova/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	identity *auth.IdentityService,
	sessions *session.Store,
	authHandler *handler.AuthHandler,
	sessionHandler *handler.SessionHandler,
	dashboardHandler *handler.DashboardHandler,
	contactHandler *handler.ContactHandler,
	preferencesHandler *handler.PreferencesHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(ClientIdentity(identity))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := e.Group("/api")

	// Auth routes are rate limited per IP.
	authGroup := api.Group("/auth", RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst))
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/google", authHandler.Google)
	authGroup.POST("/logout", sessionHandler.Logout)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.POST("/verify-otp", authHandler.VerifyOTP)
	authGroup.POST("/resend-otp", authHandler.ResendOTP)
	authGroup.POST("/reset-password", authHandler.ResetPassword)
	authGroup.GET("/reset-status", authHandler.ResetStatus)
	authGroup.DELETE("/reset-flow", authHandler.AbandonReset)

	// Identity-scoped routes: a client cookie is enough, no login required.
	api.GET("/session", sessionHandler.Get)
	api.POST("/contact", contactHandler.Submit)
	api.GET("/preferences", preferencesHandler.Get)
	api.PUT("/preferences", preferencesHandler.Update)
	api.GET("/notifications", notificationHandler.List)
	api.DELETE("/notifications/:id", notificationHandler.Dismiss)

	// Protected routes: a valid identity cookie plus a resolved, logged-in
	// session. The guard resolves the session before any access decision.
	protected := api.Group("/dashboard", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + ClientCookieName,
	}), SessionGuard(sessions))

	protected.GET("", dashboardHandler.View)
	protected.GET("/options", dashboardHandler.Options)
	protected.PUT("/location", dashboardHandler.SetLocation)
	protected.GET("/weather", dashboardHandler.Weather)
	protected.POST("/predict", dashboardHandler.Predict)
	protected.POST("/expand", dashboardHandler.ToggleExpand)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
