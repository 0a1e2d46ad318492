package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medisys/hospital-api/internal/api/handler"
	"github.com/medisys/hospital-api/internal/api/middleware"
	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/service"
	"github.com/medisys/hospital-api/internal/infrastructure/config"
	mongodb "github.com/medisys/hospital-api/internal/infrastructure/db/mongo"
	redisdb "github.com/medisys/hospital-api/internal/infrastructure/db/redis"
	"github.com/medisys/hospital-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hospital"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	apptRepo := mongodb.NewAppointmentRepository(db)
	rxRepo := mongodb.NewPrescriptionRepository(db)

	// --- Services ---
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL)
	authService := service.NewAuthService(userRepo, tokens, cfg.BcryptCost, log)
	userService := service.NewUserService(userRepo, cfg.BcryptCost, log)
	apptService := service.NewAppointmentService(apptRepo, userRepo, log)
	rxService := service.NewPrescriptionService(rxRepo, apptRepo, userRepo, log)
	dashService := service.NewDashboardService(userRepo, apptRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService, dashService)
	doctorHandler := handler.NewDoctorHandler(userService, apptService, rxService)
	patientHandler := handler.NewPatientHandler(userService, apptService, rxService)
	recepHandler := handler.NewReceptionistHandler(userService, apptService)

	// --- Middleware ---
	authMW := middleware.Auth(authService)
	limiter := redisdb.NewRateLimiter(rdb)
	apiLimit := middleware.RateLimit(limiter, "api", cfg.RateLimit.APILimit, cfg.RateLimit.Window, log)
	authLimit := middleware.RateLimit(limiter, "auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.Window, log)

	api := e.Group("/api", apiLimit)

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, authLimit)
	auth.POST("/login", authHandler.Login, authLimit)
	auth.POST("/forgot-password", authHandler.ForgotPassword, authLimit)
	auth.POST("/reset-password/:token", authHandler.ResetPassword, authLimit)
	auth.POST("/logout", authHandler.Logout, authMW)
	auth.GET("/me", authHandler.Me, authMW)
	auth.PUT("/password", authHandler.UpdatePassword, authMW)

	// --- Admin routes ---
	admin := api.Group("/admin", authMW, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.POST("/doctors", adminHandler.CreateDoctor)
	admin.GET("/doctors", adminHandler.ListDoctors)
	admin.DELETE("/doctors/:id", adminHandler.DeleteDoctor)
	admin.POST("/receptionists", adminHandler.CreateReceptionist)
	admin.DELETE("/receptionists/:id", adminHandler.DeleteReceptionist)
	admin.GET("/patients", adminHandler.ListPatients)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Doctor routes ---
	doctor := api.Group("/doctor", authMW, middleware.RBAC(domain.RoleDoctor))
	doctor.GET("/profile", doctorHandler.Profile)
	doctor.PUT("/profile", doctorHandler.UpdateProfile)
	doctor.GET("/appointments", doctorHandler.ListAppointments)
	doctor.PUT("/appointments/:id/status", doctorHandler.UpdateAppointmentStatus)
	doctor.POST("/prescriptions", doctorHandler.CreatePrescription)
	doctor.GET("/prescriptions", doctorHandler.ListPrescriptions)

	// --- Patient routes ---
	patient := api.Group("/patient", authMW, middleware.RBAC(domain.RolePatient))
	patient.GET("/profile", patientHandler.Profile)
	patient.PUT("/profile", patientHandler.UpdateProfile)
	patient.GET("/appointments", patientHandler.ListAppointments)
	patient.GET("/prescriptions", patientHandler.ListPrescriptions)

	// --- Receptionist routes ---
	recep := api.Group("/receptionist", authMW, middleware.RBAC(domain.RoleReceptionist))
	recep.POST("/patients", recepHandler.RegisterPatient)
	recep.GET("/patients", recepHandler.ListPatients)
	recep.POST("/appointments", recepHandler.BookAppointment)
	recep.GET("/appointments", recepHandler.ListAppointments)
	recep.PUT("/appointments/:id/cancel", recepHandler.CancelAppointment)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	// Serves the UI; /swagger/doc.json needs the docs package generated by
	// `swag init -g cmd/server/main.go` and blank-imported here.
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
