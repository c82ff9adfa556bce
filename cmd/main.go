package main

import (
	"github.com/Ashura8/proyectobackend/internal/handler"
	"github.com/Ashura8/proyectobackend/internal/mailer"
	"github.com/Ashura8/proyectobackend/internal/middleware"
	"github.com/Ashura8/proyectobackend/internal/model"
	"github.com/Ashura8/proyectobackend/internal/workflow"
	"github.com/Ashura8/proyectobackend/pkg/config"
	"github.com/Ashura8/proyectobackend/pkg/database"
	"github.com/Ashura8/proyectobackend/pkg/jwtutil"
	"github.com/Ashura8/proyectobackend/pkg/logger"
	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting inventory and service backend...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(db,
		&model.User{},
		&model.InventoryItem{},
		&model.ServiceRequest{},
		&model.Service{},
		&model.EmailLog{},
	); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Wire up handlers
	store := workflow.NewStore(log, db)
	authHandler := handler.NewAuthHandler(db, jwtUtil)
	inventoryHandler := handler.NewInventoryHandler(db)
	requestHandler := handler.NewRequestHandler(store)
	serviceHandler := handler.NewServiceHandler(store)
	emailHandler := handler.NewEmailHandler(db, mailer.NewSMTPSender(&cfg.SMTP))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Inventory ledger
	e.GET("/api/inventario", inventoryHandler.ListItems,
		middleware.Authorize(jwtUtil, model.RoleAdmin, model.RoleTechnician))
	e.POST("/api/inventario", inventoryHandler.CreateItem,
		middleware.Authorize(jwtUtil, model.RoleAdmin))

	// Request registration
	e.POST("/api/solicitudes/registrar", requestHandler.RegisterRequest,
		middleware.Authorize(jwtUtil, model.RoleClient, model.RoleAdmin))

	// Service dashboard and assignment
	e.GET("/api/servicios", serviceHandler.ListServices,
		middleware.Authorize(jwtUtil, model.RoleAdmin, model.RoleTechnician))
	e.GET("/api/servicios/detalle/:id", serviceHandler.GetServiceDetail,
		middleware.Authorize(jwtUtil, model.RoleAdmin, model.RoleTechnician))
	e.POST("/api/servicios/asignar", serviceHandler.AssignServices,
		middleware.Authorize(jwtUtil, model.RoleAdmin))

	// Outbound notifications
	e.POST("/api/correos/enviar", emailHandler.SendEmail,
		middleware.Authorize(jwtUtil, model.RoleAdmin, model.RoleTechnician))

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
