package app

import (
	"context"
	"fmt"
	"time"

	"talento_backend/internal/auth"
	"talento_backend/internal/cache"
	"talento_backend/internal/config"
	"talento_backend/internal/email"
	"talento_backend/internal/handlers"
	"talento_backend/internal/logger"
	"talento_backend/internal/middleware"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/routes"
	"talento_backend/internal/services"
	"talento_backend/internal/services/payment"
	"talento_backend/internal/storage"
	"talento_backend/internal/validator"
	"talento_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter, container := SetupRouter(cfg, gormDB)

	if _, err := container.SubscriptionService.EnsureDefaultPlan(cfg.Razorpay.PlanAmount, cfg.Razorpay.Currency); err != nil {
		logger.Fatal("Failed to seed default subscription plan", "error", err)
	}

	worker := workers.NewSubscriptionWorker(
		repositories.NewSubscriptionRepository(gormDB),
		repositories.NewUserRepository(gormDB),
	)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.ResumeRecord{},
		&models.PaymentOrder{},
		&models.PaymentTransaction{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.SavedJob{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient = cache.NewRedis(cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()); err != nil {
			logger.Warn("Redis unreachable, continuing without jobs cache", "error", err)
			redisClient = nil
		} else {
			logger.Info("Redis connected", "addr", cfg.Redis.Addr)
		}
	}

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTTL)*time.Minute)

	container := initializeServices(cfg, gormDB, storageInstance, redisClient, issuer)
	appHandlers := initializeHandlers(cfg, container, redisClient)

	ginRouter := initializeGinRouter(gormDB, container, cookieConfig(cfg))
	routes.RegisterRoutes(ginRouter, appHandlers, issuer)

	return ginRouter, container
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	storageInstance storage.Storage,
	redisClient *cache.RedisClient,
	issuer *auth.TokenIssuer,
) *services.ServiceContainer {
	var emailProvider email.Provider
	emailCfg := email.Config{
		SMTPHost:  cfg.Email.SMTPHost,
		SMTPPort:  cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
	if provider, err := email.NewSMTPProvider(emailCfg); err != nil {
		logger.Warn("Email provider not configured, mail features disabled", "error", err)
	} else {
		emailProvider = provider
	}

	userRepo := repositories.NewUserRepository(gormDB)
	resumeRepo := repositories.NewResumeRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)
	savedJobRepo := repositories.NewSavedJobRepository(gormDB)

	limits := services.UploadLimits{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}

	refreshTTL := time.Duration(cfg.JWT.RefreshTTL) * time.Hour
	authService := services.NewAuthService(userRepo, issuer, refreshTTL)
	userService := services.NewUserService(userRepo, storageInstance, cfg.Storage.AvatarBucket, limits)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo)

	gateway := payment.NewRazorpayService(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.APIBase)
	paymentService := services.NewPaymentService(gateway, paymentRepo, userRepo, subscriptionService, emailProvider, services.PaymentConfig{
		KeyID:      cfg.Razorpay.KeyID,
		Currency:   cfg.Razorpay.Currency,
		PlanAmount: cfg.Razorpay.PlanAmount,
		PlanDays:   cfg.Razorpay.PlanDays,
	})

	resumeService := services.NewResumeService(resumeRepo, storageInstance, cfg.Storage.ResumeBucket, limits)
	assessmentService := services.NewAssessmentService(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	jobsService := services.NewJobsService(cfg.Jobs.APIBase, redisClient, time.Duration(cfg.Redis.JobsTTLSecs)*time.Second)
	savedJobService := services.NewSavedJobService(savedJobRepo)
	contactService := services.NewContactService(emailProvider, cfg.Email.ContactRecipient)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		PaymentService:      paymentService,
		SubscriptionService: subscriptionService,
		ResumeService:       resumeService,
		AssessmentService:   assessmentService,
		JobsService:         jobsService,
		SavedJobService:     savedJobService,
		ContactService:      contactService,
		EmailProvider:       emailProvider,
		Storage:             storageInstance,
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, redisClient *cache.RedisClient) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	cookies := cookieConfig(cfg)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService, cookies),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, container.UserService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, container.PaymentService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, container.SubscriptionService),
		ResumeHandler:       handlers.NewResumeHandler(baseHandler, container.ResumeService),
		AssessmentHandler:   handlers.NewAssessmentHandler(baseHandler, container.AssessmentService),
		JobsHandler:         handlers.NewJobsHandler(baseHandler, container.JobsService, container.SavedJobService),
		ContactHandler:      handlers.NewContactHandler(baseHandler, container.ContactService),
		HealthHandler:       handlers.NewHealthHandler(baseHandler, redisClient),
	}
}

func initializeGinRouter(db *gorm.DB, container *services.ServiceContainer, cookies middleware.CookieConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.SessionGateway(container.AuthService, cookies))
	return router
}

func cookieConfig(cfg *config.Config) middleware.CookieConfig {
	return middleware.CookieConfig{
		Domain:        cfg.Session.CookieDomain,
		Secure:        cfg.Session.Secure,
		AccessMaxAge:  cfg.JWT.AccessTTL * 60,
		RefreshMaxAge: cfg.JWT.RefreshTTL * 3600,
	}
}
