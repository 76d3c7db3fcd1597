package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/config"
	"github.com/Thooms-coder/Shibui-Planner/internal/handlers"
	"github.com/Thooms-coder/Shibui-Planner/internal/middleware"
	"github.com/Thooms-coder/Shibui-Planner/internal/pdf"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
	"github.com/Thooms-coder/Shibui-Planner/internal/routes"
	"github.com/Thooms-coder/Shibui-Planner/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Thooms-coder/Shibui-Planner/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("db open: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("db close: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskDefinitionRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, emailService, authService)
	taskService := services.NewTaskDefinitionService(taskRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, taskService, userRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, assignmentRepo)
	reconciler := services.NewReconcilerService(assignmentRepo)

	telegramService, err := services.NewTelegramService(cfg.Telegram.Token, userRepo)
	if err != nil {
		log.Printf("[tg][init] %v, notifications disabled", err)
	}

	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir)
	reportService := services.NewReportService(reportRepo, feedbackRepo, userRepo, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskDefinitionHandler(taskService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, reconciler)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Background sweep ===
	// Requests trigger the sweep too; the cron keeps statuses moving while
	// nobody is logged in.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Reconcile.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		notifications, err := reconciler.Reconcile(ctx, time.Now())
		if err != nil {
			log.Printf("[reconcile][cron] %v", err)
			return
		}
		telegramService.Dispatch(ctx, notifications)
	}); err != nil {
		log.Fatal("cron schedule: ", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		taskHandler,
		assignmentHandler,
		feedbackHandler,
		reportHandler,
		reconciler,
		telegramService,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server: ", err)
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
