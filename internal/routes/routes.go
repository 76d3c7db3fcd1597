package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thooms-coder/Shibui-Planner/internal/handlers"
	"github.com/Thooms-coder/Shibui-Planner/internal/middleware"
	"github.com/Thooms-coder/Shibui-Planner/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskDefinitionHandler,
	assignmentHandler *handlers.AssignmentHandler,
	feedbackHandler *handlers.FeedbackHandler,
	reportHandler *handlers.ReportHandler,
	reconciler *services.ReconcilerService,
	telegram *services.TelegramService,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware())
	r.Use(middleware.ReconcileSweep(reconciler, telegram))

	// USERS (admin only except self lookup)
	users := r.Group("/users", middleware.RequireAdmin())
	{
		users.POST("", userHandler.Create)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// TASK CATALOG (reads open, writes admin)
	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.List)
		tasks.GET("/taxonomy", taskHandler.Taxonomy)
		tasks.GET("/:id", taskHandler.Get)

		admin := tasks.Group("", middleware.RequireAdmin())
		{
			admin.POST("", taskHandler.Create)
			admin.PUT("/:id", taskHandler.Update)
			admin.DELETE("/:id", taskHandler.Delete)
		}
	}

	// ASSIGNMENTS
	assignments := r.Group("/assignments")
	{
		assignments.POST("", assignmentHandler.Schedule)
		assignments.GET("", assignmentHandler.List)
		assignments.POST("/reconcile", assignmentHandler.Reconcile)
		assignments.GET("/:id", assignmentHandler.Get)
		assignments.PUT("/:id", assignmentHandler.Update)
		assignments.DELETE("/:id", assignmentHandler.Delete)
		assignments.POST("/:id/start", assignmentHandler.Start)
		assignments.POST("/:id/complete", assignmentHandler.Complete)
	}

	// FEEDBACK
	feedback := r.Group("/feedback")
	{
		feedback.POST("", feedbackHandler.Record)
		feedback.GET("", feedbackHandler.List)
		feedback.GET("/:id", feedbackHandler.Get)
		feedback.PUT("/:id", feedbackHandler.Update)
		feedback.DELETE("/:id", feedbackHandler.Delete)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/daily_streak", reportHandler.DailyStreak)
		reports.GET("/mode_breakdown", reportHandler.ModeBreakdown)
		reports.GET("/heatmap", reportHandler.Heatmap)
		reports.GET("/planner", reportHandler.Planner)
		reports.GET("/history", reportHandler.History)
		reports.GET("/weekly_balance", reportHandler.WeeklyBalance)
		reports.GET("/weekly/export", reportHandler.ExportWeekly)
	}

	return r
}
