package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/aibekz/productivity-backend/config"
	"github.com/aibekz/productivity-backend/docs"
	analyticsHandler "github.com/aibekz/productivity-backend/internal/handler/analytics"
	goalHandler "github.com/aibekz/productivity-backend/internal/handler/goal"
	habitHandler "github.com/aibekz/productivity-backend/internal/handler/habit"
	insightsHandler "github.com/aibekz/productivity-backend/internal/handler/insights"
	sessionHandler "github.com/aibekz/productivity-backend/internal/handler/session"
	taskHandler "github.com/aibekz/productivity-backend/internal/handler/task"
	userHandler "github.com/aibekz/productivity-backend/internal/handler/user"
	"github.com/aibekz/productivity-backend/internal/repository"
	"github.com/aibekz/productivity-backend/internal/service/analytics"
	"github.com/aibekz/productivity-backend/internal/service/goal"
	"github.com/aibekz/productivity-backend/internal/service/habit"
	"github.com/aibekz/productivity-backend/internal/service/insights"
	redissvc "github.com/aibekz/productivity-backend/internal/service/redis"
	"github.com/aibekz/productivity-backend/internal/service/session"
	"github.com/aibekz/productivity-backend/internal/service/task"
	"github.com/aibekz/productivity-backend/internal/service/user"
	"github.com/aibekz/productivity-backend/middleware"
)

const (
	authRateLimit       = 10
	authRateLimitWindow = time.Minute
)

type RouterHandler struct {
	userHandler      *userHandler.UserHandler
	sessionHandler   *sessionHandler.SessionHandler
	taskHandler      *taskHandler.TaskHandler
	habitHandler     *habitHandler.HabitHandler
	goalHandler      *goalHandler.GoalHandler
	analyticsHandler *analyticsHandler.AnalyticsHandler
	insightsHandler  *insightsHandler.InsightsHandler
	cache            redissvc.ServiceInterface
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	db, err := repository.NewRepository(config.DB)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	defer db.Close()

	// A nil cache degrades gracefully: every consumer falls back to Postgres.
	var cache redissvc.ServiceInterface
	if redisService := redissvc.NewRedisService(redissvc.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}); redisService != nil {
		cache = redisService
		defer redisService.Close()
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	insightRepo := repository.NewInsightRepository(db)

	userSrv := user.NewUserService(userRepo)
	goalSrv := goal.NewGoalService(goalRepo, taskRepo, habitRepo, sessionRepo)
	sessionSrv := session.NewSessionService(sessionRepo, goalSrv)
	taskSrv := task.NewTaskService(taskRepo, goalSrv)
	habitSrv := habit.NewHabitService(habitRepo, goalSrv)
	analyticsSrv := analytics.NewAnalyticsService(sessionRepo, taskRepo, userRepo, cache)
	insightsSrv := insights.NewInsightsService(insightRepo, sessionRepo, habitRepo, userRepo, cache)

	routerHandler := &RouterHandler{
		userHandler:      userHandler.NewUserHandler(userSrv),
		sessionHandler:   sessionHandler.NewSessionHandler(sessionSrv),
		taskHandler:      taskHandler.NewTaskHandler(taskSrv),
		habitHandler:     habitHandler.NewHabitHandler(habitSrv),
		goalHandler:      goalHandler.NewGoalHandler(goalSrv),
		analyticsHandler: analyticsHandler.NewAnalyticsHandler(analyticsSrv),
		insightsHandler:  insightsHandler.NewInsightsHandler(insightsSrv),
		cache:            cache,
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	gracefulShutdown(srv)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if routerHandler.cache != nil {
			if err := routerHandler.cache.Health(c.Request.Context()); err != nil {
				status = "degraded"
			}
		}
		c.JSON(200, gin.H{
			"status":    status,
			"timestamp": time.Now().Unix(),
			"service":   "productivity-backend",
		})
	})

	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	docs.SwaggerInfo.Title = "Productivity backend API"
	docs.SwaggerInfo.Description = "Focus sessions, tasks, habits, goals and productivity analytics"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	publicRoutes := r.Group("/api/v1")
	publicRoutes.Use(middleware.RateLimitMiddleware(routerHandler.cache, authRateLimit, authRateLimitWindow))
	{
		publicRoutes.POST("/users/auth", routerHandler.userHandler.CreateOrAuthUserWithPassword)
	}

	privateRoutes := r.Group("/api/v1")
	privateRoutes.Use(middleware.AuthenticationMiddleware())
	{
		privateRoutes.GET("/users/profile", routerHandler.userHandler.GetUserById)
		privateRoutes.GET("/users/settings", routerHandler.userHandler.GetSettings)
		privateRoutes.PUT("/users/settings", routerHandler.userHandler.UpdateSettings)

		privateRoutes.POST("/sessions", routerHandler.sessionHandler.StartSession)
		privateRoutes.GET("/sessions", routerHandler.sessionHandler.GetSessions)
		privateRoutes.GET("/sessions/:id", routerHandler.sessionHandler.GetSession)
		privateRoutes.PUT("/sessions/:id/close", routerHandler.sessionHandler.CloseSession)
		privateRoutes.DELETE("/sessions/:id", routerHandler.sessionHandler.DeleteSession)

		privateRoutes.POST("/tasks", routerHandler.taskHandler.CreateTask)
		privateRoutes.GET("/tasks", routerHandler.taskHandler.GetTasks)
		privateRoutes.GET("/tasks/:id", routerHandler.taskHandler.GetTask)
		privateRoutes.PATCH("/tasks/:id", routerHandler.taskHandler.UpdateTask)
		privateRoutes.DELETE("/tasks/:id", routerHandler.taskHandler.DeleteTask)

		privateRoutes.POST("/habits", routerHandler.habitHandler.CreateHabit)
		privateRoutes.GET("/habits", routerHandler.habitHandler.GetHabits)
		privateRoutes.POST("/habits/:id/logs", routerHandler.habitHandler.LogHabit)
		privateRoutes.GET("/habits/:id/logs", routerHandler.habitHandler.GetLogs)
		privateRoutes.DELETE("/habits/:id", routerHandler.habitHandler.DeleteHabit)

		privateRoutes.POST("/goals", routerHandler.goalHandler.CreateGoal)
		privateRoutes.GET("/goals", routerHandler.goalHandler.GetGoals)
		privateRoutes.GET("/goals/:id", routerHandler.goalHandler.GetGoal)
		privateRoutes.PATCH("/goals/:id", routerHandler.goalHandler.UpdateGoal)
		privateRoutes.DELETE("/goals/:id", routerHandler.goalHandler.DeleteGoal)
		privateRoutes.POST("/goals/:id/links", routerHandler.goalHandler.LinkActivity)
		privateRoutes.DELETE("/goals/:id/links", routerHandler.goalHandler.UnlinkActivity)
		privateRoutes.PUT("/goals/key-results/:id", routerHandler.goalHandler.UpdateKeyResult)

		privateRoutes.GET("/analytics/heatmap", routerHandler.analyticsHandler.GetHeatmap)
		privateRoutes.GET("/analytics/burnout", routerHandler.analyticsHandler.GetBurnout)
		privateRoutes.GET("/analytics/productivity", routerHandler.analyticsHandler.GetProductivity)
		privateRoutes.GET("/analytics/compare", routerHandler.analyticsHandler.CompareWeeks)
		privateRoutes.POST("/analytics/streak/refresh", routerHandler.analyticsHandler.RefreshStreak)

		privateRoutes.GET("/insights/weekly", routerHandler.insightsHandler.GetWeekly)
		privateRoutes.POST("/insights/weekly/regenerate", routerHandler.insightsHandler.Regenerate)
	}

	return r
}
