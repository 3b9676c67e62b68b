package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/config"
	"github.com/JonnyWalker81/lifedash/internal/handlers"
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/JonnyWalker81/lifedash/internal/middleware"
	"github.com/JonnyWalker81/lifedash/internal/repository"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

const (
	requestsPerMinute = 120
	shutdownTimeout   = 10 * time.Second
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if port != "" {
		cfg.Server.Port = port
	}
	log := logger.Default()

	log.Info("starting lifedash API server",
		logger.String("env", cfg.Server.Env),
		logger.String("data_dir", cfg.Data.Dir),
		logger.Bool("auth", cfg.Server.APIToken != ""),
	)

	loc, err := cfg.Insight.Location()
	if err != nil {
		return err
	}
	clock := service.SystemClock(loc)
	dir := cfg.Data.Dir

	// Initialize repositories
	signalRepo := repository.NewSignalRepository(dir)
	planRepo := repository.NewPlanRepository(dir)
	todoRepo := repository.NewTodoRepository(dir)
	workoutRepo := repository.NewWorkoutRepository(dir)
	reflectionRepo := repository.NewReflectionRepository(dir)
	inboxRepo := repository.NewInboxRepository(dir)
	idempotencyRepo := repository.NewIdempotencyRepository(repository.DefaultIdempotencyTTL)

	// Initialize services
	signalService := service.NewSignalService(signalRepo, clock)
	planService := service.NewPlanService(planRepo, clock)
	todoService := service.NewTodoService(todoRepo, clock)
	workoutService := service.NewWorkoutService(workoutRepo, clock)
	reflectionService := service.NewReflectionService(reflectionRepo, clock)
	inboxService := service.NewInboxService(inboxRepo, todoRepo, reflectionRepo, clock)
	insightService := service.NewInsightService(signalRepo, planRepo, todoRepo, cfg.Insight.Settings(), clock)

	// Initialize handlers
	signalHandler := handlers.NewSignalHandler(signalService)
	planHandler := handlers.NewPlanHandler(planService)
	todoHandler := handlers.NewTodoHandler(todoService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	reflectionHandler := handlers.NewReflectionHandler(reflectionService)
	inboxHandler := handlers.NewInboxHandler(inboxService)
	insightHandler := handlers.NewInsightHandler(insightService)

	watchConfig(insightService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeaders(cfg.Server.Env == "production"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	limiter := middleware.NewRateLimiter(requestsPerMinute, time.Minute, "api")
	defer limiter.Close()

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.Server.APIToken))
	v1.Use(middleware.MutatingOnly(middleware.RateLimit(limiter)))
	{
		v1.GET("/signals", signalHandler.GetSignals)
		v1.POST("/signals", signalHandler.LogSignal)
		v1.DELETE("/signals", signalHandler.DeleteSignal)

		v1.GET("/plan", planHandler.GetPlan)
		v1.POST("/plan", planHandler.CreatePlanItem)
		v1.PATCH("/plan/:id", planHandler.UpdatePlanItem)
		v1.DELETE("/plan/:id", planHandler.DeletePlanItem)

		v1.GET("/todos", todoHandler.GetTodos)
		v1.POST("/todos", todoHandler.CreateTodo)
		v1.PATCH("/todos/:id", todoHandler.UpdateTodo)
		v1.DELETE("/todos/:id", todoHandler.DeleteTodo)

		v1.GET("/workouts", workoutHandler.GetWorkouts)
		v1.POST("/workouts", workoutHandler.CreateWorkout)
		v1.GET("/workouts/summary", workoutHandler.GetSummary)
		v1.DELETE("/workouts/:id", workoutHandler.DeleteWorkout)

		v1.GET("/reflections", reflectionHandler.GetReflections)
		v1.POST("/reflections", reflectionHandler.CreateReflection)
		v1.GET("/reflect-insights", reflectionHandler.GetInsights)

		v1.GET("/inbox", inboxHandler.GetInbox)
		v1.POST("/inbox", middleware.Idempotency(idempotencyRepo), inboxHandler.Capture)
		v1.POST("/inbox/:id/route", inboxHandler.RouteItem)

		v1.GET("/insight", insightHandler.GetInsight)
		v1.GET("/hub", insightHandler.GetHub)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// watchConfig hot-reloads the insight settings when the config file
// changes. Other sections need a restart.
func watchConfig(insightService service.InsightService) {
	err := loader.Watch(func(next *config.Config, err error) {
		if err != nil {
			logger.Warn("ignoring invalid config change", logger.Err(err))
			return
		}
		insightService.UpdateSettings(next.Insight.Settings())
		logger.Info("insight settings reloaded",
			logger.String("file", loader.ConfigFileUsed()),
		)
	})
	if errors.Is(err, config.ErrNoConfigFile) {
		logger.Debug("no config file, hot reload disabled")
	}
}
