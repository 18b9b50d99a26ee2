package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/aptitude-api/internal/config"
	"github.com/yourusername/aptitude-api/internal/handler"
	"github.com/yourusername/aptitude-api/internal/middleware"
	pgRepo "github.com/yourusername/aptitude-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/aptitude-api/internal/repository/redis"
	"github.com/yourusername/aptitude-api/internal/service"
	"github.com/yourusername/aptitude-api/internal/service/dailyquiz"
	"github.com/yourusername/aptitude-api/internal/service/oracle"
	"github.com/yourusername/aptitude-api/pkg/auth"
	"github.com/yourusername/aptitude-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	assignmentRepo := pgRepo.NewAssignmentRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем генератор вопросов.
	// Без API-ключа выдача работает только от банка вопросов.
	var questionOracle oracle.Adapter
	if cfg.Oracle.APIKey != "" {
		oracleCfg := oracle.DefaultConfig()
		oracleCfg.APIKey = cfg.Oracle.APIKey
		if cfg.Oracle.BaseURL != "" {
			oracleCfg.BaseURL = cfg.Oracle.BaseURL
		}
		if cfg.Oracle.Model != "" {
			oracleCfg.Model = cfg.Oracle.Model
		}
		if cfg.Oracle.Timeout > 0 {
			oracleCfg.Timeout = cfg.Oracle.Timeout
		}

		questionOracle, err = oracle.NewOpenAIOracle(oracleCfg)
		if err != nil {
			log.Printf("Failed to initialize question oracle: %v", err)
			os.Exit(1)
		}
		log.Printf("Question oracle initialized (model: %s)", oracleCfg.Model)
	} else {
		log.Println("Question oracle disabled: no API key configured")
	}

	// Собираем дневной цикл
	quizConfig := dailyquiz.DefaultConfig()
	if cfg.Game.DailyQuestionCount > 0 {
		quizConfig.DailyQuestionCount = cfg.Game.DailyQuestionCount
	}
	if cfg.Game.OracleAttempts > 0 {
		quizConfig.OracleAttempts = cfg.Game.OracleAttempts
	}

	progressTracker := dailyquiz.NewProgressTracker(cacheRepo, quizConfig.ProgressTTL)

	orchestrator := dailyquiz.NewOrchestrator(quizConfig, &dailyquiz.Dependencies{
		UserRepo:       userRepo,
		QuestionRepo:   questionRepo,
		AssignmentRepo: assignmentRepo,
		CacheRepo:      cacheRepo,
		Oracle:         questionOracle,
		Progress:       progressTracker,
	})

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	dailyService := service.NewDailyService(orchestrator, questionRepo, attemptRepo, progressTracker)
	attemptService := service.NewAttemptService(db, userRepo, questionRepo, attemptRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	gameHandler := handler.NewGameHandler(dailyService, attemptService)
	wsHandler := handler.NewWSHandler(dailyService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)
	gameLimit := middleware.DefaultGameRateLimitConfig(cfg.Game.RateLimitPerMinute)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Пользователи
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", userHandler.GetMe)
		}

		// Дневной игровой цикл
		daily := api.Group("/daily")
		daily.Use(authMiddleware.RequireAuth())
		daily.Use(rateLimiter.LimitByUser(gameLimit))
		{
			daily.GET("/questions", gameHandler.GetDailyQuestions)
			daily.GET("/status", gameHandler.GetDailyStatus)

			daily.POST("/questions/:id/answer", gameHandler.SubmitAnswer)
			daily.POST("/questions/:id/hint", gameHandler.UseHint)
			daily.POST("/questions/:id/give-up", gameHandler.GiveUp)
		}
	}

	// WebSocket-стрим прогресса подготовки набора
	wsGroup := router.Group("/ws")
	wsGroup.Use(authMiddleware.RequireAuth())
	{
		wsGroup.GET("/daily-status", wsHandler.StreamDailyStatus)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
