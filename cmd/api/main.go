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
	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/handler"
	"github.com/yourusername/contest-api/internal/middleware"
	pgRepo "github.com/yourusername/contest-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/contest-api/internal/repository/redis"
	"github.com/yourusername/contest-api/internal/service"
	"github.com/yourusername/contest-api/pkg/auth"
	"github.com/yourusername/contest-api/pkg/database"
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
	contestRepo := pgRepo.NewContestRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	submissionRepo := pgRepo.NewSubmissionRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	contestService := service.NewContestService(contestRepo, questionRepo)
	submissionService := service.NewSubmissionService(submissionRepo, contestRepo, cacheRepo, db)
	leaderboardService := service.NewLeaderboardService(submissionRepo, cacheRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	contestHandler := handler.NewContestHandler(contestService, submissionService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, contestService)
	userHandler := handler.NewUserHandler(userService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()), authHandler.Register)
			authGroup.POST("/login", rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()), authHandler.Login)
			authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		}

		// Пользователи (только админ)
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			users.GET("", userHandler.GetAllUsers)
		}

		// История результатов текущего пользователя (админ видит все)
		api.GET("/results/my", authMiddleware.RequireAuth(), leaderboardHandler.GetUserHistory)

		// Удаление результата (только админ)
		resultWithID := api.Group("/results/:id")
		resultWithID.Use(middleware.ExtractUintParam("id", "resultID"))
		resultWithID.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			resultWithID.DELETE("", leaderboardHandler.DeleteResult)
		}

		// Конкурсы
		contests := api.Group("/contests")
		{
			// Листинг доступен и гостям: OptionalAuth подставляет политику видимости
			contests.GET("", authMiddleware.OptionalAuth(), contestHandler.GetContests)

			// Группа маршрутов, требующих contestID
			contestWithID := contests.Group("/:id")
			contestWithID.Use(middleware.ExtractUintParam("id", "contestID"))
			{
				contestWithID.GET("", contestHandler.GetContest)
				contestWithID.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
				contestWithID.GET("/top-scorer", leaderboardHandler.GetTopScorer)

				// Маршруты для аутентифицированных участников
				authedContests := contestWithID.Group("")
				authedContests.Use(authMiddleware.RequireAuth())
				{
					authedContests.GET("/questions", contestHandler.GetContestQuestions)
					authedContests.POST("/join", submissionHandler.Join)
					authedContests.PUT("/progress", rateLimiter.Limit(middleware.SubmitRateLimitConfig()), submissionHandler.SaveProgress)
					authedContests.POST("/submit", rateLimiter.Limit(middleware.SubmitRateLimitConfig()), submissionHandler.Submit)
					authedContests.GET("/my-submission", submissionHandler.GetMySubmission)
				}

				// Маршруты для администраторов
				adminContests := contestWithID.Group("")
				adminContests.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
				{
					adminContests.POST("/questions", contestHandler.AddQuestions)
					adminContests.DELETE("/questions/:questionId",
						middleware.ExtractUintParam("questionId", "questionID"),
						contestHandler.DeleteQuestion)
					adminContests.GET("/results/export", leaderboardHandler.ExportResults)
					adminContests.DELETE("", contestHandler.DeleteContest)
				}
			}

			// Маршрут создания конкурса (не требует ID)
			adminCreateContest := contests.Group("")
			adminCreateContest.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
			{
				adminCreateContest.POST("", contestHandler.CreateContest)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 15
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown с таймаутом
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Закрываем соединение с Redis
	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	}

	// Закрываем соединение с базой данных
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}

	log.Println("Server exited")
}
