package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amchigale/konkani-dictionary/docs"
	"github.com/amchigale/konkani-dictionary/internal/config"
	"github.com/amchigale/konkani-dictionary/internal/database"
	"github.com/amchigale/konkani-dictionary/internal/handler"
	"github.com/amchigale/konkani-dictionary/internal/middleware"
	"github.com/amchigale/konkani-dictionary/internal/migration"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/internal/routes"
	"github.com/amchigale/konkani-dictionary/internal/search"
	"github.com/amchigale/konkani-dictionary/internal/service"
	pkgcache "github.com/amchigale/konkani-dictionary/pkg/cache"
	pkges "github.com/amchigale/konkani-dictionary/pkg/elasticsearch"
	"github.com/amchigale/konkani-dictionary/pkg/jwt"
	pkglogger "github.com/amchigale/konkani-dictionary/pkg/logger"
	pkgredis "github.com/amchigale/konkani-dictionary/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Amchigale Konkani Dictionary API
// @version         1.0
// @description     Konkani-English dictionary with crowdsourced suggestions and expert review
//
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Expert session token. Example: "Bearer {token}"
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Chatbot agent key

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath(env string) string {
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv(".")

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	log := pkglogger.GetLogger()
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath(env)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}
	config.LogResolved(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.Open(cfg.Database, database.LogLevel(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	pkglogger.Info("Connected to %s (%s)", cfg.Database.Driver, cfg.Database.Provider())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migration.Run(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(ctx, pkgredis.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			pkglogger.Warn("%v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}
	cacheService := pkgcache.NewService(redisClient)

	var entryIndex *search.EntryIndex
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, esErr := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if esErr != nil {
			pkglogger.Warn("Elasticsearch connection failed: %v (continuing without ES)", esErr)
		} else {
			entryIndex = search.NewEntryIndex(esClient, cfg.Elasticsearch.Index)
			if err := entryIndex.EnsureIndex(ctx); err != nil {
				pkglogger.Warn("Elasticsearch index setup failed: %v", err)
			}
			pkglogger.Info("Connected to Elasticsearch (index %s)", cfg.Elasticsearch.Index)
		}
	}

	// Repositories
	entryRepo := repository.NewEntryRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	changeLogRepo := repository.NewChangeLogRepository(db)

	// Services
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authService := service.NewAuthService(contributorRepo, jwtManager)
	suggestionService := service.NewSuggestionService(db, suggestionRepo, entryRepo, contributorRepo, changeLogRepo)
	reviewService := service.NewReviewService(db, suggestionRepo, entryRepo, contributorRepo, changeLogRepo)
	reviewService.SetCache(cacheService)
	dictionaryService := service.NewDictionaryService(entryRepo, changeLogRepo)
	dictionaryService.SetCache(cacheService)
	if entryIndex != nil {
		reviewService.SetIndexer(entryIndex)
		dictionaryService.SetFulltext(entryIndex)
	}

	// Handlers
	healthHandler := handler.NewHealthHandler(cfg.Env, cfg.Server.Version)
	dictionaryHandler := handler.NewDictionaryHandler(dictionaryService)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(suggestionService, reviewService)
	agentHandler := handler.NewAgentHandler(dictionaryService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodyLimit(middleware.MaxBodyBytes))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	docs.SwaggerInfo.BasePath = cfg.Server.BasePath
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	agentLimiter := middleware.NewAgentRateLimiter(
		redisClient,
		cfg.Agent.RateMax,
		time.Duration(cfg.Agent.RateWindowMs)*time.Millisecond,
	)
	if len(cfg.Agent.APIKeys) == 0 {
		pkglogger.Warn("AGENT_API_KEYS is empty: /agent endpoints are open")
	}

	routes.Setup(router, cfg.Server.BasePath,
		dictionaryHandler, suggestionHandler, authHandler, adminHandler, agentHandler,
		authService, cfg.Agent.APIKeys, agentLimiter,
	)

	go reportDBStats(ctx, db)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Error("Server shutdown error: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	origins := config.SplitAndTrim(cfg.CORS.AllowOrigins, ",")
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:           12 * time.Hour,
	}
}

// reportDBStats feeds the connection pool gauge until ctx is done
func reportDBStats(ctx context.Context, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			middleware.SetDBConnectionsInUse(sqlDB.Stats().InUse)
		}
	}
}
