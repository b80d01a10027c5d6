// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"reviewspin-service/internal/config"
	"reviewspin-service/internal/db"
	campaignHandler "reviewspin-service/internal/handlers/campaign"
	playHandler "reviewspin-service/internal/handlers/play"
	wsfeedHandler "reviewspin-service/internal/handlers/wsfeed"
	"reviewspin-service/internal/middleware"
	"reviewspin-service/internal/pkg/cache"
	"reviewspin-service/internal/repository/postgres"
	drawService "reviewspin-service/internal/service/draw"
	"reviewspin-service/internal/ws"
	"reviewspin-service/migrations"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpSrv   *http.Server
	pool      *pgxpool.Pool
	redis     *redis.Client
	cancelHub context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelHub = cancel

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.RunMigrations(s.cfg.DatabaseURL, migrations.FS); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	s.pool = pool

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] ✅ Connected successfully")
	s.redis = redisClient

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	participantRepo := postgres.NewParticipantRepository(pool)
	storePlayRepo := postgres.NewStorePlayedGameRepository(pool)
	prizeRepo := postgres.NewPrizeRepository(pool)
	winnerRepo := postgres.NewWinnerRepository(pool)
	drawRepo := postgres.NewDrawRepository(dbWrapper, winnerRepo, prizeRepo)

	// ----- Winner feed hub -----
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// ----- Draw engine -----
	campaignCache := cache.NewCampaignCache(redisClient, s.cfg.SnapshotCacheTTL)
	loader := drawService.NewSnapshotLoader(campaignRepo, campaignCache, logger)
	evaluator := drawService.NewEvaluator(participantRepo, storePlayRepo, nil)
	selector := drawService.NewPrizeSelector(nil)
	mapper := drawService.NewOutcomeMapper(nil)
	executor := drawService.NewExecutor(
		evaluator,
		selector,
		mapper,
		participantRepo,
		storePlayRepo,
		drawRepo,
		hub,
		logger,
		nil,
	)
	service := drawService.NewService(loader, evaluator, executor, participantRepo, winnerRepo, logger)

	// ----- Handlers -----
	playHandlerInst := playHandler.NewPlayHandler(service, logger)
	campaignHandlerInst := campaignHandler.NewCampaignHandler(service, logger)
	wsHandlerInst := wsfeedHandler.NewWSHandler(hub, logger)

	// ----- Middlewares -----
	rateLimiter := middleware.NewPlayRateLimiter(redisClient, logger)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		PlayHandler:     playHandlerInst,
		CampaignHandler: campaignHandlerInst,
		WSHandler:       wsHandlerInst,
		RateLimiter:     rateLimiter,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	s.httpSrv = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, stops the winner feed hub and closes
// the database and Redis connections. Safe to call even if Start never got
// far enough to build them.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}
	if s.cancelHub != nil {
		s.cancelHub()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.logger != nil {
		s.logger.Sync()
	}
	return err
}
