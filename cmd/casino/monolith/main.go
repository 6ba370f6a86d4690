package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Register pprof handlers
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frankieli/casino_engine/internal/config"
	engineHttp "github.com/frankieli/casino_engine/internal/modules/engine/adapter/http"
	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/outcome"
	engineDB "github.com/frankieli/casino_engine/internal/modules/engine/repository/db"
	engineMemory "github.com/frankieli/casino_engine/internal/modules/engine/repository/memory"
	engineUseCase "github.com/frankieli/casino_engine/internal/modules/engine/usecase"
	ledgerHttp "github.com/frankieli/casino_engine/internal/modules/ledger/adapter/http"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerDB "github.com/frankieli/casino_engine/internal/modules/ledger/repository/db"
	ledgerMemory "github.com/frankieli/casino_engine/internal/modules/ledger/repository/memory"
	ledgerUseCase "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	lotteryHttp "github.com/frankieli/casino_engine/internal/modules/lottery/adapter/http"
	lotteryDomain "github.com/frankieli/casino_engine/internal/modules/lottery/domain"
	lotteryDB "github.com/frankieli/casino_engine/internal/modules/lottery/repository/db"
	lotteryMemory "github.com/frankieli/casino_engine/internal/modules/lottery/repository/memory"
	lotteryRedis "github.com/frankieli/casino_engine/internal/modules/lottery/repository/redis"
	lotteryUseCase "github.com/frankieli/casino_engine/internal/modules/lottery/usecase"
	promoHttp "github.com/frankieli/casino_engine/internal/modules/promo/adapter/http"
	promoDomain "github.com/frankieli/casino_engine/internal/modules/promo/domain"
	promoDB "github.com/frankieli/casino_engine/internal/modules/promo/repository/db"
	promoMemory "github.com/frankieli/casino_engine/internal/modules/promo/repository/memory"
	promoUseCase "github.com/frankieli/casino_engine/internal/modules/promo/usecase"
	sessionHttp "github.com/frankieli/casino_engine/internal/modules/session/adapter/http"
	sessionDomain "github.com/frankieli/casino_engine/internal/modules/session/domain"
	sessionMemory "github.com/frankieli/casino_engine/internal/modules/session/repository/memory"
	sessionRedis "github.com/frankieli/casino_engine/internal/modules/session/repository/redis"
	sessionUseCase "github.com/frankieli/casino_engine/internal/modules/session/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
	"github.com/frankieli/casino_engine/pkg/netutil"
)

func main() {
	pprofPort := flag.String("pprof-port", "", "Port to run pprof server on (e.g., 6060)")
	background := flag.Bool("d", false, "Run in background mode (disable console logging)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.LoadEngineConfig()

	logger.InitWithFile("logs/casino/monolith.log", cfg.Server.LogLevel, "json", !*background)
	defer logger.Flush()

	if *pprofPort != "" {
		go func() {
			addr := "localhost:" + *pprofPort
			logger.InfoGlobal().Str("addr", addr).Msg("Starting pprof server")
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.ErrorGlobal().Err(err).Msg("Failed to start pprof server")
			}
		}()
	}

	fmt.Println("Starting Casino Engine Monolith... Logs are being written to logs/casino/monolith.log (rotating)")
	logger.InfoGlobal().Msg("Starting Casino Engine Monolith...")

	// Repositories. "memory" runs self-contained; "redis" uses Postgres for
	// durable records plus Redis for round and session state.
	var (
		accountRepo   ledgerDomain.AccountRepository
		betOrderRepo  engineDomain.BetOrderRepository
		sessionRepo   sessionDomain.SessionRepository
		betRepo       lotteryDomain.BetRepository
		resultRepo    lotteryDomain.ResultRepository
		gameRoundRepo lotteryDomain.GameRoundRepository
		promoRepo     promoDomain.PromoRepository
	)

	if cfg.RepoType == "redis" {
		dbConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)

		db, err := gorm.Open(postgres.Open(dbConnStr), &gorm.Config{
			Logger: logger.NewGormLogger(),
		})
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to connect to database")
		}

		sqlDB, err := db.DB()
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to get database instance")
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to ping database")
		}
		logger.InfoGlobal().Msg("Database connected")

		rdb := redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		})
		defer rdb.Close()
		logger.InfoGlobal().Msg("Redis connected")

		accountRepo = ledgerDB.NewAccountRepository(db)
		betOrderRepo = engineDB.NewBetOrderRepository(db)
		sessionRepo = sessionRedis.NewSessionRepository(rdb)
		betRepo = lotteryRedis.NewBetRepository(rdb)
		resultRepo = lotteryRedis.NewResultRepository(rdb)
		gameRoundRepo = lotteryDB.NewGameRoundRepository(db)
		promoRepo = promoDB.NewPromoRepository(db)
	} else {
		accountRepo = ledgerMemory.NewAccountRepository()
		betOrderRepo = engineMemory.NewBetOrderRepository()
		sessionRepo = sessionMemory.NewSessionRepository()
		betRepo = lotteryMemory.NewBetRepository()
		resultRepo = lotteryMemory.NewResultRepository()
		gameRoundRepo = lotteryMemory.NewGameRoundRepository()
		promoRepo = promoMemory.NewPromoRepository()
	}
	logger.InfoGlobal().Str("repo_type", cfg.RepoType).Msg("Repositories initialized")

	// Outcome generation. The capped crash strategy is the production
	// policy; "fair" swaps in the house-edge distribution.
	gen := outcome.NewUniform()
	var crash outcome.CrashStrategy
	if cfg.Games.CrashStrategy == "fair" {
		crash = outcome.NewFairCrash(gen)
	} else {
		crash = outcome.NewCappedCrash(gen)
	}

	// Use cases
	ledgerUC := ledgerUseCase.NewLedgerUseCase(accountRepo, cfg.Games.VIPThresholds)
	settleUC := engineUseCase.NewSettleUseCase(ledgerUC, gen, crash, betOrderRepo, cfg.Games)
	sessionUC := sessionUseCase.NewSessionUseCase(ledgerUC, sessionRepo, gen, betOrderRepo, cfg.Games)
	lotteryUC := lotteryUseCase.NewLotteryUseCase(ledgerUC, betRepo, resultRepo, gameRoundRepo, gen, betOrderRepo, cfg.Games)
	promoUC := promoUseCase.NewPromoUseCase(ledgerUC, promoRepo)
	logger.InfoGlobal().Msg("Use cases initialized")

	// Lottery settlement loop
	loopCtx, stopLoop := context.WithCancel(context.Background())
	go lotteryUC.Run(loopCtx)
	logger.InfoGlobal().Int64("round_seconds", cfg.Games.LotteryRoundSeconds).Msg("Lottery settlement loop started")

	// HTTP server
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware())

	api := router.Group("/api")
	{
		ledgerHttp.NewHandler(ledgerUC).RegisterRoutes(api.Group("/accounts"))
		engineHttp.NewHandler(settleUC).RegisterRoutes(api.Group("/games"))
		sessionHttp.NewHandler(sessionUC).RegisterRoutes(api.Group("/sessions"))
		lotteryHttp.NewHandler(lotteryUC).RegisterRoutes(api.Group("/lottery"))
		promoHttp.NewHandler(promoUC).RegisterRoutes(api.Group("/promo"))
	}

	listener, port, err := netutil.ListenWithFallback(cfg.Server.Port)
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to bind HTTP port")
	}

	srv := &http.Server{
		Handler: router,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.FatalGlobal().Err(err).Msg("HTTP server failed")
		}
	}()

	logger.InfoGlobal().
		Int("port", port).
		Str("api_url", fmt.Sprintf("http://localhost:%d/api", port)).
		Msg("Casino Engine Monolith running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoGlobal().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("HTTP server forced to shutdown")
	}

	stopLoop()

	logger.InfoGlobal().Msg("Shutdown complete")
}
