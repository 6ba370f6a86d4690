// Ops is the operator CLI: schema migration, account seeding and promo code
// issuance against the engine's database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frankieli/casino_engine/internal/config"
	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerDB "github.com/frankieli/casino_engine/internal/modules/ledger/repository/db"
	ledgerUseCase "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	lotteryDomain "github.com/frankieli/casino_engine/internal/modules/lottery/domain"
	promoDomain "github.com/frankieli/casino_engine/internal/modules/promo/domain"
	promoDB "github.com/frankieli/casino_engine/internal/modules/promo/repository/db"
	promoUseCase "github.com/frankieli/casino_engine/internal/modules/promo/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

func main() {
	driver := flag.String("driver", "sqlite", "database driver: sqlite | postgres")
	dsn := flag.String("dsn", "casino.db", "sqlite file path, ignored for postgres")
	flag.Parse()

	_ = godotenv.Load()

	logger.Init(logger.Config{Level: "info", Format: "console"})
	defer logger.Flush()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := config.LoadEngineConfig()
	db := openDB(*driver, *dsn, cfg)

	ctx := context.Background()
	switch flag.Arg(0) {
	case "migrate":
		runMigrate(db)
	case "seed-account":
		runSeedAccount(ctx, db, cfg, flag.Args()[1:])
	case "create-promo":
		runCreatePromo(ctx, db, cfg, flag.Args()[1:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: ops [-driver sqlite|postgres] [-dsn path] <command>

commands:
  migrate                                  create or update the schema
  seed-account <username> <email> [amount] create an account, optionally with a deposit
  create-promo <code> <reward> <max> [minDeposited] [validDays]`)
}

func openDB(driver, dsn string, cfg *config.EngineConfig) *gorm.DB {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
		dialector = postgres.Open(connStr)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		logger.FatalGlobal().Str("driver", driver).Msg("Unknown database driver")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("Failed to connect to database")
	}
	return db
}

func runMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&ledgerDomain.Account{},
		&engineDomain.BetOrder{},
		&lotteryDomain.GameRound{},
		&promoDomain.PromoCode{},
		&promoDomain.Redemption{},
	)
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("Migration failed")
	}
	logger.InfoGlobal().Msg("Schema migrated")
}

func runSeedAccount(ctx context.Context, db *gorm.DB, cfg *config.EngineConfig, args []string) {
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	username, email := args[0], args[1]

	ledger := ledgerUseCase.NewLedgerUseCase(ledgerDB.NewAccountRepository(db), cfg.Games.VIPThresholds)

	account, err := ledger.CreateAccount(ctx, username, email)
	if err != nil {
		logger.FatalGlobal().Err(err).Str("username", username).Msg("Failed to create account")
	}

	if len(args) >= 3 {
		var amount float64
		if _, err := fmt.Sscanf(args[2], "%f", &amount); err != nil {
			logger.FatalGlobal().Err(err).Msg("Invalid deposit amount")
		}
		if account, err = ledger.CreditDeposit(ctx, account.UserID, amount); err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to credit deposit")
		}
	}

	logger.InfoGlobal().
		Int64("user_id", account.UserID).
		Int64("display_id", account.DisplayID).
		Float64("balance", account.Balance).
		Msg("Account seeded")
}

func runCreatePromo(ctx context.Context, db *gorm.DB, cfg *config.EngineConfig, args []string) {
	if len(args) < 3 {
		usage()
		os.Exit(2)
	}
	code := args[0]

	var reward float64
	var max int
	if _, err := fmt.Sscanf(args[1], "%f", &reward); err != nil {
		logger.FatalGlobal().Err(err).Msg("Invalid reward")
	}
	if _, err := fmt.Sscanf(args[2], "%d", &max); err != nil {
		logger.FatalGlobal().Err(err).Msg("Invalid max redemptions")
	}

	minDeposited := 0.0
	if len(args) >= 4 {
		if _, err := fmt.Sscanf(args[3], "%f", &minDeposited); err != nil {
			logger.FatalGlobal().Err(err).Msg("Invalid minimum deposit")
		}
	}
	validDays := 30
	if len(args) >= 5 {
		if _, err := fmt.Sscanf(args[4], "%d", &validDays); err != nil {
			logger.FatalGlobal().Err(err).Msg("Invalid valid days")
		}
	}

	ledger := ledgerUseCase.NewLedgerUseCase(ledgerDB.NewAccountRepository(db), cfg.Games.VIPThresholds)
	promos := promoUseCase.NewPromoUseCase(ledger, promoDB.NewPromoRepository(db))

	promo, err := promos.CreateCode(ctx, code, reward, max, minDeposited, time.Duration(validDays)*24*time.Hour)
	if err != nil {
		logger.FatalGlobal().Err(err).Str("code", code).Msg("Failed to create promo code")
	}

	logger.InfoGlobal().
		Str("code", promo.Code).
		Float64("reward", promo.Reward).
		Int("max_redemptions", promo.MaxRedemptions).
		Time("expires_at", promo.ExpiresAt).
		Msg("Promo code created")
}
