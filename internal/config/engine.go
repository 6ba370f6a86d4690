package config

// EngineConfig holds configuration for the settlement engine service.
type EngineConfig struct {
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	RepoType string // memory | redis
	Games    GameSettings
}

// StakeLimits bounds a single wager for one game.
type StakeLimits struct {
	Min float64
	Max float64
}

// VIPThreshold maps a cumulative deposit total to a VIP level.
type VIPThreshold struct {
	Level        int
	MinDeposited float64
}

// GameSettings is the read-only game configuration loaded once at startup.
type GameSettings struct {
	StakeLimits         map[string]StakeLimits // keyed by game code
	VIPThresholds       []VIPThreshold         // ascending by MinDeposited
	LotteryRoundSeconds int64
	WheelStake          float64
	WheelPrizes         []float64
	CrashStrategy       string // capped | fair
}

// LoadEngineConfig loads configuration for the settlement engine.
func LoadEngineConfig() *EngineConfig {
	return &EngineConfig{
		Server: ServerConfig{
			Port:     getEnv("ENGINE_HTTP_PORT", "8080"),
			Name:     "casino-engine",
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "casino_user"),
			Password: getEnv("DB_PASSWORD", "casino_pass"),
			Name:     getEnv("DB_NAME", "casino_db"),
		},
		RepoType: getEnv("ENGINE_REPO_TYPE", "memory"),
		Games:    DefaultGameSettings(),
	}
}

// DefaultGameSettings returns the stake limits, VIP table and per-game knobs
// used when no admin override is present.
func DefaultGameSettings() GameSettings {
	defaultLimits := StakeLimits{
		Min: getEnvFloat("STAKE_MIN", 10),
		Max: getEnvFloat("STAKE_MAX", 100000),
	}

	limits := map[string]StakeLimits{
		"lottery":  defaultLimits,
		"dice":     defaultLimits,
		"keno":     defaultLimits,
		"plinko":   defaultLimits,
		"coinflip": defaultLimits,
		"carduel":  defaultLimits,
		"roulette": defaultLimits,
		"crash":    defaultLimits,
		"mines":    defaultLimits,
		"tower":    defaultLimits,
		"road":     defaultLimits,
		"wheel":    {Min: 10, Max: 10}, // fixed-stake game
	}

	return GameSettings{
		StakeLimits: limits,
		VIPThresholds: []VIPThreshold{
			{Level: 1, MinDeposited: 500},
			{Level: 2, MinDeposited: 2000},
			{Level: 3, MinDeposited: 10000},
			{Level: 4, MinDeposited: 50000},
			{Level: 5, MinDeposited: 200000},
		},
		LotteryRoundSeconds: int64(getEnvInt("LOTTERY_ROUND_SECONDS", 60)),
		WheelStake:          10,
		WheelPrizes:         []float64{0, 5, 10, 15, 20, 50, 100, 500},
		CrashStrategy:       getEnv("CRASH_STRATEGY", "capped"),
	}
}
