package config

// --- Shared Configs ---

type ServerConfig struct {
	Port     string
	Name     string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host string
	Port string
}
