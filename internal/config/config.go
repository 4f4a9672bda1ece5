package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production       bool          `env:"PRODUCTION" envDefault:"false"`
	Port             string        `env:"PORT" envDefault:"80"`
	PostgresUrl      string        `env:"POSTGRES_URL,required"`
	RedisUrl         string        `env:"REDIS_URL" envDefault:"redis:6379"`
	Secret           string        `env:"SECRET,required"`
	AdminSecret      string        `env:"ADMIN_SECRET,required"`
	JwtTTL           time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
	PrewarmSchedule  string        `env:"PREWARM_SCHEDULE" envDefault:"*/15 * * * *"`
	ClientSecretPath string        `env:"CLIENT_SECRET_PATH" envDefault:"secrets/client_secret.json"`
	TokenDir         string        `env:"TOKEN_DIR" envDefault:"secrets"`
	DefaultAccount   string        `env:"DEFAULT_ACCOUNT" envDefault:"default"`
	ClientType       string        `env:"CLIENT_TYPE" envDefault:"web"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func Secret() string {
	return conf.Secret
}

func AdminSecret() string {
	return conf.AdminSecret
}

func JwtTTL() time.Duration {
	return conf.JwtTTL
}

func CacheTTL() time.Duration {
	return conf.CacheTTL
}

func FetchTimeout() time.Duration {
	return conf.FetchTimeout
}

func PrewarmSchedule() string {
	return conf.PrewarmSchedule
}

func ClientSecretPath() string {
	return conf.ClientSecretPath
}

func TokenDir() string {
	return conf.TokenDir
}

func DefaultAccount() string {
	return conf.DefaultAccount
}

func ClientType() string {
	return conf.ClientType
}
