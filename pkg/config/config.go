package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Admin        AdminConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
	Cart         CartConfig
	Pricing      PricingConfig
	GoogleMaps   GoogleMapsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env           string        `envconfig:"VOLTMART_APP_ENV" required:"true"`
	Port          string        `envconfig:"VOLTMART_APP_PORT" required:"true"`
	LogLevel      string        `envconfig:"VOLTMART_LOG_LEVEL" default:"info"`
	LogFormat     string        `envconfig:"VOLTMART_LOG_FORMAT" default:"json"`
	LogWarnStack  bool          `envconfig:"VOLTMART_LOG_WARN_STACK" default:"false"`
	LogErrorStack bool          `envconfig:"VOLTMART_LOG_ERROR_STACK" default:"true"`
	ShutdownGrace time.Duration `envconfig:"VOLTMART_SHUTDOWN_GRACE" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VOLTMART_DB_DSN"`
	Driver string `envconfig:"VOLTMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VOLTMART_DB_HOST"`
	LegacyPort     int    `envconfig:"VOLTMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VOLTMART_DB_USER"`
	LegacyPassword string `envconfig:"VOLTMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"VOLTMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"VOLTMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VOLTMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VOLTMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VOLTMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VOLTMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VOLTMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VOLTMART_REDIS_ADDR"`
	Password     string        `envconfig:"VOLTMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"VOLTMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VOLTMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VOLTMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VOLTMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VOLTMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VOLTMART_REDIS_WRITE_TIMEOUT" default:"5s"`
	Namespace    string        `envconfig:"VOLTMART_REDIS_NAMESPACE" default:"voltmart"`
}

type AdminConfig struct {
	Username          string `envconfig:"VOLTMART_ADMIN_USERNAME" default:"admin"`
	PasswordHash      string `envconfig:"VOLTMART_ADMIN_PASSWORD_HASH" required:"true"`
	JWTSecret         string `envconfig:"VOLTMART_JWT_SECRET" required:"true"`
	JWTIssuer         string `envconfig:"VOLTMART_JWT_ISSUER" default:"voltmart"`
	ExpirationMinutes int    `envconfig:"VOLTMART_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TokenTTL returns the admin token lifetime.
func (a AdminConfig) TokenTTL() time.Duration {
	if a.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(a.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VOLTMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VOLTMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VOLTMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VOLTMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VOLTMART_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"VOLTMART_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit   int           `envconfig:"VOLTMART_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
	LoginUserLimit int           `envconfig:"VOLTMART_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VOLTMART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VOLTMART_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VOLTMART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"VOLTMART_CART_TTL" default:"72h"`
}

// PricingConfig holds the delivery fee parameters. They are read once at
// startup and stay fixed for the life of the process.
type PricingConfig struct {
	BaseFee           float64 `envconfig:"VOLTMART_DELIVERY_BASE_FEE" default:"50"`
	PerKmFee          float64 `envconfig:"VOLTMART_DELIVERY_PER_KM_FEE" default:"12.75"`
	DefaultDistanceKm float64 `envconfig:"VOLTMART_DELIVERY_DEFAULT_DISTANCE_KM" default:"5"`
	Currency          string  `envconfig:"VOLTMART_CURRENCY" default:"INR"`
}

// Pricing converts the configured values into the calculator's pricing.
func (p PricingConfig) Pricing() delivery.Pricing {
	return delivery.Pricing{
		BaseFee:           decimal.NewFromFloat(p.BaseFee),
		PerKmFee:          decimal.NewFromFloat(p.PerKmFee),
		DefaultDistanceKm: p.DefaultDistanceKm,
	}
}

func (p *PricingConfig) validate() error {
	currency, err := enums.ParseCurrency(p.Currency)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvCurrency, err)
	}
	p.Currency = currency.String()
	if p.BaseFee < 0 {
		return fmt.Errorf("%s must not be negative", EnvDeliveryBaseFee)
	}
	if p.PerKmFee < 0 {
		return fmt.Errorf("%s must not be negative", EnvDeliveryPerKmFee)
	}
	if p.DefaultDistanceKm < 0 || math.IsNaN(p.DefaultDistanceKm) || math.IsInf(p.DefaultDistanceKm, 0) {
		return fmt.Errorf("%s must be a finite non-negative number", EnvDeliveryDefaultKm)
	}
	return nil
}

type GoogleMapsConfig struct {
	APIKey string `envconfig:"VOLTMART_GOOGLE_MAPS_API_KEY"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
