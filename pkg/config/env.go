package config

const (
	EnvPrefix = "VOLTMART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "VOLTMART_APP_ENV"
	EnvPort     = "VOLTMART_APP_PORT"
	EnvLogLevel = "VOLTMART_LOG_LEVEL"

	EnvDBDSN  = "VOLTMART_DB_DSN"
	EnvDBHost = "VOLTMART_DB_HOST"
	EnvDBUser = "VOLTMART_DB_USER"
	EnvDBName = "VOLTMART_DB_NAME"

	EnvRedisURL = "VOLTMART_REDIS_URL"

	EnvAdminUsername     = "VOLTMART_ADMIN_USERNAME"
	EnvAdminPasswordHash = "VOLTMART_ADMIN_PASSWORD_HASH"
	EnvJWTSecret         = "VOLTMART_JWT_SECRET"
	EnvJWTIssuer         = "VOLTMART_JWT_ISSUER"
	EnvJWTExpMins        = "VOLTMART_JWT_EXPIRATION_MINUTES"

	EnvUseSQLite   = "VOLTMART_USE_SQLITE"
	EnvCORSOrigins = "VOLTMART_CORS_ALLOWED_ORIGINS"
	EnvCartTTL     = "VOLTMART_CART_TTL"

	EnvDeliveryBaseFee   = "VOLTMART_DELIVERY_BASE_FEE"
	EnvDeliveryPerKmFee  = "VOLTMART_DELIVERY_PER_KM_FEE"
	EnvDeliveryDefaultKm = "VOLTMART_DELIVERY_DEFAULT_DISTANCE_KM"
	EnvCurrency          = "VOLTMART_CURRENCY"

	defaultSQLiteDSN = "file:voltmart.db?cache=shared&_foreign_keys=on"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
