package config

// EnvPrefix scopes every environment variable consumed by envconfig.
const EnvPrefix = "DUKKON"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "DUKKON_DB_DSN"
	EnvDBHost = "DUKKON_DB_HOST"
	EnvDBUser = "DUKKON_DB_USER"
	EnvDBName = "DUKKON_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
