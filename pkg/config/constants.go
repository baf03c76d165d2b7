package config

// EnvPrefix is the envconfig prefix shared by every variable the app reads.
const EnvPrefix = "STOCKMONITOR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN      = "STOCKMONITOR_DB_DSN"
	EnvDBHost     = "STOCKMONITOR_DB_HOST"
	EnvDBUser     = "STOCKMONITOR_DB_USER"
	EnvDBPassword = "STOCKMONITOR_DB_PASSWORD"
	EnvDBName     = "STOCKMONITOR_DB_NAME"
)
