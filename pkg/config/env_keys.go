package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// env tags, so the prefix stays empty to avoid double-prefixing.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "DINEFLOW_DB_DSN"
	EnvDBHost = "DINEFLOW_DB_HOST"
	EnvDBUser = "DINEFLOW_DB_USER"
	EnvDBName = "DINEFLOW_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
