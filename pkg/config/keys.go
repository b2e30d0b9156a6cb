package config

// EnvPrefix is handed to envconfig; individual fields carry explicit
// SMARTCART_ keys so the prefix only matters for unannotated fields.
const EnvPrefix = "SMARTCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv      = "SMARTCART_APP_ENV"
	EnvAppPort     = "SMARTCART_APP_PORT"
	EnvLogLevel    = "SMARTCART_LOG_LEVEL"
	EnvCatalogPath = "SMARTCART_CATALOG_PATH"
	EnvCatalogURL  = "SMARTCART_CATALOG_URL"
)
