package config

const (
	DefaultTimeZone = "America/Mexico_City"

	// HTTP
	DefaultSalesAddr    = ":6150"
	MaxUploadBytes      = 32 << 20
	DefaultUploadsLimit = 50
	MaxUploadsLimit     = 500

	// Stale upload watchdog
	DefaultStaleUploadSchedule = "*/15 * * * *"
	DefaultStaleUploadMinutes  = 60

	DefaultServicesFile = "services.yaml"
	DefaultEnvFile      = ".env"
)
