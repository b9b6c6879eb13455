package constants

const (
	AppName            = "tracker"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tracker/tracker.db"
	Version            = "v0.1.0"

	// ConnectionEnvVar holds a PostgreSQL connection string that takes precedence over the keyring.
	ConnectionEnvVar = "TRACKER_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MaxCategoryTitleLength is measured in characters after trimming surrounding whitespace.
	MaxCategoryTitleLength = 38

	// PinnedCategoryTitle is the title of the synthetic section holding pinned trackers.
	PinnedCategoryTitle = "Pinned"
	// PinnedCategoryID never collides with a stored category, which always carries a UUID.
	PinnedCategoryID = "pinned"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracker-"
	BackupFileSuffix = ".db"

	// Log rotation
	LogDirName    = "logs"
	LogFileName   = "tracker.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)
