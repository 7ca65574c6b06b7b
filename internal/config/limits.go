package config

const (
	// DefaultICATPort is the PostgreSQL port the catalog listens on.
	DefaultICATPort = 5432

	// DefaultICATDatabase is the database name iRODS installs the catalog under.
	DefaultICATDatabase = "ICAT"

	// DefaultMaxConns bounds the pgx pool. Permission resolution fans out
	// across the pool, so this also caps concurrent lookups per process.
	DefaultMaxConns = 25

	// DefaultMinConns keeps a few warm connections.
	DefaultMinConns = 5

	// DefaultPermissionWorkers is the number of concurrent permission
	// lookups per listing.
	DefaultPermissionWorkers = 8

	// DefaultLogMaxFiles is how many log files SetupLogFile keeps.
	DefaultLogMaxFiles = 10

	// DefaultPageLimit is used when a listing request names no limit.
	DefaultPageLimit = 100

	// MaxRequestBodyBytes limits JSON request bodies (UUID batches).
	MaxRequestBodyBytes = 10 << 20
)
