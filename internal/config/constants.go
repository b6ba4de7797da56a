package config

const (
	// DefaultDatabasePath is the default path for the SQLite catalog database
	DefaultDatabasePath = "./mediateca.db"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
