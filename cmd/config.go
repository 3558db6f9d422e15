package cmd

// Config carries all runtime settings of the application, loaded from the
// environment at startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// BoardPolicy selects how kanban drops are validated: "enforce" only
	// allows drops that map to a legal lifecycle action, "free" allows any
	// move between non-terminal columns.
	BoardPolicy string

	// DisallowNegativeGrandTotal rejects pricing passes whose discount
	// exceeds the sum of the fee components.
	DisallowNegativeGrandTotal bool

	// StaleDraftMaxAgeHours is how long a draft may sit untouched before
	// the cancellation job picks it up.
	StaleDraftMaxAgeHours int

	// StaleDraftCronSpec and RateCardAuditCronSpec are six-field cron
	// expressions (with seconds) for the background jobs.
	StaleDraftCronSpec    string
	RateCardAuditCronSpec string

	// SystemUserID is the acting user recorded on automated transitions.
	SystemUserID string
}
