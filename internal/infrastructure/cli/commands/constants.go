package commands

const (
	// DefaultHistoryLimit bounds the history listing.
	DefaultHistoryLimit = 20

	// TimestampFormat renders history timestamps.
	TimestampFormat = "2006-01-02 15:04"
)
