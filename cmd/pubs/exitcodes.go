package main

// Exit codes
const (
	ExitSuccess         = 0 // Success
	ExitError           = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError     = 2 // Configuration error (no repository, invalid config)
	ExitDataError       = 3 // Data error (publications file missing or malformed)
	ExitNothingToExport = 4 // The current filters match no publications
	ExitCheckFailed     = 5 // check --strict found warnings
)
