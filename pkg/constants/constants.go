// Package constants provides shared constants used throughout termsync.
// This includes timeouts, file permissions and the fixed values of the
// qbXML protocol exchange.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for requests to a qbXML gateway
	DefaultHTTPTimeout = 30 * time.Second

	// SyncTimeout bounds a whole sync run started from the CLI
	SyncTimeout = 5 * time.Minute

	// ShutdownTimeout is how long the CLI waits for cleanup after a failure
	ShutdownTimeout = 5 * time.Second
)

// File permission constants
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Spreadsheet layout
const (
	// DefaultSheet is the worksheet holding the payment terms
	DefaultSheet = "payment_terms"

	// HeaderRows is the number of leading rows that are skipped
	HeaderRows = 1
)

// QuickBooks protocol values
const (
	// QBXMLVersion is the qbXML version declared on every request
	QBXMLVersion = "13.0"

	// DefaultDueDays is written to StdDueDays for every created term
	DefaultDueDays = 30

	// DefaultAppName identifies this application to QuickBooks
	DefaultAppName = "Payment Terms Import"

	// OpenModeDoNotCare is the BeginSession mode accepting whatever company file is open
	OpenModeDoNotCare = 2
)

// Environment and config
const (
	// EnvPrefix is prepended to environment variables read by the CLI
	EnvPrefix = "TERMSYNC"

	// ConfigName is the config file base name searched in $HOME and the working directory
	ConfigName = ".termsync"
)
