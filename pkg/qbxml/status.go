package qbxml

import (
	"fmt"
	"strconv"
	"strings"
)

// qbXML status codes the sync cares about.
const (
	// CodeOK reports a successful request.
	CodeOK = 0

	// CodeNoMatch reports a query that found no objects. It is informational.
	CodeNoMatch = 1

	// CodeDuplicate reports that an object with the same name already exists.
	CodeDuplicate = 3100
)

// UnknownErrorMessage is reported for failures that carry no statusMessage.
const UnknownErrorMessage = "Unknown error"

// Status classifies the result of one add request.
type Status int

// Add request outcomes. The zero value is not a valid status.
const (
	StatusCreated Status = iota + 1
	StatusAlreadyExists
	StatusFailed
)

// statusTable maps add response codes to outcomes. Codes not listed are failures.
var statusTable = map[int]Status{
	CodeOK:        StatusCreated,
	CodeDuplicate: StatusAlreadyExists,
}

// Classify returns the outcome status for an add response status code.
func Classify(code int) Status {
	if s, ok := statusTable[code]; ok {
		return s
	}
	return StatusFailed
}

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusAlreadyExists:
		return "already_exists"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "created":
		*s = StatusCreated
	case "already_exists":
		*s = StatusAlreadyExists
	case "failed":
		*s = StatusFailed
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// parseCode parses a statusCode attribute. ok is false when the attribute is
// missing or not an integer.
func parseCode(raw string) (code int, ok bool) {
	code, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return code, true
}
