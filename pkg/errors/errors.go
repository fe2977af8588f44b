// Package errors provides the error types used across termsync.
// Sentinel errors identify a failure class so callers can use errors.Is,
// while the typed errors carry the details needed for reporting.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join forward to the standard library so callers need only one
// errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors for the failure classes of a sync run.
var (
	// ErrEmptySource indicates the spreadsheet yielded no terms to reconcile.
	ErrEmptySource = errors.New("no terms in source")

	// ErrConnection indicates the remote system could not be reached or the
	// session broke down.
	ErrConnection = errors.New("connection failed")

	// ErrProtocol indicates a response document could not be interpreted.
	ErrProtocol = errors.New("protocol error")

	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// EmptySourceError is returned when there is nothing to reconcile.
type EmptySourceError struct {
	Source string
}

// Error implements the error interface
func (e *EmptySourceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("no payment terms found in %s", e.Source)
	}
	return "no payment terms found in source"
}

// Is implements errors.Is support
func (e *EmptySourceError) Is(target error) bool {
	return target == ErrEmptySource
}

// NewEmptySourceError creates a new EmptySourceError
func NewEmptySourceError(source string) *EmptySourceError {
	return &EmptySourceError{Source: source}
}

// ConnectionError represents a transport failure talking to the remote system.
type ConnectionError struct {
	Operation string // "connect", "process", "close"
	Endpoint  string
	Err       error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("connection error during %s (%s): %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("connection error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(operation, endpoint string, err error) *ConnectionError {
	return &ConnectionError{Operation: operation, Endpoint: endpoint, Err: err}
}

// ProtocolError represents a response document that could not be used.
type ProtocolError struct {
	Operation string // "parse add response", "parse query response"
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error in %s: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("protocol error in %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(operation, message string, err error) *ProtocolError {
	return &ProtocolError{Operation: operation, Message: message, Err: err}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing a configuration or data file
type ParseError struct {
	Format  string // "yaml", "env", "xlsx"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "read", "create", "load"
	Resource  string // "terms", "config", "workbook"
	ID        string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

// Helper functions for error checking

// IsEmptySource checks if an error is an empty source error
func IsEmptySource(err error) bool {
	return errors.Is(err, ErrEmptySource)
}

// IsConnection checks if an error is a connection error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsProtocol checks if an error is a protocol error
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapConnection wraps an error as a ConnectionError. Errors that already are
// connection errors are returned unchanged.
func WrapConnection(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnection(err) {
		return err
	}
	return NewConnectionError(operation, endpoint, err)
}
