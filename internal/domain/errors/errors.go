package errors

import (
	"fmt"
)

type ErrNilPost struct{}

func (e *ErrNilPost) Error() string {
	return "post must not be nil"
}

func (e *ErrNilPost) Is(target error) bool {
	_, ok := target.(*ErrNilPost)
	return ok
}

type ErrEmptyUsername struct{}

func (e *ErrEmptyUsername) Error() string {
	return "the username can not be empty"
}

func (e *ErrEmptyUsername) Is(target error) bool {
	_, ok := target.(*ErrEmptyUsername)
	return ok
}

type ErrEmptyPassword struct{}

func (e *ErrEmptyPassword) Error() string {
	return "the password can not be empty"
}

func (e *ErrEmptyPassword) Is(target error) bool {
	_, ok := target.(*ErrEmptyPassword)
	return ok
}

type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "the credentials don't seem to be valid"
}

func (e *ErrInvalidCredentials) Is(target error) bool {
	_, ok := target.(*ErrInvalidCredentials)
	return ok
}

type ErrMessageTooLong struct {
	Length int
}

func (e *ErrMessageTooLong) Error() string {
	return fmt.Sprintf("status must be 140 characters or less, got %d", e.Length)
}

func (e *ErrMessageTooLong) Is(target error) bool {
	_, ok := target.(*ErrMessageTooLong)
	return ok
}

type ErrMissingRequiredField struct {
	FieldName string
}

func (e *ErrMissingRequiredField) Error() string {
	return "missing required field: " + e.FieldName
}

func (e *ErrMissingRequiredField) Is(target error) bool {
	_, ok := target.(*ErrMissingRequiredField)
	return ok
}

type ErrInvalidValue struct {
	FieldName string
	Value     string
	Reason    string
}

func (e *ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value %q for field %q: %s", e.Value, e.FieldName, e.Reason)
}

func (e *ErrInvalidValue) Is(target error) bool {
	_, ok := target.(*ErrInvalidValue)
	return ok
}

type ErrShortenFailed struct {
	URL     string
	Message string
}

func (e *ErrShortenFailed) Error() string {
	return fmt.Sprintf("shortening %q failed: %s", e.URL, e.Message)
}

func (e *ErrShortenFailed) Is(target error) bool {
	_, ok := target.(*ErrShortenFailed)
	return ok
}

type ErrUnknownDBAccessType struct {
	AccessType string
}

func (e *ErrUnknownDBAccessType) Error() string {
	return "unknown database access type: " + e.AccessType
}

type ErrUnknownCommitTransport struct {
	Transport string
}

func (e *ErrUnknownCommitTransport) Error() string {
	return "unknown commit transport: " + e.Transport
}

func (e *ErrUnknownCommitTransport) Is(target error) bool {
	_, ok := target.(*ErrUnknownCommitTransport)
	return ok
}

type ErrBeginTransaction struct {
	Cause error
}

func (e *ErrBeginTransaction) Error() string {
	return fmt.Sprintf("failed to begin transaction: %v", e.Cause)
}

func (e *ErrBeginTransaction) Unwrap() error {
	return e.Cause
}

type ErrBuildSQLQuery struct {
	Operation string
	Cause     error
}

func (e *ErrBuildSQLQuery) Error() string {
	return fmt.Sprintf("failed to build SQL query for %s: %v", e.Operation, e.Cause)
}

func (e *ErrBuildSQLQuery) Unwrap() error {
	return e.Cause
}

type ErrSQLExecution struct {
	Operation string
	Cause     error
}

func (e *ErrSQLExecution) Error() string {
	return fmt.Sprintf("failed to execute SQL query for %s: %v", e.Operation, e.Cause)
}

func (e *ErrSQLExecution) Unwrap() error {
	return e.Cause
}

type ErrSQLScan struct {
	Entity string
	Cause  error
}

func (e *ErrSQLScan) Error() string {
	return fmt.Sprintf("failed to scan %s: %v", e.Entity, e.Cause)
}

func (e *ErrSQLScan) Unwrap() error {
	return e.Cause
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
