package types

import (
	"errors"
	"fmt"
)

// Operation identifies the service call that failed.
type Operation string

const (
	OperationListStreams       Operation = "ListStreams"
	OperationCreateStream      Operation = "CreateStream"
	OperationDeleteStream      Operation = "DeleteStream"
	OperationGetStreamConfig   Operation = "GetStreamConfig"
	OperationReconfigureStream Operation = "ReconfigureStream"
	OperationListBasins        Operation = "ListBasins"
	OperationCreateBasin       Operation = "CreateBasin"
	OperationDeleteBasin       Operation = "DeleteBasin"
	OperationGetBasinConfig    Operation = "GetBasinConfig"
	OperationReconfigureBasin  Operation = "ReconfigureBasin"
)

// Code classifies a service error.
type Code string

const (
	CodeInvalidArgument Code = "invalid_argument"
	CodeNotFound        Code = "not_found"
	CodeAlreadyExists   Code = "already_exists"
	CodeUnavailable     Code = "unavailable"
	CodeInternal        Code = "internal"
)

// ServiceError is returned by the remote clients when the service rejects or
// fails an operation.
type ServiceError struct {
	Operation Operation
	Code      Code
	Message   string
	// Err is the underlying transport or service error, if any.
	Err error
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Code, msg)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a service error for the given operation.
func NewServiceError(op Operation, code Code, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: op,
		Code:      code,
		Message:   message,
		Err:       err,
	}
}

// ErrorCode returns the code of the first [ServiceError] in the chain of err,
// or an empty code if there is none.
func ErrorCode(err error) Code {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}

	return ""
}

// IsNotFound reports whether err is a service error for a missing resource.
func IsNotFound(err error) bool {
	return ErrorCode(err) == CodeNotFound
}

// IsAlreadyExists reports whether err is a service error for a resource that
// already exists.
func IsAlreadyExists(err error) bool {
	return ErrorCode(err) == CodeAlreadyExists
}

// IsRetryable reports whether the operation can be retried as is.
func IsRetryable(err error) bool {
	return ErrorCode(err) == CodeUnavailable
}
