package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure so handlers can map it to a
// response without string matching.
type ErrorKind int

const (
	// KindValidation: malformed or missing input, never retried.
	KindValidation ErrorKind = iota + 1
	// KindNotFound: wallet, profile or transaction absent.
	KindNotFound
	// KindConflict: business-rule rejection such as a duplicate event,
	// an exceeded limit or insufficient funds.
	KindConflict
	// KindDependency: store or gateway call failed; compensating actions
	// already ran where the flow defines them.
	KindDependency
	// KindInvariant: the request would break a ledger invariant, such as
	// resolving an already-terminal withdrawal.
	KindInvariant
)

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func ValidationErr(msg string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

func NotFoundErr(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

func ConflictErr(msg string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: msg}
}

func DependencyErr(msg string, err error) *ServiceError {
	return &ServiceError{Kind: KindDependency, Message: msg, Err: err}
}

func InvariantErr(msg string) *ServiceError {
	return &ServiceError{Kind: KindInvariant, Message: msg}
}

// KindOf extracts the kind from an error chain; zero when the error is not a
// ServiceError.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
