package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a referenced job description or interview does not exist.
var ErrNotFound = errors.New("record not found")

type ErrorKind string

const (
	ErrKindProviderExhausted ErrorKind = "provider_exhausted"
	ErrKindProviderFatal     ErrorKind = "provider_fatal"
	ErrKindNotFound          ErrorKind = "not_found"
	ErrKindValidationFailed  ErrorKind = "validation_failed"
	ErrKindStorage           ErrorKind = "storage"
	ErrKindCanceled          ErrorKind = "canceled"
)

// GenerationError is the failure variant of a workflow result.
type GenerationError struct {
	Operation OperationType
	ReqID     string
	LogID     string
	Kind      ErrorKind
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s failed for req_id %s: %v", e.Operation, e.ReqID, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
