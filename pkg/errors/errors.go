package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeEncoding          = "ENCODING_ERROR"
	CodeRemoteUnavailable = "REMOTE_UNAVAILABLE"
	CodeRemoteRead        = "REMOTE_READ_ERROR"
	CodeRemoteWrite       = "REMOTE_WRITE_ERROR"
	CodeRemoteStorage     = "REMOTE_STORAGE_ERROR"
	CodeStorageQuota      = "STORAGE_QUOTA_EXCEEDED"
	CodeEmptyCatalog      = "EMPTY_CATALOG"
	CodeRemoteEmpty       = "REMOTE_EMPTY"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL_ERROR"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
	Details []string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Validation reports every failed field reason in Details; Message joins them.
func Validation(reasons ...string) *AppError {
	msg := "invalid input"
	if len(reasons) > 0 {
		msg = strings.Join(reasons, "; ")
	}
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Status:  http.StatusBadRequest,
		Details: reasons,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Encoding(message string, err error) *AppError {
	return &AppError{
		Code:    CodeEncoding,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

func RemoteUnavailable() *AppError {
	return &AppError{
		Code:    CodeRemoteUnavailable,
		Message: "remote catalog is not configured",
		Status:  http.StatusServiceUnavailable,
	}
}

func RemoteRead(message string, err error) *AppError {
	return &AppError{
		Code:    CodeRemoteRead,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// RemoteWrite is batch level. Rows written before the failure may already be
// visible remotely: all-or-nothing is not guaranteed.
func RemoteWrite(message string, err error) *AppError {
	return &AppError{
		Code:    CodeRemoteWrite,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func RemoteStorage(message string, err error) *AppError {
	return &AppError{
		Code:    CodeRemoteStorage,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func StorageQuota(err error) *AppError {
	return &AppError{
		Code:    CodeStorageQuota,
		Message: "local catalog storage quota exceeded",
		Status:  http.StatusInsufficientStorage,
		Err:     err,
	}
}

func EmptyCatalog() *AppError {
	return &AppError{
		Code:    CodeEmptyCatalog,
		Message: "local catalog has no products to migrate",
		Status:  http.StatusConflict,
	}
}

func RemoteEmpty() *AppError {
	return &AppError{
		Code:    CodeRemoteEmpty,
		Message: "remote catalog has no products",
		Status:  http.StatusNotFound,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}
