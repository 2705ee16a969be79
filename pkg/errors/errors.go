package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials  = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "username atau password salah")
	ErrInactiveAccount     = New("ACCOUNT_INACTIVE", http.StatusForbidden, "akun tidak aktif")
	ErrNotFound            = New("NOT_FOUND", http.StatusNotFound, "data tidak ditemukan")
	ErrForbidden           = New("FORBIDDEN", http.StatusForbidden, "akses ditolak")
	ErrUnauthorized        = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict            = New("CONFLICT", http.StatusConflict, "data sudah ada")
	ErrValidation          = New("VALIDATION_ERROR", http.StatusBadRequest, "validasi gagal")
	ErrInternal            = New("INTERNAL_ERROR", http.StatusInternalServerError, "terjadi kesalahan pada server")
	ErrCacheMiss           = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrRegistrationClosed  = New("REGISTRATION_CLOSED", http.StatusForbidden, "pendaftaran sedang ditutup")
	ErrFileTooLarge        = New("FILE_TOO_LARGE", http.StatusBadRequest, "ukuran file maksimal 5MB")
	ErrUnsupportedFileType = New("UNSUPPORTED_FILE_TYPE", http.StatusBadRequest, "tipe file tidak didukung")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
