package domain

import "errors"

var (
	// ErrOracleUnavailable means the correctness oracle could not load or answer.
	// No partial annotation is produced.
	ErrOracleUnavailable = errors.New("correctness oracle unavailable")

	// ErrPersistence wraps failures of the record store.
	ErrPersistence = errors.New("persistence failure")

	ErrRecordNotFound = errors.New("record not found")
	ErrRecordExpired  = errors.New("record expired")

	ErrAlreadyShared      = errors.New("record already shared")
	ErrInvalidShareOption = errors.New("invalid share option")
	ErrUnknownLanguage    = errors.New("unknown language")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
)
