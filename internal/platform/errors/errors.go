package apperrors

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrStorage           = errors.New("storage failure")
	ErrCatalog           = errors.New("invalid achievement catalog")
	ErrCorruptData       = errors.New("corrupt persisted data")
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrNotFound          = errors.New("not found")
	ErrInvalidConfig     = errors.New("invalid config")
)
