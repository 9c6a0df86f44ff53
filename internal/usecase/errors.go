package usecase

import (
	"errors"
	"log"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized means the caller does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// internalError logs the cause and hides it behind ErrInternal.
func internalError(logger *log.Logger, op string, err error) error {
	if logger != nil {
		logger.Printf("[%s] error=%v", op, err)
	}
	return ErrInternal
}

// passThrough returns err when it matches one of known, otherwise it is
// reported as internal.
func passThrough(logger *log.Logger, op string, err error, known ...error) error {
	if err == nil {
		return nil
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return internalError(logger, op, err)
}
