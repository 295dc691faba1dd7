package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrValidationRange    = errors.New("value out of range")
	ErrOwnershipViolation = errors.New("resource belongs to another user")
	ErrUserNotFound       = errors.New("user not found")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
