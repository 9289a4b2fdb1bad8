package services

import (
	"errors"

	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// notFoundOr maps a missing row onto a domain not-found error
func notFoundOr(err error, entity string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFound(entity, id)
	}
	return err
}

// duplicateOr maps a unique index violation onto a domain already-exists error
func duplicateOr(err error, entity, field string, value interface{}) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewAlreadyExists(entity, field, value)
	}
	return err
}
