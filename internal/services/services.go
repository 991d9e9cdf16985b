// Package services holds the domain operations of the blog. Every mutating
// operation runs inside one transaction and returns *apperror.Error values for
// the expected failure cases.
package services

import (
	"errors"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Owned is implemented by every entity that has a creator
type Owned interface {
	OwnerID() uint
}

// Owns reports whether user created entity
func Owns(user *models.User, entity Owned) bool {
	return user != nil && entity != nil && user.ID != 0 && user.ID == entity.OwnerID()
}

// authorize returns a ForbiddenError unless user owns entity
func authorize(user *models.User, entity Owned, action string) error {
	if !Owns(user, entity) {
		return apperror.Forbidden("you are not allowed to " + action)
	}
	return nil
}

// translate maps persistence errors onto application errors. notFound is the
// message used when the record does not exist.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Wrap(apperror.KindConflict, "resource already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.Wrap(apperror.KindNotFound, "referenced resource not found", err)
	default:
		return apperror.Internal(err)
	}
}

// Page clamps pagination parameters
func Page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return skip, limit
}

func imageURLs[T any](images []T, url func(T) string) []string {
	urls := make([]string, 0, len(images))
	for _, image := range images {
		urls = append(urls, url(image))
	}
	return urls
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
