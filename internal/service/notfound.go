package service

import "github.com/iliyamo/storage-booking/internal/repository"

// NotFoundError names the missing entity.  It matches
// repository.ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Unwrap() error { return repository.ErrNotFound }

func notFound(entity string) error { return &NotFoundError{Entity: entity} }
