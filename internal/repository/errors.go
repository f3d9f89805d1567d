// Package repository defines the storage contracts used by the service
// layer, the sentinel errors every implementation translates its driver
// errors into, and the MySQL implementation of those contracts.  The
// document-store and in-memory implementations live in the mongostore and
// memstore sub-packages.
package repository

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would violate a uniqueness rule,
// most importantly a second blocking booking on the same physical unit.
// Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInsufficientPoints is returned when a loyalty redemption would take a
// customer's balance below zero.
var ErrInsufficientPoints = errors.New("insufficient loyalty points")
