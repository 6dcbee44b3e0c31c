package store

import (
	ierr "github.com/afyastaff/afyastaff/internal/errors"
)

// NotFound builds the error returned for a missing document
func NotFound(collection, id string) error {
	return ierr.NewError("document not found").
		WithHint("The requested record was not found").
		WithReportableDetails(map[string]any{
			"collection": collection,
			"id":         id,
		}).
		Mark(ierr.ErrNotFound)
}

// AlreadyExists builds the error returned when an id is taken
func AlreadyExists(collection, id string) error {
	return ierr.NewError("document already exists").
		WithHint("This record already exists").
		WithReportableDetails(map[string]any{
			"collection": collection,
			"id":         id,
		}).
		Mark(ierr.ErrAlreadyExists)
}

// VersionConflict builds the error returned by a failed compare-and-swap
func VersionConflict(collection, id string, expected int64) error {
	return ierr.NewError("document version changed").
		WithHint("The record was modified concurrently, please retry").
		WithReportableDetails(map[string]any{
			"collection":       collection,
			"id":               id,
			"expected_version": expected,
		}).
		Mark(ierr.ErrVersionConflict)
}
