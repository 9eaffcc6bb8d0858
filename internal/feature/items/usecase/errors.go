// Package usecase implements the business logic for the items feature.
package usecase

import "errors"

var (
	// ErrItemNotFound is returned when no item has the requested application id.
	ErrItemNotFound = errors.New("item not found")
)
