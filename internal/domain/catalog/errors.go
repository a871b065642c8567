package catalog

import "errors"

var (
	// ErrPackNotFound is returned when a pack is not found
	ErrPackNotFound = errors.New("pack not found")

	// ErrSubUnitNotFound is returned when a sub-unit is not found
	ErrSubUnitNotFound = errors.New("sub-unit not found")

	// ErrTitleRequired is returned when a title is missing
	ErrTitleRequired = errors.New("title is required")

	// ErrSlugRequired is returned when a slug is missing
	ErrSlugRequired = errors.New("slug is required")

	// ErrPackIDRequired is returned when the owning pack ID is missing
	ErrPackIDRequired = errors.New("pack ID is required")

	// ErrDuplicateSlug is returned when a slug is already taken
	ErrDuplicateSlug = errors.New("slug already exists")
)
