package utils

import "errors"

var (
	ErrDayNotFound        = errors.New("day not found")
	ErrItemNotFound       = errors.New("itinerary item not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidItemType    = errors.New("invalid item type")
	ErrInvalidCategory    = errors.New("invalid expense category")
	ErrInvalidAmount      = errors.New("amount must be greater than 0")
	ErrInvalidOrder       = errors.New("item order does not match the day")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrViewOnly           = errors.New("view-only session")
	ErrFeatureDisabled    = errors.New("feature not configured")
	ErrUpstreamFailure    = errors.New("upstream service failure")
	ErrDatabaseError      = errors.New("database error")
)
