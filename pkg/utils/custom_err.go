package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDatabaseError   = errors.New("database error")

	ErrPlaceNotFound      = errors.New("place not found")
	ErrJourneyNotFound    = errors.New("journey not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")

	ErrInvalidModerationStatus = errors.New("invalid moderation status")
	ErrInvalidTimeOfDay        = errors.New("invalid time of day")

	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrEmbeddingUnavailable = errors.New("embedding provider not configured")
)
