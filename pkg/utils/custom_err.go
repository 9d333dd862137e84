package utils

import "errors"

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionFinished     = errors.New("session already finished")
	ErrSessionNotFinished  = errors.New("session still in matching phase")
	ErrChoiceNotOffered    = errors.New("choice was not offered this round")
	ErrInvalidBudget       = errors.New("invalid budget input")
	ErrInvalidStyle        = errors.New("unknown travel style")
	ErrInvalidPage         = errors.New("invalid page parameter")
	ErrInvalidPageSize     = errors.New("invalid page size parameter")
	ErrEmptyCatalog        = errors.New("destination catalog is empty")
	ErrDatabaseError       = errors.New("database error")
)
