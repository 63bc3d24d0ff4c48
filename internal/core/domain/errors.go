package domain

import "errors"

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrEmptyInput          = errors.New("no entries to aggregate")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrWeekNotFound        = errors.New("week not found")
)
