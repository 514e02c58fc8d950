package domain

import "errors"

var (
	// ErrItemNotFound is returned when no catalog record matches a lookup
	ErrItemNotFound = errors.New("item not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrLLMUnavailable is returned when the completion service cannot be reached
	ErrLLMUnavailable = errors.New("completion service unavailable")

	// ErrBudgetExhausted is returned when the daily completion budget is spent
	ErrBudgetExhausted = errors.New("daily completion budget exhausted")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
