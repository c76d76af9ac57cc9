package models

import "errors"

// Custom errors
var (
	ErrInvalidOutcomeLabel = errors.New("outcome label must be \"away\" or \"home\"")
	ErrTeamRequired        = errors.New("team name is required")
	ErrComponentFailed     = errors.New("ensemble component failed")
	ErrNoComponents        = errors.New("no usable ensemble components")
	ErrUnorderedHistory    = errors.New("game history is not in chronological order")
)
