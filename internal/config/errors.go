package config

import "errors"

// Configuration errors
var (
	ErrConfigNotFound  = errors.New("platform configuration not found")
	ErrInvalidPlatform = errors.New("invalid platform configuration")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
