package config

import "errors"

var (
	// ErrNotFound indicates the settings file does not exist.
	ErrNotFound = errors.New("config: settings file not found")

	// ErrParse indicates malformed YAML or an unknown key.
	ErrParse = errors.New("config: cannot parse settings")

	// ErrInvalid indicates settings that parse but cannot drive a run.
	ErrInvalid = errors.New("config: invalid settings")
)
