package app

import "errors"

var (
	// ErrInvalidCredentials is returned when the supplied credentials do not match.
	// The message is shown to end users and must not enable account enumeration.
	ErrInvalidCredentials = errors.New("Incorrect email address or password")

	ErrNameEmailPasswordRequired = errors.New("name, email and password are required")
	ErrEmailAlreadyExists        = errors.New("email already registered")
	ErrNameRequired              = errors.New("name is required")

	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNotFound     = errors.New("project not found")

	ErrPromptRequired   = errors.New("prompt is required")
	ErrLanguageRequired = errors.New("language is required")
)
