package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrStorageNotConfigured = errors.New("storage provider not configured")
)
