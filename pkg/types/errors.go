package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Validation and conflict errors. These are rejected before any write and
// are recoverable by correcting the input.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyContent  = errors.New("content must not be empty")
	ErrDuplicateUID  = errors.New("uid already exists in folder")
	ErrDuplicateUser = errors.New("username already exists")
	ErrConflict      = errors.New("target username already exists")
	ErrNotFound      = errors.New("not found")
)
