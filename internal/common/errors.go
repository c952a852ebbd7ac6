// Package common defines shared constants and sentinel errors used across
// the Planfold server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Store-level errors.
	ErrStoreIO     = errors.New("store i/o error")
	ErrStoreFormat = errors.New("store format error")

	// Store manager errors.
	ErrInvalidTag     = errors.New("invalid tag")
	ErrNotInitialized = errors.New("store manager not initialized")

	// Auth errors. Login deliberately reports ErrInvalidCredentials for both
	// unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid token")

	// Generic errors.
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)
