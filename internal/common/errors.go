// Package common defines shared constants and sentinel errors used across
// the newsdesk client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Auth preconditions. ErrNoAuthToken means no bearer token could be
	// found in any storage scope; authenticated operations must not be
	// attempted without one.
	ErrNoAuthToken  = errors.New("no auth token")
	ErrTokenExpired = errors.New("auth token expired")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
