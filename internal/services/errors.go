package services

import "errors"

var (
	// ErrNoPartnerLinked means the user has no linked partner yet.
	ErrNoPartnerLinked = errors.New("no partner linked")

	// ErrNoQuestionsAvailable means the partner has authored no questions,
	// or the user has already answered all of them.
	ErrNoQuestionsAvailable = errors.New("no questions available")

	// ErrInvalidSessionState means the operation does not apply to the
	// session's current state: submit after completion, a stale question
	// index, or a retry decision with no retry pending.
	ErrInvalidSessionState = errors.New("invalid session state")

	// ErrSessionNotFound means the session id is unknown.
	ErrSessionNotFound = errors.New("session not found")
)
