// Package common defines shared constants and sentinel errors used across
// the contactbook client layers. Callers should use errors.Is to match these
// values; the more specific errors wrap their category so that both
// errors.Is(err, ErrNumberNotNumeric) and errors.Is(err, ErrValidation) hold.
package common

import (
	"errors"
	"fmt"
)

var (
	// Input validation errors. Never sent to the network.
	ErrValidation            = errors.New("validation error")
	ErrNameSpecialCharacters = fmt.Errorf("%w: name contains special characters", ErrValidation)
	ErrNumberNotNumeric      = fmt.Errorf("%w: number must be numeric", ErrValidation)

	// Detected before any mutation is sent.
	ErrConflict      = errors.New("conflict")
	ErrDuplicateName = fmt.Errorf("%w: duplicate name", ErrConflict)

	// Reported by the remote service.
	ErrPhoneAlreadyUsed = errors.New("number has been used by another contact")
	ErrNetwork          = errors.New("network error")

	// Edit workflow errors.
	ErrStaleContact     = errors.New("contact no longer exists, it may have been deleted")
	ErrInconsistentEdit = errors.New("phone numbers do not match the loaded contact")
	ErrIncompleteRecord = errors.New("fetched contact has missing fields")

	// Local state errors.
	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidSession  = errors.New("edit session is no longer valid")
)

var (
	// Saga journal errors.
	ErrEditInProgress = errors.New("an unfinished edit of this contact exists, resume or abandon it")
	ErrNoPendingEdit  = errors.New("no unfinished edit for this contact")
)
