package repositories

import "errors"

var (
	// ErrUserNotFound is returned when no user row matches the lookup.
	ErrUserNotFound = errors.New("User not found in the database")
	// ErrTraderNotFound is returned when a user has no trader profile.
	ErrTraderNotFound = errors.New("trader not found")
	// ErrTraderConflict is returned when a concurrent registration already inserted the trader row.
	ErrTraderConflict = errors.New("trader already registered for user")
)
