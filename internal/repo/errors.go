package repo

import "errors"

var (
	// ErrInventoryNotFound is returned when an inventory line id is unknown.
	ErrInventoryNotFound = errors.New("inventory line not found")
	// ErrUserNotFound is returned when a username has no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatedValueUnique is returned when an insert violates a unique
	// constraint (SKU, username).
	ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")
)
