package replenishment

import "errors"

var (
	// ErrNotFound means no request exists for the given request id.
	ErrNotFound = errors.New("replenishment request not found")
	// ErrInvalidDecision means a decision other than APPROVED/REJECTED was supplied.
	ErrInvalidDecision = errors.New("invalid decision")
	// ErrOpenRequestExists means an open request already covers this (product, warehouse).
	ErrOpenRequestExists = errors.New("open replenishment request already exists")
	// ErrValidation covers missing or invalid request fields.
	ErrValidation = errors.New("invalid replenishment request")
)
