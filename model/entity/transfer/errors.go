package transfer

import "errors"

var (
	// ErrNotFound means no transfer order exists for the given transfer id.
	ErrNotFound = errors.New("transfer order not found")
	// ErrInvalidState means the operation requires a different current status.
	ErrInvalidState = errors.New("transfer order not in required state")
	// ErrOpenTransferExists means an open order already covers this route.
	ErrOpenTransferExists = errors.New("open transfer order already exists")
	// ErrValidation covers missing or invalid transfer fields.
	ErrValidation = errors.New("invalid transfer order")
)
