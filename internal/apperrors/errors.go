package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// Transaction references carry a unique index, so a replayed reference surfaces this.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not permit the requested change.
var ErrConflict = errors.New("state conflict")

// ErrAccountInactive indicates a debit or credit was attempted against a
// suspended or closed account.
var ErrAccountInactive = errors.New("account is not active")

// ErrInsufficientFunds indicates the account balance cannot cover the requested debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrLimitExceeded indicates the operation would push the rolling-window total
// strictly above the account's effective limit.
var ErrLimitExceeded = errors.New("transaction limit exceeded")

// ErrVelocityExceeded indicates the account hit the transaction-frequency ceiling.
var ErrVelocityExceeded = errors.New("transaction velocity exceeded")

// ErrInvalidAmount indicates the amount is outside the global min/max bounds.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidTransfer indicates a structurally invalid transfer, such as
// source and destination being the same account.
var ErrInvalidTransfer = errors.New("invalid transfer")

// ErrDestinationInvalid indicates the transfer destination does not exist or
// cannot receive funds.
var ErrDestinationInvalid = errors.New("destination account invalid")

// ErrAlreadyFinalized indicates a compliance decision was re-invoked on a wire
// transfer that is no longer PENDING.
var ErrAlreadyFinalized = errors.New("wire transfer already finalized")

// ErrUnavailable indicates the storage layer could not be reached; the caller
// may retry with backoff.
var ErrUnavailable = errors.New("storage unavailable")
