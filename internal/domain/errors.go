package domain

import "errors"

var (
	ErrRecordNotFound              = errors.New("record not found")
	ErrInvalidAccountConfiguration = errors.New("invalid combination of account type and currency")
	ErrMissingReference            = errors.New("referenced owner or employee does not exist")
	ErrRateUnavailable             = errors.New("no rate table for the requested period")
	ErrUnsupportedCurrencyPair     = errors.New("currency pair not present in rate table")
	ErrValidationFailed            = errors.New("invalid data or insufficient funds")
	ErrInsufficientBalance         = errors.New("insufficient balance")
	ErrPersistenceConflict         = errors.New("concurrent modification detected")
	ErrDuplicateAccountNumber      = errors.New("account number already exists")
)
