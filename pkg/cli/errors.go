package cli

import "errors"

// Common CLI errors
var (
	// ErrVerificationFailed is returned when at least one interaction failed.
	// The details have already been printed.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrInvalidContracts is returned by validate when any file is invalid.
	ErrInvalidContracts = errors.New("one or more contract files are invalid")

	errNoContractSource = errors.New("either --broker-url with --pact-path or --file is required")
	errNoProvider       = errors.New("--provider-url is required")
)

// silentError marks errors whose details were already written to the user.
func silentError(err error) bool {
	return errors.Is(err, ErrVerificationFailed) || errors.Is(err, ErrInvalidContracts)
}
