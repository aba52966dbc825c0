package beneficiary

import "errors"

var (
	// ErrBeneficiaryNotFound indicates the beneficiary does not exist for the user.
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	// ErrBeneficiaryEmailExists is returned when a user already registered this email.
	ErrBeneficiaryEmailExists = errors.New("beneficiary email already exists")
)
