package keepsake

import "errors"

var (
	// ErrKeepsakeNotFound signals that the keepsake could not be located.
	ErrKeepsakeNotFound = errors.New("keepsake not found")
	// ErrBeneficiaryMismatch indicates the target beneficiary does not belong to the owner.
	ErrBeneficiaryMismatch = errors.New("beneficiary mismatch")
	// ErrFileMismatch indicates the attached file does not belong to the owner.
	ErrFileMismatch = errors.New("file mismatch")
	// ErrInvalidKind signals an unknown keepsake kind.
	ErrInvalidKind = errors.New("invalid keepsake kind")
)
