package patient

import "errors"

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDuplicateIdentifier = errors.New("patient with this identifier already exists")
	ErrDuplicateNumber     = errors.New("patient number already exists")
	ErrPatientDeceased     = errors.New("operation not permitted: patient is deceased")
	ErrRemovalNotAllowed   = errors.New("patient status must be normal for removal")
	ErrInvalidStatus       = errors.New("invalid patient status")
	ErrDeathDateRequired   = errors.New("date of death is required for status death")
	ErrRoomOccupied        = errors.New("room is already occupied")
)
