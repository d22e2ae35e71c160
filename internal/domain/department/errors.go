package department

import "errors"

var (
	ErrDepartmentAlreadyExists = errors.New("department already exists")
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDoctorNotFound          = errors.New("doctor not found in department")
	ErrStaffNotFound           = errors.New("staff member not found in department")
)
