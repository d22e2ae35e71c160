package department

import (
	"strings"

	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

// Role distinguishes the kinds of staff a department holds. Doctors
// carry a specialty and a patient list; nurses carry their department
// affiliation.
type Role string

const (
	RoleDoctor Role = "doctor"
	RoleNurse  Role = "nurse"
	RoleOther  Role = "other"
)

// RoleForPosition derives the role tag from a free-text position, the
// same way the persisted document distinguishes staff entries.
func RoleForPosition(position string) Role {
	switch strings.ToLower(strings.TrimSpace(position)) {
	case "doctor":
		return RoleDoctor
	case "nurse":
		return RoleNurse
	}
	return RoleOther
}

type Staff struct {
	Name        string
	Age         int
	PhoneNumber string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	Identifier  string
	Position    string
	Role        Role

	// Specialty is set for doctors, Department for nurses.
	Specialty  string
	Department string

	// Patients assigned to this staff member; doctors only.
	Patients []*patient.Patient
}

func (s *Staff) AssignPatient(p *patient.Patient) {
	s.Patients = append(s.Patients, p)
}

type Department struct {
	Name  string
	Staff []*Staff

	// Patients associated with the department through doctor
	// assignment. Duplicates are permitted.
	Patients []*patient.Patient
}

func New(name string) *Department {
	return &Department{Name: name}
}

func (d *Department) AddStaff(s *Staff) {
	d.Staff = append(d.Staff, s)
}

func (d *Department) Doctors() []*Staff {
	return d.byRole(RoleDoctor)
}

func (d *Department) Nurses() []*Staff {
	return d.byRole(RoleNurse)
}

func (d *Department) Others() []*Staff {
	return d.byRole(RoleOther)
}

func (d *Department) byRole(role Role) []*Staff {
	var out []*Staff
	for _, s := range d.Staff {
		if s.Role == role {
			out = append(out, s)
		}
	}
	return out
}

// FindStaff returns the first staff member with the exact name, in
// insertion order.
func (d *Department) FindStaff(name string) *Staff {
	for _, s := range d.Staff {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (d *Department) FindDoctor(name string) *Staff {
	for _, s := range d.Staff {
		if s.Role == RoleDoctor && s.Name == name {
			return s
		}
	}
	return nil
}

// RemoveStaff drops the first staff member with the given name and
// reports whether one was found.
func (d *Department) RemoveStaff(name string) bool {
	for i, s := range d.Staff {
		if s.Name == name {
			d.Staff = append(d.Staff[:i], d.Staff[i+1:]...)
			return true
		}
	}
	return false
}

type CreateStaffCommand struct {
	Name        string
	Age         int
	Position    string
	PhoneNumber string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	Identifier  string
	Specialty   string
}

// UpdateStaffCommand is a field-by-field patch: nil keeps the current
// value.
type UpdateStaffCommand struct {
	Name        *string
	Age         *int
	Position    *string
	PhoneNumber *string
	DateOfBirth *string
	Gender      *string
	Email       *string
	Address     *string
	Identifier  *string
	Specialty   *string
}
