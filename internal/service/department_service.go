package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/domain/department"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

// DepartmentService owns the department registry and its staff
// rosters.
type DepartmentService struct {
	*core
}

func NewDepartmentService(c *core) *DepartmentService {
	return &DepartmentService{core: c}
}

func (s *DepartmentService) Add(name string) (*department.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Fields: []string{"department name is required"}}
	}
	if _, exists := s.data.Departments[name]; exists {
		return nil, department.ErrDepartmentAlreadyExists
	}

	dept := department.New(name)
	s.data.Departments[name] = dept

	s.audit.Record(AuditEntry{Action: "create", ResourceType: "department", ResourceID: name})
	s.log.Info("department added", zap.String("department", name))

	return dept, s.save("add_department")
}

func (s *DepartmentService) Get(name string) (*department.Department, error) {
	if dept, ok := s.data.Departments[name]; ok {
		return dept, nil
	}
	return nil, department.ErrDepartmentNotFound
}

// AddStaff puts a new staff member on a department roster, creating
// the department if it does not exist. The role is derived from the
// position; doctors default to the "General" specialty and nurses are
// bound to the department name.
func (s *DepartmentService) AddStaff(deptName string, cmd *department.CreateStaffCommand) (*department.Staff, error) {
	if err := validateStaffCommand(cmd); err != nil {
		return nil, err
	}

	dept, ok := s.data.Departments[deptName]
	if !ok {
		s.log.Info("department missing, creating it", zap.String("department", deptName))
		dept = department.New(deptName)
		s.data.Departments[deptName] = dept
	}

	staff := &department.Staff{
		Name:        strings.TrimSpace(cmd.Name),
		Age:         cmd.Age,
		PhoneNumber: cmd.PhoneNumber,
		DateOfBirth: cmd.DateOfBirth,
		Gender:      cmd.Gender,
		Email:       cmd.Email,
		Address:     cmd.Address,
		Identifier:  cmd.Identifier,
		Position:    cmd.Position,
		Role:        department.RoleForPosition(cmd.Position),
	}
	switch staff.Role {
	case department.RoleDoctor:
		staff.Specialty = cmd.Specialty
		if staff.Specialty == "" {
			staff.Specialty = "General"
		}
	case department.RoleNurse:
		staff.Department = deptName
	}

	dept.AddStaff(staff)

	s.audit.Record(AuditEntry{Action: "create", ResourceType: "staff", ResourceID: staff.Name})
	s.log.Info("staff added",
		zap.String("department", deptName),
		zap.String("name", staff.Name),
		zap.String("role", string(staff.Role)),
	)

	return staff, s.save("add_staff")
}

// AssignPatientToDoctor appends the patient to both the doctor's list
// and the department's list. A patient may accumulate under multiple
// doctors and departments; no deduplication is enforced.
func (s *DepartmentService) AssignPatientToDoctor(deptName, doctorName string, p *patient.Patient) error {
	dept, ok := s.data.Departments[deptName]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	doctor := dept.FindDoctor(doctorName)
	if doctor == nil {
		return department.ErrDoctorNotFound
	}

	doctor.AssignPatient(p)
	dept.Patients = append(dept.Patients, p)

	s.audit.Record(AuditEntry{Action: "update", ResourceType: "assignment", ResourceID: p.PatientNumber})
	s.log.Info("patient assigned to doctor",
		zap.String("department", deptName),
		zap.String("doctor", doctorName),
		zap.String("patient_number", p.PatientNumber),
	)

	return s.save("assign_patient_to_doctor")
}

// EditStaff applies a field-by-field patch to a staff member; nil
// fields keep their current value. Changing the position re-derives
// the role tag.
func (s *DepartmentService) EditStaff(deptName, staffName string, cmd *department.UpdateStaffCommand) error {
	dept, ok := s.data.Departments[deptName]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	staff := dept.FindStaff(staffName)
	if staff == nil {
		return department.ErrStaffNotFound
	}

	if cmd.Age != nil && *cmd.Age < 0 {
		return &ValidationError{Fields: []string{"age must not be negative"}}
	}

	applyString(&staff.Name, cmd.Name)
	if cmd.Age != nil {
		staff.Age = *cmd.Age
	}
	applyString(&staff.PhoneNumber, cmd.PhoneNumber)
	applyString(&staff.DateOfBirth, cmd.DateOfBirth)
	applyString(&staff.Gender, cmd.Gender)
	applyString(&staff.Email, cmd.Email)
	applyString(&staff.Address, cmd.Address)
	applyString(&staff.Identifier, cmd.Identifier)
	applyString(&staff.Specialty, cmd.Specialty)
	if cmd.Position != nil {
		staff.Position = *cmd.Position
		staff.Role = department.RoleForPosition(staff.Position)
		if staff.Role == department.RoleNurse && staff.Department == "" {
			staff.Department = deptName
		}
	}

	s.audit.Record(AuditEntry{Action: "update", ResourceType: "staff", ResourceID: staff.Name})
	s.log.Info("staff updated",
		zap.String("department", deptName),
		zap.String("name", staff.Name),
	)

	return s.save("edit_staff")
}

func (s *DepartmentService) RemoveStaff(deptName, staffName string) error {
	dept, ok := s.data.Departments[deptName]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	if !dept.RemoveStaff(staffName) {
		return department.ErrStaffNotFound
	}

	s.audit.Record(AuditEntry{Action: "delete", ResourceType: "staff", ResourceID: staffName})
	s.log.Info("staff removed",
		zap.String("department", deptName),
		zap.String("name", staffName),
	)

	return s.save("remove_staff")
}

func validateStaffCommand(cmd *department.CreateStaffCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if cmd.Age < 0 {
		errs = append(errs, "age must not be negative")
	}
	if strings.TrimSpace(cmd.Position) == "" {
		errs = append(errs, "position is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
