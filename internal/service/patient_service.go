package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/domain/patient"
	"github.com/samsalem6/hospital-records/internal/identity"
)

// PatientService owns the patient registry: identifier uniqueness,
// number allocation, room occupancy, and the status gates on mutating
// operations.
type PatientService struct {
	*core
	alloc *identity.Allocator
}

func NewPatientService(c *core, alloc *identity.Allocator) *PatientService {
	return &PatientService{core: c, alloc: alloc}
}

func (s *PatientService) Register(cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	if err := validateCreateCommand(cmd); err != nil {
		return nil, err
	}

	identifier := strings.TrimSpace(cmd.Identifier)
	if identifier == "" {
		identifier = uuid.NewString()
	}
	for _, existing := range s.data.Patients {
		if existing.Identifier == identifier {
			return nil, patient.ErrDuplicateIdentifier
		}
	}

	number := s.nextNumber()
	// Defensive: the allocator scans both sources, but a collision here
	// would corrupt the registry.
	for _, existing := range s.data.Patients {
		if existing.PatientNumber == number {
			return nil, patient.ErrDuplicateNumber
		}
	}

	if cmd.RoomNumber != nil {
		if occupant, taken := s.data.Rooms[*cmd.RoomNumber]; taken {
			s.log.Warn("room already occupied",
				zap.Int("room", *cmd.RoomNumber),
				zap.String("occupant", occupant),
			)
			return nil, patient.ErrRoomOccupied
		}
	}

	p := &patient.Patient{
		Name:          strings.TrimSpace(cmd.Name),
		Age:           cmd.Age,
		Condition:     cmd.Condition,
		PatientNumber: number,
		PhoneNumber:   strings.TrimSpace(cmd.PhoneNumber),
		DateOfBirth:   cmd.DateOfBirth,
		Gender:        cmd.Gender,
		Email:         strings.ToLower(strings.TrimSpace(cmd.Email)),
		Address:       cmd.Address,
		Identifier:    identifier,
		NextOfKin:     cmd.NextOfKin,
		RoomNumber:    cmd.RoomNumber,
		Status:        patient.StatusNormal,
		RegisterDate:  time.Now().Format("2006-01-02"),
		Insurance:     cmd.Insurance,
	}

	s.data.Patients = append(s.data.Patients, p)
	if p.RoomNumber != nil {
		s.data.Rooms[*p.RoomNumber] = p.Name
	}

	s.metrics.PatientsRegisteredTotal.Inc()
	s.audit.Record(AuditEntry{Action: "create", ResourceType: "patient", ResourceID: p.PatientNumber})
	s.log.Info("patient registered",
		zap.String("patient_number", p.PatientNumber),
		zap.String("name", p.Name),
	)

	return p, s.save("register_patient")
}

// Find looks a patient up by name or patient number; first match in
// insertion order wins.
func (s *PatientService) Find(identifier string) (*patient.Patient, error) {
	if p := s.data.FindPatient(identifier); p != nil {
		return p, nil
	}
	return nil, patient.ErrPatientNotFound
}

func (s *PatientService) List() []*patient.Patient {
	return s.data.Patients
}

// Remove deletes a patient record. Deceased patients are kept for
// history; any status other than normal blocks removal.
func (s *PatientService) Remove(p *patient.Patient) error {
	switch {
	case p.IsDeceased():
		return patient.ErrPatientDeceased
	case p.Status != patient.StatusNormal:
		return patient.ErrRemovalNotAllowed
	}

	if !s.data.removePatient(p) {
		return patient.ErrPatientNotFound
	}
	// Reconcile the room index so the freed room is assignable again.
	if p.RoomNumber != nil && s.data.Rooms[*p.RoomNumber] == p.Name {
		delete(s.data.Rooms, *p.RoomNumber)
	}

	s.metrics.PatientsRemovedTotal.Inc()
	s.audit.Record(AuditEntry{Action: "delete", ResourceType: "patient", ResourceID: p.PatientNumber})
	s.log.Info("patient removed", zap.String("patient_number", p.PatientNumber))

	return s.save("remove_patient")
}

// AssignRoom moves the patient into a room. Occupied rooms and
// deceased patients are rejected.
func (s *PatientService) AssignRoom(p *patient.Patient, room int) error {
	if p.IsDeceased() {
		return patient.ErrPatientDeceased
	}
	if occupant, taken := s.data.Rooms[room]; taken && occupant != p.Name {
		return patient.ErrRoomOccupied
	}

	if p.RoomNumber != nil && s.data.Rooms[*p.RoomNumber] == p.Name {
		delete(s.data.Rooms, *p.RoomNumber)
	}
	p.RoomNumber = &room
	s.data.Rooms[room] = p.Name

	s.audit.Record(AuditEntry{Action: "update", ResourceType: "room", ResourceID: p.PatientNumber})
	s.log.Info("room assigned",
		zap.String("patient_number", p.PatientNumber),
		zap.Int("room", room),
	)

	return s.save("assign_room")
}

// Edit applies a field-by-field patch; nil fields keep their current
// value. Status changes go through the lifecycle rules.
func (s *PatientService) Edit(p *patient.Patient, cmd *patient.UpdatePatientCommand) error {
	if err := validateUpdateCommand(cmd); err != nil {
		return err
	}

	if cmd.Identifier != nil && *cmd.Identifier != p.Identifier {
		for _, existing := range s.data.Patients {
			if existing != p && existing.Identifier == *cmd.Identifier {
				return patient.ErrDuplicateIdentifier
			}
		}
	}

	if cmd.Status != nil {
		date := p.DateOfDeath
		if cmd.DateOfDeath != nil {
			date = *cmd.DateOfDeath
		}
		if *cmd.Status != p.Status {
			if err := p.UpdateStatus(*cmd.Status, date); err != nil {
				return err
			}
		} else if p.Status == patient.StatusDeath && date != "" {
			p.DateOfDeath = date
		}
	}

	applyString(&p.Name, cmd.Name)
	if cmd.Age != nil {
		p.Age = *cmd.Age
	}
	applyString(&p.PhoneNumber, cmd.PhoneNumber)
	applyString(&p.DateOfBirth, cmd.DateOfBirth)
	applyString(&p.Gender, cmd.Gender)
	applyString(&p.Email, cmd.Email)
	applyString(&p.Address, cmd.Address)
	applyString(&p.Identifier, cmd.Identifier)
	applyString(&p.Condition, cmd.Condition)
	applyString(&p.RegisterDate, cmd.RegisterDate)
	applyString(&p.DischargeDate, cmd.DischargeDate)
	if cmd.NextOfKin != nil {
		p.NextOfKin = *cmd.NextOfKin
	}
	if cmd.Insurance != nil {
		p.Insurance = *cmd.Insurance
	}

	s.audit.Record(AuditEntry{Action: "update", ResourceType: "patient", ResourceID: p.PatientNumber})
	s.log.Info("patient updated", zap.String("patient_number", p.PatientNumber))

	return s.save("edit_patient")
}

// UpdateStatus moves a patient through the status lifecycle. Death is
// terminal and requires a death date; any other status clears it.
func (s *PatientService) UpdateStatus(p *patient.Patient, newStatus patient.Status, dateOfDeath string) error {
	if err := p.UpdateStatus(newStatus, dateOfDeath); err != nil {
		return err
	}

	s.audit.Record(AuditEntry{Action: "update", ResourceType: "patient_status", ResourceID: p.PatientNumber})
	s.log.Info("patient status updated",
		zap.String("patient_number", p.PatientNumber),
		zap.String("status", string(newStatus)),
	)

	return s.save("update_status")
}

// nextNumber allocates from both the in-memory registry and the
// persisted document; either source can be ahead after a failed save.
func (s *PatientService) nextNumber() string {
	persisted := []string{}
	if doc, err := s.store.Load(); err == nil {
		persisted = doc.PatientNumbers()
	}
	return s.alloc.NextPatientNumber(s.data.PatientNumbers(), persisted)
}

func validateCreateCommand(cmd *patient.CreatePatientCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if cmd.Age < 0 {
		errs = append(errs, "age must not be negative")
	}
	if cmd.RoomNumber != nil && *cmd.RoomNumber <= 0 {
		errs = append(errs, "room number must be positive")
	}
	if cmd.Insurance.CoveragePercent < 0 || cmd.Insurance.CoveragePercent > 100 {
		errs = append(errs, "coverage percent must be between 0 and 100")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateUpdateCommand(cmd *patient.UpdatePatientCommand) error {
	var errs []string

	if cmd.Name != nil && strings.TrimSpace(*cmd.Name) == "" {
		errs = append(errs, "name must not be blank")
	}
	if cmd.Age != nil && *cmd.Age < 0 {
		errs = append(errs, "age must not be negative")
	}
	if cmd.Insurance != nil && (cmd.Insurance.CoveragePercent < 0 || cmd.Insurance.CoveragePercent > 100) {
		errs = append(errs, "coverage percent must be between 0 and 100")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

