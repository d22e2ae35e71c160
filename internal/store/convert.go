package store

import (
	"github.com/samsalem6/hospital-records/internal/domain/billing"
	"github.com/samsalem6/hospital-records/internal/domain/department"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

// Snapshot converts the in-memory dataset into its wire form.
func Snapshot(patients []*patient.Patient, departments map[string]*department.Department) *Document {
	doc := EmptyDocument()

	for _, p := range patients {
		doc.Patients = append(doc.Patients, encodePatient(p))
	}

	for name, dept := range departments {
		rec := DepartmentRecord{
			Patients: []string{},
			Staff:    []StaffRecord{},
		}
		for _, dp := range dept.Patients {
			rec.Patients = append(rec.Patients, dp.Name)
		}
		for _, s := range dept.Staff {
			rec.Staff = append(rec.Staff, StaffRecord{
				Name:        s.Name,
				Age:         s.Age,
				Position:    s.Position,
				PhoneNumber: s.PhoneNumber,
				DateOfBirth: s.DateOfBirth,
				Gender:      s.Gender,
				Email:       s.Email,
				Address:     s.Address,
				Identifier:  s.Identifier,
				Specialty:   s.Specialty,
				Department:  s.Department,
			})
			if s.Role == department.RoleDoctor && len(s.Patients) > 0 {
				if rec.Assignments == nil {
					rec.Assignments = map[string][]string{}
				}
				for _, ap := range s.Patients {
					rec.Assignments[s.Name] = append(rec.Assignments[s.Name], ap.Name)
				}
			}
		}
		doc.Departments[name] = rec
	}

	return doc
}

// Materialize rebuilds the in-memory dataset from a document. Patients
// are deduplicated by patient number, the room index is rebuilt from
// room assignments, and department patient lists and doctor
// assignments are resolved by patient name; names no longer present in
// the patient list are dropped.
func Materialize(doc *Document) ([]*patient.Patient, map[int]string, map[string]*department.Department) {
	var patients []*patient.Patient
	seen := map[string]bool{}
	byName := map[string]*patient.Patient{}

	for _, rec := range doc.Patients {
		p := decodePatient(rec)
		if seen[p.PatientNumber] {
			continue
		}
		seen[p.PatientNumber] = true
		patients = append(patients, p)
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = p
		}
	}

	rooms := map[int]string{}
	for _, p := range patients {
		if p.RoomNumber != nil {
			rooms[*p.RoomNumber] = p.Name
		}
	}

	departments := map[string]*department.Department{}
	for name, rec := range doc.Departments {
		dept := department.New(name)
		for _, s := range rec.Staff {
			staff := &department.Staff{
				Name:        s.Name,
				Age:         s.Age,
				PhoneNumber: s.PhoneNumber,
				DateOfBirth: s.DateOfBirth,
				Gender:      s.Gender,
				Email:       s.Email,
				Address:     s.Address,
				Identifier:  s.Identifier,
				Position:    s.Position,
				Role:        department.RoleForPosition(s.Position),
				Specialty:   s.Specialty,
				Department:  s.Department,
			}
			if staff.Role == department.RoleDoctor && staff.Specialty == "" {
				staff.Specialty = "General"
			}
			if staff.Role == department.RoleNurse && staff.Department == "" {
				staff.Department = name
			}
			dept.AddStaff(staff)
		}
		for _, pname := range rec.Patients {
			if p, ok := byName[pname]; ok {
				dept.Patients = append(dept.Patients, p)
			}
		}
		for doctorName, assigned := range rec.Assignments {
			doctor := dept.FindDoctor(doctorName)
			if doctor == nil {
				continue
			}
			for _, pname := range assigned {
				if p, ok := byName[pname]; ok {
					doctor.AssignPatient(p)
				}
			}
		}
		departments[name] = dept
	}

	return patients, rooms, departments
}

func encodePatient(p *patient.Patient) PatientRecord {
	rec := PatientRecord{
		Name:          p.Name,
		Age:           p.Age,
		Condition:     p.Condition,
		PatientNumber: FlexString(p.PatientNumber),
		PhoneNumber:   p.PhoneNumber,
		DateOfBirth:   p.DateOfBirth,
		Gender:        p.Gender,
		Email:         p.Email,
		Address:       p.Address,
		Identifier:    p.Identifier,
		NextOfKin: NextOfKinRecord{
			Name:     p.NextOfKin.Name,
			Number:   p.NextOfKin.Number,
			Email:    p.NextOfKin.Email,
			Relation: p.NextOfKin.Relation,
		},
		RoomNumber:    p.RoomNumber,
		Procedures:    []ProcedureRecord{},
		Billing:       []BillingRecord{},
		Status:        string(p.Status),
		RegisterDate:  p.RegisterDate,
		DischargeDate: p.DischargeDate,
		DateOfDeath:   p.DateOfDeath,
		Insurance: InsuranceRecord{
			Provider:        p.Insurance.Provider,
			PolicyNumber:    p.Insurance.PolicyNumber,
			CoveragePercent: p.Insurance.CoveragePercent,
		},
	}
	for _, proc := range p.Procedures {
		rec.Procedures = append(rec.Procedures, ProcedureRecord(proc))
	}
	for _, b := range p.Billing {
		rec.Billing = append(rec.Billing, BillingRecord(b))
	}
	return rec
}

func decodePatient(rec PatientRecord) *patient.Patient {
	status := patient.Status(rec.Status)
	if !status.IsValid() {
		status = patient.StatusNormal
	}

	p := &patient.Patient{
		Name:          rec.Name,
		Age:           rec.Age,
		Condition:     rec.Condition,
		PatientNumber: string(rec.PatientNumber),
		PhoneNumber:   rec.PhoneNumber,
		DateOfBirth:   rec.DateOfBirth,
		Gender:        rec.Gender,
		Email:         rec.Email,
		Address:       rec.Address,
		Identifier:    rec.Identifier,
		NextOfKin: patient.NextOfKin{
			Name:     rec.NextOfKin.Name,
			Number:   rec.NextOfKin.Number,
			Email:    rec.NextOfKin.Email,
			Relation: rec.NextOfKin.Relation,
		},
		RoomNumber:    rec.RoomNumber,
		Status:        status,
		RegisterDate:  rec.RegisterDate,
		DischargeDate: rec.DischargeDate,
		Insurance: patient.Insurance{
			Provider:        rec.Insurance.Provider,
			PolicyNumber:    rec.Insurance.PolicyNumber,
			CoveragePercent: rec.Insurance.CoveragePercent,
		},
	}
	// DateOfDeath is populated only in the death state.
	if status == patient.StatusDeath {
		p.DateOfDeath = rec.DateOfDeath
	}
	for _, proc := range rec.Procedures {
		p.Procedures = append(p.Procedures, patient.Procedure(proc))
	}
	for _, b := range rec.Billing {
		p.Billing = append(p.Billing, billing.Billing(b))
	}
	return p
}
