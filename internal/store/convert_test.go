package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsalem6/hospital-records/internal/domain/department"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

func TestMaterialize_DeduplicatesByPatientNumber(t *testing.T) {
	doc := EmptyDocument()
	doc.Patients = []PatientRecord{
		{Name: "Alice", PatientNumber: "1001", Status: "normal"},
		{Name: "Alice Duplicate", PatientNumber: "1001", Status: "normal"},
		{Name: "Bob", PatientNumber: "1002", Status: "normal"},
	}

	patients, _, _ := Materialize(doc)

	require.Len(t, patients, 2)
	assert.Equal(t, "Alice", patients[0].Name)
	assert.Equal(t, "Bob", patients[1].Name)
}

func TestMaterialize_RebuildsRoomIndex(t *testing.T) {
	room := 204
	doc := EmptyDocument()
	doc.Patients = []PatientRecord{
		{Name: "Alice", PatientNumber: "1001", RoomNumber: &room, Status: "normal"},
		{Name: "Bob", PatientNumber: "1002", Status: "normal"},
	}

	_, rooms, _ := Materialize(doc)

	assert.Equal(t, map[int]string{204: "Alice"}, rooms)
}

func TestMaterialize_InvalidStatusFallsBackToNormal(t *testing.T) {
	doc := EmptyDocument()
	doc.Patients = []PatientRecord{
		{Name: "Alice", PatientNumber: "1001", Status: "discharged", DateOfDeath: "2024-01-01"},
	}

	patients, _, _ := Materialize(doc)

	require.Len(t, patients, 1)
	assert.Equal(t, patient.StatusNormal, patients[0].Status)
	assert.Empty(t, patients[0].DateOfDeath, "death date only survives in the death state")
}

func TestMaterialize_ResolvesStaffAndAssignments(t *testing.T) {
	doc := EmptyDocument()
	doc.Patients = []PatientRecord{
		{Name: "Alice", PatientNumber: "1001", Status: "normal"},
	}
	doc.Departments["Cardiology"] = DepartmentRecord{
		Patients: []string{"Alice", "Ghost"},
		Staff: []StaffRecord{
			{Name: "Dr. House", Position: "Doctor"},
			{Name: "Carol", Position: "Nurse"},
		},
		Assignments: map[string][]string{
			"Dr. House": {"Alice", "Ghost"},
		},
	}

	_, _, departments := Materialize(doc)

	dept := departments["Cardiology"]
	require.NotNil(t, dept)

	// Unknown patient names are dropped on both lists.
	require.Len(t, dept.Patients, 1)
	assert.Equal(t, "Alice", dept.Patients[0].Name)

	doctor := dept.FindDoctor("Dr. House")
	require.NotNil(t, doctor)
	assert.Equal(t, "General", doctor.Specialty, "doctors without a specialty default to General")
	require.Len(t, doctor.Patients, 1)
	assert.Equal(t, "Alice", doctor.Patients[0].Name)

	nurse := dept.FindStaff("Carol")
	require.NotNil(t, nurse)
	assert.Equal(t, department.RoleNurse, nurse.Role)
	assert.Equal(t, "Cardiology", nurse.Department, "nurses bind to their department")
}

func TestSnapshotMaterialize_RoundTrip(t *testing.T) {
	room := 101
	alice := &patient.Patient{
		Name:          "Alice",
		Age:           34,
		Condition:     "fracture",
		PatientNumber: "1001",
		RoomNumber:    &room,
		Status:        patient.StatusSurgery,
		Insurance:     patient.Insurance{Provider: "Acme", CoveragePercent: 20},
	}
	alice.AddProcedure("2024-01-02", "X-ray")

	doctor := &department.Staff{Name: "Dr. House", Position: "Doctor", Role: department.RoleDoctor, Specialty: "Cardiology"}
	doctor.AssignPatient(alice)
	dept := department.New("Cardiology")
	dept.AddStaff(doctor)
	dept.Patients = append(dept.Patients, alice)

	doc := Snapshot([]*patient.Patient{alice}, map[string]*department.Department{"Cardiology": dept})

	patients, rooms, departments := Materialize(doc)

	require.Len(t, patients, 1)
	got := patients[0]
	assert.Equal(t, patient.StatusSurgery, got.Status)
	assert.InDelta(t, 20.0, got.Insurance.CoveragePercent, 0.001)
	require.Len(t, got.Procedures, 1)
	assert.Equal(t, "X-ray", got.Procedures[0].Description)

	assert.Equal(t, map[int]string{101: "Alice"}, rooms)

	gotDoctor := departments["Cardiology"].FindDoctor("Dr. House")
	require.NotNil(t, gotDoctor)
	require.Len(t, gotDoctor.Patients, 1)
	assert.Same(t, patients[0], gotDoctor.Patients[0])
}
