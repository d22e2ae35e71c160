package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsalem6/hospital-records/internal/domain/department"
)

func TestAddDepartment(t *testing.T) {
	dir := newTestDirectory(t, nil)

	dept, err := dir.Departments.Add("Cardiology")
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", dept.Name)

	_, err = dir.Departments.Add("Cardiology")
	assert.ErrorIs(t, err, department.ErrDepartmentAlreadyExists)

	_, err = dir.Departments.Add("  ")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAddStaff_CreatesMissingDepartment(t *testing.T) {
	dir := newTestDirectory(t, nil)

	staff, err := dir.Departments.AddStaff("Cardiology", &department.CreateStaffCommand{
		Name:     "Dr. House",
		Age:      50,
		Position: "Doctor",
	})
	require.NoError(t, err)

	assert.Equal(t, department.RoleDoctor, staff.Role)
	assert.Equal(t, "General", staff.Specialty, "doctors default to the General specialty")

	dept, err := dir.Departments.Get("Cardiology")
	require.NoError(t, err)
	assert.Len(t, dept.Doctors(), 1)
}

func TestAddStaff_NurseBindsToDepartment(t *testing.T) {
	dir := newTestDirectory(t, nil)

	staff, err := dir.Departments.AddStaff("Cardiology", &department.CreateStaffCommand{
		Name:     "Carol",
		Age:      40,
		Position: "Nurse",
	})
	require.NoError(t, err)

	assert.Equal(t, department.RoleNurse, staff.Role)
	assert.Equal(t, "Cardiology", staff.Department)
	assert.Empty(t, staff.Specialty)
}

func TestAddStaff_Validation(t *testing.T) {
	dir := newTestDirectory(t, nil)

	_, err := dir.Departments.AddStaff("Cardiology", &department.CreateStaffCommand{
		Name:     "",
		Age:      -1,
		Position: "",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestAssignPatientToDoctor(t *testing.T) {
	dir := newTestDirectory(t, nil)
	alice := registerPatient(t, dir, "Alice Smith", nil)

	_, err := dir.Departments.AddStaff("Cardiology", &department.CreateStaffCommand{
		Name:     "Dr. House",
		Age:      50,
		Position: "Doctor",
	})
	require.NoError(t, err)

	require.NoError(t, dir.Departments.AssignPatientToDoctor("Cardiology", "Dr. House", alice))

	dept, err := dir.Departments.Get("Cardiology")
	require.NoError(t, err)
	doctor := dept.FindDoctor("Dr. House")
	require.Len(t, doctor.Patients, 1)
	require.Len(t, dept.Patients, 1)

	// Repeated assignment accumulates; nothing deduplicates.
	require.NoError(t, dir.Departments.AssignPatientToDoctor("Cardiology", "Dr. House", alice))
	assert.Len(t, doctor.Patients, 2)
}

func TestAssignPatientToDoctor_Missing(t *testing.T) {
	dir := newTestDirectory(t, nil)
	alice := registerPatient(t, dir, "Alice Smith", nil)

	err := dir.Departments.AssignPatientToDoctor("Cardiology", "Dr. House", alice)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	_, err = dir.Departments.Add("Cardiology")
	require.NoError(t, err)
	err = dir.Departments.AssignPatientToDoctor("Cardiology", "Dr. House", alice)
	assert.ErrorIs(t, err, department.ErrDoctorNotFound)
}

func TestEditStaff_RederivesRoleOnPositionChange(t *testing.T) {
	dir := newTestDirectory(t, nil)

	_, err := dir.Departments.AddStaff("Cardiology", &department.CreateStaffCommand{
		Name:     "Sam",
		Age:      30,
		Position: "Receptionist",
	})
	require.NoError(t, err)

	pos := "Nurse"
	require.NoError(t, dir.Departments.EditStaff("Cardiology", "Sam", &department.UpdateStaffCommand{
		Position: &pos,
	}))

	dept, err := dir.Departments.Get("Cardiology")
	require.NoError(t, err)
	staff := dept.FindStaff("Sam")
	require.NotNil(t, staff)
	assert.Equal(t, department.RoleNurse, staff.Role)
	assert.Equal(t, "Cardiology", staff.Department)
}

func TestRemoveStaff(t *testing.T) {
	dir := newTestDirectory(t, nil)

	_, err := dir.Departments.AddStaff("Cardiology", &department.CreateStaffCommand{
		Name:     "Carol",
		Age:      40,
		Position: "Nurse",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, dir.Departments.RemoveStaff("Oncology", "Carol"), department.ErrDepartmentNotFound)
	assert.ErrorIs(t, dir.Departments.RemoveStaff("Cardiology", "Nobody"), department.ErrStaffNotFound)
	require.NoError(t, dir.Departments.RemoveStaff("Cardiology", "Carol"))

	dept, err := dir.Departments.Get("Cardiology")
	require.NoError(t, err)
	assert.Empty(t, dept.Staff)
}
