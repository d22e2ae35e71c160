package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

func fixedAmount(v float64) AmountProvider {
	return func(patient.Procedure) (float64, error) { return v, nil }
}

func TestAddProcedure(t *testing.T) {
	gw := &MockGateway{}
	dir := newTestDirectory(t, gw)
	alice := registerPatient(t, dir, "Alice Smith", nil)

	require.NoError(t, dir.Procedures.AddProcedure(alice, "2024-01-02", "X-ray"))

	require.Len(t, alice.Procedures, 1)
	assert.False(t, alice.Procedures[0].Billed)
	assert.Equal(t, 2, gw.SaveCalls, "register then add each persist")
}

func TestGenerateBillsFromProcedures(t *testing.T) {
	dir := newTestDirectory(t, nil)
	alice := registerPatient(t, dir, "Alice Smith", nil)
	require.NoError(t, dir.Procedures.AddProcedure(alice, "2024-01-02", "X-ray"))
	require.NoError(t, dir.Procedures.AddProcedure(alice, "2024-01-03", "MRI"))

	created, err := dir.Procedures.GenerateBillsFromProcedures(alice, fixedAmount(100))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	require.Len(t, alice.Billing, 2)
	assert.Equal(t, "Procedure: X-ray on 2024-01-02", alice.Billing[0].Description)
	assert.Empty(t, alice.UnbilledProcedures())
}

func TestGenerateBillsFromProcedures_Idempotent(t *testing.T) {
	dir := newTestDirectory(t, nil)
	alice := registerPatient(t, dir, "Alice Smith", nil)
	require.NoError(t, dir.Procedures.AddProcedure(alice, "2024-01-02", "X-ray"))

	created, err := dir.Procedures.GenerateBillsFromProcedures(alice, fixedAmount(100))
	require.NoError(t, err)
	require.Equal(t, 1, created)

	// A second run has nothing left to bill.
	created, err = dir.Procedures.GenerateBillsFromProcedures(alice, fixedAmount(100))
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, alice.Billing, 1)
}

func TestGenerateBillsFromProcedures_SkipsInvalidAmounts(t *testing.T) {
	dir := newTestDirectory(t, nil)
	alice := registerPatient(t, dir, "Alice Smith", nil)
	require.NoError(t, dir.Procedures.AddProcedure(alice, "2024-01-02", "X-ray"))
	require.NoError(t, dir.Procedures.AddProcedure(alice, "2024-01-03", "MRI"))

	amounts := func(proc patient.Procedure) (float64, error) {
		if proc.Description == "X-ray" {
			return 0, errors.New("operator entered garbage")
		}
		return 250, nil
	}

	created, err := dir.Procedures.GenerateBillsFromProcedures(alice, amounts)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// The skipped procedure stays unbilled for a later attempt.
	assert.Equal(t, []int{0}, alice.UnbilledProcedures())
	require.Len(t, alice.Billing, 1)
	assert.Equal(t, "Procedure: MRI on 2024-01-03", alice.Billing[0].Description)
}

func TestGenerateBillsFromProcedures_InsuranceAware(t *testing.T) {
	dir := newTestDirectory(t, nil)
	p, err := dir.Patients.Register(&patient.CreatePatientCommand{
		Name:      "Alice Smith",
		Age:       34,
		Insurance: patient.Insurance{Provider: "Acme", CoveragePercent: 20},
	})
	require.NoError(t, err)
	require.NoError(t, dir.Procedures.AddProcedure(p, "2024-01-02", "X-ray"))

	created, err := dir.Procedures.GenerateBillsFromProcedures(p, fixedAmount(1000))
	require.NoError(t, err)
	require.Equal(t, 1, created)

	assert.InDelta(t, 800.0, p.Billing[0].Amount, 0.001)
}

func TestGenerateBillsFromProcedures_DeceasedRejected(t *testing.T) {
	dir := newTestDirectory(t, nil)
	alice := registerPatient(t, dir, "Alice Smith", nil)
	require.NoError(t, dir.Procedures.AddProcedure(alice, "2024-01-02", "X-ray"))
	require.NoError(t, dir.Patients.UpdateStatus(alice, patient.StatusDeath, "2024-03-01"))

	_, err := dir.Procedures.GenerateBillsFromProcedures(alice, fixedAmount(100))
	assert.ErrorIs(t, err, patient.ErrPatientDeceased)
}
