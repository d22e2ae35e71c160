package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	p := &Patient{Name: "Alice Smith", PatientNumber: "1001"}

	assert.True(t, p.Matches("Alice Smith"))
	assert.True(t, p.Matches("1001"))
	assert.True(t, p.Matches(" 1001 "))
	assert.True(t, p.Matches("01001"), "numeric forms normalize")

	assert.False(t, p.Matches("alice smith"), "name match is exact")
	assert.False(t, p.Matches("1002"))
	assert.False(t, p.Matches(""))
}

func TestUnbilledProcedures(t *testing.T) {
	p := &Patient{Name: "Alice"}
	p.AddProcedure("2024-01-01", "X-ray")
	p.AddProcedure("2024-01-02", "MRI")
	p.AddProcedure("2024-01-03", "Blood test")

	p.MarkProcedureBilled(1)

	assert.Equal(t, []int{0, 2}, p.UnbilledProcedures())
}

func TestMarkProcedureBilled_OutOfRange(t *testing.T) {
	p := &Patient{Name: "Alice"}
	p.AddProcedure("2024-01-01", "X-ray")

	p.MarkProcedureBilled(-1)
	p.MarkProcedureBilled(5)

	assert.Equal(t, []int{0}, p.UnbilledProcedures())
}

func TestIsDeceased(t *testing.T) {
	assert.False(t, (&Patient{Status: StatusNormal}).IsDeceased())
	assert.True(t, (&Patient{Status: StatusDeath}).IsDeceased())
}
