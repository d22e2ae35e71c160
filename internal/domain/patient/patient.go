package patient

import (
	"strconv"
	"strings"

	"github.com/samsalem6/hospital-records/internal/domain/billing"
)

// NextOfKin is the emergency contact attached to a patient. It is
// always structurally present; a patient without one carries the zero
// value.
type NextOfKin struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Email    string `json:"email"`
	Relation string `json:"relation"`
}

type Insurance struct {
	Provider        string  `json:"provider"`
	PolicyNumber    string  `json:"policy_number"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// Procedure is a dated clinical action recorded against a patient.
// Billed transitions false to true exactly once and never reverts.
type Procedure struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Billed      bool   `json:"billed"`
}

type Patient struct {
	Name        string
	Age         int
	PhoneNumber string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	// Identifier is the externally supplied id (national id, generated
	// UUID when the operator leaves it blank). Distinct from
	// PatientNumber, which the engine allocates.
	Identifier string

	Condition     string
	PatientNumber string
	NextOfKin     NextOfKin
	RoomNumber    *int
	Procedures    []Procedure
	Billing       []billing.Billing
	Status        Status
	RegisterDate  string
	DischargeDate string
	DateOfDeath   string
	Insurance     Insurance
}

func (p *Patient) AddBill(b billing.Billing) {
	p.Billing = append(p.Billing, b)
}

func (p *Patient) AddProcedure(date, description string) {
	p.Procedures = append(p.Procedures, Procedure{Date: date, Description: description})
}

// MarkProcedureBilled flips the billed flag for the procedure at the
// given index. Out-of-range indexes are ignored.
func (p *Patient) MarkProcedureBilled(index int) {
	if index >= 0 && index < len(p.Procedures) {
		p.Procedures[index].Billed = true
	}
}

// UnbilledProcedures returns the indexes of procedures that have not
// yet produced a bill, in recording order.
func (p *Patient) UnbilledProcedures() []int {
	var idxs []int
	for i, proc := range p.Procedures {
		if !proc.Billed {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (p *Patient) IsDeceased() bool {
	return p.Status == StatusDeath
}

// Matches reports whether the identifier refers to this patient, by
// exact name or by patient number in any textual or numeric form.
func (p *Patient) Matches(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if p.Name == identifier || p.PatientNumber == identifier {
		return true
	}
	if a, err := strconv.Atoi(p.PatientNumber); err == nil {
		if b, err := strconv.Atoi(identifier); err == nil {
			return a == b
		}
	}
	return false
}

type CreatePatientCommand struct {
	Name        string
	Age         int
	Condition   string
	PhoneNumber string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	Identifier  string
	NextOfKin   NextOfKin
	RoomNumber  *int
	Insurance   Insurance
}

// UpdatePatientCommand is a field-by-field patch: nil keeps the
// current value. A Status of death requires DateOfDeath to be supplied
// or already present.
type UpdatePatientCommand struct {
	Name          *string
	Age           *int
	PhoneNumber   *string
	DateOfBirth   *string
	Gender        *string
	Email         *string
	Address       *string
	Identifier    *string
	Condition     *string
	Status        *Status
	NextOfKin     *NextOfKin
	DateOfDeath   *string
	RegisterDate  *string
	DischargeDate *string
	Insurance     *Insurance
}
