package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document is the full persisted dataset. The engine always writes the
// whole document; there is no partial or incremental persistence.
type Document struct {
	Patients    []PatientRecord             `json:"patients"`
	Departments map[string]DepartmentRecord `json:"departments"`
}

func EmptyDocument() *Document {
	return &Document{
		Patients:    []PatientRecord{},
		Departments: map[string]DepartmentRecord{},
	}
}

// PatientNumbers returns every patient number present in the document,
// in stored order.
func (d *Document) PatientNumbers() []string {
	nums := make([]string, 0, len(d.Patients))
	for _, p := range d.Patients {
		nums = append(nums, string(p.PatientNumber))
	}
	return nums
}

// FlexString decodes a JSON string or number into a string. Older
// documents stored patient numbers as bare numbers.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
	} else {
		*f = FlexString(n.String())
	}
	return nil
}

type NextOfKinRecord struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Email    string `json:"email"`
	Relation string `json:"relation"`
}

type InsuranceRecord struct {
	Provider        string  `json:"provider"`
	PolicyNumber    string  `json:"policy_number"`
	CoveragePercent float64 `json:"coverage_percent"`
}

type ProcedureRecord struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Billed      bool   `json:"billed"`
}

type BillingRecord struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Paid        bool    `json:"paid"`
}

// PatientRecord mirrors the wire shape of one patient entry. Optional
// fields are omitted when empty so documents written by the simpler
// model variant stay readable and re-writable.
type PatientRecord struct {
	Name          string            `json:"name"`
	Age           int               `json:"age"`
	Condition     string            `json:"condition"`
	PatientNumber FlexString        `json:"patient_number"`
	PhoneNumber   string            `json:"phone_number,omitempty"`
	DateOfBirth   string            `json:"date_of_birth,omitempty"`
	Gender        string            `json:"gender,omitempty"`
	Email         string            `json:"email,omitempty"`
	Address       string            `json:"address,omitempty"`
	Identifier    string            `json:"identifier,omitempty"`
	NextOfKin     NextOfKinRecord   `json:"patient_next_of_kin"`
	RoomNumber    *int              `json:"room_number,omitempty"`
	Procedures    []ProcedureRecord `json:"procedures"`
	Billing       []BillingRecord   `json:"billing"`
	Status        string            `json:"status"`
	RegisterDate  string            `json:"register_date,omitempty"`
	DischargeDate string            `json:"discharge_date,omitempty"`
	DateOfDeath   string            `json:"date_of_death,omitempty"`
	Insurance     InsuranceRecord   `json:"insurance"`
}

type StaffRecord struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Position    string `json:"position"`
	PhoneNumber string `json:"phone_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	Identifier  string `json:"identifier,omitempty"`

	// Extended fields so doctor specialties and nurse affiliations
	// survive a round trip.
	Specialty  string `json:"specialty,omitempty"`
	Department string `json:"department,omitempty"`
}

type DepartmentRecord struct {
	Patients []string      `json:"patients"`
	Staff    []StaffRecord `json:"staff"`

	// Assignments maps a doctor's name to the patient names on their
	// list, extending the historical schema which dropped them.
	Assignments map[string][]string `json:"assignments,omitempty"`
}
