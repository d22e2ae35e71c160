package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samsalem6/hospital-records/internal/domain/department"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

func (m *Menu) renderPatients(patients []*patient.Patient) {
	if len(patients) == 0 {
		fmt.Fprintln(m.out, "No patients registered.")
		return
	}
	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tNAME\tAGE\tCONDITION\tROOM\tSTATUS\tBILLS")
	for _, p := range patients {
		room := "-"
		if p.RoomNumber != nil {
			room = strconv.Itoa(*p.RoomNumber)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%d\n",
			p.PatientNumber, p.Name, p.Age, p.Condition, room, p.Status, len(p.Billing))
	}
	w.Flush()
}

func (m *Menu) renderPatientDetails(p *patient.Patient) {
	fmt.Fprintf(m.out, "Number: %s, Name: %s, Age: %d, Condition: %s, Identifier: %s, Status: %s\n",
		p.PatientNumber, p.Name, p.Age, p.Condition, p.Identifier, p.Status)
	if p.RegisterDate != "" {
		fmt.Fprintf(m.out, "Registered: %s\n", p.RegisterDate)
	}
	if p.DischargeDate != "" {
		fmt.Fprintf(m.out, "Discharged: %s\n", p.DischargeDate)
	}
	if p.IsDeceased() && p.DateOfDeath != "" {
		fmt.Fprintf(m.out, "Date of death: %s\n", p.DateOfDeath)
	}
	if p.NextOfKin != (patient.NextOfKin{}) {
		k := p.NextOfKin
		fmt.Fprintf(m.out, "Next of kin: %s (%s), Number: %s, Email: %s\n", k.Name, k.Relation, k.Number, k.Email)
	}
}

func (m *Menu) renderBills(p *patient.Patient) {
	if len(p.Billing) == 0 {
		fmt.Fprintln(m.out, "No bills recorded.")
		return
	}
	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tDESCRIPTION\tAMOUNT\tPAID")
	for i, b := range p.Billing {
		paid := "No"
		if b.Paid {
			paid = "Yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", i, b.Description, b.Amount, paid)
	}
	w.Flush()
}

func (m *Menu) renderProcedures(p *patient.Patient) {
	if len(p.Procedures) == 0 {
		fmt.Fprintln(m.out, "No procedures recorded.")
		return
	}
	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tBILLED")
	for _, proc := range p.Procedures {
		billed := "No"
		if proc.Billed {
			billed = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", proc.Date, proc.Description, billed)
	}
	w.Flush()
}

func (m *Menu) renderDepartmentStaff(dept *department.Department) {
	groups := []struct {
		title string
		staff []*department.Staff
	}{
		{"Doctors", dept.Doctors()},
		{"Nurses", dept.Nurses()},
		{"Other staff", dept.Others()},
	}
	for _, g := range groups {
		if len(g.staff) == 0 {
			fmt.Fprintf(m.out, "No %s in department %q.\n", strings.ToLower(g.title), dept.Name)
			continue
		}
		fmt.Fprintf(m.out, "%s in %s:\n", g.title, dept.Name)
		w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tAGE\tPOSITION\tSPECIALTY\tPHONE\tEMAIL")
		for _, s := range g.staff {
			specialty := s.Specialty
			if specialty == "" {
				specialty = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n", s.Name, s.Age, s.Position, specialty, s.PhoneNumber, s.Email)
		}
		w.Flush()
	}
}
