// Package cli drives the records engine through a synchronous text
// menu. It is a thin collaborator: every rule lives in the services,
// and this layer only prompts, renders, and maps errors to operator
// messages.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/domain/billing"
	"github.com/samsalem6/hospital-records/internal/domain/department"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
	"github.com/samsalem6/hospital-records/internal/service"
)

type Menu struct {
	dir   *service.Directory
	auth  *service.AuthService
	audit *service.AuditService
	in    *bufio.Scanner
	out   io.Writer
	log   *zap.Logger
}

func NewMenu(dir *service.Directory, auth *service.AuthService, audit *service.AuditService, in io.Reader, out io.Writer, log *zap.Logger) *Menu {
	return &Menu{
		dir:   dir,
		auth:  auth,
		audit: audit,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
	}
}

// Run blocks on the login prompt and then on the main menu until the
// operator exits or input ends.
func (m *Menu) Run() error {
	fmt.Fprintln(m.out, "Welcome to the Hospital Management System")

	if !m.login() {
		return errors.New("login aborted")
	}

	for {
		m.printMenu()
		choice := m.prompt("Select option (1-22)")
		if choice == "" {
			return nil
		}
		if done := m.dispatch(choice); done {
			return nil
		}
	}
}

func (m *Menu) login() bool {
	for {
		username := m.prompt("Username")
		password := m.prompt("Password")
		if username == "" && password == "" {
			return false
		}

		session, err := m.auth.Login(username, password)
		if err != nil {
			fmt.Fprintln(m.out, "Login failed! Invalid username or password.")
			continue
		}

		m.audit.SetActor(session.Username)
		fmt.Fprintf(m.out, "Login successful! Welcome %s (%s)\n", session.Username, session.Role)
		return true
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "\n"+strings.Repeat("=", 50))
	fmt.Fprintln(m.out, "Capital Hospital - Patient Management System")
	fmt.Fprintln(m.out, strings.Repeat("=", 50))
	for i, item := range menuItems {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, item)
	}
	fmt.Fprintln(m.out, strings.Repeat("-", 50))
}

var menuItems = []string{
	"View Patients",
	"View Rooms",
	"Add Patient",
	"Assign Room",
	"Generate Bill",
	"View Patient Bills",
	"Mark Bill as Paid",
	"Add Department",
	"Add Staff to Department",
	"View Department Staff",
	"Edit Patient",
	"Remove Patient",
	"Edit Staff in Department",
	"Remove Staff from Department",
	"Update Patient Status",
	"Add Procedure to Patient",
	"View Patient Procedures",
	"Generate Bills from Procedures",
	"Save Data",
	"Exit",
	"Assign Patient to Doctor",
	"View Doctor's Patients",
}

// dispatch runs one menu action; it returns true when the operator
// chose to exit.
func (m *Menu) dispatch(choice string) bool {
	switch choice {
	case "1":
		m.viewPatients()
	case "2":
		m.viewRooms()
	case "3":
		m.addPatient()
	case "4":
		m.assignRoom()
	case "5":
		m.generateBill()
	case "6":
		m.withPatient("Patient name or number to view bills", m.renderBills)
	case "7":
		m.markBillPaid()
	case "8":
		m.addDepartment()
	case "9":
		m.addStaff()
	case "10":
		m.viewDepartmentStaff()
	case "11":
		m.editPatient()
	case "12":
		m.removePatient()
	case "13":
		m.editStaff()
	case "14":
		m.removeStaff()
	case "15":
		m.updateStatus()
	case "16":
		m.addProcedure()
	case "17":
		m.withPatient("Patient name or number to view procedures", m.renderProcedures)
	case "18":
		m.billProcedures()
	case "19":
		if err := m.dir.Save(); err != nil {
			m.report(err)
		} else {
			fmt.Fprintln(m.out, "Data saved.")
		}
	case "20":
		if m.promptYesNo("Save data before exit?") {
			if err := m.dir.Save(); err != nil {
				m.report(err)
			}
		}
		fmt.Fprintln(m.out, "Goodbye!")
		return true
	case "21":
		m.assignPatientToDoctor()
	case "22":
		m.viewDoctorPatients()
	default:
		fmt.Fprintln(m.out, "Invalid choice.")
	}
	return false
}

// withPatient looks a patient up and runs the view on it.
func (m *Menu) withPatient(label string, view func(*patient.Patient)) {
	p, err := m.dir.Patients.Find(m.prompt(label))
	if err != nil {
		m.report(err)
		return
	}
	view(p)
}

func (m *Menu) viewPatients() {
	patients := m.dir.Patients.List()
	m.renderPatients(patients)
	for _, p := range patients {
		m.renderPatientDetails(p)
	}
}

func (m *Menu) viewRooms() {
	rooms := m.dir.Dataset().Rooms
	if len(rooms) == 0 {
		fmt.Fprintln(m.out, "No rooms occupied.")
		return
	}
	numbers := make([]int, 0, len(rooms))
	for room := range rooms {
		numbers = append(numbers, room)
	}
	sort.Ints(numbers)
	for _, room := range numbers {
		fmt.Fprintf(m.out, "Room %d: %s\n", room, rooms[room])
	}
}

func (m *Menu) addPatient() {
	cmd := &patient.CreatePatientCommand{Name: m.prompt("Patient name")}

	age, err := m.promptInt("Age")
	if err != nil {
		m.report(err)
		return
	}
	cmd.Age = age
	cmd.Condition = m.prompt("Condition")
	cmd.PhoneNumber = m.prompt("Phone number")
	cmd.DateOfBirth = m.prompt("Date of birth")
	cmd.Gender = m.prompt("Gender")
	cmd.Email = m.prompt("Email")
	cmd.Address = m.prompt("Address")
	cmd.Identifier = m.prompt("Patient identifier (blank to generate)")

	if room := m.prompt("Room number (optional)"); room != "" {
		n, err := parseInt(room)
		if err != nil {
			m.report(err)
			return
		}
		cmd.RoomNumber = &n
	}

	if m.promptYesNo("Is there a next of kin?") {
		cmd.NextOfKin = patient.NextOfKin{
			Name:     m.prompt("Next of kin name"),
			Number:   m.prompt("Next of kin number"),
			Email:    m.prompt("Next of kin email"),
			Relation: m.prompt("Relation to patient"),
		}
	}

	if m.promptYesNo("Does the patient have insurance?") {
		cmd.Insurance.Provider = m.prompt("Insurance provider")
		cmd.Insurance.PolicyNumber = m.prompt("Policy number")
		coverage, err := m.promptFloat("Coverage percent (0-100)")
		if err != nil {
			m.report(err)
			return
		}
		cmd.Insurance.CoveragePercent = coverage
	}

	p, err := m.dir.Patients.Register(cmd)
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Patient %q added with number %s.\n", p.Name, p.PatientNumber)
}

func (m *Menu) assignRoom() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to assign room"))
	if err != nil {
		m.report(err)
		return
	}
	room, err := m.promptInt("Room number")
	if err != nil {
		m.report(err)
		return
	}
	if err := m.dir.Patients.AssignRoom(p, room); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Assigned room %d to %s.\n", room, p.Name)
}

func (m *Menu) generateBill() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number for billing"))
	if err != nil {
		m.report(err)
		return
	}
	amount, err := m.promptFloat("Bill amount")
	if err != nil {
		m.report(err)
		return
	}
	desc := m.prompt("Description")

	bill, err := m.dir.Billing.GenerateBill(p, amount, desc)
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Bill generated for %s: %.2f - %s\n", p.Name, bill.Amount, bill.Description)
}

func (m *Menu) markBillPaid() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to mark bill as paid"))
	if err != nil {
		m.report(err)
		return
	}
	if len(p.Billing) == 0 {
		fmt.Fprintln(m.out, "No bills to mark as paid.")
		return
	}
	m.renderBills(p)
	index, err := m.promptInt("Enter the index of the bill to mark as paid")
	if err != nil {
		m.report(err)
		return
	}
	if err := m.dir.Billing.MarkBillPaid(p, index); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Bill marked as paid.")
}

func (m *Menu) addDepartment() {
	name := m.prompt("Department name")
	if _, err := m.dir.Departments.Add(name); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Department %q added.\n", name)
}

func (m *Menu) addStaff() {
	deptName := m.prompt("Department name")
	cmd := &department.CreateStaffCommand{Name: m.prompt("Staff name")}

	age, err := m.promptInt("Staff age")
	if err != nil {
		m.report(err)
		return
	}
	cmd.Age = age
	cmd.Position = m.prompt("Staff position")
	cmd.PhoneNumber = m.prompt("Staff phone number")
	cmd.DateOfBirth = m.prompt("Staff date of birth")
	cmd.Gender = m.prompt("Staff gender")
	cmd.Email = m.prompt("Staff email")
	cmd.Address = m.prompt("Staff address")
	cmd.Identifier = m.prompt("Staff identifier")
	cmd.Specialty = m.prompt("Specialty (leave blank for general)")

	staff, err := m.dir.Departments.AddStaff(deptName, cmd)
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Staff %q (%s) added to %s department.\n", staff.Name, staff.Role, deptName)
}

func (m *Menu) viewDepartmentStaff() {
	dept, err := m.dir.Departments.Get(m.prompt("Department name"))
	if err != nil {
		m.report(err)
		return
	}
	m.renderDepartmentStaff(dept)
}

func (m *Menu) editPatient() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to edit"))
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Editing patient: %s (Number: %s)\n", p.Name, p.PatientNumber)

	cmd := &patient.UpdatePatientCommand{
		Name:        m.promptKeep("New name", p.Name),
		PhoneNumber: m.promptKeep("New phone number", p.PhoneNumber),
		DateOfBirth: m.promptKeep("New date of birth", p.DateOfBirth),
		Gender:      m.promptKeep("New gender", p.Gender),
		Email:       m.promptKeep("New email", p.Email),
		Address:     m.promptKeep("New address", p.Address),
		Identifier:  m.promptKeep("New identifier", p.Identifier),
		Condition:   m.promptKeep("New condition", p.Condition),
	}

	if raw := m.promptKeep("New age", fmt.Sprint(p.Age)); raw != nil {
		age, err := parseInt(*raw)
		if err != nil {
			m.report(err)
			return
		}
		cmd.Age = &age
	}

	if raw := m.promptKeep("New status (normal/surgery/emergency/death)", string(p.Status)); raw != nil {
		status := patient.Status(*raw)
		cmd.Status = &status
		if status == patient.StatusDeath {
			if date := m.promptKeep("Date of death (YYYY-MM-DD)", p.DateOfDeath); date != nil {
				cmd.DateOfDeath = date
			}
		}
	}

	switch strings.ToLower(m.prompt("Is there a next of kin? (yes/no, leave blank to keep current)")) {
	case "no", "n":
		cmd.NextOfKin = &patient.NextOfKin{}
	case "yes", "y":
		kin := p.NextOfKin
		applyKeep(&kin.Name, m.promptKeep("Next of kin name", kin.Name))
		applyKeep(&kin.Number, m.promptKeep("Next of kin number", kin.Number))
		applyKeep(&kin.Email, m.promptKeep("Next of kin email", kin.Email))
		applyKeep(&kin.Relation, m.promptKeep("Relation to patient", kin.Relation))
		cmd.NextOfKin = &kin
	}

	cmd.RegisterDate = m.promptKeep("Register date (YYYY-MM-DD)", p.RegisterDate)
	cmd.DischargeDate = m.promptKeep("Discharge date (YYYY-MM-DD)", p.DischargeDate)

	switch strings.ToLower(m.prompt("Does the patient have insurance? (yes/no, leave blank to keep current)")) {
	case "no", "n":
		cmd.Insurance = &patient.Insurance{}
	case "yes", "y":
		ins := p.Insurance
		applyKeep(&ins.Provider, m.promptKeep("Insurance provider", ins.Provider))
		applyKeep(&ins.PolicyNumber, m.promptKeep("Policy number", ins.PolicyNumber))
		if raw := m.promptKeep("Coverage percent (0-100)", fmt.Sprint(ins.CoveragePercent)); raw != nil {
			if coverage, err := parseFloat(*raw); err == nil {
				ins.CoveragePercent = coverage
			}
		}
		cmd.Insurance = &ins
	}

	if err := m.dir.Patients.Edit(p, cmd); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Patient updated.")
}

func (m *Menu) removePatient() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to remove"))
	if err != nil {
		m.report(err)
		return
	}
	if err := m.dir.Patients.Remove(p); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Patient %q (Number: %s) removed.\n", p.Name, p.PatientNumber)
}

func (m *Menu) editStaff() {
	deptName := m.prompt("Department name")
	staffName := m.prompt("Staff name to edit")

	dept, err := m.dir.Departments.Get(deptName)
	if err != nil {
		m.report(err)
		return
	}
	staff := dept.FindStaff(staffName)
	if staff == nil {
		m.report(department.ErrStaffNotFound)
		return
	}
	fmt.Fprintf(m.out, "Editing staff: %s\n", staff.Name)

	cmd := &department.UpdateStaffCommand{
		Name:        m.promptKeep("New name", staff.Name),
		Position:    m.promptKeep("New position", staff.Position),
		PhoneNumber: m.promptKeep("New phone number", staff.PhoneNumber),
		DateOfBirth: m.promptKeep("New date of birth", staff.DateOfBirth),
		Gender:      m.promptKeep("New gender", staff.Gender),
		Email:       m.promptKeep("New email", staff.Email),
		Address:     m.promptKeep("New address", staff.Address),
		Identifier:  m.promptKeep("New identifier", staff.Identifier),
	}
	if raw := m.promptKeep("New age", fmt.Sprint(staff.Age)); raw != nil {
		age, err := parseInt(*raw)
		if err != nil {
			m.report(err)
			return
		}
		cmd.Age = &age
	}

	if err := m.dir.Departments.EditStaff(deptName, staffName, cmd); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Staff updated.")
}

func (m *Menu) removeStaff() {
	deptName := m.prompt("Department name")
	staffName := m.prompt("Staff name to remove")
	if err := m.dir.Departments.RemoveStaff(deptName, staffName); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Staff %q removed from department %q.\n", staffName, deptName)
}

func (m *Menu) updateStatus() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to update status"))
	if err != nil {
		m.report(err)
		return
	}
	status := patient.Status(m.prompt(fmt.Sprintf("Enter new status for %s (normal/surgery/emergency/death)", p.Name)))

	var dateOfDeath string
	if status == patient.StatusDeath {
		dateOfDeath = m.prompt("Enter date of death (YYYY-MM-DD)")
	}

	if err := m.dir.Patients.UpdateStatus(p, status, dateOfDeath); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Status updated to %s.\n", status)
}

func (m *Menu) addProcedure() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to add procedure"))
	if err != nil {
		m.report(err)
		return
	}
	date := m.prompt("Enter procedure date (YYYY-MM-DD)")
	desc := m.prompt("Enter procedure description")

	if err := m.dir.Procedures.AddProcedure(p, date, desc); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Procedure added.")
}

func (m *Menu) billProcedures() {
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to generate bills from procedures"))
	if err != nil {
		m.report(err)
		return
	}

	created, err := m.dir.Procedures.GenerateBillsFromProcedures(p, func(proc patient.Procedure) (float64, error) {
		fmt.Fprintf(m.out, "Procedure: %s on %s\n", proc.Description, proc.Date)
		amount, err := m.promptFloat("Enter bill amount for this procedure")
		if err != nil {
			fmt.Fprintln(m.out, "Invalid amount. Skipping.")
			return 0, err
		}
		return amount, nil
	})
	if err != nil {
		m.report(err)
		return
	}
	if created == 0 {
		fmt.Fprintln(m.out, "No unbilled procedures found.")
		return
	}
	fmt.Fprintf(m.out, "%d bill(s) generated from procedures.\n", created)
}

func (m *Menu) assignPatientToDoctor() {
	deptName := m.prompt("Department name")
	doctorName := m.prompt("Doctor's name")
	p, err := m.dir.Patients.Find(m.prompt("Patient name or number to assign"))
	if err != nil {
		m.report(err)
		return
	}
	if err := m.dir.Departments.AssignPatientToDoctor(deptName, doctorName, p); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Patient %q assigned to Doctor %q in %s department.\n", p.Name, doctorName, deptName)
}

func (m *Menu) viewDoctorPatients() {
	dept, err := m.dir.Departments.Get(m.prompt("Department name"))
	if err != nil {
		m.report(err)
		return
	}
	doctor := dept.FindDoctor(m.prompt("Doctor's name"))
	if doctor == nil {
		m.report(department.ErrDoctorNotFound)
		return
	}
	if len(doctor.Patients) == 0 {
		fmt.Fprintf(m.out, "No patients assigned to Dr. %s.\n", doctor.Name)
		return
	}
	fmt.Fprintf(m.out, "Patients of Dr. %s:\n", doctor.Name)
	for _, p := range doctor.Patients {
		fmt.Fprintf(m.out, "%s (Number: %s)\n", p.Name, p.PatientNumber)
	}
}

// report maps engine errors to operator messages; nothing here is
// fatal.
func (m *Menu) report(err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		fmt.Fprintf(m.out, "Invalid input: %s\n", strings.Join(validErr.Fields, "; "))
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientDeceased):
		fmt.Fprintln(m.out, "Operation not permitted: patient is deceased. Record is kept for history.")
	case errors.Is(err, patient.ErrRoomOccupied):
		fmt.Fprintln(m.out, "Room is already occupied.")
	case errors.Is(err, patient.ErrRemovalNotAllowed):
		fmt.Fprintln(m.out, "Patient status is not normal.")
	case errors.Is(err, patient.ErrPatientNotFound):
		fmt.Fprintln(m.out, "Patient not found.")
	case errors.Is(err, patient.ErrInvalidStatus):
		fmt.Fprintln(m.out, "Invalid status.")
	case errors.Is(err, patient.ErrDeathDateRequired):
		fmt.Fprintln(m.out, "A date of death is required for status death.")
	case errors.Is(err, patient.ErrDuplicateIdentifier),
		errors.Is(err, patient.ErrDuplicateNumber),
		errors.Is(err, department.ErrDepartmentAlreadyExists):
		fmt.Fprintf(m.out, "%s\n", err)
	case errors.Is(err, department.ErrDepartmentNotFound),
		errors.Is(err, department.ErrDoctorNotFound),
		errors.Is(err, department.ErrStaffNotFound):
		fmt.Fprintf(m.out, "%s\n", err)
	case errors.Is(err, billing.ErrIndexOutOfRange):
		fmt.Fprintln(m.out, "Invalid index.")
	case errors.Is(err, billing.ErrNegativeAmount):
		fmt.Fprintln(m.out, "Bill amount must not be negative.")
	default:
		m.log.Error("operation failed", zap.Error(err))
		fmt.Fprintf(m.out, "Operation failed: %s\n", err)
	}
}
