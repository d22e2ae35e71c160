package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/domain/billing"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

// AmountProvider supplies the charge for one procedure when bills are
// derived from the procedure ledger. Returning an error skips that
// procedure only.
type AmountProvider func(proc patient.Procedure) (float64, error)

// ProcedureService records clinical procedures and converts unbilled
// ones into bills.
type ProcedureService struct {
	*core
}

func NewProcedureService(c *core) *ProcedureService {
	return &ProcedureService{core: c}
}

func (s *ProcedureService) AddProcedure(p *patient.Patient, date, description string) error {
	p.AddProcedure(date, description)

	s.metrics.ProceduresRecordedTotal.Inc()
	s.audit.Record(AuditEntry{Action: "create", ResourceType: "procedure", ResourceID: p.PatientNumber})
	s.log.Info("procedure recorded",
		zap.String("patient_number", p.PatientNumber),
		zap.String("date", date),
	)

	return s.save("add_procedure")
}

// GenerateBillsFromProcedures bills every procedure not yet billed,
// insurance-aware, and marks it billed. A procedure whose amount
// cannot be obtained is skipped and the rest continue; partial success
// is expected. The number of bills created is returned.
func (s *ProcedureService) GenerateBillsFromProcedures(p *patient.Patient, amountFor AmountProvider) (int, error) {
	if p.IsDeceased() {
		return 0, patient.ErrPatientDeceased
	}

	unbilled := p.UnbilledProcedures()
	if len(unbilled) == 0 {
		return 0, nil
	}

	created := 0
	for _, idx := range unbilled {
		proc := p.Procedures[idx]
		amount, err := amountFor(proc)
		if err != nil || amount < 0 {
			s.log.Warn("skipping procedure with invalid amount",
				zap.String("patient_number", p.PatientNumber),
				zap.String("procedure", proc.Description),
			)
			continue
		}

		desc := fmt.Sprintf("Procedure: %s on %s", proc.Description, proc.Date)
		bill := billing.Compose(amount, desc, p.Insurance.CoveragePercent)
		p.AddBill(bill)
		p.MarkProcedureBilled(idx)
		created++

		s.metrics.BillsGeneratedTotal.Inc()
		s.metrics.BillAmountTotal.Add(bill.Amount)
	}

	if created > 0 {
		s.audit.Record(AuditEntry{Action: "create", ResourceType: "procedure_bills", ResourceID: p.PatientNumber})
		s.log.Info("bills generated from procedures",
			zap.String("patient_number", p.PatientNumber),
			zap.Int("count", created),
		)
	}

	return created, s.save("generate_bills_from_procedures")
}
