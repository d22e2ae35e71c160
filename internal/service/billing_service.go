package service

import (
	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/domain/billing"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
)

// BillingService computes insurance-adjusted charges and manages the
// bill ledger of a patient.
type BillingService struct {
	*core
}

func NewBillingService(c *core) *BillingService {
	return &BillingService{core: c}
}

// GenerateBill stores a charge on the patient's ledger. With insurance
// coverage the stored amount is the discounted one and the description
// notes the applied percentage. Deceased patients cannot be billed.
func (s *BillingService) GenerateBill(p *patient.Patient, amount float64, description string) (billing.Billing, error) {
	if p.IsDeceased() {
		return billing.Billing{}, patient.ErrPatientDeceased
	}
	if amount < 0 {
		return billing.Billing{}, billing.ErrNegativeAmount
	}

	bill := billing.Compose(amount, description, p.Insurance.CoveragePercent)
	p.AddBill(bill)

	s.metrics.BillsGeneratedTotal.Inc()
	s.metrics.BillAmountTotal.Add(bill.Amount)
	s.audit.Record(AuditEntry{Action: "create", ResourceType: "bill", ResourceID: p.PatientNumber})
	s.log.Info("bill generated",
		zap.String("patient_number", p.PatientNumber),
		zap.Float64("amount", bill.Amount),
		zap.Float64("coverage_percent", p.Insurance.CoveragePercent),
	)

	return bill, s.save("generate_bill")
}

// MarkBillPaid flips the paid flag on the bill at index. Re-marking a
// paid bill is harmless.
func (s *BillingService) MarkBillPaid(p *patient.Patient, index int) error {
	if index < 0 || index >= len(p.Billing) {
		return billing.ErrIndexOutOfRange
	}

	p.Billing[index].MarkPaid()

	s.audit.Record(AuditEntry{Action: "update", ResourceType: "bill", ResourceID: p.PatientNumber})
	s.log.Info("bill marked paid",
		zap.String("patient_number", p.PatientNumber),
		zap.Int("index", index),
	)

	return s.save("mark_bill_paid")
}
