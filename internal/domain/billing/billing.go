package billing

import "strconv"

// Billing is a single charge on a patient ledger. Paid only ever moves
// from false to true.
type Billing struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Paid        bool    `json:"paid"`
}

func (b *Billing) MarkPaid() {
	b.Paid = true
}

// DiscountedAmount returns the patient-owed amount after the insurer
// absorbs coveragePercent of the charge.
func DiscountedAmount(amount, coveragePercent float64) float64 {
	return amount - (coveragePercent/100)*amount
}

// Compose builds the ledger entry for a charge. With coverage the
// stored amount is the discounted one and the description notes the
// applied percentage; without coverage the raw values are kept.
func Compose(amount float64, description string, coveragePercent float64) Billing {
	if coveragePercent > 0 {
		return Billing{
			Amount:      DiscountedAmount(amount, coveragePercent),
			Description: annotate(description, coveragePercent),
		}
	}
	return Billing{Amount: amount, Description: description}
}

func annotate(description string, coveragePercent float64) string {
	return description + " (after " + strconv.FormatFloat(coveragePercent, 'f', -1, 64) + "% insurance discount)"
}
