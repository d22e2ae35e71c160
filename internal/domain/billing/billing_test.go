package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedAmount(t *testing.T) {
	assert.InDelta(t, 800.0, DiscountedAmount(1000, 20), 0.001)
	assert.InDelta(t, 1000.0, DiscountedAmount(1000, 0), 0.001)
	assert.InDelta(t, 0.0, DiscountedAmount(1000, 100), 0.001)
}

func TestCompose_WithCoverage(t *testing.T) {
	bill := Compose(1000, "X-ray", 20)

	assert.InDelta(t, 800.0, bill.Amount, 0.001)
	assert.Equal(t, "X-ray (after 20% insurance discount)", bill.Description)
	assert.False(t, bill.Paid)
}

func TestCompose_WithoutCoverage(t *testing.T) {
	bill := Compose(150, "Consultation", 0)

	assert.InDelta(t, 150.0, bill.Amount, 0.001)
	assert.Equal(t, "Consultation", bill.Description)
}

func TestCompose_FractionalCoverage(t *testing.T) {
	bill := Compose(200, "Blood test", 12.5)

	assert.InDelta(t, 175.0, bill.Amount, 0.001)
	assert.Equal(t, "Blood test (after 12.5% insurance discount)", bill.Description)
}

func TestMarkPaid(t *testing.T) {
	bill := Compose(100, "Consultation", 0)

	bill.MarkPaid()
	assert.True(t, bill.Paid)

	// Re-marking is harmless.
	bill.MarkPaid()
	assert.True(t, bill.Paid)
}
