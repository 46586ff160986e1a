package purchaseController

import (
	"testing"

	"cyberacademy/models"

	"github.com/stretchr/testify/assert"
)

func TestMarkRefundRequiredClosesPendingRow(t *testing.T) {
	transaction := models.EscudoTransaction{
		Status:        models.TransactionStatusPending,
		ReferenceType: "course",
		ReferenceID:   12,
	}

	markRefundRequired(&transaction, "settlement", "captured payment for a course the user already owns")

	assert.Equal(t, models.TransactionStatusFailed, transaction.Status)
	assert.Equal(t, "settlement", transaction.PaymentStatus)
	assert.Equal(t, "refund required: captured payment for a course the user already owns", transaction.Reason)
}

func TestMarkRefundRequiredRecordsGatewayStatus(t *testing.T) {
	transaction := models.EscudoTransaction{Status: models.TransactionStatusPending}

	markRefundRequired(&transaction, "capture", "duplicate purchase")

	assert.Equal(t, models.TransactionStatusFailed, transaction.Status)
	assert.Equal(t, "capture", transaction.PaymentStatus)
	assert.Contains(t, transaction.Reason, "duplicate purchase")
}
