package utils

import (
	"cyberacademy/config"
	"fmt"
	"math"

	"github.com/go-resty/resty/v2"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var snapClient snap.Client

// InitPaymentGateway initializes the hosted-checkout client with the server key.
func InitPaymentGateway() {
	snapClient.New(config.AppConfig.PaymentServerKey, midtrans.Sandbox)
}

// grossAmount converts a two-decimal money amount to the gateway's smallest
// currency unit. Rounded, not truncated: int64(19.99 * 100) is 1998.
func grossAmount(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCheckoutTransaction registers a transaction with the payment gateway
// and returns the hosted-checkout redirect URL.
func CreateCheckoutTransaction(orderID string, amount float64, name, email, itemName string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
		Callbacks: &snap.Callbacks{
			Finish: config.AppConfig.CheckoutFinish,
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}

	return resp.RedirectURL, nil
}

type gatewayStatus struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusMessage     string `json:"status_message"`
}

// CheckTransactionStatus polls the gateway for an order's transaction status
// (settlement, pending, expire, deny, cancel).
func CheckTransactionStatus(orderID string) (string, error) {
	client := resty.New()

	var status gatewayStatus
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.PaymentServerKey, "").
		SetHeader("Accept", "application/json").
		SetResult(&status).
		Get(config.AppConfig.PaymentBaseURL + "/v2/" + orderID + "/status")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("gateway status check failed: %s", resp.Status())
	}

	return status.TransactionStatus, nil
}
