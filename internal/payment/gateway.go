// Package payment wraps the Razorpay collaborator: creating a payment
// intent before checkout and verifying the signatures Razorpay hands back.
package payment

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

var (
	ErrNotConfigured   = errors.New("payment gateway not configured")
	ErrBadSignature    = errors.New("payment signature invalid")
	ErrBadWebhookSig   = errors.New("webhook signature invalid")
	ErrGatewayUpstream = errors.New("payment gateway call failed")
)

type Gateway interface {
	// CreateOrder registers a payment intent for the given amount in paise
	// and returns the gateway's order id.
	CreateOrder(ctx context.Context, amountPaise int64) (string, error)
	// VerifyPayment checks the signature triple Razorpay returns after a
	// successful browser payment.
	VerifyPayment(orderID, paymentID, signature string) error
	// VerifyWebhook checks the HMAC over the raw webhook body.
	VerifyWebhook(body []byte, signature string) error
}

type RazorpayGateway struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
}

// NewRazorpayGateway returns a gateway whose calls fail with
// ErrNotConfigured when credentials are absent.
func NewRazorpayGateway(keyID, keySecret, webhookSecret string) *RazorpayGateway {
	g := &RazorpayGateway{keySecret: keySecret, webhookSecret: webhookSecret}
	if keyID != "" && keySecret != "" {
		g.client = razorpay.NewClient(keyID, keySecret)
	}
	return g
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"payment_capture": 1,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUpstream, err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: no order id in response", ErrGatewayUpstream)
	}
	return id, nil
}

func (g *RazorpayGateway) VerifyPayment(orderID, paymentID, signature string) error {
	if g.client == nil {
		return ErrNotConfigured
	}
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if !utils.VerifyPaymentSignature(params, signature, g.keySecret) {
		return ErrBadSignature
	}
	return nil
}

func (g *RazorpayGateway) VerifyWebhook(body []byte, signature string) error {
	if g.webhookSecret == "" {
		return ErrNotConfigured
	}
	if !utils.VerifyWebhookSignature(string(body), signature, g.webhookSecret) {
		return ErrBadWebhookSig
	}
	return nil
}
