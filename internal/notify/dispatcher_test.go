package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zingamazing/zing-orders/internal/order"
)

type fakeSender struct {
	calls   []sentMessage
	failFor map[string]error // keyed by normalized recipient
}

type sentMessage struct{ to, body string }

func (f *fakeSender) Send(ctx context.Context, to, body string) error {
	f.calls = append(f.calls, sentMessage{to: to, body: body})
	if err := f.failFor[to]; err != nil {
		return err
	}
	return nil
}

func testOrder() *order.Order {
	return &order.Order{
		ID:            7,
		Name:          "Asha",
		Phone:         "9876543210",
		Address:       "12 Market Road",
		Location:      "13.45,79.55",
		Items:         "Paneer Roll, Lime Soda",
		TotalPrice:    "302.70",
		PaymentMethod: order.PaymentOnline,
	}
}

func TestNotify_SkippedWhenChannelNotConfigured(t *testing.T) {
	d := NewDispatcher(nil, "+918888888888", "+91")

	cust, merch := d.Notify(context.Background(), testOrder())
	assert.Equal(t, StatusSkipped, cust.Status)
	assert.Equal(t, StatusSkipped, merch.Status)
	assert.Contains(t, cust.Reason, "not configured")
}

func TestNotify_SendsBothMessages(t *testing.T) {
	s := &fakeSender{}
	d := NewDispatcher(s, "+918888888888", "+91")

	cust, merch := d.Notify(context.Background(), testOrder())
	assert.Equal(t, StatusSent, cust.Status)
	assert.Equal(t, StatusSent, merch.Status)

	require.Len(t, s.calls, 2)
	assert.Equal(t, "+919876543210", s.calls[0].to)
	assert.Equal(t, "+918888888888", s.calls[1].to)
	assert.Contains(t, s.calls[0].body, "Asha")
	assert.Contains(t, s.calls[0].body, "- Paneer Roll")
	assert.Contains(t, s.calls[0].body, "302.70")
	assert.Contains(t, s.calls[1].body, "New Order Received")
	assert.Contains(t, s.calls[1].body, "13.45,79.55")
}

func TestNotify_FailedCustomerDoesNotBlockMerchant(t *testing.T) {
	sendErr := errors.New("invalid recipient")
	s := &fakeSender{failFor: map[string]error{"+919876543210": sendErr}}
	d := NewDispatcher(s, "+918888888888", "+91")

	cust, merch := d.Notify(context.Background(), testOrder())
	assert.Equal(t, StatusFailed, cust.Status)
	assert.ErrorIs(t, cust.Err, sendErr)
	assert.Equal(t, StatusSent, merch.Status)
	assert.Len(t, s.calls, 2, "merchant send must still be attempted")
}

func TestNotify_SkipsEmptyRecipient(t *testing.T) {
	s := &fakeSender{}
	d := NewDispatcher(s, "", "+91") // owner number not set

	o := testOrder()
	cust, merch := d.Notify(context.Background(), o)
	assert.Equal(t, StatusSent, cust.Status)
	assert.Equal(t, StatusSkipped, merch.Status)
	assert.Len(t, s.calls, 1)
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"9876543210", "+919876543210"},
		{"whatsapp:+919876543210", "+919876543210"},
		{"+1 415 555 0100", "+14155550100"},
		{"whatsapp:9876543210", "+919876543210"},
		{"  +919876543210 ", "+919876543210"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in, "+91"), "input %q", tc.in)
	}
}
