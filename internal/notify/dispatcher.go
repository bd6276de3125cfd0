// Package notify sends the two WhatsApp messages that follow every placed
// order: a confirmation to the customer and an alert to the shop owner.
// Sends are best-effort; a failed or skipped send never fails a checkout.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/zingamazing/zing-orders/internal/order"
)

type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type Result struct {
	Status Status
	Reason string // set for skipped
	Err    error  // set for failed
}

// Sender is the outbound channel. The production implementation talks to
// Twilio; tests substitute a fake.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type Dispatcher struct {
	sender      Sender // nil when the channel is not configured
	owner       string
	countryCode string
}

func NewDispatcher(sender Sender, ownerNumber, countryCode string) *Dispatcher {
	return &Dispatcher{sender: sender, owner: ownerNumber, countryCode: countryCode}
}

// Notify sends the customer and merchant messages for o. The two sends are
// independent: failure of one does not prevent the other.
func (d *Dispatcher) Notify(ctx context.Context, o *order.Order) (customer, merchant Result) {
	customer = d.send(ctx, o.Phone, CustomerMessage(o))
	merchant = d.send(ctx, d.owner, MerchantMessage(o))
	return customer, merchant
}

func (d *Dispatcher) send(ctx context.Context, to, body string) Result {
	if d.sender == nil {
		return Result{Status: StatusSkipped, Reason: "whatsapp channel not configured"}
	}
	if strings.TrimSpace(to) == "" {
		return Result{Status: StatusSkipped, Reason: "no recipient number"}
	}
	if err := d.sender.Send(ctx, NormalizePhone(to, d.countryCode), body); err != nil {
		log.Printf("[notify] send to %s failed: %v", to, err)
		return Result{Status: StatusFailed, Err: err}
	}
	return Result{Status: StatusSent}
}

// NormalizePhone converts raw input to the +<country><number> convention the
// channel expects: any "whatsapp:" prefix is stripped, spaces removed, and
// the default country code prepended when no "+" is present.
func NormalizePhone(raw, countryCode string) string {
	p := strings.TrimSpace(strings.TrimPrefix(raw, "whatsapp:"))
	p = strings.ReplaceAll(p, " ", "")
	if p == "" {
		return p
	}
	if !strings.HasPrefix(p, "+") {
		p = countryCode + p
	}
	return p
}

func CustomerMessage(o *order.Order) string {
	return fmt.Sprintf(
		"✅ Thank you %s for your order!\n\n📦 Items:\n%s\n\n💳 Payment Method: %s\n💰 Total: ₹%s\n\n📍 Delivery Address:\n%s\n\nWe'll deliver your order soon!",
		o.Name, itemLines(o.Items), o.PaymentMethod, o.TotalPrice, o.Address)
}

func MerchantMessage(o *order.Order) string {
	return fmt.Sprintf(
		"🛒 New Order Received!\n\n👤 Name: %s\n📞 Phone: %s\n📍 Address: %s\n📌 Live Location: %s\n\n🛍️ Items Ordered:\n%s\n\n💳 Payment: %s\n💰 Total: ₹%s",
		o.Name, o.Phone, o.Address, o.Location, itemLines(o.Items), o.PaymentMethod, o.TotalPrice)
}

func itemLines(items string) string {
	parts := strings.Split(items, ",")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, "- "+p)
		}
	}
	return strings.Join(lines, "\n")
}
