// Package checkout coordinates one order placement: payment verification,
// persistence, and the best-effort side effects that follow.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zingamazing/zing-orders/internal/feed"
	"github.com/zingamazing/zing-orders/internal/notify"
	"github.com/zingamazing/zing-orders/internal/order"
	"github.com/zingamazing/zing-orders/internal/payment"
)

// Confirmation is the signature triple Razorpay returns after a successful
// browser payment.
type Confirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

type Request struct {
	Name          string
	Phone         string
	Address       string
	LiveLocation  string
	PaymentMethod string
	TotalPrice    string
	Items         string
	Payment       *Confirmation // required when PaymentMethod is online
}

type Outcome struct {
	Status  Status
	OrderID int64
	Err     error
}

type Service struct {
	repo       order.Repository
	gateway    payment.Gateway
	dispatcher *notify.Dispatcher
	hub        *feed.Hub
	fx         *Runner
}

func NewService(repo order.Repository, gateway payment.Gateway, dispatcher *notify.Dispatcher, hub *feed.Hub, fx *Runner) *Service {
	return &Service{repo: repo, gateway: gateway, dispatcher: dispatcher, hub: hub, fx: fx}
}

// Place runs the checkout workflow for one request. The success outcome
// depends only on verification and persistence; notification and feed
// failures are isolated and logged.
func (s *Service) Place(ctx context.Context, req Request) Outcome {
	status := StatusReceived

	o, err := s.validate(req)
	if err != nil {
		return Outcome{Status: StatusRejected, Err: err}
	}

	// Step 1: verification. Cash on delivery has no signature to verify.
	if req.PaymentMethod == order.PaymentOnline {
		if err := s.verify(req.Payment); err != nil {
			log.Printf("[checkout] rejected: %v", err)
			return Outcome{Status: StatusRejected, Err: err}
		}
		status = StatusPaymentVerified
	} else {
		status = StatusCashOnDelivery
	}

	// Step 2: persistence. A write failure aborts the checkout; an
	// unrecorded order must never be announced as placed.
	id, err := s.repo.Create(ctx, o)
	if err != nil {
		log.Printf("[checkout] persist failed: %v", err)
		return Outcome{Status: StatusRejected, Err: err}
	}
	status = StatusPersisted

	// Step 3: side effects, independent of each other and of the outcome.
	placed := *o
	s.fx.Submit("notify", func() error {
		cust, merch := s.dispatcher.Notify(context.Background(), &placed)
		log.Printf("[checkout] order=%d notify customer=%s merchant=%s", placed.ID, cust.Status, merch.Status)
		return nil
	})
	s.fx.Submit("broadcast", func() error {
		s.hub.Broadcast(feed.Event{Type: feed.EventNewOrder, Order: &placed})
		return nil
	})
	status = StatusNotificationsAttempted
	log.Printf("[checkout] order=%d placed (%s)", id, status)

	return Outcome{Status: StatusCompleted, OrderID: id}
}

func (s *Service) validate(req Request) (*order.Order, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	items := strings.TrimSpace(req.Items)
	if name == "" || phone == "" || items == "" {
		return nil, fmt.Errorf("%w: name, phone and items are required", ErrValidation)
	}
	if !order.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}
	total, err := decimal.NewFromString(strings.TrimSpace(req.TotalPrice))
	if err != nil || total.IsNegative() {
		return nil, fmt.Errorf("%w: bad total price %q", ErrValidation, req.TotalPrice)
	}
	return &order.Order{
		Name:          name,
		Phone:         phone,
		Address:       strings.TrimSpace(req.Address),
		Location:      strings.TrimSpace(req.LiveLocation),
		Items:         items,
		TotalPrice:    total.StringFixed(2),
		PaymentMethod: req.PaymentMethod,
	}, nil
}

func (s *Service) verify(conf *Confirmation) error {
	if conf == nil || conf.OrderID == "" || conf.PaymentID == "" || conf.Signature == "" {
		return fmt.Errorf("%w: confirmation triple missing", ErrSignature)
	}
	err := s.gateway.VerifyPayment(conf.OrderID, conf.PaymentID, conf.Signature)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, payment.ErrNotConfigured):
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	default:
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}
}
