package checkout

// Status tracks one checkout request through its workflow.
type Status string

const (
	StatusReceived               Status = "RECEIVED"
	StatusPaymentVerified        Status = "PAYMENT_VERIFIED"
	StatusCashOnDelivery         Status = "CASH_ON_DELIVERY"
	StatusPersisted              Status = "PERSISTED"
	StatusNotificationsAttempted Status = "NOTIFICATIONS_ATTEMPTED"
	StatusCompleted              Status = "COMPLETED"
	StatusRejected               Status = "REJECTED"
)

var transitions = map[Status][]Status{
	StatusReceived:               {StatusPaymentVerified, StatusCashOnDelivery, StatusRejected},
	StatusPaymentVerified:        {StatusPersisted, StatusRejected},
	StatusCashOnDelivery:         {StatusPersisted},
	StatusPersisted:              {StatusNotificationsAttempted},
	StatusNotificationsAttempted: {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

func (s Status) String() string { return string(s) }
