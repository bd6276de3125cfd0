package order

import "time"

// Payment methods accepted at checkout.
const (
	PaymentOnline         = "online"
	PaymentCashOnDelivery = "cod"
)

func ValidPaymentMethod(m string) bool {
	return m == PaymentOnline || m == PaymentCashOnDelivery
}

type Order struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Location      string    `json:"location,omitempty"` // "lat,lon" shared by the customer
	Items         string    `json:"items"`              // comma-separated free text from the cart
	TotalPrice    string    `json:"total_price"`        // NUMERIC -> string
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	IsNew         bool      `json:"is_new"` // cleared when the dashboard is viewed
}
