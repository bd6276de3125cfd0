package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/zingamazing/zing-orders/internal/checkout"
	"github.com/zingamazing/zing-orders/internal/delivery"
	"github.com/zingamazing/zing-orders/internal/feed"
	"github.com/zingamazing/zing-orders/internal/notify"
	"github.com/zingamazing/zing-orders/internal/order"
	"github.com/zingamazing/zing-orders/internal/payment"
)

type checkoutForm struct {
	Name          string `form:"name" json:"name"`
	Phone         string `form:"phone" json:"phone"`
	Address       string `form:"address" json:"address"`
	LiveLocation  string `form:"live_location" json:"live_location"`
	PaymentMethod string `form:"payment_method" json:"payment_method"`
	TotalPrice    string `form:"total_price" json:"total_price"`
	Items         string `form:"items" json:"items"`

	RazorpayOrderID   string `form:"razorpay_order_id" json:"razorpay_order_id"`
	RazorpayPaymentID string `form:"razorpay_payment_id" json:"razorpay_payment_id"`
	RazorpaySignature string `form:"razorpay_signature" json:"razorpay_signature"`
}

// checkoutHandler godoc
// @Summary Place an order
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce html
// @Router /checkout [post]
func checkoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutForm
		if err := c.ShouldBind(&in); err != nil {
			c.HTML(http.StatusOK, "failure.html", gin.H{"reason": "invalid request"})
			return
		}
		req := checkout.Request{
			Name:          in.Name,
			Phone:         in.Phone,
			Address:       in.Address,
			LiveLocation:  in.LiveLocation,
			PaymentMethod: in.PaymentMethod,
			TotalPrice:    in.TotalPrice,
			Items:         in.Items,
		}
		if in.RazorpayOrderID != "" || in.RazorpayPaymentID != "" || in.RazorpaySignature != "" {
			req.Payment = &checkout.Confirmation{
				OrderID:   in.RazorpayOrderID,
				PaymentID: in.RazorpayPaymentID,
				Signature: in.RazorpaySignature,
			}
		}

		out := svc.Place(c.Request.Context(), req)
		if out.Status != checkout.StatusCompleted {
			c.HTML(http.StatusOK, "failure.html", gin.H{"reason": userMessage(out.Err)})
			return
		}
		c.HTML(http.StatusOK, "success.html", gin.H{"order_id": out.OrderID})
	}
}

func userMessage(err error) string {
	switch {
	case err == nil:
		return "order could not be placed"
	case errors.Is(err, checkout.ErrValidation):
		return "please check your order details and try again"
	case errors.Is(err, checkout.ErrSignature), errors.Is(err, checkout.ErrUpstream):
		return "payment could not be verified"
	default:
		return "order could not be placed, please try again"
	}
}

type paymentIntentRequest struct {
	Amount int64 `json:"amount"` // major currency units (rupees)
}

// createPaymentIntentHandler godoc
// @Summary Create a payment intent with the gateway
// @Accept json
// @Produce json
// @Router /create_order [post]
func createPaymentIntentHandler(gw payment.Gateway, keyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in paymentIntentRequest
		if err := c.ShouldBindJSON(&in); err != nil || in.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
			return
		}
		id, err := gw.CreateOrder(c.Request.Context(), in.Amount*100)
		if err != nil {
			log.Printf("[payment] intent creation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": id, "amount": in.Amount * 100, "key": keyID})
	}
}

// quoteDeliveryHandler answers delivery quotes. This endpoint degrades
// rather than fails: malformed input gets the flat base charge plus an
// error field, still HTTP 200, because the fee is supplementary to
// checkout.
// @Summary Quote the delivery fee for a destination
// @Accept json
// @Produce json
// @Router /calculate_total [post]
func quoteDeliveryHandler(calc delivery.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil {
			fee, total := calc.Fallback(decimal.Zero)
			c.JSON(http.StatusOK, gin.H{
				"error":           "invalid request body",
				"delivery_charge": fee.InexactFloat64(),
				"total_amount":    total.InexactFloat64(),
			})
			return
		}

		subtotal, subOK := toDecimal(raw["order_amount"])
		lat, latOK := toFloat(raw["customer_lat"])
		lon, lonOK := toFloat(raw["customer_lon"])
		if !latOK || !lonOK || !subOK {
			fee, total := calc.Fallback(subtotal) // zero when unparseable
			c.JSON(http.StatusOK, gin.H{
				"error":           "invalid coordinates or amount",
				"delivery_charge": fee.InexactFloat64(),
				"total_amount":    total.InexactFloat64(),
			})
			return
		}

		fee, total := calc.Quote(delivery.Coord{Lat: lat, Lon: lon}, subtotal)
		c.JSON(http.StatusOK, gin.H{
			"delivery_charge": fee.InexactFloat64(),
			"total_amount":    total.InexactFloat64(),
		})
	}
}

// webhookHandler verifies the gateway's HMAC over the raw body before
// trusting anything in it, then relays the payload to the live feed.
// @Summary Razorpay webhook receiver
// @Accept json
// @Produce json
// @Router /webhook/razorpay [post]
func webhookHandler(gw payment.Gateway, hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		sig := c.GetHeader("X-Razorpay-Signature")
		if sig == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing signature"})
			return
		}
		if err := gw.VerifyWebhook(body, sig); err != nil {
			log.Printf("[payment] webhook rejected: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		hub.Broadcast(feed.Event{Type: feed.EventPaymentEvent, Payload: body})
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

var upgrader = websocket.Upgrader{
	// admin pages are served from the same host; no cross-origin policy
	CheckOrigin: func(r *http.Request) bool { return true },
}

// adminFeedHandler upgrades the connection and keeps it registered until
// the viewer goes away. Inbound messages are keep-alives and are discarded.
func adminFeedHandler(hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[feed] upgrade failed: %v", err)
			return
		}
		client := hub.Register(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Remove(client)
				return
			}
		}
	}
}

// adminDashboardHandler renders the order list. Viewing the list is the
// acknowledgment: every order still flagged new is marked seen as part of
// this request.
func adminDashboardHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orders, err := repo.List(ctx)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "failure.html", gin.H{"reason": "could not load orders"})
			return
		}
		newCount, err := repo.CountNew(ctx)
		if err != nil {
			log.Printf("[admin] count new failed: %v", err)
		}
		if err := repo.MarkAllSeen(ctx); err != nil {
			log.Printf("[admin] mark seen failed: %v", err)
		}
		c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
			"orders":           orders,
			"new_orders_count": newCount,
		})
	}
}

type partnerLocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func updatePartnerLocationHandler(tracker *delivery.PartnerTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in partnerLocationRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon must be numbers"})
			return
		}
		tracker.Update(in.Lat, in.Lon)
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func getLocationsHandler(tracker *delivery.PartnerTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"partner": tracker.Location()})
	}
}

type manualNotifyRequest struct {
	CustomerName  string `form:"customer_name" json:"customer_name"`
	Phone         string `form:"phone" json:"phone"`
	Items         string `form:"items" json:"items"`
	Address       string `form:"address" json:"address"`
	LiveLocation  string `form:"live_location" json:"live_location"`
	TotalPrice    string `form:"total_price" json:"total_price"`
	PaymentMethod string `form:"payment_method" json:"payment_method"`
}

// notifyWhatsAppHandler resends the order messages by hand, used from the
// admin side when a customer reports a missing confirmation.
func notifyWhatsAppHandler(dispatcher *notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in manualNotifyRequest
		if err := c.ShouldBind(&in); err != nil || in.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty or invalid request body"})
			return
		}
		o := &order.Order{
			Name:          in.CustomerName,
			Phone:         in.Phone,
			Address:       in.Address,
			Location:      in.LiveLocation,
			Items:         in.Items,
			TotalPrice:    in.TotalPrice,
			PaymentMethod: in.PaymentMethod,
		}
		cust, merch := dispatcher.Notify(context.Background(), o)
		if cust.Status == notify.StatusSkipped && merch.Status == notify.StatusSkipped {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "whatsapp channel not configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": cust.Status, "merchant": merch.Status})
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return 0, false
		}
		return d.InexactFloat64(), true
	default:
		return 0, false
	}
}

// toDecimal is tolerant the same way the storefront is loose: amounts
// arrive as JSON numbers from the cart page and as strings from the form.
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), true
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
