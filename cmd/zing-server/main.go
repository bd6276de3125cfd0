package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/zingamazing/zing-orders/docs"
	"github.com/zingamazing/zing-orders/internal/admin"
	"github.com/zingamazing/zing-orders/internal/checkout"
	"github.com/zingamazing/zing-orders/internal/config"
	"github.com/zingamazing/zing-orders/internal/delivery"
	"github.com/zingamazing/zing-orders/internal/feed"
	"github.com/zingamazing/zing-orders/internal/httpx"
	"github.com/zingamazing/zing-orders/internal/notify"
	"github.com/zingamazing/zing-orders/internal/order"
	"github.com/zingamazing/zing-orders/internal/payment"
)

// @title Zing Orders API
// @version 1.0
// @description Ordering backend: checkout, delivery quotes, payment intents and the admin live feed.
// @BasePath /
func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	if err := order.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}
	repo := order.NewPGRepo(pool)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)

	var sender notify.Sender
	if s := notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber); s != nil {
		sender = s
	}
	dispatcher := notify.NewDispatcher(sender, cfg.OwnerWhatsAppNumber, cfg.DefaultCountryCode)

	hub := feed.NewHub()
	tracker := delivery.NewPartnerTracker(time.Now().UnixNano())
	calc := delivery.NewCalculator(delivery.Coord{Lat: cfg.ShopLat, Lon: cfg.ShopLon}, cfg.DeliveryBase, cfg.DeliveryRatePerKM)

	runner := checkout.NewRunner(4, 128)
	defer runner.Close()

	svc := checkout.NewService(repo, gateway, dispatcher, hub, runner)

	creds, err := admin.NewCredentials(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("admin credentials: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	// storefront pages
	r.GET("/", pageHandler("index.html"))
	r.GET("/menu", pageHandler("menu.html"))
	r.GET("/cart", pageHandler("cart.html"))
	r.GET("/order_details", pageHandler("order_details.html"))
	r.GET("/payment", pageHandler("payment.html"))
	r.GET("/paymentmethod", pageHandler("paymentmethod.html"))
	r.GET("/track_delivery", pageHandler("track_delivery.html"))
	r.GET("/terms_and_conditions", pageHandler("terms_and_conditions.html"))
	r.GET("/privacy_policy", pageHandler("privacy_policy.html"))
	r.GET("/refund_and_cancellation", pageHandler("refund_and_cancellation.html"))

	// checkout flow
	r.POST("/checkout", checkoutHandler(svc))
	r.POST("/create_order", createPaymentIntentHandler(gateway, cfg.RazorpayKeyID))
	r.POST("/calculate_total", quoteDeliveryHandler(calc))
	r.POST("/notify_whatsapp", notifyWhatsAppHandler(dispatcher))
	r.POST("/webhook/razorpay", webhookHandler(gateway, hub))

	// courier tracking
	r.GET("/get_locations", getLocationsHandler(tracker))
	r.POST("/update_partner_location", updatePartnerLocationHandler(tracker))

	// admin
	r.GET("/admin/login", adminLoginPageHandler())
	r.POST("/admin/login", adminLoginHandler(creds))
	r.GET("/admin/logout", adminLogoutHandler())
	r.GET("/admin/forgot_password", forgotPasswordPageHandler())
	r.POST("/admin/forgot_password", forgotPasswordHandler(creds))
	r.GET("/admin/dashboard", adminDashboardHandler(repo))
	r.GET("/ws/admin", adminFeedHandler(hub))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("zing-server listening on %s", cfg.ListenAddr)
	log.Fatal(r.Run(cfg.ListenAddr))
}
