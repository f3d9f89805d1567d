package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storage-booking/internal/handler"
)

// RegisterCustomer registers CRM, loyalty, payment and analytics routes.
func RegisterCustomer(g *echo.Group, c *handler.CustomerHandler, p *handler.PaymentHandler, a *handler.AnalyticsHandler) {
	g.POST("/customers", c.Create)
	g.GET("/customers", c.List)
	g.GET("/customers/:id", c.Get)
	g.GET("/customers/:id/bookings", c.Bookings)

	g.GET("/loyalty/customer/:id", c.Loyalty)
	g.POST("/loyalty/award-points", c.AwardPoints)
	g.POST("/loyalty/redeem-points", c.RedeemPoints)

	g.POST("/payments/checkout", p.Checkout)
	g.GET("/payments/status/:session_id", p.Status)

	g.POST("/analytics/events", a.Track)
	g.GET("/analytics/funnel/:session_id", a.Funnel)
}
