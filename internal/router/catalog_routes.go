package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storage-booking/internal/handler"
)

// RegisterCatalog registers the unit catalog and the booking ledger.
func RegisterCatalog(g *echo.Group, u *handler.UnitHandler, b *handler.BookingHandler) {
	// ---- Physical units ----
	g.POST("/physical-units", u.CreatePhysicalUnit)
	g.GET("/physical-units", u.ListPhysicalUnits)

	// ---- Virtual units ----
	g.POST("/virtual-units", u.CreateVirtualUnit)
	g.GET("/virtual-units", u.ListVirtualUnits) // availability-aware listing
	g.GET("/virtual-units/:id", u.GetVirtualUnit)
	g.PUT("/virtual-units/:id/image", u.UpdateVirtualUnitImage)
	g.GET("/filter-options", u.FilterOptions)

	// ---- Bookings ----
	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings", b.ListBookings)
	g.GET("/bookings/:id", b.GetBooking)
}
