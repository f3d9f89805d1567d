package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/model"
    "github.com/iliyamo/storage-booking/internal/service"
)

// dateLayouts are tried in order for booking dates.  Storefront clients
// send either full timestamps or plain dates.
var dateLayouts = []string{
    time.RFC3339Nano,
    "2006-01-02T15:04:05.999999999",
    "2006-01-02T15:04",
    "2006-01-02",
}

func parseDate(field, raw string) (*time.Time, error) {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return nil, nil
    }
    for _, layout := range dateLayouts {
        if t, err := time.Parse(layout, raw); err == nil {
            t = t.UTC()
            return &t, nil
        }
    }
    return nil, &service.ValidationError{
        Message: "invalid request",
        Fields:  map[string]string{field: "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"},
    }
}

// bookingBody mirrors service.BookingRequest with dates left as strings.
type bookingBody struct {
    VirtualUnitID   string  `json:"virtual_unit_id"`
    CustomerName    string  `json:"customer_name"`
    CustomerEmail   string  `json:"customer_email"`
    CustomerPhone   string  `json:"customer_phone"`
    PaymentOption   string  `json:"payment_option"`
    PricingPeriod   string  `json:"pricing_period"`
    StartDate       string  `json:"start_date"`
    EndDate         string  `json:"end_date"`
    MoveInDate      string  `json:"move_in_date"`
    SpecialRequests *string `json:"special_requests"`
}

func (b bookingBody) request() (service.BookingRequest, error) {
    req := service.BookingRequest{
        VirtualUnitID:   b.VirtualUnitID,
        CustomerName:    b.CustomerName,
        CustomerEmail:   b.CustomerEmail,
        CustomerPhone:   b.CustomerPhone,
        PaymentOption:   model.PaymentOption(b.PaymentOption),
        PricingPeriod:   model.PricingPeriod(b.PricingPeriod),
        SpecialRequests: b.SpecialRequests,
    }
    start, err := parseDate("start_date", b.StartDate)
    if err != nil {
        return req, err
    }
    if start != nil {
        req.StartDate = *start
    }
    if req.EndDate, err = parseDate("end_date", b.EndDate); err != nil {
        return req, err
    }
    if req.MoveInDate, err = parseDate("move_in_date", b.MoveInDate); err != nil {
        return req, err
    }
    return req, nil
}

// BookingHandler exposes the booking ledger.
type BookingHandler struct {
    ledger *service.Ledger
}

func NewBookingHandler(ledger *service.Ledger) *BookingHandler {
    if ledger == nil {
        panic("nil ledger passed to NewBookingHandler")
    }
    return &BookingHandler{ledger: ledger}
}

// CreateBooking returns 409 when the unit's physical slot is already
// taken, including when another request won a concurrent race.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    var body bookingBody
    if err := c.Bind(&body); err != nil {
        return respond(c, bindError(err))
    }
    req, err := body.request()
    if err != nil {
        return respond(c, err)
    }
    b, err := h.ledger.CreateBooking(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
    list, err := h.ledger.ListBookings(c.Request().Context())
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
    b, err := h.ledger.GetBooking(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, b)
}
