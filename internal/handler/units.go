package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/model"
    "github.com/iliyamo/storage-booking/internal/repository"
    "github.com/iliyamo/storage-booking/internal/service"
)

// UnitHandler serves the catalog: physical units, virtual units and the
// availability-aware listing.
type UnitHandler struct {
    catalog      *service.Catalog
    availability *service.Availability
    store        repository.Store
}

// NewUnitHandler panics on a nil dependency.
func NewUnitHandler(catalog *service.Catalog, availability *service.Availability, store repository.Store) *UnitHandler {
    if catalog == nil || availability == nil || store == nil {
        panic("nil dependency passed to NewUnitHandler")
    }
    return &UnitHandler{catalog: catalog, availability: availability, store: store}
}

func (h *UnitHandler) CreatePhysicalUnit(c echo.Context) error {
    var in model.PhysicalUnit
    if err := c.Bind(&in); err != nil {
        return respond(c, bindError(err))
    }
    out, err := h.catalog.CreatePhysicalUnit(c.Request().Context(), &in)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

func (h *UnitHandler) ListPhysicalUnits(c echo.Context) error {
    units, err := h.catalog.ListPhysicalUnits(c.Request().Context())
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) CreateVirtualUnit(c echo.Context) error {
    var in model.VirtualUnit
    if err := c.Bind(&in); err != nil {
        return respond(c, bindError(err))
    }
    out, err := h.catalog.CreateVirtualUnit(c.Request().Context(), &in)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

// ListVirtualUnits accepts unit_type, min_price, max_price, pricing_period
// (default monthly), amenities, size_category and available_only (default
// true).  Malformed numbers or booleans are rejected with 400.
func (h *UnitHandler) ListVirtualUnits(c echo.Context) error {
    unitType := model.UnitType(strings.TrimSpace(c.QueryParam("unit_type")))
    if unitType != "" && !unitType.Valid() {
        return respond(c, badQuery("unit_type", "unknown unit type"))
    }
    minPrice, err := queryFloat(c, "min_price")
    if err != nil {
        return respond(c, err)
    }
    maxPrice, err := queryFloat(c, "max_price")
    if err != nil {
        return respond(c, err)
    }
    availableOnly, err := queryBool(c, "available_only", true)
    if err != nil {
        return respond(c, err)
    }
    f := service.Filter{
        MinPrice:      minPrice,
        MaxPrice:      maxPrice,
        PricingPeriod: service.ParsePricingPeriod(c.QueryParam("pricing_period")),
        Amenities:     service.ParseAmenities(c.QueryParam("amenities")),
        SizeCategory:  strings.TrimSpace(c.QueryParam("size_category")),
    }
    units, err := h.availability.Search(c.Request().Context(), unitType, availableOnly, f)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) GetVirtualUnit(c echo.Context) error {
    vu, err := h.catalog.GetVirtualUnit(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, vu)
}

// UpdateVirtualUnitImage takes the new URL from the image_url query
// parameter.
func (h *UnitHandler) UpdateVirtualUnitImage(c echo.Context) error {
    if err := h.catalog.UpdateVirtualUnitImage(c.Request().Context(), c.Param("id"), c.QueryParam("image_url")); err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Unit image updated successfully"})
}

func (h *UnitHandler) FilterOptions(c echo.Context) error {
    opts, err := h.catalog.FilterOptions(c.Request().Context())
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, opts)
}

// InitializeSampleData wipes units, bookings and images and loads the
// demo catalog.
func (h *UnitHandler) InitializeSampleData(c echo.Context) error {
    res, err := service.LoadSampleData(c.Request().Context(), h.store)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
