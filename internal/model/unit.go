package model

import "time"

// UnitType is the marketing category a virtual unit is listed under.
type UnitType string

const (
	UnitTypeEnclosedParking UnitType = "enclosed_parking"
	UnitTypeSelfStorage     UnitType = "self_storage"
	UnitTypeOutdoorParking  UnitType = "outdoor_parking"
	UnitTypeCoveredParking  UnitType = "covered_parking"
)

// UnitTypes lists every unit type in display order.
var UnitTypes = []UnitType{
	UnitTypeEnclosedParking,
	UnitTypeSelfStorage,
	UnitTypeOutdoorParking,
	UnitTypeCoveredParking,
}

// Valid reports whether t is one of the known unit types.
func (t UnitType) Valid() bool {
	for _, u := range UnitTypes {
		if u == t {
			return true
		}
	}
	return false
}

// PhysicalUnitStatus is an administrative flag on a physical unit.  It
// never decides availability; the booking ledger does.
type PhysicalUnitStatus string

const (
	PhysicalUnitAvailable   PhysicalUnitStatus = "available"
	PhysicalUnitBooked      PhysicalUnitStatus = "booked"
	PhysicalUnitMaintenance PhysicalUnitStatus = "maintenance"
	PhysicalUnitWaitlist    PhysicalUnitStatus = "waitlist"
)

// Valid reports whether s is a known physical unit status.
func (s PhysicalUnitStatus) Valid() bool {
	switch s {
	case PhysicalUnitAvailable, PhysicalUnitBooked, PhysicalUnitMaintenance, PhysicalUnitWaitlist:
		return true
	}
	return false
}

// PhysicalUnit is a real storage slot.  Several virtual units may be
// listed on top of the same physical unit.
//
// Fields:
//  ID         – uuid.
//  UnitNumber – facility label such as "A-001" (not unique).
//  ActualSize – free-text dimensions, e.g. "12x30".
//  Location   – building / row / lot description.
//  Amenities  – amenity tags.
//  BasePrice  – reference monthly price.
//  Status     – advisory status, see PhysicalUnitStatus.
//  CreatedAt  – creation timestamp (UTC).
type PhysicalUnit struct {
	ID         string             `json:"id" bson:"id"`
	UnitNumber string             `json:"unit_number" bson:"unit_number"`
	ActualSize string             `json:"actual_size" bson:"actual_size"`
	Location   string             `json:"location" bson:"location"`
	Amenities  []string           `json:"amenities" bson:"amenities"`
	BasePrice  float64            `json:"base_price" bson:"base_price"`
	Status     PhysicalUnitStatus `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// VirtualUnit is a priced listing that maps onto exactly one physical unit.
//
// Fields:
//  ID             – uuid.
//  PhysicalUnitID – physical unit the listing occupies.
//  UnitType       – marketing category.
//  DisplaySize    – size shown to customers; drives the size category.
//  DisplayName    – listing title.
//  DailyPrice, WeeklyPrice, MonthlyPrice – unit prices per pricing period.
//  Amenities      – amenity tags shown on the listing.
//  ImageURL       – optional listing image.
//  Description    – optional marketing copy.
//  CreatedAt      – creation timestamp (UTC).
type VirtualUnit struct {
	ID             string    `json:"id" bson:"id"`
	PhysicalUnitID string    `json:"physical_unit_id" bson:"physical_unit_id" validate:"required"`
	UnitType       UnitType  `json:"unit_type" bson:"unit_type"`
	DisplaySize    string    `json:"display_size" bson:"display_size" validate:"required"`
	DisplayName    string    `json:"display_name" bson:"display_name" validate:"required"`
	DailyPrice     float64   `json:"daily_price" bson:"daily_price"`
	WeeklyPrice    float64   `json:"weekly_price" bson:"weekly_price"`
	MonthlyPrice   float64   `json:"monthly_price" bson:"monthly_price"`
	Amenities      []string  `json:"amenities" bson:"amenities"`
	ImageURL       *string   `json:"image_url" bson:"image_url,omitempty"`
	Description    *string   `json:"description" bson:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// HasAnyAmenity reports whether the unit carries at least one of the
// requested amenities.
func (v *VirtualUnit) HasAnyAmenity(wanted []string) bool {
	for _, w := range wanted {
		for _, a := range v.Amenities {
			if a == w {
				return true
			}
		}
	}
	return false
}
