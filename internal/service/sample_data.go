package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// SampleDataResult counts what LoadSampleData inserted.
type SampleDataResult struct {
	Message       string `json:"message"`
	PhysicalUnits int    `json:"physical_units"`
	VirtualUnits  int    `json:"virtual_units"`
	ImageAssets   int    `json:"image_assets"`
}

type sampleImage struct {
	name, url, category, description string
	tags                             []string
}

var sampleImages = []sampleImage{
	{name: "RV Storage Facility Hero", url: "https://images.pexels.com/photos/13016664/pexels-photo-13016664.png", category: "hero", tags: []string{"rv", "storage", "facility", "outdoor"}, description: "Main hero image showing RV storage facility"},
	{name: "Boat Storage Hero", url: "https://images.unsplash.com/photo-1711130361680-a3beb1369ef5", category: "hero", tags: []string{"boat", "storage", "outdoor", "facility"}, description: "Hero image showing boat storage area"},
	{name: "Enclosed RV Parking", url: "https://images.pexels.com/photos/2797828/pexels-photo-2797828.jpeg", category: "unit", tags: []string{"enclosed", "parking", "rv", "covered"}, description: "Enclosed parking space for RVs"},
	{name: "Premium Enclosed Storage", url: "https://images.pexels.com/photos/13016664/pexels-photo-13016664.png", category: "unit", tags: []string{"enclosed", "premium", "storage", "climate"}, description: "Premium enclosed storage with climate control"},
	{name: "Climate Controlled Storage", url: "https://images.unsplash.com/photo-1551313158-73d016a829ae", category: "unit", tags: []string{"self_storage", "climate", "indoor", "boats"}, description: "Climate controlled self storage for boats"},
	{name: "Large Self Storage Unit", url: "https://images.unsplash.com/photo-1618438502398-195e47778d6c", category: "unit", tags: []string{"self_storage", "large", "boats", "equipment"}, description: "Large self storage unit for boats and equipment"},
	{name: "Covered Parking Structure", url: "https://images.pexels.com/photos/13388790/pexels-photo-13388790.jpeg", category: "unit", tags: []string{"covered", "parking", "structure", "protection"}, description: "Covered parking structure for weather protection"},
	{name: "Secure Outdoor Parking", url: "https://images.unsplash.com/photo-1600181914037-b14638c1137d", category: "unit", tags: []string{"outdoor", "parking", "secure", "open"}, description: "Secure outdoor parking area"},
	{name: "Large Outdoor Storage", url: "https://images.unsplash.com/photo-1711130361680-a3beb1369ef5", category: "unit", tags: []string{"outdoor", "large", "storage", "boats", "rvs"}, description: "Large outdoor storage area for boats and RVs"},
	{name: "Security Features", url: "https://images.unsplash.com/photo-1551313158-73d016a829ae", category: "feature", tags: []string{"security", "safe", "monitoring"}, description: "Security and safety features"},
	{name: "Flexible Storage Options", url: "https://images.pexels.com/photos/13388790/pexels-photo-13388790.jpeg", category: "feature", tags: []string{"flexible", "options", "variety"}, description: "Various flexible storage options"},
	{name: "Size Variety", url: "https://images.unsplash.com/photo-1711130361680-a3beb1369ef5", category: "feature", tags: []string{"sizes", "variety", "multiple"}, description: "Multiple storage sizes available"},
	{name: "RV Storage Row", url: "https://images.unsplash.com/photo-1664802915802-0ded0ff61e43", category: "gallery", tags: []string{"rv", "row", "multiple", "storage"}, description: "Row of RV storage units"},
	{name: "Boat Marina Storage", url: "https://images.unsplash.com/photo-1540946485063-a40da27545f8", category: "gallery", tags: []string{"boat", "marina", "water", "storage"}, description: "Boat storage at marina"},
	{name: "Indoor Storage Facility", url: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7", category: "gallery", tags: []string{"indoor", "facility", "warehouse", "storage"}, description: "Indoor storage facility warehouse"},
}

type samplePhysical struct {
	number, size, location string
	amenities              []string
	basePrice              float64
}

var samplePhysicalUnits = []samplePhysical{
	{number: "A-001", size: "12x30", location: "Building A - Row 1", amenities: []string{"security", "covered", "electric"}, basePrice: 200},
	{number: "A-002", size: "14x35", location: "Building A - Row 1", amenities: []string{"security", "covered", "electric", "climate_control"}, basePrice: 280},
	{number: "B-001", size: "10x25", location: "Building B - Row 1", amenities: []string{"security"}, basePrice: 150},
	{number: "C-001", size: "16x40", location: "Outdoor Lot C", amenities: []string{"security", "24hr_access"}, basePrice: 320},
}

// sampleVirtual.physical indexes samplePhysicalUnits.
type sampleVirtual struct {
	physical               int
	unitType               model.UnitType
	size, name             string
	daily, weekly, monthly float64
	amenities              []string
	imageURL, description  string
}

var sampleVirtualUnits = []sampleVirtual{
	{physical: 0, unitType: model.UnitTypeEnclosedParking, size: "12x30", name: "Enclosed Parking 12x30", daily: 8, weekly: 50, monthly: 200, amenities: []string{"security", "covered", "electric"}, imageURL: "https://images.pexels.com/photos/2797828/pexels-photo-2797828.jpeg", description: "Perfect for RVs up to 30 feet. Fully enclosed with electric hookup."},
	{physical: 0, unitType: model.UnitTypeEnclosedParking, size: "12x25", name: "Enclosed Parking 12x25", daily: 7, weekly: 45, monthly: 180, amenities: []string{"security", "covered", "electric"}, imageURL: "https://images.pexels.com/photos/2797828/pexels-photo-2797828.jpeg", description: "Ideal for smaller RVs and boats up to 25 feet."},
	{physical: 0, unitType: model.UnitTypeSelfStorage, size: "12x30", name: "Self Storage 12x30", daily: 10, weekly: 65, monthly: 250, amenities: []string{"security", "covered", "electric", "climate_control"}, imageURL: "https://images.unsplash.com/photo-1551313158-73d016a829ae", description: "Climate-controlled storage for boats and recreational equipment."},
	{physical: 1, unitType: model.UnitTypeEnclosedParking, size: "14x35", name: "Enclosed Parking 14x35", daily: 12, weekly: 75, monthly: 280, amenities: []string{"security", "covered", "electric", "climate_control"}, imageURL: "https://images.pexels.com/photos/13016664/pexels-photo-13016664.png", description: "Premium enclosed parking for large RVs up to 35 feet."},
	{physical: 1, unitType: model.UnitTypeSelfStorage, size: "14x35", name: "Self Storage 14x35", daily: 15, weekly: 95, monthly: 350, amenities: []string{"security", "covered", "electric", "climate_control"}, imageURL: "https://images.unsplash.com/photo-1618438502398-195e47778d6c", description: "Large climate-controlled storage for boats and multiple vehicles."},
	{physical: 2, unitType: model.UnitTypeCoveredParking, size: "10x25", name: "Covered Parking 10x25", daily: 6, weekly: 35, monthly: 150, amenities: []string{"security"}, imageURL: "https://images.pexels.com/photos/13388790/pexels-photo-13388790.jpeg", description: "Covered parking for small to medium boats and RVs."},
	{physical: 2, unitType: model.UnitTypeOutdoorParking, size: "10x25", name: "Outdoor Parking 10x25", daily: 4, weekly: 25, monthly: 120, amenities: []string{"security"}, imageURL: "https://images.unsplash.com/photo-1600181914037-b14638c1137d", description: "Secure outdoor parking for boats and small RVs."},
	{physical: 3, unitType: model.UnitTypeOutdoorParking, size: "16x40", name: "Outdoor Parking 16x40", daily: 10, weekly: 60, monthly: 320, amenities: []string{"security", "24hr_access"}, imageURL: "https://images.unsplash.com/photo-1711130361680-a3beb1369ef5", description: "Large outdoor space perfect for big boats and large RVs."},
}

// LoadSampleData wipes units, bookings and images and loads the demo
// facility: 15 images, 4 physical units and 8 virtual units.  Content
// blocks, banners, customers and keys are left alone.
func LoadSampleData(ctx context.Context, store repository.Store) (*SampleDataResult, error) {
	if err := store.ResetCatalog(ctx); err != nil {
		return nil, fmt.Errorf("reset catalog: %w", err)
	}
	now := time.Now().UTC()

	for _, s := range sampleImages {
		desc := s.description
		img := &model.ImageAsset{
			ID:          uuid.NewString(),
			Name:        s.name,
			URL:         s.url,
			Category:    s.category,
			Tags:        s.tags,
			Description: &desc,
			CreatedAt:   now,
		}
		if err := store.CreateImage(ctx, img); err != nil {
			return nil, fmt.Errorf("image %q: %w", s.name, err)
		}
	}

	physicalIDs := make([]string, len(samplePhysicalUnits))
	for i, s := range samplePhysicalUnits {
		u := &model.PhysicalUnit{
			ID:         uuid.NewString(),
			UnitNumber: s.number,
			ActualSize: s.size,
			Location:   s.location,
			Amenities:  s.amenities,
			BasePrice:  s.basePrice,
			Status:     model.PhysicalUnitAvailable,
			CreatedAt:  now,
		}
		if err := store.CreatePhysicalUnit(ctx, u); err != nil {
			return nil, fmt.Errorf("physical unit %s: %w", s.number, err)
		}
		physicalIDs[i] = u.ID
	}

	for _, s := range sampleVirtualUnits {
		img, desc := s.imageURL, s.description
		u := &model.VirtualUnit{
			ID:             uuid.NewString(),
			PhysicalUnitID: physicalIDs[s.physical],
			UnitType:       s.unitType,
			DisplaySize:    s.size,
			DisplayName:    s.name,
			DailyPrice:     s.daily,
			WeeklyPrice:    s.weekly,
			MonthlyPrice:   s.monthly,
			Amenities:      s.amenities,
			ImageURL:       &img,
			Description:    &desc,
			CreatedAt:      now,
		}
		if err := store.CreateVirtualUnit(ctx, u); err != nil {
			return nil, fmt.Errorf("virtual unit %s: %w", s.name, err)
		}
	}

	return &SampleDataResult{
		Message:       "Sample data initialized successfully",
		PhysicalUnits: len(samplePhysicalUnits),
		VirtualUnits:  len(sampleVirtualUnits),
		ImageAssets:   len(sampleImages),
	}, nil
}
