package catalog

// Pricing constants in USD.
const (
	StandardPerItemRate   = 95.0
	StandardMinimum       = 285.0
	SameDayFlatSurcharge  = 360.0
	COIFee                = 50.0
	BladePerBagRate       = 75.0
	BladeMinimum          = 150.0
	BladeMinimumBags      = 2
	SpecificHourSurcharge = 25.0
	WeekendSurchargeRate  = 0.10
	OrganizingTaxRate     = 0.08875
)

// MiniMovePackage is a flat-priced mini-move tier.
type MiniMovePackage struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	BasePrice      float64 `json:"basePrice"`
	MaxItems       int     `json:"maxItems"`
	PackingPrice   float64 `json:"packingPrice"`
	UnpackingPrice float64 `json:"unpackingPrice"`
	COIIncluded    bool    `json:"coiIncluded"`
}

// SpecialtyItem is a per-unit priced oversized or fragile item.
type SpecialtyItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

// Airport describes a supported BLADE lounge and its pinned terminal address.
type Airport struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	TerminalLine string `json:"terminalLine"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

var miniMovePackages = []MiniMovePackage{
	{ID: "petite", Name: "Petite Move", BasePrice: 995, MaxItems: 15, PackingPrice: 250, UnpackingPrice: 250},
	{ID: "standard", Name: "Standard Move", BasePrice: 1725, MaxItems: 30, PackingPrice: 425, UnpackingPrice: 425},
	{ID: "full", Name: "Full Move", BasePrice: 2490, MaxItems: 45, PackingPrice: 575, UnpackingPrice: 575, COIIncluded: true},
}

var specialtyItems = []SpecialtyItem{
	{ID: "peloton", Name: "Peloton / Exercise Bike", UnitPrice: 250},
	{ID: "surfboard", Name: "Surfboard", UnitPrice: 150},
	{ID: "crib", Name: "Crib / Bassinet", UnitPrice: 175},
	{ID: "wardrobe_box", Name: "Wardrobe Box", UnitPrice: 95},
	{ID: "mirror_art", Name: "Mirror / Framed Art", UnitPrice: 125},
}

var airports = []Airport{
	{Code: "JFK", Name: "John F. Kennedy International", TerminalLine: "BLADE Lounge, Terminal 4", City: "Queens", State: "NY", Zip: "11430"},
	{Code: "EWR", Name: "Newark Liberty International", TerminalLine: "BLADE Lounge, Terminal B", City: "Newark", State: "NJ", Zip: "07114"},
	{Code: "LGA", Name: "LaGuardia", TerminalLine: "BLADE Lounge, Terminal C", City: "Queens", State: "NY", Zip: "11371"},
}

// MiniMovePackages returns the bookable mini-move tiers.
func MiniMovePackages() []MiniMovePackage {
	return miniMovePackages
}

// MiniMovePackageByID looks up a package by ID.
func MiniMovePackageByID(id string) (MiniMovePackage, bool) {
	for _, p := range miniMovePackages {
		if p.ID == id {
			return p, true
		}
	}
	return MiniMovePackage{}, false
}

// SpecialtyItems returns the specialty item price list.
func SpecialtyItems() []SpecialtyItem {
	return specialtyItems
}

// SpecialtyItemByID looks up a specialty item by ID.
func SpecialtyItemByID(id string) (SpecialtyItem, bool) {
	for _, it := range specialtyItems {
		if it.ID == id {
			return it, true
		}
	}
	return SpecialtyItem{}, false
}

// Airports returns the supported BLADE airports.
func Airports() []Airport {
	return airports
}

// AirportByCode looks up an airport by its code.
func AirportByCode(code string) (Airport, bool) {
	for _, a := range airports {
		if a.Code == code {
			return a, true
		}
	}
	return Airport{}, false
}
