package models

// ServiceType tags the active booking service variant.
type ServiceType string

const (
	ServiceMiniMove         ServiceType = "mini_move"
	ServiceStandardDelivery ServiceType = "standard_delivery"
	ServiceSpecialtyItems   ServiceType = "specialty_items"
	ServiceBladeTransfer    ServiceType = "blade_transfer"
)

// TransferDirection says which side of a BLADE transfer is the airport.
type TransferDirection string

const (
	DirectionToAirport   TransferDirection = "to_airport"
	DirectionFromAirport TransferDirection = "from_airport"
)

// SpecialtyItemSelection is a catalog specialty item plus quantity.
type SpecialtyItemSelection struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// MiniMoveSelection configures a packaged mini move.
type MiniMoveSelection struct {
	PackageID        string `json:"packageId"`
	IncludePacking   bool   `json:"includePacking"`
	IncludeUnpacking bool   `json:"includeUnpacking"`
}

// StandardDeliverySelection configures a per-item delivery.
type StandardDeliverySelection struct {
	ItemCount      int                      `json:"itemCount"`
	SameDay        bool                     `json:"sameDay"`
	SpecialtyItems []SpecialtyItemSelection `json:"specialtyItems,omitempty"`
}

// SpecialtyOnlySelection configures a specialty-items-only job.
type SpecialtyOnlySelection struct {
	SpecialtyItems []SpecialtyItemSelection `json:"specialtyItems"`
}

// BladeTransferSelection configures an airport luggage transfer.
type BladeTransferSelection struct {
	Airport    string            `json:"airport"`
	Terminal   string            `json:"terminal,omitempty"`
	FlightDate string            `json:"flightDate"`
	FlightTime string            `json:"flightTime"`
	BagCount   int               `json:"bagCount"`
	Direction  TransferDirection `json:"direction"`
}

// ServiceSelection is a closed tagged union: exactly one variant pointer is
// non-nil and it matches Type. Use the Set* mutators so switching variants
// clears every field belonging to the previous one.
type ServiceSelection struct {
	Type             ServiceType                `json:"type,omitempty"`
	MiniMove         *MiniMoveSelection         `json:"miniMove,omitempty"`
	StandardDelivery *StandardDeliverySelection `json:"standardDelivery,omitempty"`
	SpecialtyOnly    *SpecialtyOnlySelection    `json:"specialtyOnly,omitempty"`
	BladeTransfer    *BladeTransferSelection    `json:"bladeTransfer,omitempty"`
}

func (s *ServiceSelection) clear() {
	s.MiniMove = nil
	s.StandardDelivery = nil
	s.SpecialtyOnly = nil
	s.BladeTransfer = nil
}

// SetMiniMove activates the mini-move variant, dropping any other.
func (s *ServiceSelection) SetMiniMove(sel MiniMoveSelection) {
	s.clear()
	s.Type = ServiceMiniMove
	s.MiniMove = &sel
}

// SetStandardDelivery activates the standard-delivery variant, dropping any other.
func (s *ServiceSelection) SetStandardDelivery(sel StandardDeliverySelection) {
	s.clear()
	s.Type = ServiceStandardDelivery
	s.StandardDelivery = &sel
}

// SetSpecialtyOnly activates the specialty-items-only variant, dropping any other.
func (s *ServiceSelection) SetSpecialtyOnly(sel SpecialtyOnlySelection) {
	s.clear()
	s.Type = ServiceSpecialtyItems
	s.SpecialtyOnly = &sel
}

// SetBladeTransfer activates the BLADE transfer variant, dropping any other.
func (s *ServiceSelection) SetBladeTransfer(sel BladeTransferSelection) {
	s.clear()
	s.Type = ServiceBladeTransfer
	s.BladeTransfer = &sel
}

// IsSet reports whether any variant has been chosen.
func (s *ServiceSelection) IsSet() bool {
	return s.Type != ""
}
