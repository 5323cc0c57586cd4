package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIncompleteShipping = errors.New("shipping details are incomplete")

// ShippingDetails is the delivery form filled in at checkout.
type ShippingDetails struct {
	locality       string
	postalCode     string
	address        string
	neighborhood   string
	betweenStreets string
	floorApartment string
	fullName       string
	mainPhone      string
	altPhone       string
	notes          string
}

func NewShippingDetails() *ShippingDetails {
	return &ShippingDetails{}
}

func (s *ShippingDetails) SetLocality(v string) *ShippingDetails {
	s.locality = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetPostalCode(v string) *ShippingDetails {
	s.postalCode = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetAddress(v string) *ShippingDetails {
	s.address = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetNeighborhood(v string) *ShippingDetails {
	s.neighborhood = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetBetweenStreets(v string) *ShippingDetails {
	s.betweenStreets = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetFloorApartment(v string) *ShippingDetails {
	s.floorApartment = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetFullName(v string) *ShippingDetails {
	s.fullName = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetMainPhone(v string) *ShippingDetails {
	s.mainPhone = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetAltPhone(v string) *ShippingDetails {
	s.altPhone = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) SetNotes(v string) *ShippingDetails {
	s.notes = strings.TrimSpace(v)
	return s
}

func (s *ShippingDetails) Locality() string       { return s.locality }
func (s *ShippingDetails) PostalCode() string     { return s.postalCode }
func (s *ShippingDetails) Address() string        { return s.address }
func (s *ShippingDetails) Neighborhood() string   { return s.neighborhood }
func (s *ShippingDetails) BetweenStreets() string { return s.betweenStreets }
func (s *ShippingDetails) FloorApartment() string { return s.floorApartment }
func (s *ShippingDetails) FullName() string       { return s.fullName }
func (s *ShippingDetails) MainPhone() string      { return s.mainPhone }
func (s *ShippingDetails) AltPhone() string       { return s.altPhone }
func (s *ShippingDetails) Notes() string          { return s.notes }

// Validate checks the required fields. Neighborhood, floor/apartment, the
// alternate phone and notes may stay empty.
func (s *ShippingDetails) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"locality", s.locality},
		{"postal_code", s.postalCode},
		{"address", s.address},
		{"between_streets", s.betweenStreets},
		{"full_name", s.fullName},
		{"main_phone", s.mainPhone},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteShipping, strings.Join(missing, ", "))
	}
	return nil
}
