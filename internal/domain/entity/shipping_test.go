package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeShipping() *ShippingDetails {
	return NewShippingDetails().
		SetLocality("Quilmes").
		SetPostalCode("1878").
		SetAddress("Av. Calchaquí 1234").
		SetBetweenStreets("Lamadrid y Paz").
		SetFullName("Ana Pérez").
		SetMainPhone("1155550000")
}

func TestShippingDetails_Validate_Complete(t *testing.T) {
	assert.NoError(t, completeShipping().Validate())
}

func TestShippingDetails_Validate_OptionalFieldsMayBeEmpty(t *testing.T) {
	s := completeShipping().SetNeighborhood("").SetFloorApartment("").SetAltPhone("").SetNotes("")
	assert.NoError(t, s.Validate())
}

func TestShippingDetails_Validate_Missing(t *testing.T) {
	s := completeShipping().SetAddress("   ").SetMainPhone("")

	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteShipping)
	assert.Contains(t, err.Error(), "address")
	assert.Contains(t, err.Error(), "main_phone")
	assert.NotContains(t, err.Error(), "locality")
}

func TestShippingDetails_SettersTrim(t *testing.T) {
	s := NewShippingDetails().SetFullName("  Ana  ").SetNotes("\tfrágil\n")
	assert.Equal(t, "Ana", s.FullName())
	assert.Equal(t, "frágil", s.Notes())
}
