package rest

import "github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"

type addItemRequest struct {
	Product  entity.Product `json:"product"`
	Size     string         `json:"size"`
	Quantity int            `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	Locality       string `json:"locality"`
	PostalCode     string `json:"postal_code"`
	Address        string `json:"address"`
	Neighborhood   string `json:"neighborhood"`
	BetweenStreets string `json:"between_streets"`
	FloorApartment string `json:"floor_apartment"`
	FullName       string `json:"full_name"`
	MainPhone      string `json:"main_phone"`
	AltPhone       string `json:"alt_phone"`
	Notes          string `json:"notes"`
}

func (r checkoutRequest) toShipping() *entity.ShippingDetails {
	return entity.NewShippingDetails().
		SetLocality(r.Locality).
		SetPostalCode(r.PostalCode).
		SetAddress(r.Address).
		SetNeighborhood(r.Neighborhood).
		SetBetweenStreets(r.BetweenStreets).
		SetFloorApartment(r.FloorApartment).
		SetFullName(r.FullName).
		SetMainPhone(r.MainPhone).
		SetAltPhone(r.AltPhone).
		SetNotes(r.Notes)
}

type cartLineResponse struct {
	Product  entity.Product `json:"product"`
	Size     string         `json:"size"`
	Quantity int            `json:"quantity"`
	Image    string         `json:"image,omitempty"`
}

type cartResponse struct {
	Lines   []cartLineResponse `json:"lines"`
	Summary entity.Summary     `json:"summary"`
	Badge   int                `json:"badge"`
}

func newCartResponse(c entity.Cart) cartResponse {
	lines := make([]cartLineResponse, 0, c.Len())
	for _, l := range c.Lines() {
		lines = append(lines, cartLineResponse{
			Product:  l.Product,
			Size:     l.Size,
			Quantity: l.Quantity,
			Image:    l.Product.PrimaryImage(),
		})
	}
	return cartResponse{
		Lines:   lines,
		Summary: entity.Summarize(c),
		Badge:   c.TotalQuantity(),
	}
}

type previewResponse struct {
	Message string         `json:"message"`
	Summary entity.Summary `json:"summary"`
}

type badgeResponse struct {
	Count int `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}
