package service

import (
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	orderGreeting = "Hola! Quiero hacer el pedido:"
	shippingTitle = "DATOS PARA ENVÍOS"
	notesFallback = "N/A"
)

// OrderFormatter renders the order text sent to the shop.
type OrderFormatter struct {
	printer  *message.Printer
	currency string
}

func NewOrderFormatter(locale, currencySymbol string) (*OrderFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid checkout locale %q: %w", locale, err)
	}
	return &OrderFormatter{
		printer:  message.NewPrinter(tag),
		currency: currencySymbol,
	}, nil
}

// Money formats amount with the locale's separators, e.g. "$12.500" for es-AR.
func (f *OrderFormatter) Money(amount decimal.Decimal) string {
	return f.currency + f.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2)))
}

func (f *OrderFormatter) Format(summary entity.Summary, shipping *entity.ShippingDetails) string {
	var b strings.Builder

	b.WriteString(orderGreeting)
	b.WriteByte('\n')
	for _, g := range summary.Groups {
		fmt.Fprintf(&b, "%d x %s (Talle: %s) - %s\n", g.Quantity, g.Product.Name, g.Size, f.Money(g.Subtotal))
	}

	notes := shipping.Notes()
	if notes == "" {
		notes = notesFallback
	}

	b.WriteByte('\n')
	b.WriteString(shippingTitle)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Localidad: %s\n", shipping.Locality())
	fmt.Fprintf(&b, "Código Postal: %s\n", shipping.PostalCode())
	fmt.Fprintf(&b, "Dirección: %s\n", shipping.Address())
	fmt.Fprintf(&b, "Barrio: %s\n", shipping.Neighborhood())
	fmt.Fprintf(&b, "Entre calles: %s\n", shipping.BetweenStreets())
	fmt.Fprintf(&b, "Piso y Depto: %s\n", shipping.FloorApartment())
	fmt.Fprintf(&b, "Nombre y Apellido: %s\n", shipping.FullName())
	fmt.Fprintf(&b, "Teléfono Principal: %s\n", shipping.MainPhone())
	fmt.Fprintf(&b, "Teléfono Alternativo: %s\n", shipping.AltPhone())
	fmt.Fprintf(&b, "Observación: %s\n", notes)

	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total: %s", f.Money(summary.Total))

	return b.String()
}
