package whatsapp

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// LinkBuilder builds click-to-chat links that open a conversation with the
// shop's number, prefilled with a message.
type LinkBuilder struct {
	number string
}

// NewLinkBuilder keeps only the digits of number, the form wa.me expects.
func NewLinkBuilder(number string) *LinkBuilder {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	return &LinkBuilder{number: digits}
}

func (b *LinkBuilder) Build(text string) string {
	return baseURL + b.number + "?text=" + escapeComponent(text)
}

// escapeComponent percent-encodes s for a query value, using %20 for spaces.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
