package payments

import "strings"

// CardType identifies the card network a payment is made on.
type CardType string

const (
	CardTypeVisa       CardType = "VISA"
	CardTypeMasterCard CardType = "MASTERCARD"
	CardTypeAmex       CardType = "AMEX"
)

// IsValid checks if the card type is a supported network
func (t CardType) IsValid() bool {
	switch t {
	case CardTypeVisa, CardTypeMasterCard, CardTypeAmex:
		return true
	}
	return false
}

// Vendor returns the display name of the card network
func (t CardType) Vendor() string {
	switch t {
	case CardTypeVisa:
		return "Visa"
	case CardTypeMasterCard:
		return "MasterCard"
	case CardTypeAmex:
		return "American Express"
	}
	return "Unknown"
}

// String returns the string representation of CardType
func (t CardType) String() string {
	return string(t)
}

// CreditCard holds the details of one payment attempt. It is built per
// attempt and never persisted; only the vendor and masked number ever leave
// this package.
type CreditCard struct {
	Type         CardType
	Number       string
	SecurityCode string
}

// NewCreditCard builds a card value for a single authorization attempt.
func NewCreditCard(cardType CardType, number, securityCode string) CreditCard {
	return CreditCard{
		Type:         cardType,
		Number:       strings.ReplaceAll(strings.TrimSpace(number), " ", ""),
		SecurityCode: strings.TrimSpace(securityCode),
	}
}

// Vendor returns the display name of the card's network
func (c CreditCard) Vendor() string {
	return c.Type.Vendor()
}

// MaskedNumber returns the card number with all but the last four digits
// replaced, safe for display and storage.
func (c CreditCard) MaskedNumber() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return strings.Repeat("*", len(c.Number)-4) + c.Number[len(c.Number)-4:]
}

// LastFour returns the last four digits of the card number
func (c CreditCard) LastFour() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}
