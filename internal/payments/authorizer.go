package payments

import "context"

// Authorization ceilings per card network, applied when no explicit limits
// are configured.
var defaultLimits = map[CardType]float64{
	CardTypeVisa:       10000,
	CardTypeMasterCard: 10000,
	CardTypeAmex:       25000,
}

// CreditAuthorizer is a deterministic payment oracle: it approves a charge
// when the card is well formed and the amount is within the network's
// ceiling. It stands in for a real payment gateway, which is out of scope.
type CreditAuthorizer struct {
	limits map[CardType]float64
}

// NewCreditAuthorizer creates an authorizer with per-network ceilings.
// A nil limits map selects the defaults.
func NewCreditAuthorizer(limits map[CardType]float64) *CreditAuthorizer {
	if limits == nil {
		limits = defaultLimits
	}
	return &CreditAuthorizer{limits: limits}
}

// Authorize approves or declines a charge. It never fails with an error;
// the boolean is the entire verdict.
func (a *CreditAuthorizer) Authorize(ctx context.Context, card CreditCard, amount float64) (bool, error) {
	if !card.Type.IsValid() {
		return false, nil
	}
	if !validCardNumber(card.Number) || !validSecurityCode(card.SecurityCode) {
		return false, nil
	}
	if amount <= 0 {
		return false, nil
	}
	limit, ok := a.limits[card.Type]
	if !ok {
		return false, nil
	}
	return amount <= limit, nil
}

func validCardNumber(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}
	return allDigits(number)
}

func validSecurityCode(code string) bool {
	if len(code) < 3 || len(code) > 4 {
		return false
	}
	return allDigits(code)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
