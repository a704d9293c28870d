package payments

import (
	"context"
	"testing"
)

func TestAuthorizeVerdicts(t *testing.T) {
	authorizer := NewCreditAuthorizer(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		card    CreditCard
		amount  float64
		approve bool
	}{
		{
			name:    "visa within limit",
			card:    NewCreditCard(CardTypeVisa, "4111111111111111", "123"),
			amount:  450,
			approve: true,
		},
		{
			name:    "visa at limit",
			card:    NewCreditCard(CardTypeVisa, "4111111111111111", "123"),
			amount:  10000,
			approve: true,
		},
		{
			name:    "visa over limit",
			card:    NewCreditCard(CardTypeVisa, "4111111111111111", "123"),
			amount:  10001,
			approve: false,
		},
		{
			name:    "amex has a higher ceiling",
			card:    NewCreditCard(CardTypeAmex, "340000000000009", "1234"),
			amount:  20000,
			approve: true,
		},
		{
			name:    "unknown network",
			card:    NewCreditCard(CardType("DINERS"), "30000000000004", "123"),
			amount:  100,
			approve: false,
		},
		{
			name:    "malformed number",
			card:    NewCreditCard(CardTypeVisa, "4111-oops", "123"),
			amount:  100,
			approve: false,
		},
		{
			name:    "short security code",
			card:    NewCreditCard(CardTypeVisa, "4111111111111111", "12"),
			amount:  100,
			approve: false,
		},
		{
			name:    "zero amount",
			card:    NewCreditCard(CardTypeVisa, "4111111111111111", "123"),
			amount:  0,
			approve: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approved, err := authorizer.Authorize(ctx, tt.card, tt.amount)
			if err != nil {
				t.Fatalf("authorize: %v", err)
			}
			if approved != tt.approve {
				t.Fatalf("expected approve=%v, got %v", tt.approve, approved)
			}
		})
	}
}

func TestAuthorizeCustomLimits(t *testing.T) {
	authorizer := NewCreditAuthorizer(map[CardType]float64{CardTypeVisa: 500})
	card := NewCreditCard(CardTypeVisa, "4111111111111111", "123")

	approved, err := authorizer.Authorize(context.Background(), card, 600)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if approved {
		t.Fatal("expected decline over custom ceiling")
	}

	// a network with no configured ceiling is declined outright
	mc := NewCreditCard(CardTypeMasterCard, "5500000000000004", "321")
	approved, err = authorizer.Authorize(context.Background(), mc, 100)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if approved {
		t.Fatal("expected decline for unconfigured network")
	}
}

func TestCreditCardDisplayHelpers(t *testing.T) {
	card := NewCreditCard(CardTypeMasterCard, "5500 0000 0000 0004", "321")
	if card.Number != "5500000000000004" {
		t.Fatalf("expected spaces stripped, got %q", card.Number)
	}
	if card.Vendor() != "MasterCard" {
		t.Fatalf("expected vendor MasterCard, got %q", card.Vendor())
	}
	if card.MaskedNumber() != "************0004" {
		t.Fatalf("unexpected mask: %q", card.MaskedNumber())
	}
	if card.LastFour() != "0004" {
		t.Fatalf("unexpected last four: %q", card.LastFour())
	}
}
