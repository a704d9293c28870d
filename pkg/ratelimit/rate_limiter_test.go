package ratelimit

import (
	"context"
	"testing"
)

func TestGetRateLimitType(t *testing.T) {
	cases := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/ping", RateLimitTypeHealth},
		{"/api/v1/auth/login", RateLimitTypeAuth},
		{"/api/v1/booking-sessions/:id/payment", RateLimitTypeBooking},
		{"/api/v1/bookings/:confirmation", RateLimitTypeBooking},
		{"/api/v1/room-types", RateLimitTypePublic},
		{"/api/v1/rooms/availability", RateLimitTypePublic},
		{"/api/v1/guests", RateLimitTypeDefault},
	}

	for _, tc := range cases {
		if got := getRateLimitType(tc.path); got != tc.want {
			t.Errorf("getRateLimitType(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestGetLimitPerType(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{
		DefaultRequests: 60,
		PublicRequests:  100,
		AuthRequests:    10,
		BookingRequests: 20,
		HealthRequests:  300,
	})

	if got := limiter.getLimit(RateLimitTypeAuth); got != 10 {
		t.Errorf("auth limit = %d, want 10", got)
	}
	if got := limiter.getLimit(RateLimitTypeBooking); got != 20 {
		t.Errorf("booking limit = %d, want 20", got)
	}
	if got := limiter.getLimit(RateLimitType("unknown")); got != 60 {
		t.Errorf("unknown limit = %d, want default 60", got)
	}
}

func TestWhitelistedIPBypassesLimit(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{
		Enabled:         true,
		DefaultRequests: 1,
		WhitelistedIPs:  []string{"10.0.0.5"},
	})

	result, err := limiter.IsAllowed(context.Background(), "10.0.0.5", RateLimitTypeDefault)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if !result.Allowed {
		t.Fatal("expected whitelisted IP to be allowed without touching redis")
	}
}
