package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func captureLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{Logger: slog.New(handler)}, &buf
}

func TestBookingLifecycleEvents(t *testing.T) {
	log, buf := captureLogger()
	ctx := context.Background()

	log.LogSessionStarted(ctx, "session-1")
	if out := buf.String(); !strings.Contains(out, "Booking Session Started") || !strings.Contains(out, "session_id=session-1") {
		t.Fatalf("unexpected session start record: %q", out)
	}
	buf.Reset()

	log.LogSessionCancelled(ctx, "session-1", "AWAITING_PAYMENT")
	if out := buf.String(); !strings.Contains(out, "Booking Session Cancelled") || !strings.Contains(out, "stage=AWAITING_PAYMENT") {
		t.Fatalf("unexpected cancellation record: %q", out)
	}
	buf.Reset()

	log.LogBookingConfirmed(ctx, 2018111100101, "101", "session-1")
	out := buf.String()
	if !strings.Contains(out, "Booking Confirmed") || !strings.Contains(out, "confirmation=2018111100101") {
		t.Fatalf("unexpected confirmation record: %q", out)
	}
	if !strings.Contains(out, "room_number=101") {
		t.Fatalf("expected room number in confirmation record: %q", out)
	}
}

func TestSecurityEvents(t *testing.T) {
	log, buf := captureLogger()
	ctx := context.Background()

	log.LogAuthSuccess(ctx, "staff-1", "password")
	if out := buf.String(); !strings.Contains(out, "Authentication Success") || !strings.Contains(out, "staff_id=staff-1") {
		t.Fatalf("unexpected auth success record: %q", out)
	}
	buf.Reset()

	log.LogAuthFailure(ctx, "invalid credentials", "10.0.0.1")
	out := buf.String()
	if !strings.Contains(out, "Authentication Failure") || !strings.Contains(out, "ip=10.0.0.1") {
		t.Fatalf("unexpected auth failure record: %q", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Fatalf("auth failures should log at warn: %q", out)
	}
	buf.Reset()

	log.LogRateLimitExceeded(ctx, "10.0.0.1", "/api/v1/auth/login")
	if out := buf.String(); !strings.Contains(out, "Rate Limit Exceeded") || !strings.Contains(out, "endpoint=/api/v1/auth/login") {
		t.Fatalf("unexpected rate limit record: %q", out)
	}
}

func TestContextualFields(t *testing.T) {
	log, buf := captureLogger()

	log.WithSessionID("session-1").WithError(errors.New("redis down")).Warn("hold release failed")
	out := buf.String()
	if !strings.Contains(out, "session_id=session-1") {
		t.Fatalf("expected session id carried through: %q", out)
	}
	if !strings.Contains(out, `error="redis down"`) {
		t.Fatalf("expected error carried through: %q", out)
	}
	buf.Reset()

	log.WithStaffID("staff-1").Info("Password changed")
	if out := buf.String(); !strings.Contains(out, "staff_id=staff-1") {
		t.Fatalf("expected staff id carried through: %q", out)
	}
}
