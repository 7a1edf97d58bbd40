package models

import (
	"errors"
	"testing"
)

func TestApply_ValidChain(t *testing.T) {
	b := Booking{Status: BookingStatusPending, PaymentStatus: PaymentStatusPending}

	if err := b.Apply(BookingActionConfirm, ""); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if b.Status != BookingStatusConfirmed || b.PaymentStatus != PaymentStatusPending {
		t.Fatalf("after confirm: status %q payment %q", b.Status, b.PaymentStatus)
	}

	if err := b.Apply(BookingActionMarkPaid, ""); err != nil {
		t.Fatalf("mark-paid: %v", err)
	}
	if b.Status != BookingStatusConfirmed {
		t.Errorf("mark-paid moved status to %q", b.Status)
	}
	if b.PaymentStatus != PaymentStatusPaid {
		t.Errorf("payment = %q, want paid", b.PaymentStatus)
	}
	if b.PaymentNotes != "Payment received in cash" {
		t.Errorf("payment notes = %q", b.PaymentNotes)
	}

	if err := b.Apply(BookingActionComplete, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.Status != BookingStatusCompleted || b.PaymentStatus != PaymentStatusPaid {
		t.Fatalf("after complete: status %q payment %q", b.Status, b.PaymentStatus)
	}
	if !b.IsTerminal() {
		t.Errorf("completed booking not terminal")
	}
}

func TestApply_CompleteWithoutMarkPaid(t *testing.T) {
	b := Booking{Status: BookingStatusConfirmed, PaymentStatus: PaymentStatusPending}

	if err := b.Apply(BookingActionComplete, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.PaymentStatus != PaymentStatusPaid {
		t.Errorf("payment = %q, want paid when session completes", b.PaymentStatus)
	}
}

func TestApply_Cancel(t *testing.T) {
	for _, from := range []string{BookingStatusPending, BookingStatusConfirmed} {
		b := Booking{Status: from, PaymentStatus: PaymentStatusPending}
		if err := b.Apply(BookingActionCancel, "Cancelled by teacher"); err != nil {
			t.Fatalf("cancel from %s: %v", from, err)
		}
		if b.Status != BookingStatusCancelled || b.PaymentStatus != PaymentStatusCancelled {
			t.Errorf("cancel from %s: status %q payment %q", from, b.Status, b.PaymentStatus)
		}
		if b.CancellationReason == nil || *b.CancellationReason != "Cancelled by teacher" {
			t.Errorf("cancel from %s: reason %v", from, b.CancellationReason)
		}
	}
}

func TestApply_InvalidTransitions(t *testing.T) {
	cases := []struct {
		name   string
		status string
		action string
	}{
		{"confirm a confirmed booking", BookingStatusConfirmed, BookingActionConfirm},
		{"confirm a cancelled booking", BookingStatusCancelled, BookingActionConfirm},
		{"confirm a completed booking", BookingStatusCompleted, BookingActionConfirm},
		{"mark a pending booking paid", BookingStatusPending, BookingActionMarkPaid},
		{"complete a pending booking", BookingStatusPending, BookingActionComplete},
		{"cancel a completed booking", BookingStatusCompleted, BookingActionCancel},
		{"cancel a cancelled booking", BookingStatusCancelled, BookingActionCancel},
	}
	for _, tc := range cases {
		b := Booking{Status: tc.status}
		if err := b.Apply(tc.action, ""); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s: err = %v, want ErrInvalidTransition", tc.name, err)
		}
		if b.Status != tc.status {
			t.Errorf("%s: status mutated to %q on rejected action", tc.name, b.Status)
		}
	}

	b := Booking{Status: BookingStatusPending}
	if err := b.Apply("refund", ""); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action: err = %v, want ErrUnknownAction", err)
	}
}
