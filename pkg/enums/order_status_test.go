package enums

import "testing"

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled} {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if OrderStatus("shipped").IsValid() {
		t.Fatal("unknown status should not be valid")
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("ready")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != OrderStatusReady {
		t.Fatalf("expected ready, got %s", got)
	}
	if _, err := ParseOrderStatus("READY"); err == nil {
		t.Fatal("parse should be case sensitive")
	}
}

func TestOrderStatusLabelCoversAllStatuses(t *testing.T) {
	for _, s := range validOrderStatuses {
		if s.Label() == string(s) {
			t.Fatalf("status %s is missing a display label", s)
		}
	}
}

func TestOptionGroupExclusivity(t *testing.T) {
	if !OptionGroupSize.IsExclusive() || !OptionGroupIce.IsExclusive() || !OptionGroupSugar.IsExclusive() {
		t.Fatal("size, ice and sugar must be exclusive groups")
	}
	if OptionGroupAddon.IsExclusive() {
		t.Fatal("addon must allow multiple selections")
	}
}
