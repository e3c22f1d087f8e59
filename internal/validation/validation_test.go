package validation

import (
	"testing"
)

type sample struct {
	Name string `validate:"required,notblank"`
	Qty  int    `validate:"required,min=1"`
}

func TestNotBlank(t *testing.T) {
	v := New()

	if err := v.Struct(sample{Name: "ok", Qty: 1}); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}

	if err := v.Struct(sample{Name: "   ", Qty: 1}); err == nil {
		t.Fatal("expected validation error for blank name, got nil")
	}
}

func TestMinQty(t *testing.T) {
	v := New()

	if err := v.Struct(sample{Name: "ok", Qty: 0}); err == nil {
		t.Fatal("expected validation error for zero qty, got nil")
	}
}
