package models

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"

	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
)

func TestNewEquipment(t *testing.T) {
	t.Run("sets every field", func(t *testing.T) {
		e, err := NewEquipment(3, "Hammer", "Hencock & Huffler", 10, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.ID() != 3 || e.Name() != "Hammer" || e.Supplier() != "Hencock & Huffler" {
			t.Fatalf("unexpected identity fields: %v", e)
		}
		if e.Amount() != 10 || e.LowerBound() != 30 {
			t.Fatalf("unexpected quantities: amount=%d lower=%d", e.Amount(), e.LowerBound())
		}
	})

	t.Run("id zero is valid", func(t *testing.T) {
		if _, err := NewEquipment(0, "Saw", "", 0, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative id returns ErrInvalidEquipmentID", func(t *testing.T) {
		_, err := NewEquipment(-1, "Saw", "", 0, 0)
		if !errors.Is(err, equipmentdomain.ErrInvalidEquipmentID) {
			t.Fatalf("expected ErrInvalidEquipmentID, got %v", err)
		}
	})

	t.Run("empty name returns ErrInvalidEquipmentName", func(t *testing.T) {
		_, err := NewEquipment(0, "", "", 0, 0)
		if !errors.Is(err, equipmentdomain.ErrInvalidEquipmentName) {
			t.Fatalf("expected ErrInvalidEquipmentName, got %v", err)
		}
	})

	t.Run("negative amount and lower bound clamp to zero", func(t *testing.T) {
		e, err := NewEquipment(0, "Saw", "", -4, -9)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Amount() != 0 || e.LowerBound() != 0 {
			t.Fatalf("expected clamped zeros, got amount=%d lower=%d", e.Amount(), e.LowerBound())
		}
	})
}

func TestNewEquipment_QuantitiesNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "amount")
		lowerBound := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "lowerBound")

		e, err := NewEquipment(rapid.IntRange(0, 1000).Draw(t, "id"), "Drill", "", amount, lowerBound)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Amount() < 0 || e.LowerBound() < 0 {
			t.Fatalf("negative quantity after construction: amount=%d lower=%d", e.Amount(), e.LowerBound())
		}
		if amount >= 0 && e.Amount() != amount {
			t.Fatalf("non-negative amount altered: got %d, want %d", e.Amount(), amount)
		}
	})
}

func TestEquipment_ChangeAmount(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		delta      int
		wantOK     bool
		wantAmount int
	}{
		{"deposit", 5, 3, true, 8},
		{"withdraw part", 5, -3, true, 2},
		{"withdraw all", 5, -5, true, 0},
		{"withdraw too much", 5, -6, false, 5},
		{"zero delta", 5, 0, true, 5},
		{"withdraw from empty", 0, -1, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := NewEquipment(0, "Saw", "", tt.start, 0)
			if ok := e.ChangeAmount(tt.delta); ok != tt.wantOK {
				t.Fatalf("ChangeAmount(%d) = %v, want %v", tt.delta, ok, tt.wantOK)
			}
			if e.Amount() != tt.wantAmount {
				t.Fatalf("amount = %d, want %d", e.Amount(), tt.wantAmount)
			}
		})
	}
}

func TestEquipment_ChangeAmountKeepsAmountNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e, _ := NewEquipment(0, "Saw", "", rapid.IntRange(0, 1000).Draw(t, "start"), 0)
		deltas := rapid.SliceOf(rapid.IntRange(-500, 500)).Draw(t, "deltas")
		for _, d := range deltas {
			before := e.Amount()
			if !e.ChangeAmount(d) && e.Amount() != before {
				t.Fatalf("rejected change %d altered amount from %d to %d", d, before, e.Amount())
			}
			if e.Amount() < 0 {
				t.Fatalf("amount went negative: %d", e.Amount())
			}
		}
	})
}

func TestEquipment_OrderQuantity(t *testing.T) {
	tests := []struct {
		name       string
		amount     int
		lowerBound int
		want       int
	}{
		{"amount equals lower bound", 30, 30, 0},
		{"amount one below lower bound", 29, 30, 150},
		{"amount above lower bound", 31, 30, 0},
		{"empty with zero bound", 0, 0, 0},
		{"empty with bound", 0, 4, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := NewEquipment(0, "Saw", "", tt.amount, tt.lowerBound)
			if got := e.OrderQuantity(); got != tt.want {
				t.Fatalf("OrderQuantity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEquipment_OrderQuantityNeverOverflows(t *testing.T) {
	e, _ := NewEquipment(0, "Saw", "", 0, math.MaxInt)
	if e.LowerBound() != MaxLowerBound {
		t.Fatalf("LowerBound() = %d, want %d", e.LowerBound(), MaxLowerBound)
	}
	if got := e.OrderQuantity(); got != MaxLowerBound*OrderFactor {
		t.Fatalf("OrderQuantity() = %d, want %d", got, MaxLowerBound*OrderFactor)
	}

	rapid.Check(t, func(t *rapid.T) {
		lowerBound := rapid.Int().Draw(t, "lowerBound")
		e, _ := NewEquipment(0, "Saw", "", 0, 0)
		e.SetLowerBound(lowerBound)

		got := e.OrderQuantity()
		if got < 0 {
			t.Fatalf("negative order quantity %d for lower bound %d", got, lowerBound)
		}
		if lowerBound > 0 && lowerBound <= MaxLowerBound && got != lowerBound*OrderFactor {
			t.Fatalf("OrderQuantity() = %d, want %d", got, lowerBound*OrderFactor)
		}
	})
}

func TestEquipment_Setters(t *testing.T) {
	e, _ := NewEquipment(0, "Saw", "Acme", 1, 2)

	e.SetSupplier("Globex")
	if e.Supplier() != "Globex" {
		t.Fatalf("supplier = %q, want %q", e.Supplier(), "Globex")
	}

	e.SetLowerBound(7)
	if e.LowerBound() != 7 {
		t.Fatalf("lower bound = %d, want 7", e.LowerBound())
	}

	e.SetLowerBound(-3)
	if e.LowerBound() != 0 {
		t.Fatalf("negative lower bound must clamp to 0, got %d", e.LowerBound())
	}
}

func TestEquipment_CloneIsDetached(t *testing.T) {
	e, _ := NewEquipment(1, "Saw", "Acme", 10, 2)
	c := e.Clone()
	e.ChangeAmount(5)
	e.SetSupplier("Globex")

	if c.Amount() != 10 || c.Supplier() != "Acme" {
		t.Fatalf("clone observed mutation: %v", c)
	}
}

func TestEquipment_String(t *testing.T) {
	e, _ := NewEquipment(0, "Hammer", "Hencock & Huffler", 10, 30)
	want := "Id: 0, Name: Hammer, Supplier: Hencock & Huffler, Amount: 10, Lower bound: 30"
	if got := e.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status  Status
		code    int
		name    string
		wantErr error
	}{
		{StatusOK, 0, "OK", nil},
		{StatusNotFound, -1, "NOT_FOUND", equipmentdomain.ErrEquipmentNotFound},
		{StatusNotEnoughStored, -2, "NOT_ENOUGH_STORED", equipmentdomain.ErrNotEnoughStored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.status) != tt.code {
				t.Fatalf("code = %d, want %d", int(tt.status), tt.code)
			}
			if tt.status.String() != tt.name {
				t.Fatalf("String() = %q, want %q", tt.status.String(), tt.name)
			}
			if err := tt.status.Err(); !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Fatalf("Err() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if Status(7).Err() == nil {
		t.Fatal("unknown status must map to an error")
	}
}
