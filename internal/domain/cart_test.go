package domain

import "testing"

func TestCartAddCreatesAndIncrements(t *testing.T) {
	cart := NewCart()

	cart.Add(7)
	if got := cart.Quantity(7); got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}

	cart.Add(7)
	cart.Add(9)
	if got := cart.Quantity(7); got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
	if got := cart.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestCartRemoveDeletesEntryAtZero(t *testing.T) {
	cart := NewCart()
	cart.Add(7)

	cart.Remove(7)
	if _, ok := cart.Items[7]; ok {
		t.Fatalf("expected entry to be deleted, got %+v", cart.Items)
	}
	if got := cart.Count(); got != 0 {
		t.Fatalf("expected count 0, got %d", got)
	}
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	cart := NewCart()
	cart.Add(1)

	cart.Remove(42)
	if got := cart.Quantity(1); got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
}

func TestCartNeverHoldsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()

	ops := []struct {
		add bool
		id  int64
	}{
		{true, 1}, {true, 1}, {false, 1}, {false, 1}, {false, 1},
		{true, 2}, {false, 2}, {false, 2}, {true, 3},
	}
	for _, op := range ops {
		if op.add {
			cart.Add(op.id)
		} else {
			cart.Remove(op.id)
		}
		for id, qty := range cart.Items {
			if qty <= 0 {
				t.Fatalf("entry %d has non-positive quantity %d", id, qty)
			}
		}
	}
	if got := cart.Count(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}
}

func TestCartAddInitializesNilItems(t *testing.T) {
	var cart Cart
	cart.Add(5)
	if got := cart.Quantity(5); got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
}
