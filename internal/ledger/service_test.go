package ledger

import (
	"testing"

	"github.com/ogarmory/armory-backend/internal/cart"
)

func sampleItems() []cart.LineItem {
	return []cart.LineItem{
		{LineID: "1:M", ProductID: "1", Name: "Rebel Tee", Price: 500, Variant: cart.Variant{Size: "M"}, Quantity: 2},
	}
}

func TestRecordPurchaseFlipsGate(t *testing.T) {
	s := NewService(NewInMemoryRepository())

	if s.HasPurchased(7) {
		t.Fatal("gate must start closed")
	}

	rec, err := s.RecordPurchase(7, sampleItems(), 1000)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.ID == 0 || rec.Timestamp == "" || rec.Method != MethodDeepLink {
		t.Fatalf("incomplete record: %+v", rec)
	}

	if !s.HasPurchased(7) {
		t.Fatal("gate must open after first purchase")
	}
	// other users stay gated
	if s.HasPurchased(8) {
		t.Fatal("gate leaked to another user")
	}
}

func TestRecordPurchaseValidation(t *testing.T) {
	s := NewService(NewInMemoryRepository())

	if _, err := s.RecordPurchase(0, sampleItems(), 1000); err == nil {
		t.Fatal("expected error for invalid user")
	}
	if _, err := s.RecordPurchase(7, nil, 0); err == nil {
		t.Fatal("expected error for empty purchase")
	}
}

func TestListByIDsKeepsOrder(t *testing.T) {
	s := NewService(NewInMemoryRepository())

	first, _ := s.RecordPurchase(7, sampleItems(), 1000)
	second, _ := s.RecordPurchase(7, sampleItems(), 500)

	records, err := s.ListByIDs([]int{second.ID, first.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].ID != second.ID || records[1].ID != first.ID {
		t.Fatalf("expected id order preserved, got %+v", records)
	}
}

func TestResetClosesGate(t *testing.T) {
	s := NewService(NewInMemoryRepository())

	s.RecordPurchase(7, sampleItems(), 1000)
	if err := s.Reset(7); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.HasPurchased(7) {
		t.Fatal("gate must close after reset")
	}
}
