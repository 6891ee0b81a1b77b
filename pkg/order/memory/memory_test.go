package memory

import (
	"testing"
)

func TestBook(t *testing.T) {
	b := New()
	first := b.Create()
	second := b.Create()
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if !first.Total.IsZero() || len(first.Items) != 0 || first.Completed {
		t.Fatalf("expected empty pending order, got %+v", first)
	}

	got, ok := b.Get(2)
	if !ok || got != second {
		t.Fatalf("get: ok=%v order=%+v", ok, got)
	}
	if _, ok := b.Get(3); ok {
		t.Fatal("expected miss for unknown id")
	}

	list := b.List()
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("list: unexpected orders %+v", list)
	}
	b.Create()
	if len(list) != 2 {
		t.Fatalf("list should be a snapshot, len=%d", len(list))
	}
	if b.Len() != 3 {
		t.Fatalf("expected 3 orders, got %d", b.Len())
	}
}
