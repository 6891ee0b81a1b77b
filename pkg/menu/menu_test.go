package menu

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestItemString(t *testing.T) {
	item := Item{ID: 1, Name: "Tea", Price: decimal.NewFromInt(20)}
	if got := item.String(); got != "ID 1: Tea - 20.00" {
		t.Fatalf("unexpected string: %s", got)
	}
}
