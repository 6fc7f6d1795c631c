package item

import (
	"errors"
	"testing"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{name: "ok", draft: Draft{Title: "buy milk"}},
		{name: "empty title", draft: Draft{}, field: "title"},
		{name: "blank title", draft: Draft{Title: "   "}, field: "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDraft(tt.draft)
			assertField(t, err, tt.field)
		})
	}
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name  string
		item  Item
		field string
	}{
		{name: "ok", item: Item{ID: "a", Title: "x", Position: 2}},
		{name: "missing id", item: Item{Title: "x"}, field: "id"},
		{name: "missing title", item: Item{ID: "a"}, field: "title"},
		{name: "negative position", item: Item{ID: "a", Title: "x", Position: -1}, field: "position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertField(t, ValidateItem(tt.item), tt.field)
		})
	}
}

func TestSortByPositionBreaksTiesByID(t *testing.T) {
	items := []Item{
		{ID: "c", Position: 1},
		{ID: "b", Position: 0},
		{ID: "a", Position: 1},
	}
	SortByPosition(items)
	got := []string{items[0].ID, items[1].ID, items[2].ID}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestToggledLeavesOriginal(t *testing.T) {
	it := Item{ID: "a", Title: "x"}
	flipped := it.Toggled()
	if it.Completed {
		t.Fatalf("original mutated")
	}
	if !flipped.Completed {
		t.Fatalf("expected flipped item to be completed")
	}
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	if field == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != field {
		t.Fatalf("expected field %q, got %q", field, verr.Field)
	}
}
