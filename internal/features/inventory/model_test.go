package inventory

import "testing"

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []RequestItem
		wantErr bool
	}{
		{"valid single item", []RequestItem{{Name: "napkins", Quantity: 10, Unit: "box"}}, false},
		{"no items", nil, true},
		{"empty slice", []RequestItem{}, true},
		{"missing name", []RequestItem{{Quantity: 5}}, true},
		{"zero quantity", []RequestItem{{Name: "cups", Quantity: 0}}, true},
		{"negative quantity", []RequestItem{{Name: "cups", Quantity: -3}}, true},
		{"one bad item fails all", []RequestItem{
			{Name: "cups", Quantity: 5},
			{Name: "lids", Quantity: 0},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems(tt.items)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItems() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
