package metadata

import (
	"testing"
)

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"available", "available", false},
		{"assigned", "assigned", false},
		{"maintenance", "maintenance", false},
		{"retired", "retired", false},
		{"uppercase is rejected", "Available", true},
		{"unknown", "in_stock", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewStatus() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && got.String() != tt.input {
				t.Errorf("NewStatus() = %v, want %v", got, tt.input)
			}
		})
	}
}

func TestAssetTypeLabel(t *testing.T) {
	tests := []struct {
		assetType AssetType
		expected  string
	}{
		{TypeDesktop, "Desktops"},
		{TypeLaptop, "Laptops"},
		{TypePrinter, "Printers"},
		{TypeOther, "Other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.assetType), func(t *testing.T) {
			if got := tt.assetType.Label(); got != tt.expected {
				t.Errorf("Label() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		federated bool
	}{
		{"email", "email", false, false},
		{"google with spaces", "  Google ", false, true},
		{"github", "github", false, true},
		{"instagram", "INSTAGRAM", false, true},
		{"unknown", "myspace", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewProvider(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got.IsFederated() != tt.federated {
				t.Errorf("IsFederated() = %v, want %v", got.IsFederated(), tt.federated)
			}
		})
	}
}
