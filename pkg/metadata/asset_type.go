package metadata

import "fmt"

type AssetType string

const (
	TypeDesktop AssetType = "desktop"
	TypeLaptop  AssetType = "laptop"
	TypePrinter AssetType = "printer"
	TypeOther   AssetType = "other"
)

// AssetTypes lists asset types in dashboard chart order.
var AssetTypes = []AssetType{TypeDesktop, TypeLaptop, TypePrinter, TypeOther}

func NewAssetType(value string) (AssetType, error) {
	t := AssetType(value)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid asset type: %s", value)
	}
	return t, nil
}

func (t AssetType) IsValid() bool {
	switch t {
	case TypeDesktop, TypeLaptop, TypePrinter, TypeOther:
		return true
	default:
		return false
	}
}

// Label is the plural chart label used by the dashboard.
func (t AssetType) Label() string {
	switch t {
	case TypeDesktop:
		return "Desktops"
	case TypeLaptop:
		return "Laptops"
	case TypePrinter:
		return "Printers"
	default:
		return "Other"
	}
}

func (t AssetType) String() string {
	return string(t)
}
