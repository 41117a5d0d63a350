package store

import (
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// fetchAssetSeed is written the first time assets are fetched from an empty store.
func (s *Store) fetchAssetSeed() []models.Asset {
	now := s.timestamp()

	return []models.Asset{
		{
			ID:             s.newID(),
			Name:           "Dell XPS 15",
			Type:           metadata.TypeLaptop,
			SerialNumber:   "DLL-XPS-2023-001",
			Model:          "XPS 15 9520",
			Status:         metadata.StatusAssigned,
			AssignedTo:     "John Doe",
			PurchaseDate:   "2023-01-15",
			WarrantyExpiry: "2026-01-15",
			Location:       "Main Office",
			Notes:          "Developer workstation",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             s.newID(),
			Name:           "HP LaserJet Pro",
			Type:           metadata.TypePrinter,
			SerialNumber:   "HP-LJP-2023-001",
			Model:          "M404dn",
			Status:         metadata.StatusAvailable,
			PurchaseDate:   "2023-02-01",
			WarrantyExpiry: "2025-02-01",
			Location:       "Print Room",
			Notes:          "Shared network printer",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

// signupAssetSeed bootstraps the asset collection for the first registered user.
func (s *Store) signupAssetSeed() []models.Asset {
	now := s.timestamp()

	return []models.Asset{
		{
			ID:             s.newID(),
			Name:           "Dell XPS 13",
			Type:           metadata.TypeLaptop,
			SerialNumber:   "DL123456",
			Model:          "XPS 13 9310",
			Status:         metadata.StatusAvailable,
			PurchaseDate:   "2025-01-15",
			WarrantyExpiry: "2028-01-15",
			Location:       "Office 101",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             s.newID(),
			Name:           "HP LaserJet Pro",
			Type:           metadata.TypePrinter,
			SerialNumber:   "HP789012",
			Model:          "M404n",
			Status:         metadata.StatusAssigned,
			AssignedTo:     "IT Department",
			PurchaseDate:   "2024-11-20",
			WarrantyExpiry: "2026-11-20",
			Location:       "Office 102",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func (s *Store) stockSeed() []models.StockItem {
	now := s.timestamp()
	restocked := now.Format(isoMillis)

	return []models.StockItem{
		{
			ID:            s.newID(),
			Name:          "A4 Paper",
			Category:      "Office Supplies",
			Quantity:      500,
			MinQuantity:   100,
			Unit:          "sheets",
			Location:      "Storage Room A",
			Supplier:      "Office Depot",
			LastRestocked: restocked,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            s.newID(),
			Name:          "Ink Cartridges",
			Category:      "Printer Supplies",
			Quantity:      15,
			MinQuantity:   5,
			Unit:          "pieces",
			Location:      "Storage Room B",
			Supplier:      "HP Store",
			LastRestocked: restocked,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
