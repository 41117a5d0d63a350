package models

import "time"

type StockItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	MinQuantity   int       `json:"minQuantity"`
	Unit          string    `json:"unit"`
	Location      string    `json:"location"`
	Supplier      string    `json:"supplier"`
	LastRestocked string    `json:"lastRestocked"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *StockItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "stock",
	}
}

// StockItemRequest uses pointers for the counters so a missing value is told apart from zero.
type StockItemRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Quantity      *int   `json:"quantity" binding:"required,min=0"`
	MinQuantity   *int   `json:"minQuantity" binding:"required,min=0"`
	Unit          string `json:"unit" binding:"required"`
	Location      string `json:"location" binding:"required"`
	Supplier      string `json:"supplier" binding:"required"`
	LastRestocked string `json:"lastRestocked" binding:"required"`
	Notes         string `json:"notes"`
}

func (r StockItemRequest) ToStockItem(id string, now time.Time) StockItem {
	item := StockItem{
		ID:            id,
		Name:          r.Name,
		Category:      r.Category,
		Unit:          r.Unit,
		Location:      r.Location,
		Supplier:      r.Supplier,
		LastRestocked: r.LastRestocked,
		Notes:         r.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if r.Quantity != nil {
		item.Quantity = *r.Quantity
	}
	if r.MinQuantity != nil {
		item.MinQuantity = *r.MinQuantity
	}
	return item
}

type PatchStockItemRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1"`
	Category      *string `json:"category" binding:"omitempty,min=1"`
	Quantity      *int    `json:"quantity" binding:"omitempty,min=0"`
	MinQuantity   *int    `json:"minQuantity" binding:"omitempty,min=0"`
	Unit          *string `json:"unit" binding:"omitempty,min=1"`
	Location      *string `json:"location" binding:"omitempty,min=1"`
	Supplier      *string `json:"supplier" binding:"omitempty,min=1"`
	LastRestocked *string `json:"lastRestocked" binding:"omitempty,min=1"`
	Notes         *string `json:"notes"`
}

func (p PatchStockItemRequest) Apply(item *StockItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.MinQuantity != nil {
		item.MinQuantity = *p.MinQuantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.Supplier != nil {
		item.Supplier = *p.Supplier
	}
	if p.LastRestocked != nil {
		item.LastRestocked = *p.LastRestocked
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
}

type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}
