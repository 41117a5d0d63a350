package models

import (
	"time"

	"assetdesk/pkg/metadata"
)

type Asset struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Type           metadata.AssetType `json:"type"`
	SerialNumber   string             `json:"serialNumber"`
	Model          string             `json:"model"`
	Status         metadata.Status    `json:"status"`
	AssignedTo     string             `json:"assignedTo,omitempty"`
	PurchaseDate   string             `json:"purchaseDate"`
	WarrantyExpiry string             `json:"warrantyExpiry"`
	Location       string             `json:"location"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}

// AssetRequest carries every asset field the caller owns; id and timestamps are assigned by the store.
type AssetRequest struct {
	Name           string             `json:"name" binding:"required"`
	Type           metadata.AssetType `json:"type" binding:"required,oneof=desktop laptop printer other"`
	SerialNumber   string             `json:"serialNumber" binding:"required"`
	Model          string             `json:"model" binding:"required"`
	Status         metadata.Status    `json:"status" binding:"required,oneof=available assigned maintenance retired"`
	AssignedTo     string             `json:"assignedTo"`
	PurchaseDate   string             `json:"purchaseDate" binding:"required"`
	WarrantyExpiry string             `json:"warrantyExpiry" binding:"required"`
	Location       string             `json:"location" binding:"required"`
	Notes          string             `json:"notes"`
}

func (r AssetRequest) ToAsset(id string, now time.Time) Asset {
	return Asset{
		ID:             id,
		Name:           r.Name,
		Type:           r.Type,
		SerialNumber:   r.SerialNumber,
		Model:          r.Model,
		Status:         r.Status,
		AssignedTo:     r.AssignedTo,
		PurchaseDate:   r.PurchaseDate,
		WarrantyExpiry: r.WarrantyExpiry,
		Location:       r.Location,
		Notes:          r.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type PatchAssetRequest struct {
	Name           *string             `json:"name" binding:"omitempty,min=1"`
	Type           *metadata.AssetType `json:"type" binding:"omitempty,oneof=desktop laptop printer other"`
	SerialNumber   *string             `json:"serialNumber" binding:"omitempty,min=1"`
	Model          *string             `json:"model" binding:"omitempty,min=1"`
	Status         *metadata.Status    `json:"status" binding:"omitempty,oneof=available assigned maintenance retired"`
	AssignedTo     *string             `json:"assignedTo"`
	PurchaseDate   *string             `json:"purchaseDate" binding:"omitempty,min=1"`
	WarrantyExpiry *string             `json:"warrantyExpiry" binding:"omitempty,min=1"`
	Location       *string             `json:"location" binding:"omitempty,min=1"`
	Notes          *string             `json:"notes"`
}

// Apply merges the fields present in the patch into the asset.
func (p PatchAssetRequest) Apply(a *Asset) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.SerialNumber != nil {
		a.SerialNumber = *p.SerialNumber
	}
	if p.Model != nil {
		a.Model = *p.Model
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.AssignedTo != nil {
		a.AssignedTo = *p.AssignedTo
	}
	if p.PurchaseDate != nil {
		a.PurchaseDate = *p.PurchaseDate
	}
	if p.WarrantyExpiry != nil {
		a.WarrantyExpiry = *p.WarrantyExpiry
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
