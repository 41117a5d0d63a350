package models

type AuditLog struct {
	ResourceID   string                 `json:"resource_id"`
	ResourceType string                 `json:"resource_type"`
	Action       string                 `json:"action"` // create, update, delete, quantity
	Data         map[string]interface{} `json:"data"`
}
