package entities

import (
	"time"

	"gearguard/pkg/types"
)

type Equipment struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	SerialNumber     string     `json:"serialNumber"`
	CategoryID       string     `json:"categoryId,omitempty"`
	Department       string     `json:"department,omitempty"`
	Location         string     `json:"location,omitempty"`
	Status           string     `json:"status"`
	PurchaseDate     *time.Time `json:"purchaseDate,omitempty"`
	WarrantyExpiry   *time.Time `json:"warrantyExpiry,omitempty"`
	TeamID           string     `json:"teamId,omitempty"`
	TechnicianID     string     `json:"technicianId,omitempty"`
	AssignedEmployee string     `json:"assignedEmployee,omitempty"`
	WorkCenterID     string     `json:"workCenterId,omitempty"`
	Notes            string     `json:"notes,omitempty"`

	types.BaseEntity // CreatedAt, UpdatedAt
}
