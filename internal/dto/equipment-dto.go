package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	Name             string     `json:"name"             validate:"required,max=200"`
	SerialNumber     string     `json:"serialNumber"     validate:"required,serial_number"`
	CategoryID       string     `json:"categoryId"       validate:"omitempty"`
	Department       string     `json:"department"       validate:"omitempty,max=200"`
	Location         string     `json:"location"         validate:"omitempty,max=200"`
	Status           string     `json:"status"           validate:"required,equipment_status"`
	PurchaseDate     *time.Time `json:"purchaseDate"     validate:"omitempty"`
	WarrantyExpiry   *time.Time `json:"warrantyExpiry"   validate:"omitempty"`
	TeamID           string     `json:"teamId"           validate:"omitempty"`
	TechnicianID     string     `json:"technicianId"     validate:"omitempty"`
	AssignedEmployee string     `json:"assignedEmployee" validate:"omitempty,max=200"`
	WorkCenterID     string     `json:"workCenterId"     validate:"omitempty"`
	Notes            string     `json:"notes"            validate:"omitempty"`
}

// UpdateEquipmentDTO: отсутствующее поле не трогаем, явный null очищает значение.
type UpdateEquipmentDTO struct {
	Name             null.String `json:"name"             validate:"omitempty,max=200"`
	SerialNumber     null.String `json:"serialNumber"     validate:"omitempty,serial_number"`
	CategoryID       null.String `json:"categoryId"`
	Department       null.String `json:"department"       validate:"omitempty,max=200"`
	Location         null.String `json:"location"         validate:"omitempty,max=200"`
	Status           null.String `json:"status"           validate:"omitempty,equipment_status"`
	PurchaseDate     null.Time   `json:"purchaseDate"`
	WarrantyExpiry   null.Time   `json:"warrantyExpiry"`
	TeamID           null.String `json:"teamId"`
	TechnicianID     null.String `json:"technicianId"`
	AssignedEmployee null.String `json:"assignedEmployee" validate:"omitempty,max=200"`
	WorkCenterID     null.String `json:"workCenterId"`
	Notes            null.String `json:"notes"`
}

// EquipmentImportResultDTO - итог импорта из XLSX.
type EquipmentImportResultDTO struct {
	Created int               `json:"created"`
	Skipped int               `json:"skipped"`
	Errors  []ImportRowErrDTO `json:"errors,omitempty"`
}

type ImportRowErrDTO struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
