package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateMaintenanceRequestDTO struct {
	Subject       string     `json:"subject"       validate:"required,max=300"`
	Description   string     `json:"description"   validate:"omitempty"`
	Status        string     `json:"status"        validate:"omitempty,request_status"`
	Priority      string     `json:"priority"      validate:"omitempty,priority"`
	RequestType   string     `json:"requestType"   validate:"omitempty,oneof=corrective preventive"`
	EquipmentID   string     `json:"equipmentId"   validate:"required"`
	TeamID        string     `json:"teamId"        validate:"omitempty"`
	TechnicianID  string     `json:"technicianId"  validate:"omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate" validate:"omitempty"`
	DurationHours *float64   `json:"durationHours" validate:"omitempty,gte=0"`
}

type UpdateMaintenanceRequestDTO struct {
	Subject       null.String  `json:"subject"       validate:"omitempty,max=300"`
	Description   null.String  `json:"description"`
	Priority      null.String  `json:"priority"      validate:"omitempty,priority"`
	RequestType   null.String  `json:"requestType"   validate:"omitempty,oneof=corrective preventive"`
	EquipmentID   null.String  `json:"equipmentId"`
	TeamID        null.String  `json:"teamId"`
	TechnicianID  null.String  `json:"technicianId"`
	ScheduledDate null.Time    `json:"scheduledDate"`
	DurationHours null.Float64 `json:"durationHours" validate:"omitempty,gte=0"`
}

// ChangeStageDTO переводит заявку на другой этап канбан-доски.
type ChangeStageDTO struct {
	Status string `json:"status" validate:"required,request_status"`
}
