package entities

import (
	"time"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type MaintenanceRequest struct {
	ID            string     `json:"id"`
	Subject       string     `json:"subject"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	RequestType   string     `json:"requestType,omitempty"`
	EquipmentID   string     `json:"equipmentId"`
	TeamID        string     `json:"teamId,omitempty"`
	TechnicianID  string     `json:"technicianId,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	DurationHours *float64   `json:"durationHours,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`

	types.BaseEntity
}

// IsOpen - заявка ещё не отремонтирована и не списана.
func (r MaintenanceRequest) IsOpen() bool {
	return !constants.IsClosedRequestStatus(r.Status)
}

// IsOverdue - открытая заявка, запланированная дата которой уже прошла.
func (r MaintenanceRequest) IsOverdue(now time.Time) bool {
	return r.IsOpen() && r.ScheduledDate != nil && r.ScheduledDate.Before(now)
}
