package entities

import "gearguard/pkg/types"

type WorkCenter struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Code           string   `json:"code,omitempty"`
	Tag            string   `json:"tag,omitempty"`
	CostPerHour    *float64 `json:"costPerHour,omitempty"`
	Capacity       *float64 `json:"capacity,omitempty"`
	TimeEfficiency *float64 `json:"timeEfficiency,omitempty"`
	OEETarget      *float64 `json:"oeeTarget,omitempty"`

	types.BaseEntity
}
