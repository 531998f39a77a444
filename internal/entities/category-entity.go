package entities

import "gearguard/pkg/types"

type EquipmentCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Responsible string `json:"responsible,omitempty"`

	types.BaseEntity
}
