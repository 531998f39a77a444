package entities

import "gearguard/pkg/types"

// Team - ремонтная бригада. Members хранит идентификаторы или имена техников.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`

	types.BaseEntity
}
