package types

import "time"

// BaseEntity - серверные отметки времени, общие для всех документов.
type BaseEntity struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
