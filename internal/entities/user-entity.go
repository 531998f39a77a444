// Файл: internal/entities/user-entity.go
package entities

import "gearguard/pkg/types"

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`

	// Хеш хранится в документе, но наружу не отдаётся: см. dto.UserDTO.
	PasswordHash string `json:"passwordHash,omitempty"`

	types.BaseEntity
}
