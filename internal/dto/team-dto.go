package dto

import "github.com/aarondl/null/v8"

type CreateTeamDTO struct {
	Name        string   `json:"name"        validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty"`
	Members     []string `json:"members"     validate:"omitempty,dive,required"`
}

type UpdateTeamDTO struct {
	Name        null.String `json:"name"        validate:"omitempty,max=200"`
	Description null.String `json:"description"`
	Members     []string    `json:"members"     validate:"omitempty,dive,required"`
}
