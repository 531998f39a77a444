package dto

import "github.com/aarondl/null/v8"

type CreateCategoryDTO struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty"`
	Responsible string `json:"responsible" validate:"omitempty,max=200"`
}

type UpdateCategoryDTO struct {
	Name        null.String `json:"name"        validate:"omitempty,max=200"`
	Description null.String `json:"description"`
	Responsible null.String `json:"responsible" validate:"omitempty,max=200"`
}
