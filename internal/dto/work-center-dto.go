package dto

import "github.com/aarondl/null/v8"

type CreateWorkCenterDTO struct {
	Name           string   `json:"name"           validate:"required,max=200"`
	Code           string   `json:"code"           validate:"omitempty,max=50"`
	Tag            string   `json:"tag"            validate:"omitempty,max=50"`
	CostPerHour    *float64 `json:"costPerHour"    validate:"omitempty,gte=0"`
	Capacity       *float64 `json:"capacity"       validate:"omitempty,gte=0"`
	TimeEfficiency *float64 `json:"timeEfficiency" validate:"omitempty,gte=0,lte=100"`
	OEETarget      *float64 `json:"oeeTarget"      validate:"omitempty,gte=0,lte=100"`
}

type UpdateWorkCenterDTO struct {
	Name           null.String  `json:"name"           validate:"omitempty,max=200"`
	Code           null.String  `json:"code"           validate:"omitempty,max=50"`
	Tag            null.String  `json:"tag"            validate:"omitempty,max=50"`
	CostPerHour    null.Float64 `json:"costPerHour"    validate:"omitempty,gte=0"`
	Capacity       null.Float64 `json:"capacity"       validate:"omitempty,gte=0"`
	TimeEfficiency null.Float64 `json:"timeEfficiency" validate:"omitempty,gte=0,lte=100"`
	OEETarget      null.Float64 `json:"oeeTarget"      validate:"omitempty,gte=0,lte=100"`
}
