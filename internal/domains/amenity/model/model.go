package model

import (
	"lodge/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID    = "id"
	FieldName  = "name"
	FieldPrice = "price"
)

// Service is a billable amenity that can be attached to reservations.
type Service struct {
	ID    string  `db:"id"`
	Name  string  `db:"name"`
	Price float64 `db:"price"`
	model.Metadata
}
