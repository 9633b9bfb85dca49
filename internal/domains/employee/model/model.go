package model

import (
	"lodge/shared/model"
)

const (
	TableName  = "employees"
	EntityName = "employee"

	FieldID           = "id"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldRole         = "role"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
)

type Employee struct {
	ID           string  `db:"id"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	Role         string  `db:"role"`
	Phone        *string `db:"phone"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	model.Metadata
}
