package model

import (
	"lodge/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID         = "id"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldNationalID = "national_id"
)

type Customer struct {
	ID         string  `db:"id"`
	FirstName  string  `db:"first_name"`
	LastName   string  `db:"last_name"`
	Email      *string `db:"email"`
	Phone      *string `db:"phone"`
	NationalID *string `db:"national_id"`
	model.Metadata
}

// RosterRow is one row of the normalized customer roster. Email is an
// explicit NULL for customers that have none.
type RosterRow struct {
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Email     *string `db:"email"`
}
