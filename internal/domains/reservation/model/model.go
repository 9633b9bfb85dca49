package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID           = "id"
	FieldCustomerID   = "customer_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
)

// Reservation is the central aggregate: one customer, one room, a date range
// and a lifecycle status. It owns payments, service attachments and audit
// log entries.
type Reservation struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	RoomID       string    `db:"room_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       string    `db:"status"`
	model.Metadata
}

// CustomerReservationRow is one row of the per-customer listing, in
// insertion order.
type CustomerReservationRow struct {
	ID           string    `db:"id"`
	RoomNumber   string    `db:"room_number"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       string    `db:"status"`
}

// OverviewRow is one row of the customer-reservation join: one row per
// reservation with the customer's full name.
type OverviewRow struct {
	ID           string    `db:"id"`
	CustomerName string    `db:"customer_name"`
	RoomNumber   string    `db:"room_number"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       string    `db:"status"`
}
