package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldAmount        = "amount"
	FieldPaymentDate   = "payment_date"
	FieldMethod        = "method"
)

type Payment struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	Amount        float64   `db:"amount"`
	PaymentDate   time.Time `db:"payment_date"`
	Method        string    `db:"method"`
	model.Metadata
}
