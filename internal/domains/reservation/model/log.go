package model

import (
	"time"

	"lodge/shared/model"
)

const (
	LogTableName  = "reservation_logs"
	LogEntityName = "reservation_log"

	LogFieldID            = "id"
	LogFieldReservationID = "reservation_id"
	LogFieldLogDate       = "log_date"
	LogFieldAction        = "action"
)

// Log is an append-only audit entry. The system writes it once, in the same
// transaction as the reservation mutation, and never updates or deletes it.
type Log struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	LogDate       time.Time `db:"log_date"`
	Action        string    `db:"action"`
	model.Metadata
}
