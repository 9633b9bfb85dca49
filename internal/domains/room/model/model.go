package model

import (
	"lodge/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldFloor         = "floor"
	FieldPricePerNight = "price_per_night"
	FieldIsAvailable   = "is_available"
	FieldRoomTypeID    = "room_type_id"
)

// Room's IsAvailable is derived state: it is flipped off when a reservation
// is confirmed, and only an explicit recompute brings it back in line.
type Room struct {
	ID            string  `db:"id"`
	RoomNumber    string  `db:"room_number"`
	Floor         int     `db:"floor"`
	PricePerNight float64 `db:"price_per_night"`
	IsAvailable   bool    `db:"is_available"`
	RoomTypeID    string  `db:"room_type_id"`
	model.Metadata
}
