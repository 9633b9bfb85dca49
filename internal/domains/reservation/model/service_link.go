package model

import (
	"lodge/shared/model"
)

const (
	ServiceLinkTableName  = "reservation_services"
	ServiceLinkEntityName = "reservation_service"

	ServiceLinkFieldReservationID = "reservation_id"
	ServiceLinkFieldServiceID     = "service_id"
	ServiceLinkFieldQuantity      = "quantity"
)

// ServiceLink is the reservation-to-service junction row.
type ServiceLink struct {
	ReservationID string `db:"reservation_id"`
	ServiceID     string `db:"service_id"`
	Quantity      int    `db:"quantity"`
	model.Metadata
}

// ServiceLinkRow joins the attached service's name and unit price onto the
// junction row for listings.
type ServiceLinkRow struct {
	ServiceID string  `db:"service_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Quantity  int     `db:"quantity"`
}
